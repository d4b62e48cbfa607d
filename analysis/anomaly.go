package analysis

import "fmt"

// DefaultAlertRatio is the failed/successful ratio above which a run is flagged
const DefaultAlertRatio = 0.3

// Tier is the alert level derived from the failure ratio
type Tier string

const (
	TierNoActivity Tier = "no-activity"
	TierNormal     Tier = "normal"
	TierAlert      Tier = "alert"
)

// Signal is the anomaly verdict for one run
type Signal struct {
	Tier     Tier    `json:"tier"`
	Ratio    float64 `json:"ratio"`
	HasRatio bool    `json:"has_ratio"`
	Message  string  `json:"message"`
}

// Evaluate classifies the failed/successful logon ratio. A ratio strictly above
// threshold is an alert; failures with no successes are an alert without a ratio.
func Evaluate(failed, success int, threshold float64) Signal {
	if success > 0 {
		ratio := float64(failed) / float64(success)
		if ratio > threshold {
			return Signal{
				Tier:     TierAlert,
				Ratio:    ratio,
				HasRatio: true,
				Message: fmt.Sprintf("ALERT: High failure ratio detected (%.2f). "+
					"Possible brute-force or password spraying.", ratio),
			}
		}
		return Signal{
			Tier:     TierNormal,
			Ratio:    ratio,
			HasRatio: true,
			Message:  fmt.Sprintf("Failure ratio is %.2f, within normal bounds.", ratio),
		}
	}

	if failed > 0 {
		return Signal{
			Tier:    TierAlert,
			Message: "ALERT: Failed logons detected with no successful logons recorded.",
		}
	}

	return Signal{
		Tier:    TierNoActivity,
		Message: "No logon activity detected.",
	}
}
