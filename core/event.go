package core

// Logon event identifiers retained by the triage pipeline
const (
	EventIDSuccess = "4624"
	EventIDFailure = "4625"
)

// Unknown is the sentinel used in place of a missing account or address
const Unknown = "UNKNOWN"

// Event represents one parsed Windows logon record.
// An empty Account or SourceAddress means the field was not present in the record.
type Event struct {
	EventID       string `json:"event_id"`
	When          string `json:"when"`
	Account       string `json:"account"`
	SourceAddress string `json:"source_address"`
	Source        string `json:"source"`
}

// NewEvent creates a new logon event with the given parameters
func NewEvent(eventID, when, account, sourceAddress, source string) *Event {
	return &Event{
		EventID:       eventID,
		When:          when,
		Account:       account,
		SourceAddress: sourceAddress,
		Source:        source,
	}
}

// IsRetained reports whether an event id belongs to the logon allow-list
func IsRetained(eventID string) bool {
	return eventID == EventIDSuccess || eventID == EventIDFailure
}

// IsFailure returns true for failed logons (4625)
func (e *Event) IsFailure() bool { return e.EventID == EventIDFailure }

// IsSuccess returns true for successful logons (4624)
func (e *Event) IsSuccess() bool { return e.EventID == EventIDSuccess }

// AccountOrUnknown returns the account name, or the sentinel if absent
func (e *Event) AccountOrUnknown() string {
	return orUnknown(e.Account)
}

// AddressOrUnknown returns the source address, or the sentinel if absent
func (e *Event) AddressOrUnknown() string {
	return orUnknown(e.SourceAddress)
}

func orUnknown(v string) string {
	if v == "" {
		return Unknown
	}
	return v
}

// Events is a slice of Event pointers in parse order
type Events []*Event

// Count returns the number of failed and successful events
func (e Events) Count() (failed, success int) {
	for _, ev := range e {
		switch {
		case ev.IsFailure():
			failed++
		case ev.IsSuccess():
			success++
		}
	}
	return failed, success
}
