package metrics

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"

	"LogonTriage/analysis"
	"LogonTriage/parsers"
)

// Namespace for all metrics
const namespace = "triage"

// Collector holds the diagnostic counters for one triage run
type Collector struct {
	LinesRead        *prometheus.CounterVec
	RecordsTotal     *prometheus.CounterVec
	RecordsDiscarded *prometheus.CounterVec
	EventsTotal      *prometheus.CounterVec
	InputsSkipped    prometheus.Counter
	FailureRatio     prometheus.Gauge
	Alert            prometheus.Gauge

	registry *prometheus.Registry
}

// NewCollector creates a collector on its own registry
func NewCollector() *Collector {
	registry := prometheus.NewRegistry()

	c := &Collector{
		LinesRead: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lines_read_total",
			Help:      "Lines read from text exports after decoding",
		}, []string{"input"}),
		RecordsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_total",
			Help:      "Event records seen in each input",
		}, []string{"input"}),
		RecordsDiscarded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_discarded_total",
			Help:      "Records dropped because their event id is not 4624 or 4625",
		}, []string{"input"}),
		EventsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_total",
			Help:      "Retained logon events by event id",
		}, []string{"event_id"}),
		InputsSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "inputs_skipped_total",
			Help:      "Configured inputs that were missing or unreadable",
		}),
		FailureRatio: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "failure_ratio",
			Help:      "Failed to successful logon ratio, 0 when there were no successful logons",
		}),
		Alert: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "alert",
			Help:      "1 when the run was classified as an alert",
		}),
		registry: registry,
	}

	registry.MustRegister(
		c.LinesRead,
		c.RecordsTotal,
		c.RecordsDiscarded,
		c.EventsTotal,
		c.InputsSkipped,
		c.FailureRatio,
		c.Alert,
	)

	return c
}

// ObserveInput records the parse counters of one input file
func (c *Collector) ObserveInput(input string, stats parsers.ParseStats) {
	c.LinesRead.WithLabelValues(input).Add(float64(stats.Lines))
	c.RecordsTotal.WithLabelValues(input).Add(float64(stats.Records))
	c.RecordsDiscarded.WithLabelValues(input).Add(float64(stats.Discarded))
}

// ObserveSummary records the final totals and anomaly verdict
func (c *Collector) ObserveSummary(s *analysis.Summary, sig analysis.Signal) {
	c.EventsTotal.WithLabelValues("4625").Add(float64(s.FailedTotal))
	c.EventsTotal.WithLabelValues("4624").Add(float64(s.SuccessTotal))
	c.FailureRatio.Set(sig.Ratio)
	if sig.Tier == analysis.TierAlert {
		c.Alert.Set(1)
	} else {
		c.Alert.Set(0)
	}
}

// WriteTextfile writes the metrics in the text exposition format, for the
// node_exporter textfile collector
func (c *Collector) WriteTextfile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create metrics directory: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, c.registry); err != nil {
		return fmt.Errorf("failed to write metrics: %w", err)
	}
	return nil
}
