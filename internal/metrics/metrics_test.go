package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"LogonTriage/analysis"
	"LogonTriage/core"
	"LogonTriage/parsers"
)

func TestObserve(t *testing.T) {
	c := NewCollector()
	c.ObserveInput("FailedLogons.txt", parsers.ParseStats{Lines: 40, Records: 5, Retained: 3, Discarded: 2})

	s := analysis.Summarize([]*core.Event{
		core.NewEvent(core.EventIDFailure, "", "tim", "", "f"),
		core.NewEvent(core.EventIDFailure, "", "tim", "", "f"),
		core.NewEvent(core.EventIDSuccess, "", "tim", "", "f"),
	}, analysis.DefaultTopN)
	c.ObserveSummary(s, analysis.Evaluate(s.FailedTotal, s.SuccessTotal, analysis.DefaultAlertRatio))

	if got := testutil.ToFloat64(c.RecordsDiscarded.WithLabelValues("FailedLogons.txt")); got != 2 {
		t.Errorf("Expected 2 discarded records, got %v", got)
	}
	if got := testutil.ToFloat64(c.EventsTotal.WithLabelValues("4625")); got != 2 {
		t.Errorf("Expected 2 failed events, got %v", got)
	}
	if got := testutil.ToFloat64(c.FailureRatio); got != 2 {
		t.Errorf("Expected failure ratio 2, got %v", got)
	}
	if got := testutil.ToFloat64(c.Alert); got != 1 {
		t.Errorf("Expected alert gauge 1, got %v", got)
	}
}

func TestWriteTextfile(t *testing.T) {
	c := NewCollector()
	c.InputsSkipped.Inc()

	path := filepath.Join(t.TempDir(), "textfile", "triage.prom")
	if err := c.WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read metrics file: %v", err)
	}
	if !strings.Contains(string(data), "triage_inputs_skipped_total 1") {
		t.Errorf("Expected skipped input counter in output:\n%s", data)
	}
}
