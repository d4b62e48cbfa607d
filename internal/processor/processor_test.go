package processor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"LogonTriage/core"
	"LogonTriage/internal/metrics"
	"LogonTriage/parsers"
)

type memoryWriter struct {
	events []*core.Event
	err    error
}

func (w *memoryWriter) Write(events []*core.Event) error {
	w.events = append(w.events, events...)
	return w.err
}

func (w *memoryWriter) Close() error { return nil }

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

func TestProcessOrdersEventsByInput(t *testing.T) {
	dir := t.TempDir()
	failed := writeFile(t, dir, "FailedLogons.txt",
		"Event ID: 4625\nAccount Name: tim\n\nEvent ID: 4625\nAccount Name: bob\n")
	success := writeFile(t, dir, "SuccessfulLogons.txt",
		"Event ID: 4624\nAccount Name: alice\n\nEvent ID: 4634\nAccount Name: alice\n")

	writer := &memoryWriter{}
	collector := metrics.NewCollector()
	p := NewProcessor(writer, collector)

	events, results, err := p.Process(context.Background(), []Input{
		{Label: "failed", Path: failed},
		{Label: "success", Path: success},
	})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	if len(events) != 3 {
		t.Fatalf("Expected 3 events, got %d", len(events))
	}
	if events[0].Account != "tim" || events[1].Account != "bob" || events[2].Account != "alice" {
		t.Errorf("Events out of order: %v, %v, %v", events[0], events[1], events[2])
	}
	if len(writer.events) != 3 {
		t.Errorf("Expected 3 exported events, got %d", len(writer.events))
	}
	if len(results) != 2 || results[1].Stats.Discarded != 1 {
		t.Errorf("Unexpected results: %+v", results)
	}
	if got := testutil.ToFloat64(collector.RecordsDiscarded.WithLabelValues("SuccessfulLogons.txt")); got != 1 {
		t.Errorf("Expected 1 discarded record in metrics, got %v", got)
	}
}

func TestProcessSkipsMissingInput(t *testing.T) {
	dir := t.TempDir()
	success := writeFile(t, dir, "SuccessfulLogons.txt", "Event ID: 4624\nAccount Name: alice")

	collector := metrics.NewCollector()
	p := NewProcessor(nil, collector)

	events, results, err := p.Process(context.Background(), []Input{
		{Label: "failed", Path: filepath.Join(dir, "missing.txt")},
		{Label: "success", Path: success},
		{Label: "unused", Path: ""},
	})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("Expected 1 event, got %d", len(events))
	}
	if len(results) != 2 || !results[0].Skipped || results[1].Skipped {
		t.Errorf("Unexpected results: %+v", results)
	}
	if got := testutil.ToFloat64(collector.InputsSkipped); got != 1 {
		t.Errorf("Expected 1 skipped input, got %v", got)
	}
}

func TestProcessInvalidOptionsSkipsInput(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "FailedLogons.txt", "Event ID: 4625\n")

	p := NewProcessor(nil, nil)
	events, results, err := p.Process(context.Background(), []Input{
		{Label: "failed", Path: path, Options: parsers.Options{Encoding: "ebcdic"}},
	})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if len(events) != 0 || !results[0].Skipped || !errors.Is(results[0].Err, parsers.ErrUnsupportedEncoding) {
		t.Errorf("Expected skipped input with encoding error, got %+v", results)
	}
}

func TestProcessExportFailureKeepsEvents(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "FailedLogons.txt", "Event ID: 4625\nAccount Name: tim\n")

	p := NewProcessor(&memoryWriter{err: errors.New("disk full")}, nil)
	events, _, err := p.Process(context.Background(), []Input{{Label: "failed", Path: path}})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if len(events) != 1 {
		t.Errorf("Expected the event to survive an export failure, got %d", len(events))
	}
}

func TestProcessCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := NewProcessor(nil, nil)
	_, _, err := p.Process(ctx, []Input{{Label: "failed", Path: "x"}})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}
