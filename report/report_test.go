package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"LogonTriage/analysis"
	"LogonTriage/core"
)

var generated = time.Date(2025, 11, 8, 13, 42, 15, 0, time.UTC)

func sampleSummary() (*analysis.Summary, analysis.Signal) {
	events := []*core.Event{
		core.NewEvent(core.EventIDFailure, "", "tim", "192.168.1.15", "f"),
		core.NewEvent(core.EventIDFailure, "", "", "", "f"),
		core.NewEvent(core.EventIDSuccess, "", "alice", "10.0.0.2", "s"),
	}
	s := analysis.Summarize(events, analysis.DefaultTopN)
	return s, analysis.Evaluate(s.FailedTotal, s.SuccessTotal, analysis.DefaultAlertRatio)
}

func TestText(t *testing.T) {
	s, sig := sampleSummary()
	got := Text(s, sig, generated)

	want := strings.Join([]string{
		"Windows Logon Triage Summary",
		"Generated: 2025-11-08 13:42:15 UTC",
		"",
		"Total failed logons (4625): 2",
		"Total successful logons (4624): 1",
		"",
		"ALERT: High failure ratio detected (2.00). Possible brute-force or password spraying.",
		"",
		"Top source IPs (failed 4625):",
		"  - 192.168.1.15: 1",
		"  - UNKNOWN: 1",
		"",
		"Top targeted accounts (failed 4625):",
		"  - tim: 1",
		"  - UNKNOWN: 1",
		"",
		"Top accounts (successful 4624):",
		"  - alice: 1",
		"",
		"Notes:",
		"  • Investigate IPs with unusually high failed attempts.",
		"  • Compare failed vs. successful to spot possible compromises.",
		"  • Align timestamps with Wireshark or firewall logs for deeper correlation.",
		"",
	}, "\n")

	if got != want {
		t.Errorf("Unexpected report:\n%s\n--- want ---\n%s", got, want)
	}
}

func TestTextEmpty(t *testing.T) {
	s := analysis.Summarize(nil, analysis.DefaultTopN)
	got := Text(s, analysis.Evaluate(0, 0, analysis.DefaultAlertRatio), generated)

	if !strings.Contains(got, "No logon activity detected.") {
		t.Errorf("Expected no-activity narrative, got:\n%s", got)
	}
	if strings.Contains(got, "  - ") {
		t.Errorf("Expected empty ranked sections, got:\n%s", got)
	}
}

func TestTextCapsSections(t *testing.T) {
	var events []*core.Event
	for i := 0; i < 12; i++ {
		events = append(events, core.NewEvent(core.EventIDFailure, "", "u", fmt.Sprintf("10.0.0.%d", i), "f"))
	}
	s := analysis.Summarize(events, analysis.DefaultTopN)
	got := Text(s, analysis.Evaluate(s.FailedTotal, s.SuccessTotal, analysis.DefaultAlertRatio), generated)

	if strings.Contains(got, "10.0.0.10") || !strings.Contains(got, "10.0.0.9: 1") {
		t.Errorf("Expected the source IP table capped at 10 entries:\n%s", got)
	}
}

func TestWriteDashboard(t *testing.T) {
	s, sig := sampleSummary()
	path := filepath.Join(t.TempDir(), "evidence", "dashboard.html")

	if err := WriteDashboard(path, s, sig, generated); err != nil {
		t.Fatalf("WriteDashboard: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read dashboard: %v", err)
	}
	html := string(data)

	for _, want := range []string{
		"<strong>Failed logons (4625):</strong> 2",
		"<strong>Successful logons (4624):</strong> 1",
		"<tr><td>192.168.1.15</td><td>1</td></tr>",
		"<tr><td>UNKNOWN</td><td>1</td></tr>",
		"<h2>" + TitleSuccessAccounts + "</h2>",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("Dashboard missing %q", want)
		}
	}
}

func TestRenderDashboardEscapes(t *testing.T) {
	s := analysis.Summarize([]*core.Event{
		core.NewEvent(core.EventIDFailure, "", "<script>x</script>", "", "f"),
	}, analysis.DefaultTopN)

	var b strings.Builder
	if err := RenderDashboard(&b, s, analysis.Evaluate(1, 0, analysis.DefaultAlertRatio), generated); err != nil {
		t.Fatalf("RenderDashboard: %v", err)
	}
	if strings.Contains(b.String(), "<script>") {
		t.Error("Expected account names to be HTML-escaped")
	}
}

func TestWriteDashboardFailure(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "evidence")
	if err := os.WriteFile(blocker, []byte("not a directory"), 0644); err != nil {
		t.Fatalf("Failed to write blocker: %v", err)
	}

	s, sig := sampleSummary()
	if err := WriteDashboard(filepath.Join(blocker, "dashboard.html"), s, sig, generated); err == nil {
		t.Error("Expected an error when the parent path is a file")
	}
}

func TestTable(t *testing.T) {
	s, sig := sampleSummary()
	got := Table(s, sig)

	for _, want := range []string{TitleFailedIPs, "192.168.1.15", "UNKNOWN", "alice", "Count"} {
		if !strings.Contains(got, want) {
			t.Errorf("Table output missing %q:\n%s", want, got)
		}
	}
}
