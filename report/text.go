// Package report formats a finished summary and anomaly signal for analysts.
// Nothing here recomputes aggregates.
package report

import (
	"fmt"
	"strings"
	"time"

	"LogonTriage/analysis"
)

// Section titles shared by the text report, dashboard and terminal table
const (
	TitleFailedIPs       = "Top source IPs (failed 4625)"
	TitleFailedAccounts  = "Top targeted accounts (failed 4625)"
	TitleSuccessAccounts = "Top accounts (successful 4624)"
)

// GeneratedLayout is the UTC timestamp format printed in report headers
const GeneratedLayout = "2006-01-02 15:04:05"

var investigativeNotes = []string{
	"Investigate IPs with unusually high failed attempts.",
	"Compare failed vs. successful to spot possible compromises.",
	"Align timestamps with Wireshark or firewall logs for deeper correlation.",
}

// Section is one ranked table of the report
type Section struct {
	Title   string
	Header  string
	Entries []analysis.Entry
}

// Sections returns the three ranked tables in report order
func Sections(s *analysis.Summary) []Section {
	return []Section{
		{Title: TitleFailedIPs, Header: "Source IP", Entries: s.TopFailedIPs()},
		{Title: TitleFailedAccounts, Header: "Account", Entries: s.TopFailedAccounts()},
		{Title: TitleSuccessAccounts, Header: "Account", Entries: s.TopSuccessAccounts()},
	}
}

// Text renders the plain-text triage report
func Text(s *analysis.Summary, sig analysis.Signal, generated time.Time) string {
	lines := []string{
		"Windows Logon Triage Summary",
		fmt.Sprintf("Generated: %s UTC\n", generated.UTC().Format(GeneratedLayout)),
		fmt.Sprintf("Total failed logons (4625): %d", s.FailedTotal),
		fmt.Sprintf("Total successful logons (4624): %d\n", s.SuccessTotal),
		sig.Message + "\n",
	}

	for _, sec := range Sections(s) {
		lines = append(lines, formatSection(sec))
	}

	lines = append(lines, "Notes:")
	for i, note := range investigativeNotes {
		line := "  • " + note
		if i == len(investigativeNotes)-1 {
			line += "\n"
		}
		lines = append(lines, line)
	}

	return strings.Join(lines, "\n")
}

func formatSection(sec Section) string {
	var b strings.Builder
	b.WriteString(sec.Title + ":\n")
	for _, e := range sec.Entries {
		fmt.Fprintf(&b, "  - %s: %d\n", e.Value, e.Count)
	}
	return b.String()
}
