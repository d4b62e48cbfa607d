package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"LogonTriage/analysis"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	alertStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	normalStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// Table renders the totals and ranked tables for terminal review
func Table(s *analysis.Summary, sig analysis.Signal) string {
	var blocks []string

	blocks = append(blocks, titleStyle.Render("Windows Logon Triage"))
	blocks = append(blocks, fmt.Sprintf("Failed logons (4625): %d   Successful logons (4624): %d",
		s.FailedTotal, s.SuccessTotal))
	blocks = append(blocks, tierStyle(sig.Tier).Render(sig.Message))

	for _, sec := range Sections(s) {
		blocks = append(blocks, "", titleStyle.Render(sec.Title))
		if len(sec.Entries) == 0 {
			blocks = append(blocks, dimStyle.Render("(none)"))
			continue
		}
		blocks = append(blocks, rankedTable(sec).Render())
	}

	return strings.Join(blocks, "\n") + "\n"
}

func rankedTable(sec Section) *table.Table {
	rows := make([][]string, 0, len(sec.Entries))
	for _, e := range sec.Entries {
		rows = append(rows, []string{e.Value, strconv.Itoa(e.Count)})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(dimStyle).
		Headers(sec.Header, "Count").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col == 1 {
				return cellStyle.Align(lipgloss.Right)
			}
			return cellStyle
		})
}

func tierStyle(t analysis.Tier) lipgloss.Style {
	switch t {
	case analysis.TierAlert:
		return alertStyle
	case analysis.TierNormal:
		return normalStyle
	default:
		return dimStyle
	}
}
