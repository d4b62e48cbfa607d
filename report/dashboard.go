package report

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"time"

	"LogonTriage/analysis"
)

// DefaultDashboardPath is where the HTML dashboard is written unless configured
const DefaultDashboardPath = "evidence/dashboard.html"

var dashboardTemplate = template.Must(template.New("dashboard").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>Windows Logon Triage Dashboard</title>
</head>
<body>
  <h1>Windows Logon Triage Dashboard</h1>
  <p>Generated: {{.Generated}} UTC</p>

  <h2>Totals</h2>
  <p><strong>Failed logons (4625):</strong> {{.FailedTotal}}</p>
  <p><strong>Successful logons (4624):</strong> {{.SuccessTotal}}</p>
  <p class="tier-{{.Tier}}">{{.Message}}</p>
{{range .Sections}}
  <h2>{{.Title}}</h2>
  <table border="1" cellpadding="4">
    <tr><th>{{.Header}}</th><th>Count</th></tr>
{{- range .Entries}}
    <tr><td>{{.Value}}</td><td>{{.Count}}</td></tr>
{{- end}}
  </table>
{{end}}
</body>
</html>
`))

type dashboardData struct {
	Generated    string
	FailedTotal  int
	SuccessTotal int
	Tier         analysis.Tier
	Message      string
	Sections     []Section
}

// RenderDashboard writes the HTML dashboard to w. Values taken from the logs are
// HTML-escaped.
func RenderDashboard(w io.Writer, s *analysis.Summary, sig analysis.Signal, generated time.Time) error {
	data := dashboardData{
		Generated:    generated.UTC().Format(GeneratedLayout),
		FailedTotal:  s.FailedTotal,
		SuccessTotal: s.SuccessTotal,
		Tier:         sig.Tier,
		Message:      sig.Message,
		Sections:     Sections(s),
	}
	return dashboardTemplate.Execute(w, data)
}

// WriteDashboard renders the dashboard to path, creating parent directories
func WriteDashboard(path string, s *analysis.Summary, sig analysis.Signal, generated time.Time) error {
	var buf bytes.Buffer
	if err := RenderDashboard(&buf, s, sig, generated); err != nil {
		return fmt.Errorf("failed to render dashboard: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create dashboard directory: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write dashboard: %w", err)
	}
	return nil
}
