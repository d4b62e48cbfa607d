package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"LogonTriage/output"
	"LogonTriage/parsers"
)

// Config holds the command-line configuration for LogonTriage
type Config struct {
	FailedPath    string // Export of 4625 events
	SuccessPath   string // Export of 4624 events
	OutPath       string // Optional copy of the text report
	ConfigPath    string // Optional YAML configuration file
	Encoding      string
	Boundary      string
	DashboardPath string
	ExportPath    string
	ExportFormat  string
	MetricsPath   string
	Table         bool // Print the lipgloss summary table after the report
	Verbose       bool
	Silent        bool // Disable all diagnostics except errors
	LogFile       string

	// set records the flags given explicitly, so they override the config file
	set map[string]bool
}

// IsSet reports whether the named flag was given on the command line
func (c *Config) IsSet(name string) bool {
	return c.set[name]
}

// ParseFlags parses command-line arguments (without the program name)
func ParseFlags(args []string, errOut io.Writer) (*Config, error) {
	config := &Config{set: make(map[string]bool)}

	fs := flag.NewFlagSet("logontriage", flag.ContinueOnError)
	fs.SetOutput(errOut)
	fs.Usage = func() { PrintUsage(fs, errOut) }

	fs.StringVar(&config.FailedPath, "failed", "", "Path to the failed logon (4625) export")
	fs.StringVar(&config.SuccessPath, "success", "", "Path to the successful logon (4624) export")
	fs.StringVar(&config.OutPath, "out", "", "Also write the text report to this path")
	fs.StringVar(&config.ConfigPath, "config", "", "Path to a YAML configuration file")
	fs.StringVar(&config.Encoding, "encoding", "",
		fmt.Sprintf("Text encoding of the exports (%s)", strings.Join(parsers.SupportedEncodings, ", ")))
	fs.StringVar(&config.Boundary, "boundary", "",
		fmt.Sprintf("Record boundary strategy (%s)", strings.Join(parsers.SupportedBoundaries, ", ")))
	fs.StringVar(&config.DashboardPath, "dashboard", "", "Path of the HTML dashboard (default evidence/dashboard.html)")
	fs.StringVar(&config.ExportPath, "export", "", "Export retained events to this path")
	fs.StringVar(&config.ExportFormat, "export-format", "jsonl",
		fmt.Sprintf("Event export format (%s)", strings.Join(output.SupportedFormats, ", ")))
	fs.StringVar(&config.MetricsPath, "metrics-file", "", "Write Prometheus metrics to this textfile")
	fs.BoolVar(&config.Table, "table", false, "Print a summary table after the report")
	fs.BoolVar(&config.Verbose, "verbose", false, "Enable verbose logging")
	fs.BoolVar(&config.Silent, "silent", false, "Disable all diagnostics except errors")
	fs.StringVar(&config.LogFile, "log-file", "", "Also write logs to this rotating file")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	fs.Visit(func(f *flag.Flag) {
		config.set[f.Name] = true
	})

	config.ExportFormat = strings.ToLower(config.ExportFormat)
	if config.IsSet("export-format") && !output.IsSupportedFormat(config.ExportFormat) {
		return nil, fmt.Errorf("unsupported export format: %s (supported formats: %s)",
			config.ExportFormat, strings.Join(output.SupportedFormats, ", "))
	}

	return config, nil
}

// PrintUsage prints the usage information for LogonTriage
func PrintUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintf(w, "LogonTriage - Windows logon event triage\n\n")
	fmt.Fprintf(w, "Usage: logontriage --failed <path> --success <path> [--out <path>] [options]\n\n")
	fmt.Fprintf(w, "Options:\n")
	fs.PrintDefaults()
}
