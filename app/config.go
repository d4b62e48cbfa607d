package app

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"LogonTriage/analysis"
	"LogonTriage/internal/logrotate"
	"LogonTriage/output"
	"LogonTriage/parsers"
	"LogonTriage/report"
)

// ErrInvalidConfig wraps every configuration validation failure
var ErrInvalidConfig = errors.New("invalid configuration")

// InputConfig describes one export file. Empty Encoding, Boundary and
// MarkerPrefix inherit the top-level settings.
type InputConfig struct {
	Path         string `yaml:"path"`
	Encoding     string `yaml:"encoding,omitempty"`
	Boundary     string `yaml:"boundary,omitempty"`
	MarkerPrefix string `yaml:"marker_prefix,omitempty"`
}

// InputsConfig holds the two logon exports. Either may be left empty.
type InputsConfig struct {
	Failed  InputConfig `yaml:"failed"`
	Success InputConfig `yaml:"success"`
}

// ExportConfig selects the optional event export
type ExportConfig struct {
	Format string `yaml:"format"`
	Path   string `yaml:"path"`
}

// LoggingConfig controls diagnostics on stderr and the optional log file
type LoggingConfig struct {
	Verbose bool             `yaml:"verbose"`
	Silent  bool             `yaml:"silent"`
	File    string           `yaml:"file,omitempty"`
	Rotate  logrotate.Config `yaml:",inline"`
}

// Config holds the configuration for a triage run
type Config struct {
	Inputs InputsConfig `yaml:"inputs"`

	// Decoding and record splitting for text exports
	Encoding     string `yaml:"encoding"`
	Boundary     string `yaml:"boundary"`
	MarkerPrefix string `yaml:"marker_prefix"`

	// Triage settings
	AlertRatio float64 `yaml:"alert_ratio"`
	TopN       int     `yaml:"top_n"`

	// Artifacts
	ReportPath    string       `yaml:"report_path,omitempty"`
	DashboardPath string       `yaml:"dashboard_path"`
	MetricsPath   string       `yaml:"metrics_path,omitempty"`
	Export        ExportConfig `yaml:"export"`
	Table         bool         `yaml:"table"`

	Logging LoggingConfig `yaml:"logging"`
}

// NewDefaultConfig creates a new Config with default values. The defaults match
// `wevtutil qe Security /f:text` redirected from PowerShell: UTF-16 text with
// records opened by "Event[n]:".
func NewDefaultConfig() *Config {
	return &Config{
		Encoding:      parsers.EncodingUTF16,
		Boundary:      parsers.BoundaryMarker,
		MarkerPrefix:  parsers.DefaultMarkerPrefix,
		AlertRatio:    analysis.DefaultAlertRatio,
		TopN:          analysis.DefaultTopN,
		DashboardPath: report.DefaultDashboardPath,
		Export:        ExportConfig{Format: "jsonl"},
		Logging:       LoggingConfig{Rotate: logrotate.DefaultConfig},
	}
}

// LoadConfig reads a YAML configuration file on top of the defaults.
// ${VAR} references are expanded from the environment.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := NewDefaultConfig()
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate validates the configuration and fills in zero values
func (c *Config) Validate() error {
	if c.MarkerPrefix == "" {
		c.MarkerPrefix = parsers.DefaultMarkerPrefix
	}

	for _, in := range []InputConfig{c.inputOrDefault(c.Inputs.Failed), c.inputOrDefault(c.Inputs.Success)} {
		if _, err := parsers.NewEncoding(in.Encoding); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
		if _, err := parsers.NewBoundary(in.Boundary, in.MarkerPrefix); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
	}

	if c.AlertRatio < 0 {
		return fmt.Errorf("%w: alert_ratio must not be negative, got %v", ErrInvalidConfig, c.AlertRatio)
	}

	if c.TopN <= 0 {
		c.TopN = analysis.DefaultTopN
	}

	if c.Export.Path != "" && !output.IsSupportedFormat(c.Export.Format) {
		return fmt.Errorf("%w: %w: %s", ErrInvalidConfig, output.ErrUnsupportedFormat, c.Export.Format)
	}

	return nil
}

// inputOrDefault fills the decoding settings an input leaves empty
func (c *Config) inputOrDefault(in InputConfig) InputConfig {
	if in.Encoding == "" {
		in.Encoding = c.Encoding
	}
	if in.Boundary == "" {
		in.Boundary = c.Boundary
	}
	if in.MarkerPrefix == "" {
		in.MarkerPrefix = c.MarkerPrefix
	}
	return in
}
