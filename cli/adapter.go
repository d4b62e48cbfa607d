package cli

import (
	"LogonTriage/app"
)

// ToAppConfig builds the run configuration: defaults, then the YAML file given
// with --config, then every flag set explicitly on the command line.
func ToAppConfig(cliConfig *Config) (*app.Config, error) {
	cfg := app.NewDefaultConfig()
	if cliConfig.ConfigPath != "" {
		loaded, err := app.LoadConfig(cliConfig.ConfigPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	overrides := []struct {
		flag  string
		apply func()
	}{
		{"failed", func() { cfg.Inputs.Failed.Path = cliConfig.FailedPath }},
		{"success", func() { cfg.Inputs.Success.Path = cliConfig.SuccessPath }},
		{"out", func() { cfg.ReportPath = cliConfig.OutPath }},
		{"encoding", func() {
			cfg.Encoding = cliConfig.Encoding
			cfg.Inputs.Failed.Encoding = ""
			cfg.Inputs.Success.Encoding = ""
		}},
		{"boundary", func() {
			cfg.Boundary = cliConfig.Boundary
			cfg.Inputs.Failed.Boundary = ""
			cfg.Inputs.Success.Boundary = ""
		}},
		{"dashboard", func() { cfg.DashboardPath = cliConfig.DashboardPath }},
		{"export", func() { cfg.Export.Path = cliConfig.ExportPath }},
		{"export-format", func() { cfg.Export.Format = cliConfig.ExportFormat }},
		{"metrics-file", func() { cfg.MetricsPath = cliConfig.MetricsPath }},
		{"table", func() { cfg.Table = cliConfig.Table }},
		{"verbose", func() { cfg.Logging.Verbose = cliConfig.Verbose }},
		{"silent", func() { cfg.Logging.Silent = cliConfig.Silent }},
		{"log-file", func() { cfg.Logging.File = cliConfig.LogFile }},
	}
	for _, o := range overrides {
		if cliConfig.IsSet(o.flag) {
			o.apply()
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
