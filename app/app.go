package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"LogonTriage/analysis"
	"LogonTriage/internal/logger"
	"LogonTriage/internal/metrics"
	"LogonTriage/internal/processor"
	"LogonTriage/internal/retry"
	"LogonTriage/output"
	"LogonTriage/parsers"
	"LogonTriage/report"
)

// Result is the outcome of one triage run
type Result struct {
	RunID     string
	Generated time.Time
	Duration  time.Duration
	Summary   *analysis.Summary
	Signal    analysis.Signal
	Inputs    []processor.InputResult
	Report    string
}

// App runs the triage pipeline for one configuration
type App struct {
	Config *Config

	now   func() time.Time
	retry retry.Config
}

// New creates a new application instance
func New(config *Config) *App {
	return &App{
		Config: config,
		now:    time.Now,
		retry:  retry.DefaultConfig,
	}
}

// Run parses the configured inputs, aggregates them and renders the report.
// Artifact write failures are logged and do not fail the run; the returned
// error is non-nil only when ctx is cancelled.
func (a *App) Run(ctx context.Context) (*Result, error) {
	startTime := a.now()
	runID := uuid.NewString()
	runLog := logger.With("run_id", runID)
	runLog.Info().Msg("Starting logon triage")

	collector := metrics.NewCollector()
	writer := a.openExport(runID)

	proc := processor.NewProcessor(writer, collector)
	events, inputs, err := proc.Process(ctx, a.inputs())

	if writer != nil {
		if cerr := writer.Close(); cerr != nil {
			logger.Warn("Failed to close export %s: %v", a.Config.Export.Path, cerr)
		}
	}

	if err != nil {
		runLog.Info().Msg("Processing was interrupted")
		return nil, err
	}

	failed, success := events.Count()
	logger.Debug("Retained %d failed and %d successful logon events", failed, success)

	summary := analysis.Summarize(events, a.Config.TopN)
	signal := analysis.Evaluate(summary.FailedTotal, summary.SuccessTotal, a.Config.AlertRatio)
	collector.ObserveSummary(summary, signal)

	generated := a.now()
	text := report.Text(summary, signal, generated)

	if path := a.Config.ReportPath; path != "" {
		err := retry.Do(ctx, "write report", a.retry, func() error {
			return writeReport(path, text)
		})
		if err != nil {
			logger.Warn("Failed to write report to %s: %v", path, err)
		} else {
			logger.Info("Report written to %s", path)
		}
	}

	if path := a.Config.DashboardPath; path != "" {
		err := retry.Do(ctx, "write dashboard", a.retry, func() error {
			return report.WriteDashboard(path, summary, signal, generated)
		})
		if err != nil {
			logger.Warn("Failed to write dashboard to %s: %v", path, err)
		} else {
			logger.Info("Dashboard written to %s", path)
		}
	}

	if path := a.Config.MetricsPath; path != "" {
		if err := collector.WriteTextfile(path); err != nil {
			logger.Warn("Failed to write metrics to %s: %v", path, err)
		}
	}

	duration := a.now().Sub(startTime)
	runLog.Info().
		Int("failed", summary.FailedTotal).
		Int("success", summary.SuccessTotal).
		Str("tier", string(signal.Tier)).
		Dur("duration", duration).
		Msg("Triage completed")

	return &Result{
		RunID:     runID,
		Generated: generated,
		Duration:  duration,
		Summary:   summary,
		Signal:    signal,
		Inputs:    inputs,
		Report:    text,
	}, nil
}

// inputs returns the failed export first, then the successful one
func (a *App) inputs() []processor.Input {
	return []processor.Input{
		a.input("failed", a.Config.Inputs.Failed),
		a.input("success", a.Config.Inputs.Success),
	}
}

func (a *App) input(label string, in InputConfig) processor.Input {
	in = a.Config.inputOrDefault(in)
	return processor.Input{
		Label: label,
		Path:  in.Path,
		Options: parsers.Options{
			Encoding:     in.Encoding,
			Boundary:     in.Boundary,
			MarkerPrefix: in.MarkerPrefix,
		},
	}
}

// openExport returns the configured event exporter, or nil when exporting is
// disabled or the exporter cannot be created
func (a *App) openExport(runID string) output.Writer {
	exp := a.Config.Export
	if exp.Path == "" {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(exp.Path), 0755); err != nil {
		logger.Warn("Failed to create export directory: %v", err)
		return nil
	}

	writer, err := output.GetWriter(exp.Format, exp.Path, runID)
	if err != nil {
		logger.Warn("Event export disabled: %v", err)
		return nil
	}

	logger.Info("Exporting events as %s to %s", exp.Format, exp.Path)
	return writer
}

func writeReport(path, text string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create report directory: %w", err)
		}
	}
	return os.WriteFile(path, []byte(text), 0644)
}
