package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"LogonTriage/app"
	"LogonTriage/cli"
	"LogonTriage/internal/logger"
	"LogonTriage/internal/logrotate"
	"LogonTriage/report"
)

// Exit codes
const (
	ExitSuccess     = 0
	ExitInterrupted = 1
	ExitErrorConfig = 2
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cliConfig, err := cli.ParseFlags(args, os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitErrorConfig
	}

	config, err := cli.ToAppConfig(cliConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitErrorConfig
	}

	closeLog := initLogger(config.Logging)
	defer closeLog()

	if config.Inputs.Failed.Path == "" && config.Inputs.Success.Path == "" {
		logger.Warn("No input exports given; the report will be empty")
	}

	// Create context with signal handling
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := app.New(config).Run(ctx)
	if err != nil {
		logger.Error("Triage interrupted: %v", err)
		return ExitInterrupted
	}

	fmt.Fprint(os.Stdout, result.Report)
	if config.Table {
		fmt.Fprintln(os.Stdout, report.Table(result.Summary, result.Signal))
	}

	return ExitSuccess
}

// initLogger initializes the logger, teeing into a rotating file when one is configured
func initLogger(cfg app.LoggingConfig) func() {
	logger.Init(cfg.Verbose, cfg.Silent)
	if cfg.File == "" {
		return func() {}
	}

	logWriter, err := logrotate.Open(cfg.File, cfg.Rotate)
	if err != nil {
		logger.Warn("Logging to stderr only: %v", err)
		return func() {}
	}

	logger.SetOutput(io.MultiWriter(logWriter, os.Stderr))
	return func() { logWriter.Close() }
}
