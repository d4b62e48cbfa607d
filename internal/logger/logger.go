package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

var (
	// Default logger
	defaultLogger = newLogger(os.Stderr)
)

func newLogger(w io.Writer) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.RFC3339,
		NoColor:    true,
	}).With().Timestamp().Logger()
}

// Init initializes the logger. Logs go to stderr so that stdout carries only the report.
func Init(verboseMode bool, silentMode bool) {
	level := zerolog.InfoLevel
	switch {
	case silentMode:
		level = zerolog.ErrorLevel
	case verboseMode:
		level = zerolog.DebugLevel
	}

	defaultLogger = newLogger(os.Stderr).Level(level)
}

// SetOutput sets the output destination for the logger
func SetOutput(w io.Writer) {
	defaultLogger = newLogger(w).Level(defaultLogger.GetLevel())
}

// Info logs an informational message
func Info(format string, v ...interface{}) {
	defaultLogger.Info().Msgf(format, v...)
}

// Debug logs a debug message (only in verbose mode)
func Debug(format string, v ...interface{}) {
	defaultLogger.Debug().Msgf(format, v...)
}

// Warn logs a warning message
func Warn(format string, v ...interface{}) {
	defaultLogger.Warn().Msgf(format, v...)
}

// Error logs an error message
func Error(format string, v ...interface{}) {
	defaultLogger.Error().Msgf(format, v...)
}

// With returns a child logger carrying a key/value pair, e.g. the run id
func With(key string, value interface{}) zerolog.Logger {
	return defaultLogger.With().Interface(key, value).Logger()
}
