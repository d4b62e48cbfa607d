package output

import (
	"errors"
	"fmt"
	"strings"

	"LogonTriage/core"
)

// ErrUnsupportedFormat is returned for an unknown export format
var ErrUnsupportedFormat = errors.New("unsupported export format")

// SupportedFormats lists the event export formats
var SupportedFormats = []string{"csv", "jsonl", "sqlite"}

// Writer defines the interface for event exporters
type Writer interface {
	// Write appends the events to the export
	Write(events []*core.Event) error

	// Close flushes and closes the export
	Close() error
}

// GetWriter returns the writer for format. Every exported row carries runID so
// exports from several runs can be merged.
func GetWriter(format, outputPath, runID string) (Writer, error) {
	switch strings.ToLower(format) {
	case "csv":
		return NewCSVWriter(outputPath, runID)
	case "jsonl":
		return NewJSONLWriter(outputPath, runID)
	case "sqlite":
		return NewSQLiteWriter(outputPath, runID)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

// IsSupportedFormat reports whether format names an export writer
func IsSupportedFormat(format string) bool {
	format = strings.ToLower(format)
	for _, f := range SupportedFormats {
		if f == format {
			return true
		}
	}
	return false
}
