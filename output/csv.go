package output

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
	"sync"

	"LogonTriage/core"
)

var csvHeader = []string{"run_id", "event_id", "when", "account", "source_address", "source"}

// CSVWriter implements the Writer interface for CSV output
type CSVWriter struct {
	mu        sync.Mutex
	file      *os.File
	bufWriter *bufio.Writer
	writer    *csv.Writer
	runID     string
}

// NewCSVWriter creates a new CSV writer and writes the header row
func NewCSVWriter(outputPath, runID string) (*CSVWriter, error) {
	file, err := os.Create(outputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create CSV file: %w", err)
	}

	bufWriter := bufio.NewWriterSize(file, 64*1024)
	writer := csv.NewWriter(bufWriter)

	if err := writer.Write(csvHeader); err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}

	return &CSVWriter{
		file:      file,
		bufWriter: bufWriter,
		writer:    writer,
		runID:     runID,
	}, nil
}

// Write writes the events to the CSV file. Missing values are written as the
// UNKNOWN sentinel, matching the report.
func (w *CSVWriter) Write(events []*core.Event) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, event := range events {
		record := []string{
			w.runID,
			event.EventID,
			event.When,
			event.AccountOrUnknown(),
			event.AddressOrUnknown(),
			event.Source,
		}
		if err := w.writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	return nil
}

// Close closes the CSV writer
func (w *CSVWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.writer.Flush()
	if err := w.writer.Error(); err != nil {
		w.file.Close()
		return fmt.Errorf("failed to flush CSV writer: %w", err)
	}

	if err := w.bufWriter.Flush(); err != nil {
		w.file.Close()
		return fmt.Errorf("failed to flush buffer: %w", err)
	}

	return w.file.Close()
}
