package output

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"LogonTriage/core"
)

// jsonlRecord is one exported line
type jsonlRecord struct {
	RunID         string `json:"run_id"`
	EventID       string `json:"event_id"`
	When          string `json:"when"`
	Account       string `json:"account"`
	SourceAddress string `json:"source_address"`
	Source        string `json:"source"`
}

// JSONLWriter implements the Writer interface for JSON Lines output
type JSONLWriter struct {
	mu      sync.Mutex
	file    *os.File
	writer  *bufio.Writer
	encoder *json.Encoder
	runID   string
}

// NewJSONLWriter creates a new JSON Lines writer
func NewJSONLWriter(outputPath, runID string) (*JSONLWriter, error) {
	file, err := os.Create(outputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create JSONL file: %w", err)
	}

	writer := bufio.NewWriterSize(file, 64*1024)

	encoder := json.NewEncoder(writer)
	encoder.SetEscapeHTML(false)

	return &JSONLWriter{
		file:    file,
		writer:  writer,
		encoder: encoder,
		runID:   runID,
	}, nil
}

// Write writes the events to the JSON Lines file
func (w *JSONLWriter) Write(events []*core.Event) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, event := range events {
		record := jsonlRecord{
			RunID:         w.runID,
			EventID:       event.EventID,
			When:          event.When,
			Account:       event.AccountOrUnknown(),
			SourceAddress: event.AddressOrUnknown(),
			Source:        event.Source,
		}
		if err := w.encoder.Encode(record); err != nil {
			return fmt.Errorf("failed to encode event to JSON: %w", err)
		}
	}

	return nil
}

// Close closes the JSON Lines writer
func (w *JSONLWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.writer.Flush(); err != nil {
		w.file.Close()
		return fmt.Errorf("failed to flush JSONL writer: %w", err)
	}

	return w.file.Close()
}
