package parsers

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"LogonTriage/core"
)

// Common errors
var (
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrParsingFailed     = errors.New("failed to parse file")
)

// Parser defines the interface for all logon export parsers
type Parser interface {
	// Parse parses a file and returns its 4624/4625 events in file order
	Parse(filePath string) ([]*core.Event, error)

	// CanParse checks if this parser can handle the given file
	CanParse(filePath string) bool

	// Stats returns the counters from the most recent Parse call
	Stats() ParseStats
}

// Options selects how text exports are decoded and split into records
type Options struct {
	Encoding     string
	Boundary     string
	MarkerPrefix string
}

// GetParserForFile returns the appropriate parser for the given file.
// Binary .evtx files are read natively, .xml files as XML event exports, and
// anything else as a text export. Legacy binary .evt logs are rejected with
// ErrUnsupportedFormat.
func GetParserForFile(filePath string, opts Options) (Parser, error) {
	switch ext := strings.ToLower(filepath.Ext(filePath)); ext {
	case ".evtx":
		return &EvtxParser{}, nil
	case ".evt":
		return nil, fmt.Errorf("%w: %s (export it with wevtutil first)", ErrUnsupportedFormat, ext)
	}

	enc, err := NewEncoding(opts.Encoding)
	if err != nil {
		return nil, err
	}
	if xmlParser := NewWindowsXMLParser(enc); xmlParser.CanParse(filePath) {
		return xmlParser, nil
	}

	boundary, err := NewBoundary(opts.Boundary, opts.MarkerPrefix)
	if err != nil {
		return nil, err
	}
	return NewBlockParser(boundary, enc), nil
}
