package parsers

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"LogonTriage/core"
)

// ParseStats counts what a parser saw in one input
type ParseStats struct {
	Lines     int // lines read after decoding
	Records   int // blocks flushed to the field extractor
	Retained  int // blocks that became 4624/4625 events
	Discarded int // blocks dropped for a missing or unrecognised event id
}

// BlockParser splits a text export into event blocks and folds each block's
// lines into one event. Records whose id is not 4624/4625 are dropped silently.
type BlockParser struct {
	boundary Boundary
	encoding Encoding
	stats    ParseStats
}

// NewBlockParser creates a parser using the given boundary strategy and decode policy
func NewBlockParser(boundary Boundary, enc Encoding) *BlockParser {
	if boundary == nil {
		boundary = BlankLineBoundary{}
	}
	return &BlockParser{
		boundary: boundary,
		encoding: enc,
	}
}

// CanParse checks if this parser can handle the given file
func (p *BlockParser) CanParse(filePath string) bool {
	ext := strings.ToLower(filepath.Ext(filePath))
	return ext != ".evtx" && ext != ".evt" && ext != ".xml"
}

// Parse parses a text export and returns its logon events in file order
func (p *BlockParser) Parse(filePath string) ([]*core.Event, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return p.ParseReader(file, filepath.Base(filePath))
}

// ParseReader parses a raw export stream. On a read error the events found so far
// are returned together with the error.
func (p *BlockParser) ParseReader(r io.Reader, source string) ([]*core.Event, error) {
	p.stats = ParseStats{}

	reader := bufio.NewReaderSize(p.encoding.NewReader(r), 64*1024)

	events := make([]*core.Event, 0)
	var block []string

	flush := func() {
		if len(block) == 0 {
			return
		}
		p.stats.Records++
		if ev, ok := ParseBlock(block, source); ok {
			events = append(events, ev)
			p.stats.Retained++
		} else {
			p.stats.Discarded++
		}
		block = block[:0]
	}

	// Lines have no length limit; a huge line only costs memory for its own block
	for {
		raw, err := reader.ReadString('\n')
		if raw != "" {
			p.stats.Lines++
			line := strings.TrimRight(strings.TrimSuffix(raw, "\n"), "\r")

			split, keep := p.boundary.Split(line)
			if split {
				flush()
			}
			if keep {
				block = append(block, line)
			}
		}

		if err != nil {
			// The export does not have to end with a boundary
			flush()
			if errors.Is(err, io.EOF) {
				return events, nil
			}
			return events, fmt.Errorf("error reading %s: %w", source, err)
		}
	}
}

// Stats returns the counters from the most recent Parse call
func (p *BlockParser) Stats() ParseStats {
	return p.stats
}

// ParseBlock extracts one event from the lines of a single record.
// It returns false when the record is not a 4624/4625 logon.
func ParseBlock(lines []string, source string) (*core.Event, bool) {
	var eventID, when, account, address string

	for _, line := range lines {
		if v, ok := ExtractField(line, FieldEventID); ok {
			eventID = v
		}

		if when == "" {
			if v, ok := ExtractField(line, FieldTimestamp); ok {
				when = v
			}
		}

		if address == "" {
			if v, ok := ExtractSourceAddress(line); ok {
				address = v
			}
		}

		if v, ok := ExtractField(line, FieldAccount); ok {
			account = PreferAccount(account, v)
		}

		// Loose pass for exports that carry the address without a label
		if address == "" {
			if ip, ok := ExtractInlineIPv4(line); ok {
				address = ip
			}
		}
	}

	if !core.IsRetained(eventID) {
		return nil, false
	}
	return core.NewEvent(eventID, when, account, address, source), true
}
