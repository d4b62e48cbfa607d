package parsers

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"LogonTriage/core"
)

// WindowsXMLParser reads 4624/4625 records from XML exports
// (`wevtutil qe Security /f:xml` or Get-WinEvent ... ToXml()). The export may be
// a bare sequence of <Event> elements or wrapped in <Events>.
type WindowsXMLParser struct {
	encoding Encoding
	stats    ParseStats
}

type windowsXMLEvent struct {
	System struct {
		EventID     string `xml:"EventID"`
		TimeCreated struct {
			SystemTime string `xml:"SystemTime,attr"`
		} `xml:"TimeCreated"`
	} `xml:"System"`
	EventData struct {
		Data []windowsXMLData `xml:"Data"`
	} `xml:"EventData"`
}

type windowsXMLData struct {
	Name  string `xml:"Name,attr"`
	Value string `xml:",chardata"`
}

// NewWindowsXMLParser creates a parser. enc is used when the file has no byte order mark.
func NewWindowsXMLParser(enc Encoding) *WindowsXMLParser {
	return &WindowsXMLParser{encoding: enc}
}

// CanParse checks if this parser can handle the given file
func (p *WindowsXMLParser) CanParse(filePath string) bool {
	return strings.ToLower(filepath.Ext(filePath)) == ".xml"
}

// Parse parses an XML export and returns its logon events in file order
func (p *WindowsXMLParser) Parse(filePath string) ([]*core.Event, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return p.ParseReader(file, filepath.Base(filePath))
}

// ParseReader parses a raw XML export stream. A syntax error ends the parse; the
// events decoded before it are returned together with the error.
func (p *WindowsXMLParser) ParseReader(r io.Reader, source string) ([]*core.Event, error) {
	p.stats = ParseStats{}

	fallback := p.encoding.enc
	if fallback == nil {
		fallback = unicode.UTF8
	}
	decoder := xml.NewDecoder(transform.NewReader(r, unicode.BOMOverride(fallback.NewDecoder())))
	// The stream is already UTF-8 whatever the prolog declares
	decoder.CharsetReader = func(_ string, input io.Reader) (io.Reader, error) {
		return input, nil
	}

	events := make([]*core.Event, 0)
	for {
		token, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return events, fmt.Errorf("%w: %v", ErrParsingFailed, err)
		}

		se, ok := token.(xml.StartElement)
		if !ok || se.Name.Local != "Event" {
			continue
		}

		var xmlEvent windowsXMLEvent
		if err := decoder.DecodeElement(&xmlEvent, &se); err != nil {
			return events, fmt.Errorf("%w: %v", ErrParsingFailed, err)
		}

		p.stats.Records++
		event := convertWindowsXMLEvent(&xmlEvent, source)
		if event == nil {
			p.stats.Discarded++
			continue
		}
		p.stats.Retained++
		events = append(events, event)
	}

	return events, nil
}

// Stats returns the counters from the most recent Parse call
func (p *WindowsXMLParser) Stats() ParseStats {
	return p.stats
}

// convertWindowsXMLEvent returns nil for records other than 4624/4625
func convertWindowsXMLEvent(x *windowsXMLEvent, source string) *core.Event {
	eventID := strings.TrimSpace(x.System.EventID)
	if !core.IsRetained(eventID) {
		return nil
	}

	when := x.System.TimeCreated.SystemTime
	if t, err := time.Parse(time.RFC3339Nano, when); err == nil {
		when = t.UTC().Format(evtxTimeLayout)
	}

	account, address := "", ""
	for _, d := range x.EventData.Data {
		value := strings.TrimSpace(d.Value)
		switch d.Name {
		case "SubjectUserName", "TargetUserName":
			account = PreferAccount(account, value)
		case "IpAddress":
			address, _ = NormalizeAddress(value)
		}
	}

	return core.NewEvent(eventID, when, account, address, source)
}
