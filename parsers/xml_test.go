package parsers

import (
	"bytes"
	"encoding/binary"
	"errors"
	"strings"
	"testing"
	"unicode/utf16"
)

const xmlExport = `<Event xmlns='http://schemas.microsoft.com/win/2004/08/events/event'>
  <System>
    <Provider Name='Microsoft-Windows-Security-Auditing'/>
    <EventID>4625</EventID>
    <TimeCreated SystemTime='2025-11-08T13:42:15.1234567Z'/>
  </System>
  <EventData>
    <Data Name='SubjectUserName'>WS01$</Data>
    <Data Name='TargetUserName'>tim</Data>
    <Data Name='IpAddress'>192.168.1.15</Data>
  </EventData>
</Event>
<Event xmlns='http://schemas.microsoft.com/win/2004/08/events/event'>
  <System>
    <EventID>4634</EventID>
  </System>
</Event>
<Event xmlns='http://schemas.microsoft.com/win/2004/08/events/event'>
  <System>
    <EventID>4624</EventID>
    <TimeCreated SystemTime='2025-11-08T13:45:01.0000000Z'/>
  </System>
  <EventData>
    <Data Name='SubjectUserName'>-</Data>
    <Data Name='TargetUserName'>SRV02$</Data>
    <Data Name='IpAddress'>-</Data>
  </EventData>
</Event>
`

func TestWindowsXMLParser(t *testing.T) {
	p := NewWindowsXMLParser(Encoding{})
	events, err := p.ParseReader(strings.NewReader(xmlExport), "Security.xml")
	if err != nil {
		t.Fatalf("ParseReader: %v", err)
	}

	if len(events) != 2 {
		t.Fatalf("Expected 2 events, got %d", len(events))
	}

	failed := events[0]
	if failed.EventID != "4625" || failed.Account != "tim" || failed.SourceAddress != "192.168.1.15" {
		t.Errorf("Unexpected failed event: %+v", failed)
	}
	if failed.When != "2025-11-08T13:42:15.123" {
		t.Errorf("Unexpected timestamp %q", failed.When)
	}

	success := events[1]
	if success.Account != "SRV02$" || success.SourceAddress != "" {
		t.Errorf("Expected machine account and no address, got %+v", success)
	}

	stats := p.Stats()
	if stats.Records != 3 || stats.Retained != 2 || stats.Discarded != 1 {
		t.Errorf("Unexpected stats: %+v", stats)
	}
}

func TestWindowsXMLParserWrappedUTF16(t *testing.T) {
	doc := `<?xml version="1.0" encoding="UTF-16"?><Events>` + xmlExport + `</Events>`

	var buf bytes.Buffer
	buf.Write([]byte{0xFF, 0xFE})
	for _, u := range utf16.Encode([]rune(doc)) {
		binary.Write(&buf, binary.LittleEndian, u)
	}

	// The byte order mark wins over the configured fallback
	enc, err := NewEncoding(EncodingWindows1252)
	if err != nil {
		t.Fatalf("NewEncoding: %v", err)
	}
	events, err := NewWindowsXMLParser(enc).ParseReader(&buf, "Security.xml")
	if err != nil {
		t.Fatalf("ParseReader: %v", err)
	}
	if len(events) != 2 || events[0].Account != "tim" {
		t.Errorf("Unexpected events: %+v", events)
	}
}

func TestWindowsXMLParserTruncated(t *testing.T) {
	truncated := xmlExport[:strings.Index(xmlExport, "<Event xmlns='http://schemas.microsoft.com/win/2004/08/events/event'>\n  <System>\n    <EventID>4624")+40]

	events, err := NewWindowsXMLParser(Encoding{}).ParseReader(strings.NewReader(truncated), "Security.xml")
	if !errors.Is(err, ErrParsingFailed) {
		t.Errorf("Expected ErrParsingFailed, got %v", err)
	}
	if len(events) != 1 || events[0].EventID != "4625" {
		t.Errorf("Expected the events before the error, got %+v", events)
	}
}
