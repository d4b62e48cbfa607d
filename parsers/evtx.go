package parsers

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/0xrawsec/golang-evtx/evtx"

	"LogonTriage/core"
)

// EventData paths for the logon fields, not defined by the library
var (
	TargetUserNamePath  = evtx.Path("/Event/EventData/TargetUserName")
	SubjectUserNamePath = evtx.Path("/Event/EventData/SubjectUserName")
	IPAddressPath       = evtx.Path("/Event/EventData/IpAddress")
)

// evtxTimeLayout matches the Date: rendering of wevtutil text exports
const evtxTimeLayout = "2006-01-02T15:04:05.000"

// EvtxParser reads 4624/4625 records straight from a binary Security.evtx file
type EvtxParser struct {
	stats ParseStats
}

// CanParse checks if this parser can handle the given file
func (p *EvtxParser) CanParse(filePath string) bool {
	ext := strings.ToLower(filepath.Ext(filePath))
	return ext == ".evtx"
}

// Parse parses an EVTX file and returns its logon events
func (p *EvtxParser) Parse(filePath string) ([]*core.Event, error) {
	p.stats = ParseStats{}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open EVTX file: %w", err)
	}
	defer file.Close()

	ef, err := evtx.New(file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse EVTX file: %w", err)
	}

	events := make([]*core.Event, 0)
	source := filepath.Base(filePath)

	for e := range ef.FastEvents() {
		p.stats.Records++
		event := p.convertEvtxEvent(e, source)
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
func (p *EvtxParser) Stats() ParseStats {
	return p.stats
}

// convertEvtxEvent converts a golang-evtx event to a logon event, or nil if it is
// not a 4624/4625 record
func (p *EvtxParser) convertEvtxEvent(e *evtx.GoEvtxMap, source string) *core.Event {
	if e == nil {
		return nil
	}

	// EventID carries a Value child when the element has a Qualifiers attribute
	eid, err := e.GetInt(&evtx.EventIDPath)
	if err != nil {
		if eid, err = e.GetInt(&evtx.EventIDPath2); err != nil {
			return nil
		}
	}
	eventID := strconv.FormatInt(eid, 10)
	if !core.IsRetained(eventID) {
		return nil
	}

	when := ""
	if systemTime, err := e.GetTime(&evtx.SystemTimePath); err == nil {
		when = systemTime.UTC().Format(evtxTimeLayout)
	}

	// Same preference as the text exports: the subject is often the machine
	// account, the target the human one.
	account := ""
	for _, path := range []*evtx.GoEvtxPath{&SubjectUserNamePath, &TargetUserNamePath} {
		if name, err := e.GetString(path); err == nil {
			account = PreferAccount(account, strings.TrimSpace(name))
		}
	}

	address := ""
	if ip, err := e.GetString(&IPAddressPath); err == nil {
		address, _ = NormalizeAddress(ip)
	}

	return core.NewEvent(eventID, when, account, address, source)
}
