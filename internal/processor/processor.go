package processor

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"LogonTriage/core"
	"LogonTriage/internal/logger"
	"LogonTriage/internal/metrics"
	"LogonTriage/output"
	"LogonTriage/parsers"
)

// Input is one export to parse
type Input struct {
	Label   string // "failed" or "success", used in logs
	Path    string
	Options parsers.Options
}

// InputResult reports what happened to one input
type InputResult struct {
	Input   Input
	Skipped bool
	Stats   parsers.ParseStats
	Err     error
}

// Processor runs inputs through their parsers one after another. Events keep
// the order of the inputs and, within an input, file order.
type Processor struct {
	writer    output.Writer
	collector *metrics.Collector
}

// NewProcessor creates a processor. writer and collector may be nil.
func NewProcessor(writer output.Writer, collector *metrics.Collector) *Processor {
	return &Processor{
		writer:    writer,
		collector: collector,
	}
}

// Process parses every input. A missing or unreadable input contributes no
// events and is reported in its InputResult; only cancellation returns an error.
func (p *Processor) Process(ctx context.Context, inputs []Input) (core.Events, []InputResult, error) {
	var events core.Events
	results := make([]InputResult, 0, len(inputs))

	for _, in := range inputs {
		select {
		case <-ctx.Done():
			return events, results, ctx.Err()
		default:
		}

		if in.Path == "" {
			continue
		}

		res, parsed := p.processInput(in)
		results = append(results, res)
		if res.Skipped && p.collector != nil {
			p.collector.InputsSkipped.Inc()
		}
		events = append(events, parsed...)
	}

	return events, results, nil
}

func (p *Processor) processInput(in Input) (InputResult, []*core.Event) {
	out := InputResult{Input: in}

	if _, err := os.Stat(in.Path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Warn("Skipping %s input: %s does not exist", in.Label, in.Path)
		} else {
			logger.Warn("Skipping %s input %s: %v", in.Label, in.Path, err)
		}
		out.Skipped = true
		out.Err = err
		return out, nil
	}

	parser, err := parsers.GetParserForFile(in.Path, in.Options)
	if err != nil {
		logger.Warn("Skipping %s input %s: %v", in.Label, in.Path, err)
		out.Skipped = true
		out.Err = err
		return out, nil
	}

	events, err := parser.Parse(in.Path)
	out.Stats = parser.Stats()
	if err != nil {
		// Keep whatever was parsed before the read failed
		logger.Warn("Partial read of %s input %s: %v", in.Label, in.Path, err)
		out.Err = err
		if len(events) == 0 && out.Stats.Records == 0 {
			out.Skipped = true
			return out, nil
		}
	}

	name := filepath.Base(in.Path)
	logger.Info("Parsed %s input %s: %d records, %d logon events, %d discarded",
		in.Label, name, out.Stats.Records, len(events), out.Stats.Discarded)

	if p.collector != nil {
		p.collector.ObserveInput(name, out.Stats)
	}

	if p.writer != nil && len(events) > 0 {
		if err := p.writer.Write(events); err != nil {
			logger.Warn("Failed to export events from %s: %v", in.Path, err)
		}
	}

	return out, events
}
