package parsers

import (
	"errors"
	"fmt"
	"strings"
)

// Boundary strategy names
const (
	BoundaryBlankLine = "blank-line"
	BoundaryMarker    = "marker"
)

// DefaultMarkerPrefix opens every record in `wevtutil qe /f:text` output (Event[0]:, Event[1]:, ...)
const DefaultMarkerPrefix = "Event["

// SupportedBoundaries lists the boundary strategy names accepted in configuration
var SupportedBoundaries = []string{BoundaryBlankLine, BoundaryMarker}

// ErrUnsupportedBoundary is returned for an unknown boundary strategy name
var ErrUnsupportedBoundary = errors.New("unsupported record boundary")

// Boundary decides where one event block ends and the next begins
type Boundary interface {
	// Name returns the strategy name
	Name() string

	// Split reports whether line closes the in-progress block, and whether the
	// line itself belongs to the next block (true) or is discarded (false).
	Split(line string) (split bool, keep bool)
}

// BlankLineBoundary ends a block at every blank line
type BlankLineBoundary struct{}

// Name returns the strategy name
func (BlankLineBoundary) Name() string { return BoundaryBlankLine }

// Split treats whitespace-only lines as separators
func (BlankLineBoundary) Split(line string) (bool, bool) {
	if strings.TrimSpace(line) == "" {
		return true, false
	}
	return false, true
}

// MarkerBoundary starts a new block at every line beginning with Prefix
type MarkerBoundary struct {
	Prefix string
}

// Name returns the strategy name
func (MarkerBoundary) Name() string { return BoundaryMarker }

// Split opens a new block on the marker line and keeps the marker in it
func (b MarkerBoundary) Split(line string) (bool, bool) {
	prefix := b.Prefix
	if prefix == "" {
		prefix = DefaultMarkerPrefix
	}
	return strings.HasPrefix(line, prefix), true
}

// NewBoundary returns the strategy registered under name
func NewBoundary(name, markerPrefix string) (Boundary, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", BoundaryBlankLine, "blank":
		return BlankLineBoundary{}, nil
	case BoundaryMarker:
		if markerPrefix == "" {
			markerPrefix = DefaultMarkerPrefix
		}
		return MarkerBoundary{Prefix: markerPrefix}, nil
	default:
		return nil, fmt.Errorf("%w: %s (supported boundaries: %s)",
			ErrUnsupportedBoundary, name, strings.Join(SupportedBoundaries, ", "))
	}
}
