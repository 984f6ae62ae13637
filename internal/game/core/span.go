package core

import "fmt"

// MountPosition is one of the three slots along a tile side where a segment
// can touch that side. Every side of every tile is fully covered by mounts.
type MountPosition int

const (
	PositionBeginning MountPosition = iota
	PositionMiddle
	PositionEnd
)

// MountPositions fixes the order mounts are compared in along an edge.
var MountPositions = []MountPosition{PositionBeginning, PositionMiddle, PositionEnd}

// Mirror returns the slot this position faces on the adjacent tile's opposite
// edge. Edges are walked clockwise around each tile, so facing edges run in
// opposite directions and beginning aligns with end.
func (p MountPosition) Mirror() MountPosition {
	return PositionEnd - p
}

// EdgeSpan is the portion of a tile side covered by one border piece.
type EdgeSpan int

const (
	SpanBeginning EdgeSpan = iota
	SpanMiddle
	SpanEnd
	SpanFull
)

// Edge spans break at the road width: a middle span is the road crossing, the
// beginning and end spans are the fields on either side. Fractions are along
// the clockwise walking direction of the edge.
const (
	SpanBreakLow  = 0.45
	SpanBreakHigh = 0.55
)

// Interval returns the [from, to] fractions of the edge this span covers.
func (s EdgeSpan) Interval() (from, to float64) {
	switch s {
	case SpanBeginning:
		return 0, SpanBreakLow
	case SpanMiddle:
		return SpanBreakLow, SpanBreakHigh
	case SpanEnd:
		return SpanBreakHigh, 1
	case SpanFull:
		return 0, 1
	default:
		panic(fmt.Sprintf("unknown edge span %d", int(s)))
	}
}

// Positions returns the mount slots this span covers.
func (s EdgeSpan) Positions() []MountPosition {
	switch s {
	case SpanBeginning:
		return []MountPosition{PositionBeginning}
	case SpanMiddle:
		return []MountPosition{PositionMiddle}
	case SpanEnd:
		return []MountPosition{PositionEnd}
	case SpanFull:
		return []MountPosition{PositionBeginning, PositionMiddle, PositionEnd}
	default:
		panic(fmt.Sprintf("unknown edge span %d", int(s)))
	}
}

// String returns the span name.
func (s EdgeSpan) String() string {
	switch s {
	case SpanBeginning:
		return "beginning"
	case SpanMiddle:
		return "middle"
	case SpanEnd:
		return "end"
	case SpanFull:
		return "full"
	default:
		return fmt.Sprintf("EdgeSpan(%d)", int(s))
	}
}
