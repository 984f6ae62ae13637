package tile

import (
	"fmt"

	"github.com/golang/geo/r2"

	"github.com/Maurdekye/carcassonne-sub000/internal/game/core"
)

// SegmentType is the kind of region a segment represents. It is a closed set;
// scoring and mounting switch over it exhaustively.
type SegmentType int

const (
	Farm SegmentType = iota
	City
	Road
	Village
	Monastery
	River
)

// String returns the segment type name.
func (s SegmentType) String() string {
	switch s {
	case Farm:
		return "farm"
	case City:
		return "city"
	case Road:
		return "road"
	case Village:
		return "village"
	case Monastery:
		return "monastery"
	case River:
		return "river"
	default:
		return fmt.Sprintf("SegmentType(%d)", int(s))
	}
}

// BorderPieceKind discriminates the items of a segment's border walk.
type BorderPieceKind int

const (
	// PieceEdge is a straight span along one of the four tile sides.
	PieceEdge BorderPieceKind = iota
	// PieceVertex references an interior vertex of the tile.
	PieceVertex
	// PieceBreak marks a gap between disjoint boundary loops of the same
	// segment, e.g. a ring around an interior hole.
	PieceBreak
)

// BorderPiece is one item of a segment's ordered border description.
type BorderPiece struct {
	Kind        BorderPieceKind  `json:"kind"`
	Span        core.EdgeSpan    `json:"span,omitempty"`
	Orientation core.Orientation `json:"orientation,omitempty"`
	Vertex      int              `json:"vertex,omitempty"`
}

// Edge creates a border piece covering a span of one tile side.
func Edge(span core.EdgeSpan, o core.Orientation) BorderPiece {
	return BorderPiece{Kind: PieceEdge, Span: span, Orientation: o}
}

// Vertex creates a border piece referencing a tile vertex.
func Vertex(index int) BorderPiece {
	return BorderPiece{Kind: PieceVertex, Vertex: index}
}

// Break creates a border piece separating disjoint boundary loops.
func Break() BorderPiece {
	return BorderPiece{Kind: PieceBreak}
}

// AttributeKind discriminates optional per-segment attributes.
type AttributeKind int

const (
	// AttrFortified marks a city segment that scores double, with the shield
	// position for rendering.
	AttrFortified AttributeKind = iota
	// AttrCustomMeepleSpot overrides the default meeple anchor point.
	AttrCustomMeepleSpot
)

// SegmentAttribute is an optional per-segment property.
type SegmentAttribute struct {
	Kind AttributeKind `json:"kind"`
	At   r2.Point      `json:"at"`
}

// Fortified creates a fortification attribute with a shield at the given
// local position.
func Fortified(shieldAt r2.Point) SegmentAttribute {
	return SegmentAttribute{Kind: AttrFortified, At: shieldAt}
}

// CustomMeepleSpot overrides the segment's meeple anchor.
func CustomMeepleSpot(at r2.Point) SegmentAttribute {
	return SegmentAttribute{Kind: AttrCustomMeepleSpot, At: at}
}

// Segment is one typed region within a tile.
type Segment struct {
	Type       SegmentType        `json:"type"`
	Border     []BorderPiece      `json:"border"`
	Attributes []SegmentAttribute `json:"attributes,omitempty"`
}

// IsFortified reports whether the segment carries a fortification attribute.
func (s *Segment) IsFortified() bool {
	for _, attr := range s.Attributes {
		if attr.Kind == AttrFortified {
			return true
		}
	}
	return false
}

// customMeepleSpot returns the overridden meeple anchor, if any.
func (s *Segment) customMeepleSpot() (r2.Point, bool) {
	for _, attr := range s.Attributes {
		if attr.Kind == AttrCustomMeepleSpot {
			return attr.At, true
		}
	}
	return r2.Point{}, false
}
