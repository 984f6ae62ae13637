// Package tile models the immutable shape templates placed on the board: their
// typed segments, the border walks describing each segment's polygon, and the
// per-side mount table used to validate adjacency between tiles.
package tile

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/golang/geo/r2"

	"github.com/Maurdekye/carcassonne-sub000/internal/game/core"
)

// pointEps is the tolerance for comparing local vertex coordinates. Rotation
// introduces float drift (1-y), so derived points are compared approximately.
const pointEps = 1e-9

// MountingPair records that a segment of the placing tile connects to a
// segment of an adjacent tile across their shared edge.
type MountingPair struct {
	FromSegment int `json:"from_segment"`
	ToSegment   int `json:"to_segment"`
}

// Tile is a shape template. Templates are cloned when placed; the board owns
// its copy and the catalog entry stays reusable.
type Tile struct {
	Name     string     `json:"name"`
	Verts    []r2.Point `json:"verts"`
	Segments []Segment  `json:"segments"`

	// mounts[orientation][position] is the index of the segment touching that
	// slot of that side. Every slot of every side is covered by exactly one
	// segment.
	mounts [4][3]int
	// adjacency[i] lists the segments sharing at least one boundary point
	// with segment i.
	adjacency [][]int
}

// NewTile builds a tile from a vertex list and segment definitions. It panics
// if the definition is inconsistent; the catalog is static data and an invalid
// entry is an authoring bug.
func NewTile(name string, verts []r2.Point, segments []Segment) *Tile {
	t := &Tile{Name: name, Verts: verts, Segments: segments}
	if err := t.finalize(); err != nil {
		panic(fmt.Sprintf("tile %q: %v", name, err))
	}
	return t
}

// finalize derives the mount table and segment adjacency from the border
// definitions.
func (t *Tile) finalize() error {
	for o := range t.mounts {
		for p := range t.mounts[o] {
			t.mounts[o][p] = -1
		}
	}
	for i := range t.Segments {
		for _, piece := range t.Segments[i].Border {
			switch piece.Kind {
			case PieceEdge:
				for _, pos := range piece.Span.Positions() {
					if prev := t.mounts[piece.Orientation][pos]; prev != -1 && prev != i {
						return fmt.Errorf("segments %d and %d both mount %v/%v", prev, i, piece.Orientation, pos)
					}
					t.mounts[piece.Orientation][pos] = i
				}
			case PieceVertex:
				if piece.Vertex < 0 || piece.Vertex >= len(t.Verts) {
					return fmt.Errorf("segment %d references vertex %d of %d", i, piece.Vertex, len(t.Verts))
				}
			}
		}
	}
	for _, o := range core.Orientations {
		for _, pos := range core.MountPositions {
			if t.mounts[o][pos] == -1 {
				return fmt.Errorf("no segment mounts %v/%v", o, pos)
			}
		}
	}

	polygons := make([][]r2.Point, len(t.Segments))
	for i := range t.Segments {
		polygons[i] = t.SegmentPolygon(i)
	}
	t.adjacency = make([][]int, len(t.Segments))
	for i := range t.Segments {
		for j := i + 1; j < len(t.Segments); j++ {
			if polygonsTouch(polygons[i], polygons[j]) {
				t.adjacency[i] = append(t.adjacency[i], j)
				t.adjacency[j] = append(t.adjacency[j], i)
			}
		}
	}
	return nil
}

func polygonsTouch(a, b []r2.Point) bool {
	for _, pa := range a {
		for _, pb := range b {
			if pointsClose(pa, pb) {
				return true
			}
		}
	}
	return false
}

func pointsClose(a, b r2.Point) bool {
	return math.Abs(a.X-b.X) < pointEps && math.Abs(a.Y-b.Y) < pointEps
}

// EdgePoint returns the local coordinates of the point at fraction t along
// side o, walking clockwise around the tile: north west-to-east, east
// top-to-bottom, south east-to-west, west bottom-to-top. Facing edges of
// adjacent tiles therefore run in opposite directions.
func EdgePoint(o core.Orientation, t float64) r2.Point {
	switch o {
	case core.North:
		return r2.Point{X: t, Y: 0}
	case core.East:
		return r2.Point{X: 1, Y: t}
	case core.South:
		return r2.Point{X: 1 - t, Y: 1}
	case core.West:
		return r2.Point{X: 0, Y: 1 - t}
	default:
		panic(fmt.Sprintf("unknown orientation %d", int(o)))
	}
}

// SpanEndpoints returns the local start and end points of an edge span on
// side o, in clockwise walking order.
func SpanEndpoints(span core.EdgeSpan, o core.Orientation) (start, end r2.Point) {
	from, to := span.Interval()
	return EdgePoint(o, from), EdgePoint(o, to)
}

// SegmentPolygon returns the boundary points of segment i in local
// coordinates, in border-walk order. Breaks are skipped; the result is the
// full point set of all loops, which is what adjacency and meeple anchoring
// need.
func (t *Tile) SegmentPolygon(i int) []r2.Point {
	var points []r2.Point
	push := func(p r2.Point) {
		if n := len(points); n > 0 && pointsClose(points[n-1], p) {
			return
		}
		points = append(points, p)
	}
	for _, piece := range t.Segments[i].Border {
		switch piece.Kind {
		case PieceEdge:
			start, end := SpanEndpoints(piece.Span, piece.Orientation)
			push(start)
			push(end)
		case PieceVertex:
			push(t.Verts[piece.Vertex])
		}
	}
	if n := len(points); n > 1 && pointsClose(points[0], points[n-1]) {
		points = points[:n-1]
	}
	return points
}

// MeepleSpot returns the local anchor point for a meeple on segment i: the
// custom spot if the segment declares one, otherwise the centroid of its
// boundary points.
func (t *Tile) MeepleSpot(i int) r2.Point {
	if spot, ok := t.Segments[i].customMeepleSpot(); ok {
		return spot
	}
	polygon := t.SegmentPolygon(i)
	if len(polygon) == 0 {
		return r2.Point{X: 0.5, Y: 0.5}
	}
	var sum r2.Point
	for _, p := range polygon {
		sum = sum.Add(p)
	}
	return sum.Mul(1 / float64(len(polygon)))
}

// Mount returns the index of the segment touching the given slot of side o.
func (t *Tile) Mount(o core.Orientation, pos core.MountPosition) int {
	return t.mounts[o][pos]
}

// AdjacentSegments returns the indices of segments sharing a boundary point
// with segment i.
func (t *Tile) AdjacentSegments(i int) []int {
	return t.adjacency[i]
}

// ValidateMounting checks whether an adjacent tile placed on side o is a legal
// neighbor: the segment types along the shared edge must match slot by slot,
// with the adjacent edge read in reverse since facing edges run in opposite
// walking directions. Returns nil if the mounting is invalid, otherwise the
// deduplicated segment pairs that become connected, in slot order.
func (t *Tile) ValidateMounting(adjacent *Tile, o core.Orientation) []MountingPair {
	opposite := o.Opposite()
	pairs := make([]MountingPair, 0, 3)
	for _, pos := range core.MountPositions {
		from := t.mounts[o][pos]
		to := adjacent.mounts[opposite][pos.Mirror()]
		if t.Segments[from].Type != adjacent.Segments[to].Type {
			return nil
		}
		pair := MountingPair{FromSegment: from, ToSegment: to}
		seen := false
		for _, existing := range pairs {
			if existing == pair {
				seen = true
				break
			}
		}
		if !seen {
			pairs = append(pairs, pair)
		}
	}
	return pairs
}

// RotateClockwise rotates the tile a quarter turn in place: vertex (x, y)
// maps to (1-y, x) about the unit-square center, and every border piece and
// attribute moves one side clockwise. Four rotations reproduce the original.
func (t *Tile) RotateClockwise() {
	for i, v := range t.Verts {
		t.Verts[i] = rotatePoint(v)
	}
	for si := range t.Segments {
		seg := &t.Segments[si]
		for pi := range seg.Border {
			if seg.Border[pi].Kind == PieceEdge {
				seg.Border[pi].Orientation = seg.Border[pi].Orientation.RotateClockwise()
			}
		}
		for ai := range seg.Attributes {
			seg.Attributes[ai].At = rotatePoint(seg.Attributes[ai].At)
		}
	}
	if err := t.finalize(); err != nil {
		// Rotation preserves edge coverage; failure here means the tile was
		// already inconsistent.
		panic(fmt.Sprintf("tile %q: rotation broke mounts: %v", t.Name, err))
	}
}

func rotatePoint(p r2.Point) r2.Point {
	return r2.Point{X: 1 - p.Y, Y: p.X}
}

// Rotated returns a rotated copy, leaving the receiver untouched.
func (t *Tile) Rotated() *Tile {
	clone := t.Clone()
	clone.RotateClockwise()
	return clone
}

// RotatedTimes returns a copy rotated clockwise the given number of quarter
// turns.
func (t *Tile) RotatedTimes(n int) *Tile {
	clone := t.Clone()
	for i := 0; i < ((n%4)+4)%4; i++ {
		clone.RotateClockwise()
	}
	return clone
}

// Rotations returns the four quarter-turn rotations of the tile, starting
// with an unrotated copy. The receiver is untouched.
func (t *Tile) Rotations() []*Tile {
	out := make([]*Tile, 4)
	out[0] = t.Clone()
	for i := 1; i < 4; i++ {
		out[i] = out[i-1].Rotated()
	}
	return out
}

// Clone returns a deep copy of the tile.
func (t *Tile) Clone() *Tile {
	clone := &Tile{
		Name:     t.Name,
		Verts:    append([]r2.Point(nil), t.Verts...),
		Segments: make([]Segment, len(t.Segments)),
		mounts:   t.mounts,
	}
	for i, seg := range t.Segments {
		clone.Segments[i] = Segment{
			Type:       seg.Type,
			Border:     append([]BorderPiece(nil), seg.Border...),
			Attributes: append([]SegmentAttribute(nil), seg.Attributes...),
		}
	}
	clone.adjacency = make([][]int, len(t.adjacency))
	for i, adj := range t.adjacency {
		clone.adjacency[i] = append([]int(nil), adj...)
	}
	return clone
}

type tileJSON struct {
	Name     string     `json:"name"`
	Verts    []r2.Point `json:"verts"`
	Segments []Segment  `json:"segments"`
}

// MarshalJSON encodes the tile definition; derived tables are rebuilt on
// decode.
func (t *Tile) MarshalJSON() ([]byte, error) {
	return json.Marshal(tileJSON{Name: t.Name, Verts: t.Verts, Segments: t.Segments})
}

// UnmarshalJSON decodes a tile and rebuilds its mount table and adjacency.
func (t *Tile) UnmarshalJSON(data []byte) error {
	var decoded tileJSON
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	t.Name = decoded.Name
	t.Verts = decoded.Verts
	t.Segments = decoded.Segments
	return t.finalize()
}
