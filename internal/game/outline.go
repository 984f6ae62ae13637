package game

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"

	"github.com/Maurdekye/carcassonne-sub000/internal/game/core"
	"github.com/Maurdekye/carcassonne-sub000/internal/game/tile"
)

// borderCoord is a snapped board-space coordinate in twentieths of a tile.
// Edge fractions are multiples of 0.05, so snapping gives exact integer keys
// where floating point geometry from two facing tiles drifts apart.
type borderCoord struct {
	X, Y int
}

func coordOf(pos core.GridPos, local r2.Point) borderCoord {
	return borderCoord{
		X: pos.X*20 + int(math.Round(local.X*20)),
		Y: pos.Y*20 + int(math.Round(local.Y*20)),
	}
}

func boardPoint(pos core.GridPos, local r2.Point) r2.Point {
	return r2.Point{X: local.X + float64(pos.X), Y: local.Y + float64(pos.Y)}
}

// outlinePiece is one border piece of one segment, resolved to board space.
type outlinePiece struct {
	suppressed bool
	points     []r2.Point
	startC     borderCoord
	endC       borderCoord
}

// fragment is a run of boundary points between two cuts, awaiting stitching
// with fragments from other segments of the group.
type fragment struct {
	points []r2.Point
	startC borderCoord
	endC   borderCoord
}

// GroupShapeDetails returns the group's outline geometry, computing and
// caching it if needed.
func (g *Game) GroupShapeDetails(key GroupIdentifier) (*ShapeDetails, error) {
	group := g.groups.Get(key)
	if group == nil {
		return nil, errors.Wrapf(core.ErrStaleGroup, "group %v", key)
	}
	if group.shape == nil {
		group.shape = g.computeShapeDetails(key, group)
	}
	return group.shape, nil
}

// computeShapeDetails reconstructs the silhouette of the group: every
// segment contributes its boundary loops, spans facing other tiles of the
// same group are cut out, and the remaining fragments are stitched back
// together across tile seams into board-space polylines.
func (g *Game) computeShapeDetails(key GroupIdentifier, group *SegmentGroup) *ShapeDetails {
	var outlines []Polyline
	var pool []*fragment

	for _, segID := range group.Segments {
		t := g.placedTiles[segID.Pos]
		seg := t.Segments[segID.Segment]
		for _, loop := range splitLoops(seg.Border) {
			pieces := g.resolveLoop(key, segID.Pos, t, loop)
			closedLoop, frags := cutLoop(pieces)
			if closedLoop != nil {
				outlines = append(outlines, Polyline{Points: closedLoop, Closed: true})
			}
			pool = append(pool, frags...)
		}
	}

	outlines = append(outlines, g.stitch(group, pool)...)

	return &ShapeDetails{
		Outlines: outlines,
		PopupPos: popupAnchor(outlines, group),
	}
}

// splitLoops cuts a border walk into its disjoint loops at break pieces.
func splitLoops(border []tile.BorderPiece) [][]tile.BorderPiece {
	var loops [][]tile.BorderPiece
	var current []tile.BorderPiece
	for _, piece := range border {
		if piece.Kind == tile.PieceBreak {
			if len(current) > 0 {
				loops = append(loops, current)
				current = nil
			}
			continue
		}
		current = append(current, piece)
	}
	if len(current) > 0 {
		loops = append(loops, current)
	}
	return loops
}

// resolveLoop maps one boundary loop to board space and decides, per edge
// span, whether it lies on the silhouette or is buried between two tiles of
// the same group.
func (g *Game) resolveLoop(key GroupIdentifier, pos core.GridPos, t *tile.Tile, loop []tile.BorderPiece) []outlinePiece {
	pieces := make([]outlinePiece, 0, len(loop))
	for _, piece := range loop {
		switch piece.Kind {
		case tile.PieceVertex:
			pieces = append(pieces, outlinePiece{
				points: []r2.Point{boardPoint(pos, t.Verts[piece.Vertex])},
			})
		case tile.PieceEdge:
			from, to := piece.Span.Interval()
			localStart := tile.EdgePoint(piece.Orientation, from)
			localEnd := tile.EdgePoint(piece.Orientation, to)
			pieces = append(pieces, outlinePiece{
				suppressed: g.spanSuppressed(key, pos, piece.Orientation, piece.Span),
				points:     []r2.Point{boardPoint(pos, localStart), boardPoint(pos, localEnd)},
				startC:     coordOf(pos, localStart),
				endC:       coordOf(pos, localEnd),
			})
		}
	}
	return pieces
}

// spanSuppressed reports whether every neighbor segment facing the span
// belongs to the same group, making the span interior to the merged shape.
func (g *Game) spanSuppressed(key GroupIdentifier, pos core.GridPos, o core.Orientation, span core.EdgeSpan) bool {
	npos := pos.Neighbor(o)
	neighbor, ok := g.placedTiles[npos]
	if !ok {
		return false
	}
	for _, p := range span.Positions() {
		facing := core.SegmentIdentifier{
			Pos:     npos,
			Segment: neighbor.Mount(o.Opposite(), p.Mirror()),
		}
		if g.groupAssociations[facing] != key {
			return false
		}
	}
	return true
}

// cutLoop removes suppressed spans from a boundary loop. A loop with no
// suppressed spans comes back whole as a closed point list; otherwise the
// kept runs come back as fragments bounded by cut coordinates.
func cutLoop(pieces []outlinePiece) ([]r2.Point, []*fragment) {
	firstCut := -1
	for i, p := range pieces {
		if p.suppressed {
			firstCut = i
			break
		}
	}

	if firstCut == -1 {
		var points []r2.Point
		for _, p := range pieces {
			points = appendDedup(points, p.points...)
		}
		if len(points) > 1 && points[0] == points[len(points)-1] {
			points = points[:len(points)-1]
		}
		return points, nil
	}

	var frags []*fragment
	var cur *fragment
	pendingStart := pieces[firstCut]
	n := len(pieces)
	for i := 1; i <= n; i++ {
		p := pieces[(firstCut+i)%n]
		if p.suppressed {
			if cur != nil {
				cur.points = appendDedup(cur.points, p.points[0])
				cur.endC = p.startC
				frags = append(frags, cur)
				cur = nil
			} else if pendingStart.endC != p.startC {
				// Two buried spans in a row that do not share an
				// endpoint: the implicit straight segment between
				// them is still on the silhouette.
				frags = append(frags, &fragment{
					points: []r2.Point{
						pendingStart.points[len(pendingStart.points)-1],
						p.points[0],
					},
					startC: pendingStart.endC,
					endC:   p.startC,
				})
			}
			pendingStart = p
			continue
		}
		if cur == nil {
			cur = &fragment{
				points: []r2.Point{pendingStart.points[len(pendingStart.points)-1]},
				startC: pendingStart.endC,
			}
		}
		cur.points = appendDedup(cur.points, p.points...)
	}
	return nil, frags
}

// stitch joins fragments end to start across tile seams until each chain
// loops back on itself. A chain that cannot find its continuation is a
// geometry inconsistency; it is reported and kept as an open polyline.
func (g *Game) stitch(group *SegmentGroup, pool []*fragment) []Polyline {
	var outlines []Polyline
	for len(pool) > 0 {
		cur := pool[0]
		pool = pool[1:]
		for cur.startC != cur.endC {
			next := -1
			for i, f := range pool {
				if f.startC == cur.endC {
					next = i
					break
				}
			}
			if next != -1 {
				f := pool[next]
				pool = append(pool[:next], pool[next+1:]...)
				// The junction point exists on both fragments; keep the
				// current chain's copy.
				cur.points = append(cur.points, f.points[1:]...)
				cur.endC = f.endC
				continue
			}
			// Fragments all run clockwise, so a loop normally grows off
			// its end. When the chain started mid-loop the remaining
			// fragments can sit behind it; attach those at the front.
			prev := -1
			for i, f := range pool {
				if f.endC == cur.startC {
					prev = i
					break
				}
			}
			if prev == -1 {
				break
			}
			f := pool[prev]
			pool = append(pool[:prev], pool[prev+1:]...)
			cur.points = append(f.points, cur.points[1:]...)
			cur.startC = f.startC
		}
		if cur.startC == cur.endC {
			points := cur.points
			if len(points) > 1 {
				points = points[:len(points)-1]
			}
			outlines = append(outlines, Polyline{Points: points, Closed: true})
			continue
		}
		g.logger.Warn().
			Stringer("type", group.Type).
			Int("segments", len(group.Segments)).
			Msg("group outline did not close, keeping open polyline")
		outlines = append(outlines, Polyline{Points: cur.points, Closed: false})
	}
	return outlines
}

// popupAnchor picks where a score popup should appear: level with the
// topmost outline point, horizontally centered on the shape.
func popupAnchor(outlines []Polyline, group *SegmentGroup) r2.Point {
	minY := math.Inf(1)
	sumX := 0.0
	count := 0
	for _, line := range outlines {
		for _, p := range line.Points {
			if p.Y < minY {
				minY = p.Y
			}
			sumX += p.X
			count++
		}
	}
	if count == 0 {
		// Fully buried shapes have no silhouette; fall back to the
		// first segment's tile center.
		pos := group.Segments[0].Pos
		return r2.Point{X: float64(pos.X) + 0.5, Y: float64(pos.Y) + 0.5}
	}
	return r2.Point{X: sumX / float64(count), Y: minY}
}

// appendDedup appends points, skipping any that exactly repeat the previous
// point. Junctions within a single tile reuse identical float values, so
// exact comparison is sufficient here.
func appendDedup(points []r2.Point, more ...r2.Point) []r2.Point {
	for _, p := range more {
		if len(points) > 0 && points[len(points)-1] == p {
			continue
		}
		points = append(points, p)
	}
	return points
}
