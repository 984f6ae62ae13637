package game

import (
	"encoding/json"
	"sort"

	"github.com/golang/geo/r2"

	"github.com/Maurdekye/carcassonne-sub000/internal/game/core"
	"github.com/Maurdekye/carcassonne-sub000/internal/game/tile"
)

// MeeplePlacement records a single meeple standing on a segment of the board.
type MeeplePlacement struct {
	Segment core.SegmentIdentifier `json:"segment"`
	Player  PlayerIdentifier       `json:"player"`
}

// ScoringDetails is the cached result of evaluating a group's score. Owners
// lists every player tied for the most meeples on the group; it is empty for
// unclaimed groups.
type ScoringDetails struct {
	Score  int                `json:"score"`
	Owners []PlayerIdentifier `json:"owners"`
}

// Polyline is one piece of a group's reconstructed silhouette in board space.
// Closed polylines are full loops whose last point connects back to the
// first; open polylines occur only when reconstruction could not finish.
type Polyline struct {
	Points []r2.Point `json:"points"`
	Closed bool       `json:"closed"`
}

// ShapeDetails is the cached outline geometry for a group, used to render
// highlights and to anchor score popups.
type ShapeDetails struct {
	Outlines []Polyline `json:"outlines"`
	PopupPos r2.Point   `json:"popup_pos"`
}

// SegmentGroup is a connected region of same-typed segments spanning one or
// more placed tiles. Groups track the open edges that keep them uncompleted
// and any meeples claiming them.
type SegmentGroup struct {
	Type      tile.SegmentType
	Segments  []core.SegmentIdentifier
	FreeEdges map[core.EdgeIdentifier]struct{}
	Meeples   []MeeplePlacement
	Scored    bool

	scoring *ScoringDetails
	shape   *ShapeDetails
}

// IsClosed reports whether the group has no remaining open edges. Closed
// groups score at their full value.
func (g *SegmentGroup) IsClosed() bool {
	return len(g.FreeEdges) == 0
}

// invalidate discards both cached views. Called whenever the group's
// membership changes.
func (g *SegmentGroup) invalidate() {
	g.scoring = nil
	g.shape = nil
}

// invalidateScoring discards only the score cache, keeping the outline.
// Meeple changes and adjacent-city scoring affect value but not shape.
func (g *SegmentGroup) invalidateScoring() {
	g.scoring = nil
}

type segmentGroupJSON struct {
	Type      tile.SegmentType         `json:"type"`
	Segments  []core.SegmentIdentifier `json:"segments"`
	FreeEdges []core.EdgeIdentifier    `json:"free_edges"`
	Meeples   []MeeplePlacement        `json:"meeples"`
	Scored    bool                     `json:"scored,omitempty"`
}

// MarshalJSON flattens the free-edge set into a sorted list so encodings are
// deterministic. Cached scoring and shape views are derived state and are
// not serialized.
func (g SegmentGroup) MarshalJSON() ([]byte, error) {
	edges := make([]core.EdgeIdentifier, 0, len(g.FreeEdges))
	for e := range g.FreeEdges {
		edges = append(edges, e)
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].Pos != edges[j].Pos {
			return edges[i].Pos.Less(edges[j].Pos)
		}
		return edges[i].Orientation < edges[j].Orientation
	})
	return json.Marshal(segmentGroupJSON{
		Type:      g.Type,
		Segments:  g.Segments,
		FreeEdges: edges,
		Meeples:   g.Meeples,
		Scored:    g.Scored,
	})
}

func (g *SegmentGroup) UnmarshalJSON(data []byte) error {
	var raw segmentGroupJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	g.Type = raw.Type
	g.Segments = raw.Segments
	g.FreeEdges = make(map[core.EdgeIdentifier]struct{}, len(raw.FreeEdges))
	for _, e := range raw.FreeEdges {
		g.FreeEdges[e] = struct{}{}
	}
	g.Meeples = raw.Meeples
	g.Scored = raw.Scored
	g.scoring = nil
	g.shape = nil
	return nil
}
