package core

import "fmt"

// SegmentIdentifier is a stable reference to one segment of one placed tile.
type SegmentIdentifier struct {
	Pos     GridPos `json:"pos"`
	Segment int     `json:"segment"`
}

// String returns a string representation of the identifier.
func (s SegmentIdentifier) String() string {
	return fmt.Sprintf("%v#%d", s.Pos, s.Segment)
}

// EdgeIdentifier names one side of one board position. Groups track the edges
// of their silhouette that are not yet mounted against a neighboring tile.
type EdgeIdentifier struct {
	Pos         GridPos     `json:"pos"`
	Orientation Orientation `json:"orientation"`
}

// String returns a string representation of the edge.
func (e EdgeIdentifier) String() string {
	return fmt.Sprintf("%v/%v", e.Pos, e.Orientation)
}
