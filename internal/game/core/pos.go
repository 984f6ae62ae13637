package core

import "fmt"

// GridPos identifies one tile slot on the unbounded board.
type GridPos struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// NewGridPos creates a grid position with the given x and y values.
func NewGridPos(x, y int) GridPos {
	return GridPos{X: x, Y: y}
}

// Add returns the component-wise sum of this position and another.
func (p GridPos) Add(other GridPos) GridPos {
	return GridPos{X: p.X + other.X, Y: p.Y + other.Y}
}

// Neighbor returns the adjacent position in the given orientation.
func (p GridPos) Neighbor(o Orientation) GridPos {
	return p.Add(o.Offset())
}

// Neighbors returns the four orthogonal neighbors in {North, East, South,
// West} order.
func (p GridPos) Neighbors() []GridPos {
	neighbors := make([]GridPos, 0, 4)
	for _, o := range Orientations {
		neighbors = append(neighbors, p.Neighbor(o))
	}
	return neighbors
}

// SurroundingPositions returns the eight positions around p, row by row from
// the top-left. Used by the monastery closure rule.
func (p GridPos) SurroundingPositions() []GridPos {
	surrounding := make([]GridPos, 0, 8)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			surrounding = append(surrounding, GridPos{X: p.X + dx, Y: p.Y + dy})
		}
	}
	return surrounding
}

// IsAdjacentTo checks if this position is orthogonally adjacent to another.
func (p GridPos) IsAdjacentTo(other GridPos) bool {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return (dx == 0 && (dy == 1 || dy == -1)) || (dy == 0 && (dx == 1 || dx == -1))
}

// Less orders positions by y, then x. Used to sort position slices so callers
// see deterministic results.
func (p GridPos) Less(other GridPos) bool {
	if p.Y != other.Y {
		return p.Y < other.Y
	}
	return p.X < other.X
}

// String returns a string representation of the position.
func (p GridPos) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}
