package core

import "fmt"

// Orientation is one of the four sides of a tile.
type Orientation int

const (
	North Orientation = iota
	East
	South
	West
)

// Orientations fixes the iteration order used by edge bookkeeping.
var Orientations = []Orientation{North, East, South, West}

// orientationOffsets provides the grid offset to the adjacent position for
// each orientation. Y grows southward.
var orientationOffsets = map[Orientation]GridPos{
	North: {X: 0, Y: -1},
	East:  {X: 1, Y: 0},
	South: {X: 0, Y: 1},
	West:  {X: -1, Y: 0},
}

// Offset returns the grid offset to the neighboring position on this side.
func (o Orientation) Offset() GridPos {
	return orientationOffsets[o]
}

// Opposite returns the facing orientation.
func (o Orientation) Opposite() Orientation {
	return (o + 2) % 4
}

// RotateClockwise returns the orientation one quarter turn clockwise.
func (o Orientation) RotateClockwise() Orientation {
	return (o + 1) % 4
}

// String returns the orientation name.
func (o Orientation) String() string {
	switch o {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	default:
		return fmt.Sprintf("Orientation(%d)", int(o))
	}
}
