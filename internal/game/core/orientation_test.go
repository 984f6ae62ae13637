package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrientationOpposite(t *testing.T) {
	tests := []struct {
		o, expected Orientation
	}{
		{North, South},
		{East, West},
		{South, North},
		{West, East},
	}

	for _, tt := range tests {
		t.Run(tt.o.String(), func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.o.Opposite())
		})
	}
}

func TestOrientationOffset(t *testing.T) {
	assert.Equal(t, GridPos{0, -1}, North.Offset())
	assert.Equal(t, GridPos{1, 0}, East.Offset())
	assert.Equal(t, GridPos{0, 1}, South.Offset())
	assert.Equal(t, GridPos{-1, 0}, West.Offset())
}

func TestOrientationRotateClockwise(t *testing.T) {
	assert.Equal(t, East, North.RotateClockwise())
	assert.Equal(t, South, East.RotateClockwise())
	assert.Equal(t, West, South.RotateClockwise())
	assert.Equal(t, North, West.RotateClockwise())
}

func TestOrientationsOrder(t *testing.T) {
	assert.Equal(t, []Orientation{North, East, South, West}, Orientations)
}

func TestMountPositionMirror(t *testing.T) {
	assert.Equal(t, PositionEnd, PositionBeginning.Mirror())
	assert.Equal(t, PositionMiddle, PositionMiddle.Mirror())
	assert.Equal(t, PositionBeginning, PositionEnd.Mirror())
}

func TestEdgeSpanPositions(t *testing.T) {
	assert.Equal(t, []MountPosition{PositionBeginning}, SpanBeginning.Positions())
	assert.Equal(t, []MountPosition{PositionMiddle}, SpanMiddle.Positions())
	assert.Equal(t, []MountPosition{PositionEnd}, SpanEnd.Positions())
	assert.Equal(t, MountPositions, SpanFull.Positions())
}

func TestEdgeSpanInterval(t *testing.T) {
	from, to := SpanMiddle.Interval()
	assert.Equal(t, SpanBreakLow, from)
	assert.Equal(t, SpanBreakHigh, to)

	from, to = SpanFull.Interval()
	assert.Equal(t, 0.0, from)
	assert.Equal(t, 1.0, to)
}
