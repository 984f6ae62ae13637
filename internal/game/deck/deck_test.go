package deck

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Maurdekye/carcassonne-sub000/internal/game/core"
	"github.com/Maurdekye/carcassonne-sub000/internal/game/tile"
)

func TestBuildExpandsTallies(t *testing.T) {
	config := Config{
		Tallies: []tile.Tally{
			{Tile: tile.StraightRoad, Count: 3},
			{Tile: tile.MonasteryTile, Count: 2},
		},
	}

	pile := NewBuilder(config, nil).Build()

	require.Len(t, pile, 5)
	names := map[string]int{}
	for _, drawn := range pile {
		names[drawn.Name]++
	}
	assert.Equal(t, 3, names["straight_road"])
	assert.Equal(t, 2, names["monastery"])
}

func TestBuildClonesTiles(t *testing.T) {
	config := Config{Tallies: []tile.Tally{{Tile: tile.StraightRoad, Count: 1}}}

	pile := NewBuilder(config, nil).Build()

	require.Len(t, pile, 1)
	pile[0].RotateClockwise()
	assert.Equal(t, tile.Road, tile.StraightRoad.Segments[1].Type)
	assert.Equal(t, 1, tile.StraightRoad.Mount(core.East, core.PositionMiddle),
		"catalog entry must be untouched by rotating a drawn tile")
}

func TestBuildDeterministicUnderSeed(t *testing.T) {
	a := NewBuilder(DefaultConfig(), rand.New(rand.NewSource(42))).Build()
	b := NewBuilder(DefaultConfig(), rand.New(rand.NewSource(42))).Build()

	require.Equal(t, len(a), len(b))
	for i := range a {
		assert.Equal(t, a[i].Name, b[i].Name, "pile order differs at %d", i)
	}
}

func TestDefaultDeckSize(t *testing.T) {
	pile := NewBuilder(DefaultConfig(), rand.New(rand.NewSource(1))).Build()

	total := 0
	for _, tally := range tile.DefaultTileTallies() {
		total += tally.Count
	}
	require.Len(t, pile, total+1, "tallies plus the opening tile")
	assert.Equal(t, "starting_tile", pile[len(pile)-1].Name, "the starting tile draws first")
}
