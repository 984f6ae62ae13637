package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Maurdekye/carcassonne-sub000/internal/game/core"
	"github.com/Maurdekye/carcassonne-sub000/internal/game/tile"
)

func TestClosedRoadScoring(t *testing.T) {
	g := newTestGame()
	red := addTestPlayer(g, "Red")
	closed := placeRoadLine(t, g)
	require.Len(t, closed, 1)
	require.NoError(t, g.PlaceMeeple(core.SegmentIdentifier{Pos: core.GridPos{X: 1, Y: 0}, Segment: 1}, red))

	results, err := g.ScoreGroup(closed[0])
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 3, results[0].Points)
	assert.Equal(t, red, results[0].Player)
	assert.Equal(t, 3, g.Player(red).Score)
	assert.Equal(t, DefaultMeeplesPerPlayer, g.Player(red).Meeples, "meeple returned to stock")
	assert.True(t, g.Group(closed[0]).Scored)

	// A second pass over the same group awards nothing.
	results, err = g.ScoreGroup(closed[0])
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Equal(t, 3, g.Player(red).Score)
}

func TestCityRingScoring(t *testing.T) {
	tests := []struct {
		name  string
		last  *tile.Tile
		score int
	}{
		{name: "plain ring", last: tile.CornerCity, score: 8},
		{name: "one fortified tile", last: tile.FortifiedCornerCity, score: 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGame()
			closed := placeCityRing(t, g, tt.last)

			require.Len(t, closed, 1)
			group := g.Group(closed[0])
			require.NotNil(t, group)
			assert.Equal(t, tile.City, group.Type)
			assert.True(t, group.IsClosed())
			assert.Len(t, group.Segments, 4)

			details, err := g.GroupScoringDetails(closed[0])
			require.NoError(t, err)
			assert.Equal(t, tt.score, details.Score)
		})
	}
}

func TestOpenCityScoresPerTile(t *testing.T) {
	g := newTestGame()
	mustPlace(t, g, tile.CornerCity, 0, core.GridPos{X: 0, Y: 0})
	mustPlace(t, g, tile.CornerCity, 2, core.GridPos{X: 0, Y: -1})

	group, key, ok := g.GroupAndKeyBySegment(core.SegmentIdentifier{Pos: core.GridPos{X: 0, Y: 0}, Segment: 0})
	require.True(t, ok)
	assert.Len(t, group.Segments, 2)
	assert.False(t, group.IsClosed())

	details, err := g.GroupScoringDetails(key)
	require.NoError(t, err)
	assert.Equal(t, 2, details.Score, "open city stays at one point per tile")
}

func TestFarmScoresCompletedCities(t *testing.T) {
	g := newTestGame()
	mustPlace(t, g, tile.CornerCity, 2, core.GridPos{X: 0, Y: 0})
	farmSeg := core.SegmentIdentifier{Pos: core.GridPos{X: 0, Y: 0}, Segment: 1}
	_, farmKey, ok := g.GroupAndKeyBySegment(farmSeg)
	require.True(t, ok)

	details, err := g.GroupScoringDetails(farmKey)
	require.NoError(t, err)
	assert.Equal(t, 0, details.Score, "no completed city yet")

	mustPlace(t, g, tile.CornerCity, 3, core.GridPos{X: 1, Y: 0})
	mustPlace(t, g, tile.CornerCity, 1, core.GridPos{X: 0, Y: 1})
	closed := mustPlace(t, g, tile.CornerCity, 0, core.GridPos{X: 1, Y: 1})
	require.Len(t, closed, 1)

	// Scoring the city re-opens the farm's cached value.
	_, err = g.ScoreGroup(closed[0])
	require.NoError(t, err)
	details, err = g.GroupScoringDetails(farmKey)
	require.NoError(t, err)
	assert.Equal(t, FarmPointsPerCity, details.Score)
}

func TestMajorityOwnsContestedGroup(t *testing.T) {
	g := NewGameWithLibrary(nil, Options{MeeplesPerPlayer: 7, EnforceClaimedGroups: false})
	red := addTestPlayer(g, "Red")
	blue := addTestPlayer(g, "Blue")

	mustPlace(t, g, tile.DeadEndRoad, 3, core.GridPos{X: 0, Y: 0})
	require.NoError(t, g.PlaceMeeple(core.SegmentIdentifier{Pos: core.GridPos{X: 0, Y: 0}, Segment: 0}, red))
	mustPlace(t, g, tile.StraightRoad, 0, core.GridPos{X: 1, Y: 0})
	require.NoError(t, g.PlaceMeeple(core.SegmentIdentifier{Pos: core.GridPos{X: 1, Y: 0}, Segment: 1}, blue))
	require.NoError(t, g.PlaceMeeple(core.SegmentIdentifier{Pos: core.GridPos{X: 1, Y: 0}, Segment: 1}, red))
	closed := mustPlace(t, g, tile.DeadEndRoad, 1, core.GridPos{X: 2, Y: 0})
	require.Len(t, closed, 1)

	results, err := g.ScoreGroup(closed[0])
	require.NoError(t, err)
	assert.Len(t, results, 3, "every meeple comes home")
	assert.Equal(t, 3, g.Player(red).Score, "two against one wins outright")
	assert.Equal(t, 0, g.Player(blue).Score)
	assert.Equal(t, 7, g.Player(red).Meeples)
	assert.Equal(t, 7, g.Player(blue).Meeples)

	// The winner's points ride on a single result.
	credited := 0
	for _, r := range results {
		if r.Points > 0 {
			credited++
			assert.Equal(t, red, r.Player)
			assert.Equal(t, 3, r.Points)
		}
	}
	assert.Equal(t, 1, credited)
}

func TestTiedOwnersEachScoreFull(t *testing.T) {
	g := NewGameWithLibrary(nil, Options{MeeplesPerPlayer: 7, EnforceClaimedGroups: false})
	red := addTestPlayer(g, "Red")
	blue := addTestPlayer(g, "Blue")

	mustPlace(t, g, tile.DeadEndRoad, 3, core.GridPos{X: 0, Y: 0})
	require.NoError(t, g.PlaceMeeple(core.SegmentIdentifier{Pos: core.GridPos{X: 0, Y: 0}, Segment: 0}, red))
	mustPlace(t, g, tile.StraightRoad, 0, core.GridPos{X: 1, Y: 0})
	require.NoError(t, g.PlaceMeeple(core.SegmentIdentifier{Pos: core.GridPos{X: 1, Y: 0}, Segment: 1}, blue))
	closed := mustPlace(t, g, tile.DeadEndRoad, 1, core.GridPos{X: 2, Y: 0})
	require.Len(t, closed, 1)

	_, err := g.ScoreGroup(closed[0])
	require.NoError(t, err)
	assert.Equal(t, 3, g.Player(red).Score)
	assert.Equal(t, 3, g.Player(blue).Score)
}

func TestVillagesAndRiversScoreNothing(t *testing.T) {
	g := newTestGame()
	mustPlace(t, g, tile.FourWayCrossroads, 0, core.GridPos{})

	for _, key := range g.GroupKeys() {
		group := g.Group(key)
		if group.Type != tile.Village {
			continue
		}
		details, err := g.GroupScoringDetails(key)
		require.NoError(t, err)
		assert.Equal(t, 0, details.Score)
		return
	}
	t.Fatal("expected a village group on the board")
}

func TestEndGameScoresOpenGroupsOnce(t *testing.T) {
	g := newTestGame()
	red := addTestPlayer(g, "Red")
	blue := addTestPlayer(g, "Blue")
	mustPlace(t, g, tile.DeadEndRoad, 3, core.GridPos{})
	require.NoError(t, g.PlaceMeeple(core.SegmentIdentifier{Pos: core.GridPos{}, Segment: 0}, red))
	require.NoError(t, g.PlaceMeeple(core.SegmentIdentifier{Pos: core.GridPos{}, Segment: 1}, blue))

	results := g.EndGameScoring()
	assert.Len(t, results, 2)
	assert.Equal(t, 1, g.Player(red).Score, "one-tile open road")
	assert.Equal(t, 0, g.Player(blue).Score, "farm without completed cities")
	assert.Equal(t, DefaultMeeplesPerPlayer, g.Player(red).Meeples)
	assert.Equal(t, DefaultMeeplesPerPlayer, g.Player(blue).Meeples)
	for _, key := range g.GroupKeys() {
		assert.True(t, g.Group(key).Scored)
	}

	assert.Empty(t, g.EndGameScoring(), "second pass finds nothing unscored")
}

func TestOpenMonasteryScore(t *testing.T) {
	g := newTestGame()
	mustPlace(t, g, tile.MonasteryTile, 0, core.GridPos{})
	mustPlace(t, g, tile.MonasteryTile, 0, core.GridPos{X: 1, Y: 0})
	mustPlace(t, g, tile.MonasteryTile, 0, core.GridPos{X: 1, Y: 1})

	_, key, ok := g.GroupAndKeyBySegment(core.SegmentIdentifier{Pos: core.GridPos{}, Segment: 0})
	require.True(t, ok)
	details, err := g.GroupScoringDetails(key)
	require.NoError(t, err)
	assert.Equal(t, 3, details.Score, "one for the tile plus two neighbors")
}
