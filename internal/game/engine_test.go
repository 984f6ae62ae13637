package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Maurdekye/carcassonne-sub000/internal/game/core"
	"github.com/Maurdekye/carcassonne-sub000/internal/game/events"
	"github.com/Maurdekye/carcassonne-sub000/internal/game/states"
	"github.com/Maurdekye/carcassonne-sub000/internal/game/tile"
	"github.com/Maurdekye/carcassonne-sub000/internal/testutil"
)

// recordingSubscriber captures every event type published during a test.
type recordingSubscriber struct {
	types []string
}

func (r *recordingSubscriber) ID() string               { return "test_recorder" }
func (r *recordingSubscriber) InterestedIn(string) bool { return true }
func (r *recordingSubscriber) HandleEvent(e events.Event) {
	r.types = append(r.types, e.Type())
}

func (r *recordingSubscriber) count(eventType string) int {
	n := 0
	for _, t := range r.types {
		if t == eventType {
			n++
		}
	}
	return n
}

func newScriptedEngine(library []*tile.Tile) (*Engine, *recordingSubscriber) {
	bus := events.NewEventBus()
	recorder := &recordingSubscriber{}
	bus.Subscribe(recorder)
	g := NewGameWithLibrary(library, DefaultOptions())
	return NewEngineWithGame(g, bus), recorder
}

func TestEngineScriptedGame(t *testing.T) {
	// Drawn in reverse: dead end, straight, dead end.
	engine, recorder := newScriptedEngine([]*tile.Tile{
		tile.DeadEndRoad.Clone(), tile.StraightRoad.Clone(), tile.DeadEndRoad.Clone(),
	})
	red, err := engine.AddPlayer(Player{Name: "Red", Kind: LocalPlayer})
	require.NoError(t, err)
	blue, err := engine.AddPlayer(Player{Name: "Blue", Kind: LocalPlayer})
	require.NoError(t, err)

	require.NoError(t, engine.Start())
	assert.Equal(t, states.PhaseTilePlacement, engine.Phase())
	assert.Equal(t, 1, engine.Turn())
	assert.Equal(t, red, engine.CurrentPlayer())
	drawn, positions := engine.DrawnTile()
	require.NotNil(t, drawn)
	assert.Equal(t, "dead_end_road", drawn.Name)
	assert.Equal(t, []core.GridPos{{X: 0, Y: 0}}, positions)

	// Red starts the road and claims it.
	require.NoError(t, engine.Apply(core.PlaceTileAction{Player: red, Pos: core.GridPos{X: 0, Y: 0}, Rotation: 3}))
	assert.Equal(t, states.PhaseMeeplePlacement, engine.Phase())
	require.NoError(t, engine.Apply(core.PlaceMeepleAction{
		Player:  red,
		Segment: core.SegmentIdentifier{Pos: core.GridPos{X: 0, Y: 0}, Segment: 0},
	}))

	// Blue extends it.
	assert.Equal(t, blue, engine.CurrentPlayer())
	assert.Equal(t, 2, engine.Turn())
	require.NoError(t, engine.Apply(core.PlaceTileAction{Player: blue, Pos: core.GridPos{X: 1, Y: 0}, Rotation: 0}))
	require.NoError(t, engine.Apply(core.SkipMeeplesAction{Player: blue}))

	// Red closes it; the road scores after the meeple decision, and the
	// empty pile then ends the game.
	assert.Equal(t, red, engine.CurrentPlayer())
	require.NoError(t, engine.Apply(core.PlaceTileAction{Player: red, Pos: core.GridPos{X: 2, Y: 0}, Rotation: 1}))
	require.NoError(t, engine.Apply(core.SkipMeeplesAction{Player: red}))

	assert.Equal(t, states.PhaseGameOver, engine.Phase())
	assert.Equal(t, 3, engine.Game().Player(red).Score)
	assert.Equal(t, 0, engine.Game().Player(blue).Score)
	assert.Equal(t, DefaultMeeplesPerPlayer, engine.Game().Player(red).Meeples)
	assert.Equal(t, []PlayerIdentifier{red}, engine.Winners())

	assert.Equal(t, 1, recorder.count(events.TypeGameStarted))
	assert.Equal(t, 3, recorder.count(events.TypeTurnStarted))
	assert.Equal(t, 3, recorder.count(events.TypeTilePlaced))
	assert.Equal(t, 1, recorder.count(events.TypeMeeplePlaced))
	assert.Equal(t, 2, recorder.count(events.TypeMeepleSkipped))
	assert.GreaterOrEqual(t, recorder.count(events.TypeGroupScored), 1)
	assert.Equal(t, 1, recorder.count(events.TypeGameEnded))
}

func TestEngineRejectsOutOfOrderActions(t *testing.T) {
	engine, _ := newScriptedEngine([]*tile.Tile{
		tile.MonasteryTile.Clone(), tile.MonasteryTile.Clone(), tile.MonasteryTile.Clone(),
	})
	red, err := engine.AddPlayer(Player{Name: "Red", Kind: LocalPlayer})
	require.NoError(t, err)
	blue, err := engine.AddPlayer(Player{Name: "Blue", Kind: LocalPlayer})
	require.NoError(t, err)

	err = engine.Apply(core.PlaceTileAction{Player: red, Pos: core.GridPos{}})
	assert.ErrorIs(t, err, core.ErrWrongPhase, "no actions before the game starts")

	require.NoError(t, engine.Start())
	assert.Error(t, engine.Start(), "starting twice is rejected")

	_, err = engine.AddPlayer(Player{Name: "Late", Kind: RemotePlayer})
	assert.ErrorIs(t, err, core.ErrWrongPhase)

	err = engine.Apply(core.PlaceMeepleAction{Player: red})
	assert.ErrorIs(t, err, core.ErrWrongPhase, "no meeple before a tile")

	err = engine.Apply(core.PlaceTileAction{Player: blue, Pos: core.GridPos{}})
	assert.ErrorIs(t, err, core.ErrNotYourTurn)

	err = engine.Apply(core.UndoAction{Player: red})
	assert.ErrorIs(t, err, core.ErrUnsupportedAction)

	require.NoError(t, engine.Apply(core.PlaceTileAction{Player: red, Pos: core.GridPos{}}))
	err = engine.Apply(core.PlaceMeepleAction{
		Player:  red,
		Segment: core.SegmentIdentifier{Pos: core.GridPos{X: 4, Y: 4}, Segment: 0},
	})
	assert.ErrorIs(t, err, core.ErrInvalidPlacement, "meeple must go on this turn's tile")

	require.NoError(t, engine.Apply(core.EndGameAction{Player: red}))
	assert.True(t, engine.Phase().IsTerminal())
	err = engine.Apply(core.SkipMeeplesAction{Player: red})
	assert.ErrorIs(t, err, core.ErrGameOver)
}

func TestEngineStartRequiresPlayers(t *testing.T) {
	engine, _ := newScriptedEngine(nil)
	assert.Error(t, engine.Start())
}

func TestEngineRandomSelfPlay(t *testing.T) {
	engine := NewEngine(42, DefaultOptions(), events.NewEventBus())
	red, err := engine.AddPlayer(Player{Name: "Red", Kind: LocalPlayer})
	require.NoError(t, err)
	blue, err := engine.AddPlayer(Player{Name: "Blue", Kind: LocalPlayer})
	require.NoError(t, err)
	require.NoError(t, engine.Start())

	rng := testutil.NewTestRNG(7)
	var lastPos core.GridPos
	for steps := 0; !engine.Phase().IsTerminal(); steps++ {
		require.Less(t, steps, 10000, "self-play must terminate")
		player := engine.CurrentPlayer()
		switch engine.Phase() {
		case states.PhaseTilePlacement:
			drawn, positions := engine.DrawnTile()
			require.NotNil(t, drawn)
			require.NotEmpty(t, positions)
			pos := positions[rng.Intn(len(positions))]
			placed := false
			for _, r := range rng.Perm(4) {
				if engine.Game().IsValidTilePosition(drawn.RotatedTimes(r), pos) {
					require.NoError(t, engine.Apply(core.PlaceTileAction{Player: player, Pos: pos, Rotation: r}))
					placed = true
					lastPos = pos
					break
				}
			}
			require.True(t, placed, "an offered position must accept some rotation")
		case states.PhaseMeeplePlacement:
			if rng.Intn(3) == 0 {
				seg := core.SegmentIdentifier{Pos: lastPos, Segment: 0}
				if engine.Apply(core.PlaceMeepleAction{Player: player, Segment: seg}) == nil {
					continue
				}
			}
			require.NoError(t, engine.Apply(core.SkipMeeplesAction{Player: player}))
		}
	}

	g := engine.Game()
	assert.Positive(t, g.PlacedTileCount())
	assert.Equal(t, DefaultMeeplesPerPlayer, g.Player(red).Meeples, "all meeples come home at the end")
	assert.Equal(t, DefaultMeeplesPerPlayer, g.Player(blue).Meeples)
	for _, key := range g.GroupKeys() {
		assert.True(t, g.Group(key).Scored, "nothing is left unscored")
	}
	assert.NotEmpty(t, engine.Winners())

	// Replaying the same seeds gives the same outcome.
	rerun := NewEngine(42, DefaultOptions(), events.NewEventBus())
	_, err = rerun.AddPlayer(Player{Name: "Red", Kind: LocalPlayer})
	require.NoError(t, err)
	_, err = rerun.AddPlayer(Player{Name: "Blue", Kind: LocalPlayer})
	require.NoError(t, err)
	require.NoError(t, rerun.Start())
	first, _ := rerun.DrawnTile()
	second, _ := engineFirstDraw(42)
	assert.Equal(t, second.Name, first.Name)
}

// engineFirstDraw reports the first tile a fresh seeded game offers.
func engineFirstDraw(seed int64) (*tile.Tile, []core.GridPos) {
	g := NewGame(seed, DefaultOptions())
	t, positions, _ := g.DrawPlaceableTile()
	return t, positions
}
