package game

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Maurdekye/carcassonne-sub000/internal/game/core"
	"github.com/Maurdekye/carcassonne-sub000/internal/game/events"
	"github.com/Maurdekye/carcassonne-sub000/internal/game/states"
	"github.com/Maurdekye/carcassonne-sub000/internal/game/tile"
)

// Engine drives a complete session on top of the board rules: it owns the
// turn order, draws tiles, routes player actions through the phase machine,
// and publishes events for everything that happens. Like Game, it is
// single-goroutine; concurrency belongs to the transport layer feeding it
// actions.
type Engine struct {
	id      string
	game    *Game
	machine *states.StateMachine
	bus     events.Publisher
	logger  zerolog.Logger

	playerOrder []PlayerIdentifier
	currentIdx  int
	turn        int

	drawnTile     *tile.Tile
	drawPositions []core.GridPos
	lastPlaced    core.GridPos
	pendingClosed []GroupIdentifier
}

// NewEngine creates a session in the lobby phase, with a fresh shuffled
// pile built from the seed.
func NewEngine(seed int64, opts Options, bus events.Publisher) *Engine {
	id := uuid.New().String()
	logger := log.With().Str("component", "engine").Str("game_id", id).Logger()
	g := NewGame(seed, opts)
	g.SetLogger(logger.With().Str("component", "game").Logger())
	return &Engine{
		id:      id,
		game:    g,
		machine: states.NewStateMachine(id, bus, logger),
		bus:     bus,
		logger:  logger,
	}
}

// NewEngineWithGame wraps an existing game, e.g. one restored from a
// snapshot, in a fresh session.
func NewEngineWithGame(g *Game, bus events.Publisher) *Engine {
	id := uuid.New().String()
	logger := log.With().Str("component", "engine").Str("game_id", id).Logger()
	g.SetLogger(logger.With().Str("component", "game").Logger())
	return &Engine{
		id:      id,
		game:    g,
		machine: states.NewStateMachine(id, bus, logger),
		bus:     bus,
		logger:  logger,
	}
}

// ID returns the session identifier.
func (e *Engine) ID() string { return e.id }

// Game exposes the underlying board state for queries. Callers must not
// mutate it directly.
func (e *Engine) Game() *Game { return e.game }

// Phase returns the current turn phase.
func (e *Engine) Phase() states.GamePhase { return e.machine.CurrentPhase() }

// Turn returns the current turn number, starting at 1 once the game begins.
func (e *Engine) Turn() int { return e.turn }

// CurrentPlayer returns whose turn it is. Only meaningful once started.
func (e *Engine) CurrentPlayer() PlayerIdentifier {
	if len(e.playerOrder) == 0 {
		return PlayerIdentifier{}
	}
	return e.playerOrder[e.currentIdx]
}

// DrawnTile returns the tile awaiting placement and the positions where
// some rotation of it fits.
func (e *Engine) DrawnTile() (*tile.Tile, []core.GridPos) {
	return e.drawnTile, e.drawPositions
}

// AddPlayer registers a player while the session is in the lobby.
func (e *Engine) AddPlayer(p Player) (PlayerIdentifier, error) {
	if !e.Phase().CanAddPlayers() {
		return PlayerIdentifier{}, errors.Wrapf(core.ErrWrongPhase, "cannot add players in phase %s", e.Phase())
	}
	key := e.game.AddPlayer(p)
	e.publish(events.NewPlayerJoinedEvent(e.id, key, p.Name))
	return key, nil
}

// Start leaves the lobby and draws the first tile. Requires at least one
// player.
func (e *Engine) Start() error {
	if e.Phase() != states.PhaseLobby {
		return errors.Wrapf(core.ErrWrongPhase, "cannot start in phase %s", e.Phase())
	}
	e.playerOrder = e.game.PlayerKeys()
	if len(e.playerOrder) == 0 {
		return errors.New("cannot start a game with no players")
	}
	if err := e.machine.TransitionTo(states.PhaseTilePlacement, "game started"); err != nil {
		return err
	}
	e.publish(events.NewGameStartedEvent(e.id, len(e.playerOrder), e.game.TilesRemaining()))
	e.currentIdx = 0
	e.turn = 0
	return e.beginTurn()
}

// Apply routes a decoded player action into the session.
func (e *Engine) Apply(action core.Action) error {
	phase := e.Phase()
	if phase.IsTerminal() {
		return errors.Wrap(core.ErrGameOver, "game has ended")
	}
	switch a := action.(type) {
	case core.PlaceTileAction:
		return e.applyPlaceTile(a)
	case core.PlaceMeepleAction:
		return e.applyPlaceMeeple(a)
	case core.SkipMeeplesAction:
		return e.applySkipMeeples(a)
	case core.EndGameAction:
		return e.endGame("ended by request")
	case core.UndoAction:
		// Committed placements are final; merges cannot be unwound
		// without replaying the whole game.
		return errors.Wrap(core.ErrUnsupportedAction, "undo")
	default:
		return errors.Wrapf(core.ErrUnsupportedAction, "%T", action)
	}
}

func (e *Engine) applyPlaceTile(a core.PlaceTileAction) error {
	if e.Phase() != states.PhaseTilePlacement {
		return errors.Wrapf(core.ErrWrongPhase, "place_tile in phase %s", e.Phase())
	}
	if a.Player != e.CurrentPlayer() {
		return errors.Wrap(core.ErrNotYourTurn, "place_tile")
	}
	t := e.drawnTile.RotatedTimes(a.Rotation)
	closed, err := e.game.PlaceTile(t, a.Pos)
	if err != nil {
		return err
	}
	e.drawnTile = nil
	e.drawPositions = nil
	e.lastPlaced = a.Pos
	e.pendingClosed = closed
	if err := e.machine.TransitionTo(states.PhaseMeeplePlacement, "tile placed"); err != nil {
		return err
	}
	e.publish(events.NewTilePlacedEvent(e.id, e.turn, a.Player, t.Name, a.Pos, closed))
	return nil
}

func (e *Engine) applyPlaceMeeple(a core.PlaceMeepleAction) error {
	if e.Phase() != states.PhaseMeeplePlacement {
		return errors.Wrapf(core.ErrWrongPhase, "place_meeple in phase %s", e.Phase())
	}
	if a.Player != e.CurrentPlayer() {
		return errors.Wrap(core.ErrNotYourTurn, "place_meeple")
	}
	if a.Segment.Pos != e.lastPlaced {
		return errors.Wrapf(core.ErrInvalidPlacement, "meeple must go on the tile placed this turn at %v", e.lastPlaced)
	}
	if err := e.game.PlaceMeeple(a.Segment, a.Player); err != nil {
		return err
	}
	e.publish(events.NewMeeplePlacedEvent(e.id, e.turn, a.Player, a.Segment))
	return e.advanceTurn()
}

func (e *Engine) applySkipMeeples(a core.SkipMeeplesAction) error {
	if e.Phase() != states.PhaseMeeplePlacement {
		return errors.Wrapf(core.ErrWrongPhase, "skip_meeples in phase %s", e.Phase())
	}
	if a.Player != e.CurrentPlayer() {
		return errors.Wrap(core.ErrNotYourTurn, "skip_meeples")
	}
	e.publish(events.NewMeepleSkippedEvent(e.id, e.turn, a.Player))
	return e.advanceTurn()
}

// advanceTurn scores the groups closed by the last placement, then hands
// play to the next player, ending the game when the pile offers nothing
// placeable.
func (e *Engine) advanceTurn() error {
	if err := e.scorePending(); err != nil {
		return err
	}
	e.currentIdx = (e.currentIdx + 1) % len(e.playerOrder)
	if err := e.machine.TransitionTo(states.PhaseTilePlacement, "turn advanced"); err != nil {
		return err
	}
	return e.beginTurn()
}

// beginTurn draws the next placeable tile for the current player, or ends
// the game.
func (e *Engine) beginTurn() error {
	t, positions, ok := e.game.DrawPlaceableTile()
	if !ok {
		return e.endGame("no placeable tiles remain")
	}
	e.turn++
	e.drawnTile = t
	e.drawPositions = positions
	e.publish(events.NewTurnStartedEvent(e.id, e.turn, e.CurrentPlayer(), t.Name))
	return nil
}

// scorePending scores groups completed by the last tile placement. Scoring
// happens after the meeple decision so a meeple placed into a completing
// group still counts.
func (e *Engine) scorePending() error {
	for _, key := range e.pendingClosed {
		details, err := e.game.GroupScoringDetails(key)
		if err != nil {
			return err
		}
		owners := append([]PlayerIdentifier(nil), details.Owners...)
		score := details.Score
		if _, err := e.game.ScoreGroup(key); err != nil {
			return err
		}
		e.publish(events.NewGroupScoredEvent(e.id, key, score, owners))
	}
	e.pendingClosed = nil
	return nil
}

// endGame runs end-of-game scoring and moves to the terminal phase.
func (e *Engine) endGame(reason string) error {
	if err := e.scorePending(); err != nil {
		return err
	}
	e.game.EndGameScoring()
	if err := e.machine.TransitionTo(states.PhaseGameOver, reason); err != nil {
		return err
	}
	e.publish(events.NewGameEndedEvent(e.id, e.turn, e.Winners()))
	e.logger.Info().Int("final_turn", e.turn).Str("reason", reason).Msg("game over")
	return nil
}

// Winners returns every player tied for the highest score.
func (e *Engine) Winners() []PlayerIdentifier {
	best := 0
	first := true
	var winners []PlayerIdentifier
	for _, key := range e.game.PlayerKeys() {
		p := e.game.Player(key)
		if first || p.Score > best {
			best = p.Score
			winners = winners[:0]
			first = false
		}
		if p.Score == best {
			winners = append(winners, key)
		}
	}
	return winners
}

func (e *Engine) publish(event events.Event) {
	if e.bus != nil {
		e.bus.Publish(event)
	}
}
