// Command game runs a self-play demo: random bots place tiles and meeples
// until the pile runs out, printing the board and scores along the way.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Maurdekye/carcassonne-sub000/internal/common"
	"github.com/Maurdekye/carcassonne-sub000/internal/config"
	"github.com/Maurdekye/carcassonne-sub000/internal/game"
	"github.com/Maurdekye/carcassonne-sub000/internal/game/core"
	"github.com/Maurdekye/carcassonne-sub000/internal/game/events"
	"github.com/Maurdekye/carcassonne-sub000/internal/game/events/subscribers"
	"github.com/Maurdekye/carcassonne-sub000/internal/game/states"
	"github.com/Maurdekye/carcassonne-sub000/internal/game/tile"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	seedFlag := flag.Int64("seed", 0, "game seed (0 = from clock)")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}
	cfg := config.Get()
	setupLogging(cfg.Logging)

	seed := *seedFlag
	if seed == 0 {
		seed = cfg.Deck.Seed
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	log.Info().Int64("seed", seed).Msg("starting self-play demo")
	rng := rand.New(rand.NewSource(seed))

	bus := events.NewEventBus()
	eventLogger := subscribers.NewLoggerSubscriber("demo_logger", log.Logger, zerolog.DebugLevel)
	eventLogger.SetDevMode(cfg.Development.VerboseEvents)
	bus.Subscribe(eventLogger)

	engine := game.NewEngine(seed, game.Options{
		MeeplesPerPlayer:     cfg.Rules.MeeplesPerPlayer,
		EnforceClaimedGroups: cfg.Rules.EnforceClaimedGroups,
	}, bus)

	for i := 0; i < cfg.Demo.NumPlayers; i++ {
		_, err := engine.AddPlayer(game.Player{
			Name:  fmt.Sprintf("Bot %d", i+1),
			Kind:  game.LocalPlayer,
			Color: common.PlayerColor(i),
		})
		if err != nil {
			log.Fatal().Err(err).Msg("adding player")
		}
	}
	if err := engine.Start(); err != nil {
		log.Fatal().Err(err).Msg("starting game")
	}

	for !engine.Phase().IsTerminal() {
		if cfg.Demo.MaxTurns > 0 && engine.Turn() > cfg.Demo.MaxTurns {
			if err := engine.Apply(core.EndGameAction{Player: engine.CurrentPlayer()}); err != nil {
				log.Fatal().Err(err).Msg("ending game")
			}
			break
		}
		if err := playTurn(engine, rng); err != nil {
			log.Fatal().Err(err).Int("turn", engine.Turn()).Msg("turn failed")
		}
		if cfg.Demo.BoardEvery > 0 && engine.Turn()%cfg.Demo.BoardEvery == 0 {
			fmt.Printf("Turn %d:\n%s\n", engine.Turn(), engine.Game().Board())
		}
	}

	fmt.Printf("Final board:\n%s\n", engine.Game().Board())
	for _, key := range engine.Game().PlayerKeys() {
		p := engine.Game().Player(key)
		fmt.Printf("%s: %d points, %d meeples in stock\n", p.Name, p.Score, p.Meeples)
	}
	for _, key := range engine.Winners() {
		fmt.Printf("Winner: %s\n", engine.Game().Player(key).Name)
	}
}

// playTurn makes one random placement and meeple decision for the current
// player.
func playTurn(engine *game.Engine, rng *rand.Rand) error {
	player := engine.CurrentPlayer()
	drawn, positions := engine.DrawnTile()
	pos := positions[rng.Intn(len(positions))]

	rotation := -1
	for _, r := range rng.Perm(4) {
		if engine.Game().IsValidTilePosition(drawn.RotatedTimes(r), pos) {
			rotation = r
			break
		}
	}
	if rotation < 0 {
		return fmt.Errorf("no valid rotation for %s at %v", drawn.Name, pos)
	}
	if err := engine.Apply(core.PlaceTileAction{Player: player, Pos: pos, Rotation: rotation}); err != nil {
		return err
	}

	if engine.Phase() == states.PhaseMeeplePlacement {
		if seg, ok := pickMeepleSpot(engine, pos, rng); ok {
			return engine.Apply(core.PlaceMeepleAction{Player: player, Segment: seg})
		}
		return engine.Apply(core.SkipMeeplesAction{Player: player})
	}
	return nil
}

// pickMeepleSpot randomly claims an unclaimed scoreable group on the placed
// tile, about half the time.
func pickMeepleSpot(engine *game.Engine, pos core.GridPos, rng *rand.Rand) (core.SegmentIdentifier, bool) {
	player := engine.Game().Player(engine.CurrentPlayer())
	if player.Meeples == 0 || rng.Intn(2) == 0 {
		return core.SegmentIdentifier{}, false
	}
	t := engine.Game().TileAt(pos)
	for _, segIdx := range rng.Perm(len(t.Segments)) {
		switch t.Segments[segIdx].Type {
		case tile.Village, tile.River:
			continue
		}
		seg := core.SegmentIdentifier{Pos: pos, Segment: segIdx}
		group, _, ok := engine.Game().GroupAndKeyBySegment(seg)
		if !ok || len(group.Meeples) > 0 {
			continue
		}
		return seg, true
	}
	return core.SegmentIdentifier{}, false
}

func setupLogging(cfg config.LoggingConfig) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	if cfg.Format == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}
