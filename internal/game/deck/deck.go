// Package deck builds the draw pile. Building is deterministic under a seeded
// RNG so that peers sharing a game seed reconstruct identical piles.
package deck

import (
	"math/rand"

	"github.com/Maurdekye/carcassonne-sub000/internal/game/tile"
)

// Config holds deck composition settings.
type Config struct {
	// Tallies is the deck composition. Nil means the standard deck.
	Tallies []tile.Tally
	// Shuffle controls whether the pile is shuffled after expansion.
	Shuffle bool
	// Opening is drawn first regardless of the shuffle. Nil means the pile
	// opens with whatever the shuffle put on top.
	Opening *tile.Tile
}

// DefaultConfig returns the standard shuffled deck configuration, opening
// with the starting tile.
func DefaultConfig() Config {
	return Config{Tallies: tile.DefaultTileTallies(), Shuffle: true, Opening: tile.StartingTile}
}

// Builder expands tile tallies into a pile of cloned tiles.
type Builder struct {
	config Config
	rng    *rand.Rand
}

// NewBuilder creates a deck builder with deterministic RNG.
func NewBuilder(config Config, rng *rand.Rand) *Builder {
	if config.Tallies == nil {
		config.Tallies = tile.DefaultTileTallies()
	}
	return &Builder{config: config, rng: rng}
}

// Build returns a fresh pile. Every entry is a clone; mutating a drawn tile
// (rotation) never touches the catalog.
func (b *Builder) Build() []*tile.Tile {
	var pile []*tile.Tile
	for _, tally := range b.config.Tallies {
		for i := 0; i < tally.Count; i++ {
			pile = append(pile, tally.Tile.Clone())
		}
	}
	if b.config.Shuffle && b.rng != nil {
		b.rng.Shuffle(len(pile), func(i, j int) {
			pile[i], pile[j] = pile[j], pile[i]
		})
	}
	// The pile draws from the back.
	if b.config.Opening != nil {
		pile = append(pile, b.config.Opening.Clone())
	}
	return pile
}
