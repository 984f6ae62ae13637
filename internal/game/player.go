package game

import (
	"image/color"

	"github.com/Maurdekye/carcassonne-sub000/internal/slotmap"
)

// PlayerIdentifier is a stable, generation-checked handle into the game's
// player arena. Identifiers for removed players go stale rather than being
// silently reused.
type PlayerIdentifier = slotmap.Key

// GroupIdentifier is a stable handle to a segment group. Group identifiers
// go stale when their group is consumed by a merge.
type GroupIdentifier = slotmap.Key

// PlayerKind distinguishes how a player's actions arrive at the engine.
type PlayerKind int

const (
	// LocalPlayer actions are produced in-process (human input or a bot).
	LocalPlayer PlayerKind = iota
	// RemotePlayer actions arrive from a remote session.
	RemotePlayer
)

func (k PlayerKind) String() string {
	switch k {
	case LocalPlayer:
		return "local"
	case RemotePlayer:
		return "remote"
	default:
		return "unknown"
	}
}

// Player holds the per-player state tracked by the rules engine: a meeple
// stock and an accumulated score.
type Player struct {
	Name    string     `json:"name"`
	Kind    PlayerKind `json:"kind"`
	Color   color.RGBA `json:"color"`
	Meeples int        `json:"meeples"`
	Score   int        `json:"score"`
}
