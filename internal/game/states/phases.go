// Package states tracks the turn phase of a session and guards which
// transitions between phases are legal.
package states

import "fmt"

// GamePhase is the coarse state of a session. Play alternates between tile
// and meeple placement until the pile runs dry.
type GamePhase int

const (
	// PhaseLobby - players joining, configuration.
	PhaseLobby GamePhase = iota

	// PhaseTilePlacement - the current player must place the drawn tile.
	PhaseTilePlacement

	// PhaseMeeplePlacement - the current player may claim a group on the
	// tile they just placed, or pass.
	PhaseMeeplePlacement

	// PhaseGameOver - final state after end-of-game scoring.
	PhaseGameOver
)

// String returns the phase name.
func (p GamePhase) String() string {
	switch p {
	case PhaseLobby:
		return "Lobby"
	case PhaseTilePlacement:
		return "TilePlacement"
	case PhaseMeeplePlacement:
		return "MeeplePlacement"
	case PhaseGameOver:
		return "GameOver"
	default:
		return fmt.Sprintf("Unknown(%d)", p)
	}
}

// IsTerminal reports whether the session cannot leave this phase.
func (p GamePhase) IsTerminal() bool {
	return p == PhaseGameOver
}

// CanReceiveActions reports whether play actions are processed in this
// phase.
func (p GamePhase) CanReceiveActions() bool {
	return p == PhaseTilePlacement || p == PhaseMeeplePlacement
}

// CanAddPlayers reports whether players may join in this phase.
func (p GamePhase) CanAddPlayers() bool {
	return p == PhaseLobby
}

// AllowedTransitions returns the phases reachable from this one.
func (p GamePhase) AllowedTransitions() []GamePhase {
	switch p {
	case PhaseLobby:
		return []GamePhase{PhaseTilePlacement}
	case PhaseTilePlacement:
		// Placement always offers a meeple decision; the pile running
		// dry before a draw goes straight to game over.
		return []GamePhase{PhaseMeeplePlacement, PhaseGameOver}
	case PhaseMeeplePlacement:
		return []GamePhase{PhaseTilePlacement, PhaseGameOver}
	default:
		return []GamePhase{}
	}
}

// CanTransitionTo reports whether moving to target is legal.
func (p GamePhase) CanTransitionTo(target GamePhase) bool {
	for _, allowed := range p.AllowedTransitions() {
		if allowed == target {
			return true
		}
	}
	return false
}
