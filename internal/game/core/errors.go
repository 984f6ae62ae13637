package core

import "errors"

var (
	// ErrInvalidPlacement is returned when a tile fails mounting validation
	// against a placed neighbor, or the position is not on the frontier.
	ErrInvalidPlacement = errors.New("invalid tile placement")
	// ErrOccupiedPosition is returned when the target position already holds a tile.
	ErrOccupiedPosition = errors.New("position already occupied")
	// ErrNoMeeplesRemaining is returned when a player with an empty meeple
	// stock attempts a placement.
	ErrNoMeeplesRemaining = errors.New("no meeples remaining")
	// ErrGroupAlreadyClaimed is returned when a meeple is placed on a group
	// that already carries one.
	ErrGroupAlreadyClaimed = errors.New("group already claimed")
	// ErrNoGroupAssociation indicates a placed segment without a group entry.
	// This is a corrupted-board invariant violation, not a player error.
	ErrNoGroupAssociation = errors.New("segment has no group association")
	// ErrStaleGroup indicates a group identifier that no longer resolves.
	ErrStaleGroup = errors.New("stale group identifier")
	// ErrStalePlayer indicates a player identifier that no longer resolves.
	ErrStalePlayer = errors.New("stale player identifier")
	// ErrGameOver is returned for actions applied after the game ended.
	ErrGameOver = errors.New("game is over")
	// ErrWrongPhase is returned for actions that are not legal in the current
	// turn phase.
	ErrWrongPhase = errors.New("action not allowed in current phase")
	// ErrNotYourTurn is returned for actions submitted by a player out of turn.
	ErrNotYourTurn = errors.New("not this player's turn")
	// ErrUnsupportedAction is returned for recognized actions the engine
	// refuses to process, such as undo.
	ErrUnsupportedAction = errors.New("unsupported action")
)
