package events

import (
	"github.com/Maurdekye/carcassonne-sub000/internal/game/core"
	"github.com/Maurdekye/carcassonne-sub000/internal/slotmap"
)

// Event type constants.
const (
	TypeGameStarted     = "game.started"
	TypePlayerJoined    = "player.joined"
	TypeTurnStarted     = "turn.started"
	TypeTilePlaced      = "tile.placed"
	TypeMeeplePlaced    = "meeple.placed"
	TypeMeepleSkipped   = "meeple.skipped"
	TypeGroupScored     = "group.scored"
	TypeGameEnded       = "game.ended"
	TypeStateTransition = "state.transition"
)

// GameStartedEvent is published when the session leaves the lobby.
type GameStartedEvent struct {
	BaseEvent
	NumPlayers  int `json:"num_players"`
	TilesInPile int `json:"tiles_in_pile"`
}

func NewGameStartedEvent(gameID string, numPlayers, tilesInPile int) *GameStartedEvent {
	return &GameStartedEvent{
		BaseEvent:   newBase(TypeGameStarted, gameID),
		NumPlayers:  numPlayers,
		TilesInPile: tilesInPile,
	}
}

// PlayerJoinedEvent is published when a player is added in the lobby.
type PlayerJoinedEvent struct {
	BaseEvent
	Player slotmap.Key `json:"player"`
	Name   string      `json:"name"`
}

func NewPlayerJoinedEvent(gameID string, player slotmap.Key, name string) *PlayerJoinedEvent {
	return &PlayerJoinedEvent{
		BaseEvent: newBase(TypePlayerJoined, gameID),
		Player:    player,
		Name:      name,
	}
}

// TurnStartedEvent is published when a tile has been drawn for the next
// player to place.
type TurnStartedEvent struct {
	BaseEvent
	Turn     int         `json:"turn"`
	Player   slotmap.Key `json:"player"`
	TileName string      `json:"tile_name"`
}

func NewTurnStartedEvent(gameID string, turn int, player slotmap.Key, tileName string) *TurnStartedEvent {
	return &TurnStartedEvent{
		BaseEvent: newBase(TypeTurnStarted, gameID),
		Turn:      turn,
		Player:    player,
		TileName:  tileName,
	}
}

// TilePlacedEvent is published after a successful tile placement.
type TilePlacedEvent struct {
	BaseEvent
	Turn         int           `json:"turn"`
	Player       slotmap.Key   `json:"player"`
	TileName     string        `json:"tile_name"`
	Pos          core.GridPos  `json:"pos"`
	ClosedGroups []slotmap.Key `json:"closed_groups,omitempty"`
}

func NewTilePlacedEvent(gameID string, turn int, player slotmap.Key, tileName string, pos core.GridPos, closed []slotmap.Key) *TilePlacedEvent {
	return &TilePlacedEvent{
		BaseEvent:    newBase(TypeTilePlaced, gameID),
		Turn:         turn,
		Player:       player,
		TileName:     tileName,
		Pos:          pos,
		ClosedGroups: closed,
	}
}

// MeeplePlacedEvent is published after a successful meeple placement.
type MeeplePlacedEvent struct {
	BaseEvent
	Turn    int                    `json:"turn"`
	Player  slotmap.Key            `json:"player"`
	Segment core.SegmentIdentifier `json:"segment"`
}

func NewMeeplePlacedEvent(gameID string, turn int, player slotmap.Key, segment core.SegmentIdentifier) *MeeplePlacedEvent {
	return &MeeplePlacedEvent{
		BaseEvent: newBase(TypeMeeplePlaced, gameID),
		Turn:      turn,
		Player:    player,
		Segment:   segment,
	}
}

// MeepleSkippedEvent is published when a player declines to place a meeple.
type MeepleSkippedEvent struct {
	BaseEvent
	Turn   int         `json:"turn"`
	Player slotmap.Key `json:"player"`
}

func NewMeepleSkippedEvent(gameID string, turn int, player slotmap.Key) *MeepleSkippedEvent {
	return &MeepleSkippedEvent{
		BaseEvent: newBase(TypeMeepleSkipped, gameID),
		Turn:      turn,
		Player:    player,
	}
}

// GroupScoredEvent is published when a group is scored, during play or at
// game end.
type GroupScoredEvent struct {
	BaseEvent
	Group  slotmap.Key   `json:"group"`
	Score  int           `json:"score"`
	Owners []slotmap.Key `json:"owners,omitempty"`
}

func NewGroupScoredEvent(gameID string, group slotmap.Key, score int, owners []slotmap.Key) *GroupScoredEvent {
	return &GroupScoredEvent{
		BaseEvent: newBase(TypeGroupScored, gameID),
		Group:     group,
		Score:     score,
		Owners:    owners,
	}
}

// GameEndedEvent is published after end-of-game scoring.
type GameEndedEvent struct {
	BaseEvent
	FinalTurn int           `json:"final_turn"`
	Winners   []slotmap.Key `json:"winners"`
}

func NewGameEndedEvent(gameID string, finalTurn int, winners []slotmap.Key) *GameEndedEvent {
	return &GameEndedEvent{
		BaseEvent: newBase(TypeGameEnded, gameID),
		FinalTurn: finalTurn,
		Winners:   winners,
	}
}

// StateTransitionEvent is published on every phase change.
type StateTransitionEvent struct {
	BaseEvent
	From string `json:"from"`
	To   string `json:"to"`
}

func NewStateTransitionEvent(gameID, from, to string) *StateTransitionEvent {
	return &StateTransitionEvent{
		BaseEvent: newBase(TypeStateTransition, gameID),
		From:      from,
		To:        to,
	}
}
