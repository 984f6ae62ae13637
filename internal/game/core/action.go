package core

import (
	"encoding/json"
	"fmt"

	"github.com/Maurdekye/carcassonne-sub000/internal/slotmap"
)

// ActionType discriminates the player actions relayed between peers.
type ActionType string

const (
	ActionPlaceTile   ActionType = "place_tile"
	ActionPlaceMeeple ActionType = "place_meeple"
	ActionSkipMeeples ActionType = "skip_meeples"
	ActionEndGame     ActionType = "end_game"
	ActionUndo        ActionType = "undo"
)

// Action is a decoded player action. Actions are plain data; validation
// happens when the engine applies them against the authoritative game state.
type Action interface {
	// Type returns the action discriminator.
	Type() ActionType
	// PlayerKey returns the acting player.
	PlayerKey() slotmap.Key
}

// PlaceTileAction places the drawn tile at a position with a clockwise
// rotation count in [0, 3].
type PlaceTileAction struct {
	Player   slotmap.Key `json:"player"`
	Pos      GridPos     `json:"pos"`
	Rotation int         `json:"rotation"`
}

func (a PlaceTileAction) Type() ActionType       { return ActionPlaceTile }
func (a PlaceTileAction) PlayerKey() slotmap.Key { return a.Player }

// PlaceMeepleAction claims a segment of the just-placed tile.
type PlaceMeepleAction struct {
	Player  slotmap.Key       `json:"player"`
	Segment SegmentIdentifier `json:"segment"`
}

func (a PlaceMeepleAction) Type() ActionType       { return ActionPlaceMeeple }
func (a PlaceMeepleAction) PlayerKey() slotmap.Key { return a.Player }

// SkipMeeplesAction declines meeple placement and ends the turn.
type SkipMeeplesAction struct {
	Player slotmap.Key `json:"player"`
}

func (a SkipMeeplesAction) Type() ActionType       { return ActionSkipMeeples }
func (a SkipMeeplesAction) PlayerKey() slotmap.Key { return a.Player }

// EndGameAction ends the game and triggers final scoring.
type EndGameAction struct {
	Player slotmap.Key `json:"player"`
}

func (a EndGameAction) Type() ActionType       { return ActionEndGame }
func (a EndGameAction) PlayerKey() slotmap.Key { return a.Player }

// UndoAction requests reverting the last placement. Part of the wire
// vocabulary; the authoritative engine rejects it.
type UndoAction struct {
	Player slotmap.Key `json:"player"`
}

func (a UndoAction) Type() ActionType       { return ActionUndo }
func (a UndoAction) PlayerKey() slotmap.Key { return a.Player }

type actionEnvelope struct {
	Type    ActionType      `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// EncodeAction wraps an action in a typed envelope for the wire.
func EncodeAction(action Action) ([]byte, error) {
	payload, err := json.Marshal(action)
	if err != nil {
		return nil, err
	}
	return json.Marshal(actionEnvelope{Type: action.Type(), Payload: payload})
}

// DecodeAction unwraps a typed envelope produced by EncodeAction.
func DecodeAction(data []byte) (Action, error) {
	var envelope actionEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, err
	}
	var action Action
	switch envelope.Type {
	case ActionPlaceTile:
		action = &PlaceTileAction{}
	case ActionPlaceMeeple:
		action = &PlaceMeepleAction{}
	case ActionSkipMeeples:
		action = &SkipMeeplesAction{}
	case ActionEndGame:
		action = &EndGameAction{}
	case ActionUndo:
		action = &UndoAction{}
	default:
		return nil, fmt.Errorf("unknown action type %q", envelope.Type)
	}
	if err := json.Unmarshal(envelope.Payload, action); err != nil {
		return nil, err
	}
	switch a := action.(type) {
	case *PlaceTileAction:
		return *a, nil
	case *PlaceMeepleAction:
		return *a, nil
	case *SkipMeeplesAction:
		return *a, nil
	case *EndGameAction:
		return *a, nil
	case *UndoAction:
		return *a, nil
	}
	return nil, fmt.Errorf("unknown action type %q", envelope.Type)
}
