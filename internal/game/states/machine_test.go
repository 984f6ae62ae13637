package states

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Maurdekye/carcassonne-sub000/internal/game/events"
)

func newTestMachine(bus events.Publisher) *StateMachine {
	return NewStateMachine("test-game", bus, zerolog.Nop())
}

func TestPhaseProperties(t *testing.T) {
	tests := []struct {
		phase      GamePhase
		terminal   bool
		actions    bool
		addPlayers bool
	}{
		{PhaseLobby, false, false, true},
		{PhaseTilePlacement, false, true, false},
		{PhaseMeeplePlacement, false, true, false},
		{PhaseGameOver, true, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.phase.String(), func(t *testing.T) {
			assert.Equal(t, tt.terminal, tt.phase.IsTerminal())
			assert.Equal(t, tt.actions, tt.phase.CanReceiveActions())
			assert.Equal(t, tt.addPlayers, tt.phase.CanAddPlayers())
		})
	}
}

func TestTransitionRules(t *testing.T) {
	tests := []struct {
		from    GamePhase
		to      GamePhase
		allowed bool
	}{
		{PhaseLobby, PhaseTilePlacement, true},
		{PhaseLobby, PhaseMeeplePlacement, false},
		{PhaseLobby, PhaseGameOver, false},
		{PhaseTilePlacement, PhaseMeeplePlacement, true},
		{PhaseTilePlacement, PhaseGameOver, true},
		{PhaseTilePlacement, PhaseLobby, false},
		{PhaseMeeplePlacement, PhaseTilePlacement, true},
		{PhaseMeeplePlacement, PhaseGameOver, true},
		{PhaseGameOver, PhaseLobby, false},
		{PhaseGameOver, PhaseTilePlacement, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to),
			"%s -> %s", tt.from, tt.to)
	}
}

func TestMachineWalksAFullTurnCycle(t *testing.T) {
	sm := newTestMachine(nil)
	require.Equal(t, PhaseLobby, sm.CurrentPhase())

	require.NoError(t, sm.TransitionTo(PhaseTilePlacement, "game started"))
	require.NoError(t, sm.TransitionTo(PhaseMeeplePlacement, "tile placed"))
	require.NoError(t, sm.TransitionTo(PhaseTilePlacement, "turn advanced"))
	require.NoError(t, sm.TransitionTo(PhaseGameOver, "pile exhausted"))
	assert.Equal(t, PhaseGameOver, sm.CurrentPhase())

	history := sm.History()
	require.Len(t, history, 4)
	assert.Equal(t, PhaseLobby, history[0].From)
	assert.Equal(t, PhaseGameOver, history[3].To)
	assert.Equal(t, "pile exhausted", history[3].Reason)
}

func TestMachineRejectsIllegalTransition(t *testing.T) {
	sm := newTestMachine(nil)
	err := sm.TransitionTo(PhaseMeeplePlacement, "skipping ahead")
	require.Error(t, err)
	assert.Equal(t, PhaseLobby, sm.CurrentPhase(), "failed transition leaves the phase untouched")
	assert.Empty(t, sm.History())
}

func TestMachinePublishesTransitions(t *testing.T) {
	bus := events.NewEventBus()
	var published []events.Event
	bus.SubscribeFunc(events.TypeStateTransition, func(e events.Event) {
		published = append(published, e)
	})
	sm := newTestMachine(bus)

	require.NoError(t, sm.TransitionTo(PhaseTilePlacement, "game started"))
	require.Len(t, published, 1)
	event, ok := published[0].(*events.StateTransitionEvent)
	require.True(t, ok)
	assert.Equal(t, PhaseLobby.String(), event.From)
	assert.Equal(t, PhaseTilePlacement.String(), event.To)
}
