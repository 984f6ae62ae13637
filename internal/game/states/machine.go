package states

import (
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/Maurdekye/carcassonne-sub000/internal/game/events"
)

// Transition is one recorded phase change.
type Transition struct {
	From      GamePhase
	To        GamePhase
	Timestamp time.Time
	Reason    string
}

const maxHistorySize = 1000

// StateMachine guards phase changes and keeps a bounded transition history.
// It publishes a state transition event for every successful change.
type StateMachine struct {
	mu           sync.RWMutex
	currentPhase GamePhase
	history      []Transition
	gameID       string
	bus          events.Publisher
	logger       zerolog.Logger
}

// NewStateMachine creates a machine in the lobby phase. The bus may be nil.
func NewStateMachine(gameID string, bus events.Publisher, logger zerolog.Logger) *StateMachine {
	return &StateMachine{
		currentPhase: PhaseLobby,
		gameID:       gameID,
		bus:          bus,
		logger:       logger.With().Str("component", "state_machine").Logger(),
	}
}

// CurrentPhase returns the current phase.
func (sm *StateMachine) CurrentPhase() GamePhase {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.currentPhase
}

// CanTransitionTo reports whether a transition to target is currently legal.
func (sm *StateMachine) CanTransitionTo(target GamePhase) bool {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.currentPhase.CanTransitionTo(target)
}

// TransitionTo moves the machine to the target phase, recording and
// publishing the change.
func (sm *StateMachine) TransitionTo(target GamePhase, reason string) error {
	sm.mu.Lock()
	if !sm.currentPhase.CanTransitionTo(target) {
		current := sm.currentPhase
		sm.mu.Unlock()
		return errors.Errorf("invalid transition from %s to %s", current, target)
	}

	previous := sm.currentPhase
	sm.currentPhase = target
	sm.history = append(sm.history, Transition{
		From:      previous,
		To:        target,
		Timestamp: time.Now(),
		Reason:    reason,
	})
	if len(sm.history) > maxHistorySize {
		sm.history = sm.history[len(sm.history)-maxHistorySize:]
	}
	sm.mu.Unlock()

	if sm.bus != nil {
		sm.bus.Publish(events.NewStateTransitionEvent(sm.gameID, previous.String(), target.String()))
	}
	sm.logger.Debug().
		Str("from_phase", previous.String()).
		Str("to_phase", target.String()).
		Str("reason", reason).
		Msg("state transition completed")
	return nil
}

// History returns a copy of the transition history.
func (sm *StateMachine) History() []Transition {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	history := make([]Transition, len(sm.history))
	copy(history, sm.history)
	return history
}
