// Package subscribers holds reusable event bus subscribers.
package subscribers

import (
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/Maurdekye/carcassonne-sub000/internal/game/events"
)

// LoggerSubscriber writes every event it receives to structured logs.
type LoggerSubscriber struct {
	id              string
	logger          zerolog.Logger
	logLevel        zerolog.Level
	eventTypeFilter map[string]bool
	devMode         bool
}

// NewLoggerSubscriber creates a logger subscriber emitting at the given
// level.
func NewLoggerSubscriber(id string, logger zerolog.Logger, logLevel zerolog.Level) *LoggerSubscriber {
	return &LoggerSubscriber{
		id:       id,
		logger:   logger.With().Str("subscriber", "event_logger").Logger(),
		logLevel: logLevel,
	}
}

// ID returns the subscriber's unique identifier.
func (ls *LoggerSubscriber) ID() string {
	return ls.id
}

// SetEventFilter restricts logging to the given event types. An empty list
// clears the filter.
func (ls *LoggerSubscriber) SetEventFilter(eventTypes []string) {
	if len(eventTypes) == 0 {
		ls.eventTypeFilter = nil
		return
	}
	ls.eventTypeFilter = make(map[string]bool)
	for _, eventType := range eventTypes {
		ls.eventTypeFilter[eventType] = true
	}
}

// SetDevMode toggles attaching the full event JSON to each log line.
func (ls *LoggerSubscriber) SetDevMode(enabled bool) {
	ls.devMode = enabled
}

// InterestedIn reports whether the subscriber logs this event type.
func (ls *LoggerSubscriber) InterestedIn(eventType string) bool {
	if ls.eventTypeFilter == nil {
		return true
	}
	return ls.eventTypeFilter[eventType]
}

// HandleEvent logs the event with type-specific fields.
func (ls *LoggerSubscriber) HandleEvent(event events.Event) {
	eventLogger := ls.logger.With().
		Str("event_type", event.Type()).
		Str("game_id", event.GameID()).
		Time("timestamp", event.Timestamp()).
		Logger()

	logEvent := eventLogger.WithLevel(ls.logLevel)

	switch e := event.(type) {
	case *events.GameStartedEvent:
		logEvent.
			Int("num_players", e.NumPlayers).
			Int("tiles_in_pile", e.TilesInPile)

	case *events.PlayerJoinedEvent:
		logEvent.Str("name", e.Name)

	case *events.TurnStartedEvent:
		logEvent.
			Int("turn", e.Turn).
			Str("tile", e.TileName)

	case *events.TilePlacedEvent:
		logEvent.
			Int("turn", e.Turn).
			Str("tile", e.TileName).
			Stringer("pos", e.Pos).
			Int("closed_groups", len(e.ClosedGroups))

	case *events.MeeplePlacedEvent:
		logEvent.
			Int("turn", e.Turn).
			Stringer("pos", e.Segment.Pos).
			Int("segment", e.Segment.Segment)

	case *events.MeepleSkippedEvent:
		logEvent.Int("turn", e.Turn)

	case *events.GroupScoredEvent:
		logEvent.
			Int("score", e.Score).
			Int("owners", len(e.Owners))

	case *events.GameEndedEvent:
		logEvent.
			Int("final_turn", e.FinalTurn).
			Int("winners", len(e.Winners))

	case *events.StateTransitionEvent:
		logEvent.
			Str("from", e.From).
			Str("to", e.To)
	}

	if ls.devMode {
		if jsonData, err := json.Marshal(event); err == nil {
			logEvent.RawJSON("event_data", jsonData)
		}
	}

	logEvent.Msg("game event")
}
