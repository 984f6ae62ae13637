// Package events carries notifications out of the rules engine without the
// engine knowing who listens. Renderers, network sessions, and recorders
// subscribe to the bus; the engine only publishes.
package events

import (
	"time"
)

// Event is implemented by every notification published on the bus.
type Event interface {
	// Type returns the event type string used for filtering.
	Type() string
	// Timestamp returns when the event occurred.
	Timestamp() time.Time
	// GameID returns the session the event belongs to.
	GameID() string
}

// BaseEvent supplies the common Event fields by embedding.
type BaseEvent struct {
	EventType string    `json:"type"`
	Time      time.Time `json:"timestamp"`
	Game      string    `json:"game_id"`
}

func (e BaseEvent) Type() string         { return e.EventType }
func (e BaseEvent) Timestamp() time.Time { return e.Time }
func (e BaseEvent) GameID() string       { return e.Game }

// EventHandler processes a single event.
type EventHandler func(Event)

// Subscriber receives events it declares interest in.
type Subscriber interface {
	// ID returns a unique identifier for this subscriber.
	ID() string
	// HandleEvent processes an event.
	HandleEvent(Event)
	// InterestedIn reports whether the subscriber wants this event type.
	InterestedIn(eventType string) bool
}

// Publisher is the narrow interface handed to code that only emits.
type Publisher interface {
	Publish(Event)
}

// Bus combines publishing with subscription management.
type Bus interface {
	Publisher
	Subscribe(Subscriber)
	Unsubscribe(subscriberID string)
	SubscribeFunc(eventType string, handler EventHandler) string
}

func newBase(eventType, gameID string) BaseEvent {
	return BaseEvent{EventType: eventType, Time: time.Now(), Game: gameID}
}
