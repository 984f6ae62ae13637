package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Maurdekye/carcassonne-sub000/internal/game/core"
	"github.com/Maurdekye/carcassonne-sub000/internal/slotmap"
)

func slotKey(i int) slotmap.Key { return slotmap.Key{Index: i} }

func gridPos(x, y int) core.GridPos { return core.GridPos{X: x, Y: y} }

type stubSubscriber struct {
	id       string
	interest map[string]bool
	all      bool
	received []Event
	panics   bool
}

func (s *stubSubscriber) ID() string { return s.id }

func (s *stubSubscriber) InterestedIn(eventType string) bool {
	return s.all || s.interest[eventType]
}

func (s *stubSubscriber) HandleEvent(e Event) {
	if s.panics {
		panic("subscriber exploded")
	}
	s.received = append(s.received, e)
}

func TestPublishRespectsInterest(t *testing.T) {
	bus := NewEventBus()
	starts := &stubSubscriber{id: "starts", interest: map[string]bool{TypeGameStarted: true}}
	everything := &stubSubscriber{id: "everything", all: true}
	bus.Subscribe(starts)
	bus.Subscribe(everything)

	bus.Publish(NewGameStartedEvent("g1", 2, 54))
	bus.Publish(NewMeepleSkippedEvent("g1", 1, slotKey(0)))

	require.Len(t, starts.received, 1)
	assert.Equal(t, TypeGameStarted, starts.received[0].Type())
	assert.Len(t, everything.received, 2)
}

func TestSubscribeReplacesSameID(t *testing.T) {
	bus := NewEventBus()
	first := &stubSubscriber{id: "dup", all: true}
	second := &stubSubscriber{id: "dup", all: true}
	bus.Subscribe(first)
	bus.Subscribe(second)
	require.Equal(t, 1, bus.SubscriberCount())

	bus.Publish(NewGameStartedEvent("g1", 2, 54))
	assert.Empty(t, first.received)
	assert.Len(t, second.received, 1)
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	bus := NewEventBus()
	sub := &stubSubscriber{id: "temp", all: true}
	bus.Subscribe(sub)
	bus.Publish(NewGameStartedEvent("g1", 2, 54))
	bus.Unsubscribe("temp")
	bus.Publish(NewGameStartedEvent("g1", 2, 54))

	assert.Len(t, sub.received, 1)
	assert.Equal(t, 0, bus.SubscriberCount())
}

func TestSubscribeFuncFiltersByType(t *testing.T) {
	bus := NewEventBus()
	var got []Event
	handlerID := bus.SubscribeFunc(TypeTilePlaced, func(e Event) {
		got = append(got, e)
	})
	assert.NotEmpty(t, handlerID)

	bus.Publish(NewGameStartedEvent("g1", 2, 54))
	bus.Publish(NewTilePlacedEvent("g1", 1, slotKey(0), "monastery", gridPos(0, 0), nil))

	require.Len(t, got, 1)
	assert.Equal(t, TypeTilePlaced, got[0].Type())
}

func TestPanickingSubscriberIsContained(t *testing.T) {
	bus := NewEventBus()
	bus.Subscribe(&stubSubscriber{id: "bomb", all: true, panics: true})
	healthy := &stubSubscriber{id: "healthy", all: true}
	bus.Subscribe(healthy)

	assert.NotPanics(t, func() {
		bus.Publish(NewGameStartedEvent("g1", 2, 54))
	})
	assert.Len(t, healthy.received, 1, "one bad subscriber must not starve the rest")
}

func TestBaseEventAccessors(t *testing.T) {
	e := NewGroupScoredEvent("g7", slotKey(3), 8, nil)
	assert.Equal(t, TypeGroupScored, e.Type())
	assert.Equal(t, "g7", e.GameID())
	assert.False(t, e.Timestamp().IsZero())
}
