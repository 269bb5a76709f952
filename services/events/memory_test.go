package events

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receive(t *testing.T, ch <-chan Event) Event {
	t.Helper()
	select {
	case evt, ok := <-ch:
		require.True(t, ok, "channel closed")
		return evt
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}
	return Event{}
}

func TestHubRoutesByItinerary(t *testing.T) {
	hub := NewHub()
	ctx := context.Background()

	a, cancelA, err := hub.Subscribe(ctx, "u1", "it1")
	require.NoError(t, err)
	defer cancelA()
	b, cancelB, err := hub.Subscribe(ctx, "u1", "it2")
	require.NoError(t, err)
	defer cancelB()

	require.NoError(t, hub.Publish(ctx, Event{Type: EventTypeTyping, UserID: "u1", ItineraryID: "it1", Typing: true}))

	evt := receive(t, a)
	assert.Equal(t, EventTypeTyping, evt.Type)
	assert.True(t, evt.Typing)
	assert.False(t, evt.Timestamp.IsZero())

	select {
	case evt := <-b:
		t.Fatalf("unexpected event on other itinerary: %+v", evt)
	default:
	}
}

func TestHubCancelClosesChannel(t *testing.T) {
	hub := NewHub()
	ctx, cancelCtx := context.WithCancel(context.Background())

	ch, cancel, err := hub.Subscribe(ctx, "u1", "it1")
	require.NoError(t, err)
	cancelCtx()

	select {
	case _, ok := <-ch:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("channel not closed after context cancel")
	}
	cancel() // second release is a no-op
	assert.NoError(t, hub.Publish(context.Background(), Event{UserID: "u1", ItineraryID: "it1"}))
}

func TestHubDropsForSlowSubscriber(t *testing.T) {
	hub := NewHub()
	ch, cancel, err := hub.Subscribe(context.Background(), "u1", "it1")
	require.NoError(t, err)
	defer cancel()

	for i := 0; i < subscriberBuffer+5; i++ {
		require.NoError(t, hub.Publish(context.Background(), Event{Type: EventTypeMessage, UserID: "u1", ItineraryID: "it1"}))
	}
	assert.Len(t, ch, subscriberBuffer)
}

func TestStatePublisher(t *testing.T) {
	hub := NewHub()
	ch, cancel, err := hub.Subscribe(context.Background(), "u1", "it1")
	require.NoError(t, err)
	defer cancel()

	StatePublisher{Broker: hub}.PublishState(context.Background(), "u1", "it1")
	assert.Equal(t, EventTypeState, receive(t, ch).Type)

	StatePublisher{}.PublishState(context.Background(), "u1", "it1")
}
