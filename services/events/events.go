package events

import (
	"context"
	"time"

	"tripmate/models"
)

// Event types streamed to itinerary subscribers.
const (
	EventTypeMessage = "message"
	EventTypeTyping  = "typing"
	EventTypeState   = "state"
)

// Event is one change of an itinerary chat, as broadcast to subscribers.
type Event struct {
	Type        string              `json:"type"`
	UserID      string              `json:"user_id"`
	ItineraryID string              `json:"itinerary_id"`
	Message     *models.ChatMessage `json:"message,omitempty"`
	Typing      bool                `json:"typing"`
	Reply       *models.ReplyStatus `json:"reply,omitempty"`
	Timestamp   time.Time           `json:"timestamp"`
}

// Broker fans itinerary events out to subscribers. The returned cancel func releases the
// subscription and closes its channel; it is safe to call more than once.
type Broker interface {
	Publish(ctx context.Context, evt Event) error
	Subscribe(ctx context.Context, userID, itineraryID string) (<-chan Event, func(), error)
}

func channelName(prefix, userID, itineraryID string) string {
	return prefix + userID + ":" + itineraryID
}

// subscriberBuffer bounds how far a slow subscriber may lag before events are dropped.
const subscriberBuffer = 32
