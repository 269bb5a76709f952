package itineraryRepo

import (
	"context"

	"tripmate/models"
)

// ItineraryRepository is the persistence port of itinerary chats. Implementations return
// utils.ErrNotFound for unknown itineraries.
type ItineraryRepository interface {
	// List returns the user's itineraries ordered by key, messages included.
	List(ctx context.Context, userID string) ([]models.ItineraryRecord, error)
	// Get returns one itinerary with its messages.
	Get(ctx context.Context, userID, itineraryID string) (*models.ItineraryRecord, error)
	// Put writes rec under rec.ID, replacing whatever was stored there.
	Put(ctx context.Context, userID string, rec models.ItineraryRecord) error
	// Create stores rec under a newly generated key and returns it.
	Create(ctx context.Context, userID string, rec models.ItineraryRecord) (string, error)
	// PutState replaces the itinerary state.
	PutState(ctx context.Context, userID, itineraryID string, state models.ItineraryState) error
	// PushMessage appends msg under a new time-ordered key and returns the key.
	PushMessage(ctx context.Context, userID, itineraryID string, msg models.ChatMessage) (string, error)
	// Messages returns the chat of one itinerary ordered by key.
	Messages(ctx context.Context, userID, itineraryID string) ([]models.ChatMessage, error)
	// SetReply stores the reply status together with the typing flag it implies.
	SetReply(ctx context.Context, userID, itineraryID string, reply models.ReplyStatus) error
}
