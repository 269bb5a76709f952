package events

import (
	"context"

	"tripmate/utils"

	"go.uber.org/zap"
)

// StatePublisher announces itinerary state changes on a Broker.
type StatePublisher struct {
	Broker Broker
}

func (p StatePublisher) PublishState(ctx context.Context, userID, itineraryID string) {
	if p.Broker == nil {
		return
	}
	err := p.Broker.Publish(ctx, Event{Type: EventTypeState, UserID: userID, ItineraryID: itineraryID})
	if err != nil {
		utils.GetLogger().Warn("failed to publish state event", zap.String("itinerary_id", itineraryID), zap.Error(err))
	}
}
