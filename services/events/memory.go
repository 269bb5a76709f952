package events

import (
	"context"
	"sync"
	"time"

	"tripmate/utils"

	"go.uber.org/zap"
)

type subscriber struct {
	ch   chan Event
	once sync.Once
}

// Hub is the in-process Broker used by the memory backend and tests.
type Hub struct {
	mu   sync.RWMutex
	subs map[string]map[*subscriber]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[*subscriber]struct{})}
}

func (h *Hub) Publish(ctx context.Context, evt Event) error {
	if evt.Timestamp.IsZero() {
		evt.Timestamp = time.Now().UTC()
	}
	h.mu.RLock()
	defer h.mu.RUnlock()

	for s := range h.subs[channelName("", evt.UserID, evt.ItineraryID)] {
		// Non-blocking best-effort send.
		select {
		case s.ch <- evt:
		default:
			utils.GetLogger().Warn("dropping event for slow subscriber",
				zap.String("itinerary_id", evt.ItineraryID), zap.String("type", evt.Type))
		}
	}
	return nil
}

func (h *Hub) Subscribe(ctx context.Context, userID, itineraryID string) (<-chan Event, func(), error) {
	key := channelName("", userID, itineraryID)
	s := &subscriber{ch: make(chan Event, subscriberBuffer)}

	h.mu.Lock()
	if h.subs[key] == nil {
		h.subs[key] = make(map[*subscriber]struct{})
	}
	h.subs[key][s] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		s.once.Do(func() {
			h.mu.Lock()
			delete(h.subs[key], s)
			if len(h.subs[key]) == 0 {
				delete(h.subs, key)
			}
			h.mu.Unlock()
			close(s.ch)
		})
	}
	go func() {
		<-ctx.Done()
		cancel()
	}()
	return s.ch, cancel, nil
}
