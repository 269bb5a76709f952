package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"tripmate/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// RedisBroker carries events over Redis pub/sub so every instance sees every write.
type RedisBroker struct {
	client *redis.Client
}

func NewRedisBroker(client *redis.Client) *RedisBroker {
	return &RedisBroker{client: client}
}

func (b *RedisBroker) Publish(ctx context.Context, evt Event) error {
	if evt.Timestamp.IsZero() {
		evt.Timestamp = time.Now().UTC()
	}
	data, err := json.Marshal(evt)
	if err != nil {
		return err
	}
	channel := channelName(utils.EventChannelPrefix, evt.UserID, evt.ItineraryID)
	return b.client.Publish(ctx, channel, data).Err()
}

func (b *RedisBroker) Subscribe(ctx context.Context, userID, itineraryID string) (<-chan Event, func(), error) {
	channel := channelName(utils.EventChannelPrefix, userID, itineraryID)
	pubsub := b.client.Subscribe(ctx, channel)
	// Wait for the subscription confirmation so no event published afterwards is missed.
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, nil, fmt.Errorf("subscribe %s: %w", channel, err)
	}

	out := make(chan Event, subscriberBuffer)
	ctx, stop := context.WithCancel(ctx)
	var once sync.Once
	cancel := func() {
		once.Do(func() {
			stop()
			_ = pubsub.Close()
		})
	}

	go func() {
		defer close(out)
		defer cancel()
		msgs := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				var evt Event
				if err := json.Unmarshal([]byte(msg.Payload), &evt); err != nil {
					utils.GetLogger().Warn("failed to unmarshal itinerary event", zap.Error(err))
					continue
				}
				select {
				case out <- evt:
				default:
					utils.GetLogger().Warn("dropping event for slow subscriber", zap.String("channel", channel))
				}
			}
		}
	}()
	return out, cancel, nil
}
