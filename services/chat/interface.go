package chat

import (
	"context"
	"sync"
	"time"

	"tripmate/database/repository"
	"tripmate/models"
	"tripmate/services/events"
	"tripmate/services/notification"
)

type ChatService interface {
	Send(ctx context.Context, uid, itineraryID, text string) (*SendResult, error)
	Window(ctx context.Context, uid, itineraryID string, visible int) (*WindowView, error)
	Page(ctx context.Context, uid, itineraryID, before string, limit int) (*Page, error)
	IngestReply(ctx context.Context, reply models.AssistantReply) (*models.ChatMessage, error)
	Expire(ctx context.Context, uid, itineraryID, requestID string) (bool, error)
	ReplyStatus(ctx context.Context, uid, itineraryID string) (models.ReplyStatus, error)
}

// DefaultChatService is the production implementation. Notifier, Timeouts and Pusher are
// optional; without Timeouts deadlines are enforced by in-process timers.
type DefaultChatService struct {
	Repo         repository.ItineraryRepository
	Broker       events.Broker
	Notifier     notification.ChatNotifier
	Timeouts     notification.ReplyTimeoutScheduler
	Pusher       notification.PushNotifier
	ReplyTimeout time.Duration
	// Now is the clock; nil means time.Now.
	Now func() time.Time

	locks    keyedMutex
	inflight sync.WaitGroup
}

// SendResult is the stored user message and the reply request it opened.
type SendResult struct {
	Message models.ChatMessage `json:"message"`
	Reply   models.ReplyStatus `json:"reply"`
}

type keyedMutex struct {
	m sync.Map
}

func (k *keyedMutex) lock(key string) func() {
	v, _ := k.m.LoadOrStore(key, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}
