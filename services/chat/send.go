package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tripmate/models"
	"tripmate/services/events"
	"tripmate/utils"

	"go.uber.org/zap"
)

// notifyTimeout bounds one outbound notification attempt made from a request.
const notifyTimeout = 30 * time.Second

// Send stores a user message and opens a reply request. Whitespace-only text is rejected
// without any write; other text is stored and forwarded as typed. Sending while a reply is
// pending restarts the request.
func (s *DefaultChatService) Send(ctx context.Context, uid, itineraryID, text string) (*SendResult, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("message is empty: %w", utils.ErrValidation)
	}

	unlock := s.locks.lock(uid + "/" + itineraryID)
	defer unlock()

	rec, err := s.Repo.Get(ctx, uid, itineraryID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	msg := models.ChatMessage{
		Sender:      models.SenderUser,
		MessageType: models.MessageTypeText,
		Message:     text,
		Timestamp:   models.Timestamp(now),
	}
	key, err := s.Repo.PushMessage(ctx, uid, itineraryID, msg)
	if err != nil {
		return nil, err
	}
	msg.ID = key

	reply := rec.Reply.Effective(now).Begin(utils.NewRequestID(), now, s.replyTimeout())
	if err := s.Repo.SetReply(ctx, uid, itineraryID, reply); err != nil {
		return nil, fmt.Errorf("message stored, reply state not updated: %w", err)
	}

	s.publish(ctx, events.Event{Type: events.EventTypeMessage, UserID: uid, ItineraryID: itineraryID, Message: &msg, Typing: true})
	s.publish(ctx, events.Event{Type: events.EventTypeTyping, UserID: uid, ItineraryID: itineraryID, Typing: true, Reply: &reply})

	s.scheduleTimeout(ctx, models.ReplyTimeout{UserID: uid, ItineraryID: itineraryID, RequestID: reply.RequestID}, reply.Deadline)
	s.dispatch(ctx, models.ChatNotification{
		UserID:      uid,
		ItineraryID: itineraryID,
		Sender:      models.SenderUser,
		Message:     text,
		Timestamp:   msg.Timestamp,
		RequestID:   reply.RequestID,
	})

	return &SendResult{Message: msg, Reply: reply}, nil
}

// dispatch hands the notification off without blocking the caller. A failed hand-off
// times the request out at once instead of leaving the typing flag up until the deadline.
func (s *DefaultChatService) dispatch(ctx context.Context, n models.ChatNotification) {
	if s.Notifier == nil {
		return
	}
	ctx = context.WithoutCancel(ctx)
	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		nctx, cancel := context.WithTimeout(ctx, notifyTimeout)
		defer cancel()

		if err := s.Notifier.NotifyChat(nctx, n); err != nil {
			utils.GetLogger().Error("chat notification failed",
				zap.String("user_id", n.UserID), zap.String("itinerary_id", n.ItineraryID), zap.Error(err))
			if _, err := s.Expire(ctx, n.UserID, n.ItineraryID, n.RequestID); err != nil {
				utils.GetLogger().Error("failed to time out reply after notification failure", zap.Error(err))
			}
		}
	}()
}

func (s *DefaultChatService) scheduleTimeout(ctx context.Context, p models.ReplyTimeout, at time.Time) {
	if s.Timeouts != nil {
		err := s.Timeouts.ScheduleReplyTimeout(ctx, p, at)
		if err == nil {
			return
		}
		utils.GetLogger().Warn("falling back to local reply timer", zap.String("itinerary_id", p.ItineraryID), zap.Error(err))
	}
	time.AfterFunc(at.Sub(s.now()), func() {
		if _, err := s.Expire(context.Background(), p.UserID, p.ItineraryID, p.RequestID); err != nil {
			utils.GetLogger().Warn("reply timeout check failed", zap.String("itinerary_id", p.ItineraryID), zap.Error(err))
		}
	})
}

// Wait blocks until all outbound notifications started by Send have finished.
func (s *DefaultChatService) Wait() {
	s.inflight.Wait()
}

func (s *DefaultChatService) publish(ctx context.Context, evt events.Event) {
	if s.Broker == nil {
		return
	}
	if err := s.Broker.Publish(ctx, evt); err != nil {
		utils.GetLogger().Warn("failed to publish itinerary event",
			zap.String("itinerary_id", evt.ItineraryID), zap.String("type", evt.Type), zap.Error(err))
	}
}

func (s *DefaultChatService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DefaultChatService) replyTimeout() time.Duration {
	if s.ReplyTimeout > 0 {
		return s.ReplyTimeout
	}
	return utils.DefaultReplyTimeout
}
