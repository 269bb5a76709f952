package chat

import (
	"context"
	"fmt"
	"strings"

	"tripmate/models"
	"tripmate/services/events"
	"tripmate/services/itinerary"
	"tripmate/utils"

	"go.uber.org/zap"
)

const pushTitle = "Your trip assistant replied"

// IngestReply stores an assistant answer and completes the pending request. Replies that
// arrive after a timeout are still accepted.
func (s *DefaultChatService) IngestReply(ctx context.Context, reply models.AssistantReply) (*models.ChatMessage, error) {
	if reply.UserID == "" || reply.ItineraryID == "" {
		return nil, fmt.Errorf("reply names no itinerary: %w", utils.ErrValidation)
	}
	uid, itineraryID := reply.UserID, reply.ItineraryID
	logger := utils.GetLogger().With(zap.String("user_id", uid), zap.String("itinerary_id", itineraryID))

	unlock := s.locks.lock(uid + "/" + itineraryID)
	defer unlock()

	rec, err := s.Repo.Get(ctx, uid, itineraryID)
	if err != nil {
		return nil, err
	}
	now := s.now()

	msg := models.ChatMessage{
		Sender:      models.SenderAgent,
		MessageType: models.MessageTypeText,
		Message:     reply.Response,
		Timestamp:   models.Timestamp(now),
	}
	if reply.ItineraryCreated() {
		msg.ActivityType = models.ActivityItinerary
		msg.ActivityObject = itineraryID
	}
	key, err := s.Repo.PushMessage(ctx, uid, itineraryID, msg)
	if err != nil {
		return nil, err
	}
	msg.ID = key

	stateChanged := false
	if len(reply.State) > 0 {
		patch := make(map[string]any, len(reply.State))
		for k, v := range reply.State {
			patch[k] = v
		}
		patch["itinerary_created"] = false
		merged, err := itinerary.MergeState(rec.State, patch)
		if err != nil {
			logger.Warn("assistant state rejected", zap.Error(err))
		} else if err := s.Repo.PutState(ctx, uid, itineraryID, merged); err != nil {
			logger.Error("failed to store assistant state", zap.Error(err))
		} else {
			stateChanged = true
		}
	}

	if reply.CorrelationID != "" && reply.CorrelationID != rec.Reply.RequestID {
		logger.Debug("reply does not match the pending request",
			zap.String("correlation_id", reply.CorrelationID), zap.String("request_id", rec.Reply.RequestID))
	}
	status := rec.Reply.Effective(now).Complete(now)
	if err := s.Repo.SetReply(ctx, uid, itineraryID, status); err != nil {
		return nil, fmt.Errorf("reply stored, reply state not updated: %w", err)
	}

	s.publish(ctx, events.Event{Type: events.EventTypeMessage, UserID: uid, ItineraryID: itineraryID, Message: &msg})
	if stateChanged {
		s.publish(ctx, events.Event{Type: events.EventTypeState, UserID: uid, ItineraryID: itineraryID})
	}
	s.publish(ctx, events.Event{Type: events.EventTypeTyping, UserID: uid, ItineraryID: itineraryID, Reply: &status})

	if s.Pusher != nil {
		data := map[string]string{"type": "chat_reply", "itinerary_id": itineraryID}
		if err := s.Pusher.SendUserPushNotification(ctx, uid, pushTitle, preview(reply.Response), data); err != nil {
			logger.Warn("reply push failed", zap.Error(err))
		}
	}
	return &msg, nil
}

// Expire times out the request identified by requestID. It reports false, without writing,
// when that request is no longer the pending one.
func (s *DefaultChatService) Expire(ctx context.Context, uid, itineraryID, requestID string) (bool, error) {
	unlock := s.locks.lock(uid + "/" + itineraryID)
	defer unlock()

	rec, err := s.Repo.Get(ctx, uid, itineraryID)
	if err != nil {
		return false, err
	}
	status, ok := rec.Reply.Expire(requestID, s.now())
	if !ok {
		return false, nil
	}
	if err := s.Repo.SetReply(ctx, uid, itineraryID, status); err != nil {
		return false, err
	}
	utils.GetLogger().Info("assistant reply timed out",
		zap.String("user_id", uid), zap.String("itinerary_id", itineraryID), zap.String("request_id", requestID))
	s.publish(ctx, events.Event{Type: events.EventTypeTyping, UserID: uid, ItineraryID: itineraryID, Reply: &status})
	return true, nil
}

// ReplyStatus reports the reply state as of now; a lapsed deadline reads as timed out even
// before any worker recorded it.
func (s *DefaultChatService) ReplyStatus(ctx context.Context, uid, itineraryID string) (models.ReplyStatus, error) {
	rec, err := s.Repo.Get(ctx, uid, itineraryID)
	if err != nil {
		return models.ReplyStatus{}, err
	}
	return rec.Reply.Effective(s.now()), nil
}

func preview(text string) string {
	text = strings.TrimSpace(text)
	r := []rune(text)
	if len(r) > 120 {
		return string(r[:117]) + "..."
	}
	return text
}
