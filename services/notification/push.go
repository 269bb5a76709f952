package notification

import (
	"context"
	"fmt"

	"tripmate/database/repository"
	"tripmate/utils"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// FCMPushNotifier sends pushes to the FCM token stored on the user profile.
type FCMPushNotifier struct {
	client   *messaging.Client
	profiles repository.ProfileRepository
}

func NewFCMPushNotifier(client *messaging.Client, profiles repository.ProfileRepository) (*FCMPushNotifier, error) {
	if client == nil || profiles == nil {
		return nil, fmt.Errorf("notification service initialization error: messaging client or profile repository is nil")
	}
	return &FCMPushNotifier{client: client, profiles: profiles}, nil
}

// SendUserPushNotification looks up a user's FCM token and sends a push. Users without a
// token are skipped silently.
func (s *FCMPushNotifier) SendUserPushNotification(ctx context.Context, userID, title, body string, data map[string]string) error {
	p, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return fmt.Errorf("SendUserPushNotification: could not find user %s: %w", userID, err)
	}
	if p.FCMToken == "" {
		return nil
	}

	msg := &messaging.Message{
		Token: p.FCMToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID: "high_priority",
				Sound:     "default",
			},
		},
	}

	response, err := s.client.Send(ctx, msg)
	if err != nil {
		return fmt.Errorf("SendUserPushNotification: failed to send FCM message: %w", err)
	}
	utils.GetLogger().Debug("push sent", zap.String("user_id", userID), zap.String("message_id", response))
	return nil
}
