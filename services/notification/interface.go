package notification

import (
	"context"
	"time"

	"tripmate/models"
)

// ChatNotifier delivers the outbound assistant call of one sent message.
type ChatNotifier interface {
	NotifyChat(ctx context.Context, n models.ChatNotification) error
}

// ReplyTimeoutScheduler arranges for a reply deadline check at a given time.
type ReplyTimeoutScheduler interface {
	ScheduleReplyTimeout(ctx context.Context, p models.ReplyTimeout, at time.Time) error
}

// PushNotifier sends device pushes to a user.
type PushNotifier interface {
	SendUserPushNotification(ctx context.Context, userID, title, body string, data map[string]string) error
}
