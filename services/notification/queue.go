package notification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tripmate/models"
	"tripmate/services/tasks"

	"github.com/hibiken/asynq"
)

// QueueNotifier hands chat notifications and reply deadlines to the asynq worker.
type QueueNotifier struct {
	client   *asynq.Client
	maxRetry int
}

func NewQueueNotifier(client *asynq.Client, maxRetry int) *QueueNotifier {
	return &QueueNotifier{client: client, maxRetry: maxRetry}
}

func (q *QueueNotifier) NotifyChat(ctx context.Context, n models.ChatNotification) error {
	task, opts, err := tasks.NewChatNotifyTask(n, q.maxRetry)
	if err != nil {
		return fmt.Errorf("NotifyChat: failed to build task: %w", err)
	}
	if _, err := q.client.EnqueueContext(ctx, task, opts...); err != nil {
		return fmt.Errorf("NotifyChat: failed to enqueue task: %w", err)
	}
	return nil
}

func (q *QueueNotifier) ScheduleReplyTimeout(ctx context.Context, p models.ReplyTimeout, at time.Time) error {
	task, opts, err := tasks.NewReplyTimeoutTask(p, at)
	if err != nil {
		return fmt.Errorf("ScheduleReplyTimeout: failed to build task: %w", err)
	}
	_, err = q.client.EnqueueContext(ctx, task, opts...)
	if errors.Is(err, asynq.ErrTaskIDConflict) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("ScheduleReplyTimeout: failed to enqueue task: %w", err)
	}
	return nil
}
