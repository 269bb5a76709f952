package tasks

import (
	"encoding/json"
	"time"

	"tripmate/models"

	"github.com/hibiken/asynq"
)

const (
	TypeChatNotify   = "chat:notify"
	TypeReplyTimeout = "chat:reply_timeout"
)

// NewChatNotifyTask wraps the outbound assistant call so it is retried at most maxRetry times.
func NewChatNotifyTask(n models.ChatNotification, maxRetry int) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(n)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeChatNotify, b)
	opts := []asynq.Option{asynq.MaxRetry(maxRetry), asynq.Timeout(time.Minute)}

	return task, opts, nil
}

// NewReplyTimeoutTask fires at the reply deadline. One task exists per request id.
func NewReplyTimeoutTask(p models.ReplyTimeout, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeReplyTimeout, b)
	opts := []asynq.Option{
		asynq.ProcessAt(fireAt),
		asynq.TaskID("reply-timeout:" + p.RequestID),
		asynq.MaxRetry(3),
	}

	return task, opts, nil
}
