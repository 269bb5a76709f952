package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"tripmate/config"
	"tripmate/models"
	"tripmate/services/notification"
	"tripmate/services/tasks"
	"tripmate/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// ReplyExpirer times out a pending reply request.
type ReplyExpirer interface {
	Expire(ctx context.Context, uid, itineraryID, requestID string) (bool, error)
}

// RedisQueueOpt is the asynq connection shared by the worker and the enqueueing client.
func RedisQueueOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// NewChatMux routes chat tasks to their handlers.
func NewChatMux(notifier notification.ChatNotifier, expirer ReplyExpirer) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeChatNotify, handleChatNotifyTask(notifier, expirer))
	mux.HandleFunc(tasks.TypeReplyTimeout, handleReplyTimeoutTask(expirer))
	return mux
}

// InitChatWorker runs the chat task worker in background until ctx is cancelled.
func InitChatWorker(ctx context.Context, notifier notification.ChatNotifier, expirer ReplyExpirer) {
	logger := utils.GetLogger().Named("ChatWorker")
	srv := asynq.NewServer(
		RedisQueueOpt(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
			Logger: logger.Sugar(),
		},
	)
	mux := NewChatMux(notifier, expirer)

	// Start async worker with retry logic
	go func() {
		logger.Info("Starting async worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Start(mux); err != nil {
				logger.Error("failed to start worker", zap.Int("attempt", attempts), zap.Int("max_attempts", maxAttempts), zap.Error(err))
				if attempts == maxAttempts {
					logger.Error("max retry attempts reached, chat tasks will not be processed")
					return
				}
				select {
				case <-ctx.Done():
					return
				case <-time.After(time.Duration(attempts*2) * time.Second):
				}
				continue
			}
			<-ctx.Done()
			srv.Shutdown()
			logger.Info("worker stopped")
			return
		}
	}()
}

func handleChatNotifyTask(notifier notification.ChatNotifier, expirer ReplyExpirer) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var n models.ChatNotification
		if err := json.Unmarshal(task.Payload(), &n); err != nil {
			return fmt.Errorf("invalid chat notify payload: %v: %w", err, asynq.SkipRetry)
		}

		err := notifier.NotifyChat(ctx, n)
		if err == nil {
			return nil
		}
		logger := utils.GetLogger().With(zap.String("user_id", n.UserID), zap.String("itinerary_id", n.ItineraryID))
		retried, okRetry := asynq.GetRetryCount(ctx)
		maxRetry, okMax := asynq.GetMaxRetry(ctx)
		logger.Warn("chat notification attempt failed", zap.Int("retry", retried), zap.Int("max_retry", maxRetry), zap.Error(err))

		// Outside a worker there is no retry budget, so every failure is the last one.
		final := !okRetry || !okMax || retried >= maxRetry
		if final && n.RequestID != "" {
			// Final attempt: nobody will answer, so stop showing the assistant as typing.
			if _, xerr := expirer.Expire(ctx, n.UserID, n.ItineraryID, n.RequestID); xerr != nil {
				logger.Error("failed to time out reply after final notify attempt", zap.Error(xerr))
			}
		}
		return err
	}
}

func handleReplyTimeoutTask(expirer ReplyExpirer) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ReplyTimeout
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			return fmt.Errorf("invalid reply timeout payload: %v: %w", err, asynq.SkipRetry)
		}
		expired, err := expirer.Expire(ctx, p.UserID, p.ItineraryID, p.RequestID)
		if err != nil {
			return err
		}
		utils.GetLogger().Debug("reply timeout checked",
			zap.String("itinerary_id", p.ItineraryID), zap.String("request_id", p.RequestID), zap.Bool("expired", expired))
		return nil
	}
}
