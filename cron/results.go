package cron

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"tripmate/models"
	"tripmate/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// ReplyIngester stores assistant replies.
type ReplyIngester interface {
	IngestReply(ctx context.Context, reply models.AssistantReply) (*models.ChatMessage, error)
}

// ResultsWorker drains the list the assistant pushes its result envelopes onto.
type ResultsWorker struct {
	client   *redis.Client
	queue    string
	ingester ReplyIngester
	// blockFor bounds one BLPOP so cancellation is noticed promptly.
	blockFor time.Duration
}

func NewResultsWorker(client *redis.Client, queue string, ingester ReplyIngester) *ResultsWorker {
	return &ResultsWorker{client: client, queue: queue, ingester: ingester, blockFor: 5 * time.Second}
}

// Run pops and ingests envelopes until ctx is cancelled.
func (w *ResultsWorker) Run(ctx context.Context) {
	logger := utils.GetLogger().Named("ResultsWorker").With(zap.String("queue", w.queue))
	logger.Info("listening for assistant results")
	backoff := time.Second

	for {
		select {
		case <-ctx.Done():
			logger.Info("results worker stopped")
			return
		default:
		}

		res, err := w.client.BLPop(ctx, w.blockFor, w.queue).Result()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			if ctx.Err() != nil {
				continue
			}
			logger.Warn("BLPOP failed", zap.Error(err), zap.Duration("backoff", backoff))
			select {
			case <-ctx.Done():
			case <-time.After(backoff):
			}
			backoff = min(backoff*2, 30*time.Second)
			continue
		}
		backoff = time.Second

		// BLPOP returns [key, value].
		if len(res) != 2 {
			continue
		}
		w.Handle(ctx, []byte(res[1]))
	}
}

// Handle ingests one raw envelope. Undecodable envelopes and envelopes naming no chat are
// logged and dropped.
func (w *ResultsWorker) Handle(ctx context.Context, raw []byte) {
	logger := utils.GetLogger().Named("ResultsWorker")

	var env models.AgentResult
	if err := json.Unmarshal(raw, &env); err != nil {
		logger.Warn("dropping undecodable result", zap.Error(err))
		return
	}
	reply, ok := env.Reply()
	if !ok {
		logger.Warn("dropping result without user or itinerary", zap.String("correlation_id", env.Header.CorrelationID))
		return
	}
	if _, err := w.ingester.IngestReply(ctx, reply); err != nil {
		logger.Error("failed to ingest assistant reply",
			zap.String("user_id", reply.UserID), zap.String("itinerary_id", reply.ItineraryID), zap.Error(err))
	}
}
