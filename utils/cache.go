// File: utils/cache.go
package utils

import (
	"context"
	"fmt"
	"time"

	"tripmate/config"

	"github.com/go-redis/redis/v8"
)

var (
	// CacheClient holds the catalog cache and the assistant results queue.
	CacheClient *redis.Client
	// EventsClient carries itinerary pub/sub traffic.
	EventsClient *redis.Client
)

// NewRedisClient connects to the configured Redis server on the given DB and pings it.
func NewRedisClient(db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis db %d: %w", db, err)
	}
	return client, nil
}

// InitRedis initializes the cache and events clients.
func InitRedis() error {
	var err error
	if CacheClient, err = NewRedisClient(config.AppConfig.RedisCacheDB); err != nil {
		return fmt.Errorf("failed to connect to Redis (Cache): %w", err)
	}
	if EventsClient, err = NewRedisClient(config.AppConfig.RedisEventsDB); err != nil {
		return fmt.Errorf("failed to connect to Redis (Events): %w", err)
	}
	return nil
}

// CloseRedis closes whichever clients were opened.
func CloseRedis() {
	for _, c := range []*redis.Client{CacheClient, EventsClient} {
		if c != nil {
			_ = c.Close()
		}
	}
}
