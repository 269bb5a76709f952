package catalogRepo

import (
	"context"
	"encoding/json"
	"time"

	"tripmate/models"
	"tripmate/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// CachedCatalogRepo fronts another catalog with a Redis read-through cache.
type CachedCatalogRepo struct {
	next   CatalogRepository
	client *redis.Client
	ttl    time.Duration
}

func NewCachedCatalogRepo(next CatalogRepository, client *redis.Client, ttl time.Duration) *CachedCatalogRepo {
	return &CachedCatalogRepo{next: next, client: client, ttl: ttl}
}

func cacheKey(t models.ActivityType, id string) string {
	return utils.CatalogCachePrefix + string(t) + ":" + id
}

func (r *CachedCatalogRepo) Get(ctx context.Context, t models.ActivityType, id string) (*models.Detail, error) {
	key := cacheKey(t, id)
	data, err := r.client.Get(ctx, key).Bytes()
	if err == nil {
		var d models.Detail
		if err := json.Unmarshal(data, &d); err == nil {
			return &d, nil
		}
	} else if err != redis.Nil {
		utils.GetLogger().Warn("catalog cache read failed", zap.String("key", key), zap.Error(err))
	}

	d, err := r.next.Get(ctx, t, id)
	if err != nil {
		return nil, err
	}
	if b, err := json.Marshal(d); err == nil {
		if err := r.client.Set(ctx, key, b, r.ttl).Err(); err != nil {
			utils.GetLogger().Warn("catalog cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return d, nil
}

// Invalidate drops the cached document of t and id.
func (r *CachedCatalogRepo) Invalidate(ctx context.Context, t models.ActivityType, id string) error {
	return r.client.Del(ctx, cacheKey(t, id)).Err()
}
