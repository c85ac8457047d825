package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	domain "recharge-service/internal/domain/plan"
)

// PlanCache defines caching for plan catalog listings.
type PlanCache interface {
	// GetList retrieves a cached plan listing.
	// Returns nil with no error on cache miss.
	GetList(ctx context.Context, activeOnly bool) ([]domain.Plan, error)

	// SetList stores a plan listing with the configured TTL.
	SetList(ctx context.Context, activeOnly bool, plans []domain.Plan) error

	// Invalidate drops all cached listings. Called after any plan mutation.
	Invalidate(ctx context.Context) error
}

// RedisPlanCache implements PlanCache using Redis as the backing store.
type RedisPlanCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

// NewRedisPlanCache creates a new Redis-backed plan cache.
func NewRedisPlanCache(client *redis.Client, ttl time.Duration, log *zap.Logger) PlanCache {
	return &RedisPlanCache{
		client: client,
		ttl:    ttl,
		log:    log,
	}
}

// cacheKey generates a Redis key for a listing variant.
func (c *RedisPlanCache) cacheKey(activeOnly bool) string {
	if activeOnly {
		return "plans:active"
	}
	return "plans:all"
}

// GetList retrieves a plan listing from Redis.
func (c *RedisPlanCache) GetList(ctx context.Context, activeOnly bool) ([]domain.Plan, error) {
	key := c.cacheKey(activeOnly)

	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		// Cache miss - not an error
		c.log.Debug("cache miss", zap.String("key", key))
		return nil, nil
	}
	if err != nil {
		c.log.Error("failed to get from cache", zap.String("key", key), zap.Error(err))
		return nil, err
	}

	var plans []domain.Plan
	if err := json.Unmarshal(data, &plans); err != nil {
		c.log.Error("failed to unmarshal cached plans", zap.String("key", key), zap.Error(err))
		return nil, err
	}

	c.log.Debug("cache hit", zap.String("key", key), zap.Int("count", len(plans)))
	return plans, nil
}

// SetList stores a plan listing in Redis with TTL.
func (c *RedisPlanCache) SetList(ctx context.Context, activeOnly bool, plans []domain.Plan) error {
	key := c.cacheKey(activeOnly)

	data, err := json.Marshal(plans)
	if err != nil {
		c.log.Error("failed to marshal plans for cache", zap.String("key", key), zap.Error(err))
		return err
	}

	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.log.Error("failed to set cache", zap.String("key", key), zap.Error(err))
		return err
	}

	c.log.Debug("cached plan listing", zap.String("key", key), zap.Duration("ttl", c.ttl))
	return nil
}

// Invalidate removes both listing variants from Redis.
func (c *RedisPlanCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, c.cacheKey(true), c.cacheKey(false)).Err(); err != nil {
		c.log.Error("failed to invalidate plan cache", zap.Error(err))
		return err
	}

	c.log.Debug("plan cache invalidated")
	return nil
}
