package reward

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const catalogCacheKey = "rewards:catalog:v1"

// CatalogCache stores the ordered catalog between admin writes.
type CatalogCache interface {
	Get(ctx context.Context) ([]Reward, bool)
	Set(ctx context.Context, rewards []Reward)
	Invalidate(ctx context.Context)
}

// RedisCache is a CatalogCache backed by a single JSON value in Redis
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache returns nil when client is nil so callers can skip caching.
func NewRedisCache(client *redis.Client, ttl time.Duration) CatalogCache {
	if client == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &RedisCache{client: client, ttl: ttl}
}

func (c *RedisCache) Get(ctx context.Context) ([]Reward, bool) {
	data, err := c.client.Get(ctx, catalogCacheKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Warn().Err(err).Msg("Reward catalog cache read failed")
		}
		return nil, false
	}

	var rewards []Reward
	if err := json.Unmarshal(data, &rewards); err != nil {
		log.Warn().Err(err).Msg("Reward catalog cache is corrupt")
		return nil, false
	}
	return rewards, true
}

func (c *RedisCache) Set(ctx context.Context, rewards []Reward) {
	data, err := json.Marshal(rewards)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, catalogCacheKey, data, c.ttl).Err(); err != nil {
		log.Warn().Err(err).Msg("Reward catalog cache write failed")
	}
}

func (c *RedisCache) Invalidate(ctx context.Context) {
	if err := c.client.Del(ctx, catalogCacheKey).Err(); err != nil {
		log.Warn().Err(err).Msg("Reward catalog cache invalidation failed")
	}
}
