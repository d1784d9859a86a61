package database

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// NewRedis creates a Redis client.
// Returns nil when redisURL is empty; every Redis consumer treats nil as "feature off".
func NewRedis(redisURL string) (*redis.Client, error) {
	if redisURL == "" {
		log.Warn().Msg("Redis URL not configured, running without cache, realtime fan-out and rate limits")
		return nil, nil
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	opt.PoolSize = 30
	opt.MinIdleConns = 5
	opt.DialTimeout = 5 * time.Second
	opt.ReadTimeout = 3 * time.Second
	opt.WriteTimeout = 3 * time.Second

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, err
	}

	log.Info().Msg("Connected to Redis")
	return client, nil
}

// CloseRedis closes the Redis connection
func CloseRedis(client *redis.Client) {
	if client == nil {
		return
	}
	if err := client.Close(); err != nil {
		log.Error().Err(err).Msg("Error closing Redis connection")
		return
	}
	log.Info().Msg("Redis connection closed")
}

// Health pings both backends and reports per-dependency status.
func Health(ctx context.Context, db *sqlx.DB, client *redis.Client) map[string]string {
	status := map[string]string{"postgres": "ok", "redis": "disabled"}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if db == nil {
		status["postgres"] = "disabled"
	} else if err := db.PingContext(ctx); err != nil {
		status["postgres"] = "down"
	}

	if client != nil {
		status["redis"] = "ok"
		if err := client.Ping(ctx).Err(); err != nil {
			status["redis"] = "down"
		}
	}
	return status
}
