package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const refreshKeyPrefix = "refresh:"

// TokenStore keeps hashed refresh tokens
type TokenStore interface {
	Save(ctx context.Context, tokenHash string, userID uuid.UUID, ttl time.Duration) error
	// Consume returns the token's owner and deletes it so it cannot be reused
	Consume(ctx context.Context, tokenHash string) (uuid.UUID, error)
	Delete(ctx context.Context, tokenHash string) error
}

// RedisTokenStore stores refresh tokens in Redis. With a nil client refresh
// tokens are not persisted and every refresh fails.
type RedisTokenStore struct {
	client *redis.Client
}

func NewRedisTokenStore(client *redis.Client) *RedisTokenStore {
	return &RedisTokenStore{client: client}
}

func (s *RedisTokenStore) Save(ctx context.Context, tokenHash string, userID uuid.UUID, ttl time.Duration) error {
	if s.client == nil {
		return nil
	}
	return s.client.Set(ctx, refreshKeyPrefix+tokenHash, userID.String(), ttl).Err()
}

func (s *RedisTokenStore) Consume(ctx context.Context, tokenHash string) (uuid.UUID, error) {
	if s.client == nil {
		return uuid.Nil, ErrInvalidRefreshToken
	}
	val, err := s.client.GetDel(ctx, refreshKeyPrefix+tokenHash).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return uuid.Nil, ErrInvalidRefreshToken
		}
		return uuid.Nil, err
	}
	id, err := uuid.Parse(val)
	if err != nil {
		return uuid.Nil, ErrInvalidRefreshToken
	}
	return id, nil
}

func (s *RedisTokenStore) Delete(ctx context.Context, tokenHash string) error {
	if s.client == nil {
		return nil
	}
	return s.client.Del(ctx, refreshKeyPrefix+tokenHash).Err()
}
