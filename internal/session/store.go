package session

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// ErrNotFound is returned for unknown or expired session tokens.
var ErrNotFound = errors.New("session not found")

// Store maps opaque session tokens to user ids. Sessions carry a fixed
// absolute TTL from creation; there is no sliding renewal.
type Store interface {
	Create(ctx context.Context, userID string) (string, error)
	Get(ctx context.Context, token string) (string, error)
	Destroy(ctx context.Context, token string) error
}

const keyPrefix = "session:"

// RedisStore keeps sessions in Redis so they survive restarts and can be
// shared across instances.
type RedisStore struct {
	c   *redis.Client
	ttl time.Duration
}

func NewRedisStore(c *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{c: c, ttl: ttl}
}

func (s *RedisStore) Create(ctx context.Context, userID string) (string, error) {
	token := uuid.NewString()
	if err := s.c.Set(ctx, keyPrefix+token, userID, s.ttl).Err(); err != nil {
		return "", err
	}
	return token, nil
}

func (s *RedisStore) Get(ctx context.Context, token string) (string, error) {
	userID, err := s.c.Get(ctx, keyPrefix+token).Result()
	if err != nil {
		if err == redis.Nil {
			return "", ErrNotFound
		}
		return "", err
	}
	return userID, nil
}

func (s *RedisStore) Destroy(ctx context.Context, token string) error {
	return s.c.Del(ctx, keyPrefix+token).Err()
}
