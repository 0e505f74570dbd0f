package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "chatrelay:ratelimit:"

// RedisStore is a fixed-window store shared across replicas. The key expiry
// is set only when the window opens, so the window stays anchored at the
// client's first request like MemoryStore.
type RedisStore struct {
	client *redis.Client
	limit  int
	window time.Duration
}

// NewRedisStore connects to Redis and returns a shared fixed-window store.
func NewRedisStore(redisURL string, limit int, window time.Duration) (*RedisStore, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if window <= 0 {
		window = DefaultWindow
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisStore{client: client, limit: limit, window: window}, nil
}

// Allow counts a request for clientID.
func (s *RedisStore) Allow(ctx context.Context, clientID string) (bool, error) {
	key := redisKeyPrefix + clientID

	count, err := s.client.Incr(ctx, key).Result()
	if err != nil {
		return false, err
	}
	if count == 1 {
		if err := s.client.PExpire(ctx, key, s.window).Err(); err != nil {
			return false, err
		}
	}

	return count <= int64(s.limit), nil
}

// Ping checks if Redis is reachable.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
