package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisRateLimitStore implements RateLimitStore on Redis so limits hold
// across replicas. Uses a fixed-window counter per key (INCR + EXPIRE).
// Fails open: if Redis is unreachable the request is allowed and the error
// counted, so a cache outage never takes recommendations down with it.
type RedisRateLimitStore struct {
	client  *redis.Client
	metrics *Metrics
}

// NewRedisRateLimitStore creates a Redis-backed rate limit store.
// metrics may be nil.
func NewRedisRateLimitStore(client *redis.Client, metrics *Metrics) *RedisRateLimitStore {
	return &RedisRateLimitStore{client: client, metrics: metrics}
}

// Allow implements RateLimitStore.
func (s *RedisRateLimitStore) Allow(ctx context.Context, key string, config RateLimitConfig) (bool, int) {
	redisKey := "ratelimit:" + key

	count, err := s.client.Incr(ctx, redisKey).Result()
	if err != nil {
		s.failOpen(ctx, err)
		return true, 0
	}
	if count == 1 {
		// First request in this window; start the clock.
		if err := s.client.Expire(ctx, redisKey, config.WindowDuration).Err(); err != nil {
			s.failOpen(ctx, err)
			return true, 0
		}
	}
	if count <= int64(config.RequestsPerWindow) {
		return true, 0
	}

	ttl, err := s.client.TTL(ctx, redisKey).Result()
	if err != nil || ttl <= 0 {
		return false, 1
	}
	retryAfter := int(ttl / time.Second)
	if retryAfter <= 0 {
		retryAfter = 1
	}
	return false, retryAfter
}

func (s *RedisRateLimitStore) failOpen(ctx context.Context, err error) {
	if s.metrics != nil {
		s.metrics.IncRateLimitStoreErrors()
	}
	slog.WarnContext(ctx, "rate limit store unavailable, failing open", "error", err)
}
