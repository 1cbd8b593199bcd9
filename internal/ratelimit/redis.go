package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLimiter is a fixed-window limiter backed by Redis INCR. Counters are
// shared across restarts and instances, at the cost of a round trip per check.
type RedisLimiter struct {
	client *redis.Client
	name   string
	limit  int
	window time.Duration
}

// NewRedis creates a limiter scoped by name allowing at most limit requests
// per window per key.
func NewRedis(client *redis.Client, name string, limit int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{client: client, name: name, limit: limit, window: window}
}

// Allow increments the window counter for key and checks the limit. The
// expiry is set when the counter is first created, which starts the window.
func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	redisKey := fmt.Sprintf("ratelimit:%s:%s", l.name, key)

	count, err := l.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return false, err
	}
	if count == 1 {
		if err := l.client.Expire(ctx, redisKey, l.window).Err(); err != nil {
			return false, err
		}
	}
	return count <= int64(l.limit), nil
}
