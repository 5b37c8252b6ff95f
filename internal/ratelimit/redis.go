package ratelimit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// RedisLimiter is a fixed-window counter shared across instances. One INCR
// per request; the first hit in a window arms the expiry.
type RedisLimiter struct {
	rdb    *redis.Client
	limit  int
	window time.Duration
}

func NewRedisLimiter(cfg RedisConfig, limit int, window time.Duration) *RedisLimiter {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})

	return &RedisLimiter{rdb: rdb, limit: limit, window: window}
}

func (l *RedisLimiter) Ping(ctx context.Context) error {
	return l.rdb.Ping(ctx).Err()
}

func (l *RedisLimiter) Close() error {
	return l.rdb.Close()
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	rkey := "ratelimit:" + key

	n, err := l.rdb.Incr(ctx, rkey).Result()

	if err != nil {
		return false, 0, err
	}

	if n == 1 {
		// first hit in this window
		err = l.rdb.Expire(ctx, rkey, l.window).Err()

		if err != nil {
			return false, 0, err
		}
	}

	if n > int64(l.limit) {
		ttl, err := l.rdb.TTL(ctx, rkey).Result()

		if err != nil || ttl < 0 {
			ttl = l.window
		}

		return false, ttl, nil
	}

	return true, 0, nil
}
