package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis — ограничитель с фиксированным окном в Redis: INCR + EXPIRE NX
// в одной транзакции, окно начинается с первой попытки.
type Redis struct {
	rdb    *redis.Client
	prefix string
	limit  int
	window time.Duration
}

// NewRedis создаёт клиент Redis из URL (например, redis://:pass@host:6379/0).
// Если prefix пустой — используется "feed:login:".
func NewRedis(ctx context.Context, redisURL, prefix string, limit int, window time.Duration) (*Redis, error) {
	const op = "ratelimit/NewRedis"

	if prefix == "" {
		prefix = "feed:login:"
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rdb := redis.NewClient(opt)

	// Fail-fast на старте.
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Redis{rdb: rdb, prefix: prefix, limit: limit, window: window}, nil
}

func (r *Redis) Allow(ctx context.Context, key string) (bool, error) {
	const op = "ratelimit/Redis.Allow"

	k := r.prefix + key

	pipe := r.rdb.TxPipeline()
	incr := pipe.Incr(ctx, k)
	pipe.ExpireNX(ctx, k, r.window)

	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return incr.Val() <= int64(r.limit), nil
}

func (r *Redis) Close() error { return r.rdb.Close() }

var _ Limiter = (*Redis)(nil)
