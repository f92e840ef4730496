// Package lock provides per-key mutual exclusion for token refreshes and syncs.
package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/apperrors"
	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/core/ports/gateways"
)

const keyPrefix = "flowqi:lock:"

// RedisLocker obtains locks shared by every process connected to the same Redis.
type RedisLocker struct {
	client *redislock.Client
	// wait bounds how long Obtain keeps retrying a held lock.
	wait    time.Duration
	backoff time.Duration
}

var _ gateways.Locker = (*RedisLocker)(nil)

// NewRedisLocker wraps a go-redis client. wait is how long callers queue behind a holder.
func NewRedisLocker(rdb redis.UniversalClient, wait time.Duration) *RedisLocker {
	return &RedisLocker{client: redislock.New(rdb), wait: wait, backoff: 100 * time.Millisecond}
}

// Obtain acquires key for ttl, retrying until the wait elapses.
func (l *RedisLocker) Obtain(ctx context.Context, key string, ttl time.Duration) (func(context.Context) error, error) {
	waitCtx, cancel := context.WithTimeout(ctx, l.wait)
	defer cancel()

	lk, err := l.client.Obtain(waitCtx, keyPrefix+key, ttl, &redislock.Options{
		RetryStrategy: redislock.LinearBackoff(l.backoff),
	})
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrLockNotObtained, key)
	}
	if err != nil {
		return nil, fmt.Errorf("obtain redis lock %s: %w", key, err)
	}

	return func(ctx context.Context) error {
		if err := lk.Release(ctx); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
			return fmt.Errorf("release redis lock %s: %w", key, err)
		}
		return nil
	}, nil
}
