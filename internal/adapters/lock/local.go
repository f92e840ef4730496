package lock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/apperrors"
	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/core/ports/gateways"
)

// LocalLocker serializes work per key inside one process. It is used when no
// Redis is configured, e.g. a single API instance or the CLI.
type LocalLocker struct {
	mu   sync.Mutex
	held map[string]chan struct{}
	wait time.Duration
}

var _ gateways.Locker = (*LocalLocker)(nil)

// NewLocalLocker creates an in-process locker. wait is how long callers queue behind a holder.
func NewLocalLocker(wait time.Duration) *LocalLocker {
	return &LocalLocker{held: make(map[string]chan struct{}), wait: wait}
}

// Obtain blocks until key is free, the wait elapses or ctx is done. ttl is not
// enforced locally; the holder always releases.
func (l *LocalLocker) Obtain(ctx context.Context, key string, _ time.Duration) (func(context.Context) error, error) {
	timer := time.NewTimer(l.wait)
	defer timer.Stop()

	for {
		l.mu.Lock()
		ch, busy := l.held[key]
		if !busy {
			done := make(chan struct{})
			l.held[key] = done
			l.mu.Unlock()

			var once sync.Once
			return func(context.Context) error {
				once.Do(func() {
					l.mu.Lock()
					delete(l.held, key)
					l.mu.Unlock()
					close(done)
				})
				return nil
			}, nil
		}
		l.mu.Unlock()

		select {
		case <-ch:
		case <-timer.C:
			return nil, fmt.Errorf("%w: %s", apperrors.ErrLockNotObtained, key)
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %s: %v", apperrors.ErrLockNotObtained, key, ctx.Err())
		}
	}
}
