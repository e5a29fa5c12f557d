package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"backend/pkg/apperr"

	"github.com/redis/go-redis/v9"
)

const checkoutLockTTL = 30 * time.Second

// CheckoutLocker serializes checkout and payment finalization per
// user. With redis it takes a SETNX lock so concurrent requests across
// instances cannot both consume the same cart; without redis it
// degrades to per-user in-process mutexes, which still covers a
// single-instance deployment.
type CheckoutLocker struct {
	Redis *redis.Client

	mu    sync.Mutex
	local map[uint]*sync.Mutex
}

func NewCheckoutLocker(rdb *redis.Client) *CheckoutLocker {
	return &CheckoutLocker{Redis: rdb, local: make(map[uint]*sync.Mutex)}
}

// Acquire returns a release func, or Conflict when another checkout
// for the same user is in flight.
func (l *CheckoutLocker) Acquire(ctx context.Context, userID uint) (func(), error) {
	if l.Redis != nil {
		key := fmt.Sprintf("lock:checkout:%d", userID)
		ok, err := l.Redis.SetNX(ctx, key, "1", checkoutLockTTL).Result()
		if err == nil {
			if !ok {
				return nil, apperr.Wrap(apperr.ErrConflict, "checkout already in progress")
			}
			return func() { l.Redis.Del(context.Background(), key) }, nil
		}
		// redis hiccup: fall through to the local lock
	}

	l.mu.Lock()
	m, ok := l.local[userID]
	if !ok {
		m = &sync.Mutex{}
		l.local[userID] = m
	}
	l.mu.Unlock()

	if !m.TryLock() {
		return nil, apperr.Wrap(apperr.ErrConflict, "checkout already in progress")
	}
	return m.Unlock, nil
}
