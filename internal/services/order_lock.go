package services

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// OrderLocker serializes flows per order id so that two concurrent
// checkout submissions for the same order cannot both reach the backend.
// With no redis client configured it degrades to a no-op and the service
// behaves like the original single-attempt integration.
type OrderLocker struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewOrderLocker creates a locker. rdb may be nil.
func NewOrderLocker(rdb *redis.Client, ttl time.Duration) *OrderLocker {
	return &OrderLocker{rdb: rdb, ttl: ttl}
}

// TryLock attempts to take the per-order lock. The TTL bounds how long a
// crashed flow can hold an order hostage.
func (l *OrderLocker) TryLock(ctx context.Context, orderID string) (bool, error) {
	if l.rdb == nil {
		return true, nil
	}
	return l.rdb.SetNX(ctx, "orderlock:"+orderID, "1", l.ttl).Result()
}

// Unlock releases the per-order lock.
func (l *OrderLocker) Unlock(ctx context.Context, orderID string) {
	if l.rdb == nil {
		return
	}
	l.rdb.Del(ctx, "orderlock:"+orderID)
}
