// Package cache keeps hot read-path counters in Redis. Everything here is
// best-effort: a cache failure falls back to the database and is never
// surfaced to the caller.
package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const pendingTTL = 5 * time.Minute

// PendingCounts caches the per-user pending-match badge. A nil
// *PendingCounts is a valid no-op instance, mirroring how the rest of the
// service treats optional collaborators.
type PendingCounts struct {
	rdb *redis.Client
}

func NewPendingCounts(addr, password string) *PendingCounts {
	if addr == "" {
		return nil
	}
	return &PendingCounts{
		rdb: redis.NewClient(&redis.Options{Addr: addr, Password: password}),
	}
}

func key(userID string) string {
	return fmt.Sprintf("tripmatch:pending:%s", userID)
}

// Get returns (count, true) on a hit.
func (c *PendingCounts) Get(ctx context.Context, userID string) (int64, bool) {
	if c == nil {
		return 0, false
	}
	v, err := c.rdb.Get(ctx, key(userID)).Result()
	if err != nil {
		return 0, false
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func (c *PendingCounts) Set(ctx context.Context, userID string, count int64) {
	if c == nil {
		return
	}
	c.rdb.Set(ctx, key(userID), count, pendingTTL)
}

// Invalidate drops the cached badge after any match transition that could
// change it.
func (c *PendingCounts) Invalidate(ctx context.Context, userID string) {
	if c == nil {
		return
	}
	c.rdb.Del(ctx, key(userID))
}

func (c *PendingCounts) Close() {
	if c == nil {
		return
	}
	c.rdb.Close()
}
