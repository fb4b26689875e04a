package cache

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const statusKeyFormat = "pix:charge:%s:status"
const statusTTL = 10 * time.Minute

// StatusCache is an optional Redis read-through cache for charge status polls.
// Only terminal statuses are cached: they never change again, so a hit can
// skip the provider fetch without risking staleness, while pending charges
// always go to the provider. All methods are nil-receiver safe so the wiring
// can simply skip construction when REDIS_ADDR is unset.
type StatusCache struct {
	rdb *redis.Client
}

func NewStatusCache(addr string) *StatusCache {
	if addr == "" {
		return nil
	}
	log.Printf("[pix][cache] redis status cache enabled addr=%s", addr)
	return &StatusCache{rdb: redis.NewClient(&redis.Options{Addr: addr})}
}

func (c *StatusCache) Get(ctx context.Context, id string) (string, bool) {
	if c == nil || c.rdb == nil {
		return "", false
	}
	status, err := c.rdb.Get(ctx, fmt.Sprintf(statusKeyFormat, id)).Result()
	if err != nil {
		return "", false
	}
	return status, true
}

func (c *StatusCache) Set(ctx context.Context, id, status string) {
	if c == nil || c.rdb == nil {
		return
	}
	if err := c.rdb.Set(ctx, fmt.Sprintf(statusKeyFormat, id), status, statusTTL).Err(); err != nil {
		log.Printf("[pix][cache] set failed payment_id=%s err=%v", id, err)
	}
}
