// Package cache holds the redis read-through cache for availability
// responses. Availability is recomputed from the whole active ledger on
// every read, so editions under load get a short-TTL cached copy that is
// dropped on every booking transition.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

type AvailabilityCache struct {
	client *redis.Client
	ttl    time.Duration
}

// New wraps a redis client. A nil client disables caching entirely; every
// method becomes a no-op so callers never need to branch.
func New(client *redis.Client, ttl time.Duration) *AvailabilityCache {
	return &AvailabilityCache{client: client, ttl: ttl}
}

func key(edition string, duration int) string {
	return fmt.Sprintf("availability:%s:%d", edition, duration)
}

// Get unmarshals a cached availability payload into dest, reporting
// whether a usable entry was found. Cache errors are treated as misses.
func (c *AvailabilityCache) Get(ctx context.Context, edition string, duration int, dest any) bool {
	if c == nil || c.client == nil {
		return false
	}
	raw, err := c.client.Get(ctx, key(edition, duration)).Bytes()
	if err != nil {
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false
	}
	return true
}

func (c *AvailabilityCache) Set(ctx context.Context, edition string, duration int, value any) {
	if c == nil || c.client == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key(edition, duration), raw, c.ttl).Err(); err != nil {
		log.Printf("[Cache] set %s: %v", key(edition, duration), err)
	}
}

// Invalidate drops every cached duration for the edition. Called after
// each reservation transition and venue mutation; failure only means a
// stale read until the TTL runs out.
func (c *AvailabilityCache) Invalidate(ctx context.Context, edition string) {
	if c == nil || c.client == nil {
		return
	}
	pattern := fmt.Sprintf("availability:%s:*", edition)
	keys, err := c.client.Keys(ctx, pattern).Result()
	if err != nil {
		log.Printf("[Cache] scan %s: %v", pattern, err)
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		log.Printf("[Cache] del %s: %v", pattern, err)
	}
}
