// Package cache implements the read-through side cache over an in-process
// TTL store. Keys follow the "{kind}:{id}" scheme with the "all" sentinel id
// holding a kind's full listing.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jellydator/ttlcache/v3"

	"menuapi/application/ports"
)

// AllKey is the sentinel id meaning "the full list for this kind".
const AllKey = "all"

// Key builds a cache key from an entity kind and an id (or AllKey).
func Key(kind, id string) string {
	return kind + ":" + id
}

// TTLCache stores JSON-serialized snapshots with a process-wide expiry.
// Safe for concurrent use by all requests; entries are independent key-value
// pairs with no cross-key transaction.
type TTLCache struct {
	items *ttlcache.Cache[string, []byte]
}

var _ ports.Cache = (*TTLCache)(nil)

// NewTTLCache creates a cache whose entries expire after ttl. The expiry
// loop runs until Stop is called.
func NewTTLCache(ttl time.Duration) *TTLCache {
	items := ttlcache.New(
		ttlcache.WithTTL[string, []byte](ttl),
		ttlcache.WithDisableTouchOnHit[string, []byte](),
	)
	go items.Start()

	return &TTLCache{items: items}
}

// Get deserializes the value under key into dest, or returns ErrCacheMiss.
func (c *TTLCache) Get(ctx context.Context, key string, dest any) error {
	item := c.items.Get(key)
	if item == nil {
		return fmt.Errorf("%w: %s", ports.ErrCacheMiss, key)
	}
	return json.Unmarshal(item.Value(), dest)
}

// Set serializes value and stores it under key with the configured TTL.
func (c *TTLCache) Set(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("serialize cache value for %s: %w", key, err)
	}
	c.items.Set(key, data, ttlcache.DefaultTTL)
	return nil
}

// Exists reports whether key currently holds an unexpired value.
func (c *TTLCache) Exists(ctx context.Context, key string) bool {
	return c.items.Has(key)
}

// Clear removes a single key.
func (c *TTLCache) Clear(ctx context.Context, key string) error {
	c.items.Delete(key)
	return nil
}

// ClearPrefix removes every key sharing the given prefix.
func (c *TTLCache) ClearPrefix(ctx context.Context, prefix string) error {
	for _, key := range c.items.Keys() {
		if strings.HasPrefix(key, prefix) {
			c.items.Delete(key)
		}
	}
	return nil
}

// ClearAll drops the whole cache.
func (c *TTLCache) ClearAll(ctx context.Context) error {
	c.items.DeleteAll()
	return nil
}

// Stop terminates the background expiry loop.
func (c *TTLCache) Stop() {
	c.items.Stop()
}
