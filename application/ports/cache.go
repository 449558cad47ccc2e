package ports

import (
	"context"
	"errors"
)

// ErrCacheMiss signals that a key is absent or expired. It never crosses the
// service boundary; a miss always falls back to the persistence gateway.
var ErrCacheMiss = errors.New("cache miss")

// Cache is the read-through side cache. Values are stored as serialized
// snapshots of read responses and expire after a process-wide TTL. The cache
// is never authoritative: callers must treat every miss as "go re-read".
type Cache interface {
	// Get deserializes the value under key into dest, or returns ErrCacheMiss.
	Get(ctx context.Context, key string, dest any) error

	// Set serializes value and stores it under key with the configured TTL.
	Set(ctx context.Context, key string, value any) error

	// Exists reports whether key currently holds an unexpired value.
	Exists(ctx context.Context, key string) bool

	// Clear removes a single key.
	Clear(ctx context.Context, key string) error

	// ClearPrefix removes every key sharing the given prefix.
	ClearPrefix(ctx context.Context, prefix string) error

	// ClearAll drops the whole cache.
	ClearAll(ctx context.Context) error
}
