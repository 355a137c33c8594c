package cache

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned by Get when the key is absent, expired, or
// unreadable. Callers must treat it as "recompute from the source of
// truth", never as "empty".
var ErrCacheMiss = errors.New("cache miss")

// Store is the read-through cache contract. Implementations are RedisStore
// (broker-backed) and NoopStore (degradation shim); both are safe for
// concurrent use.
type Store interface {
	// Get loads the value at key into dest. Returns ErrCacheMiss when the
	// key is absent; a corrupt or undecodable entry is logged and also
	// reported as a miss, never surfaced as an error.
	Get(ctx context.Context, key string, dest any) error

	// Set stores value at key with the given TTL.
	Set(ctx context.Context, key string, value any, ttl time.Duration) error

	// Delete removes the given keys. Missing keys are not an error.
	Delete(ctx context.Context, keys ...string) error

	// DeletePattern removes every key matching the prefix pattern using a
	// non-blocking cursor scan, and returns the number of keys removed.
	// Reserved for full-domain sweeps; tenant invalidation enumerates its
	// keys instead.
	DeletePattern(ctx context.Context, pattern string) (int, error)
}
