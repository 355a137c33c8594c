package cache

import (
	"context"
	"time"
)

// NoopStore is the degradation shim selected when the broker is
// unreachable: every read misses, every write silently succeeds. Callers
// already treat a miss as "recompute", so the system keeps functioning
// without caching.
type NoopStore struct{}

// NewNoopStore creates the no-op cache.
func NewNoopStore() *NoopStore { return &NoopStore{} }

// Get always reports a miss.
func (*NoopStore) Get(context.Context, string, any) error { return ErrCacheMiss }

// Set discards the value.
func (*NoopStore) Set(context.Context, string, any, time.Duration) error { return nil }

// Delete is a no-op.
func (*NoopStore) Delete(context.Context, ...string) error { return nil }

// DeletePattern removes nothing.
func (*NoopStore) DeletePattern(context.Context, string) (int, error) { return 0, nil }
