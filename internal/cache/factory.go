package cache

import (
	"log/slog"

	"github.com/caseflow-hq/caseflow-api/internal/platform/broker"
)

// New selects the cache implementation once at startup: a reachable broker
// gets the Redis store, otherwise the no-op shim. Mirrors the queue factory
// so no call site ever checks broker state.
func New(conn *broker.Connection, logger *slog.Logger) Store {
	if !conn.Available() {
		logger.Warn("cache disabled for process lifetime, broker unreachable")
		return NewNoopStore()
	}
	return NewRedisStore(conn.Client(), logger)
}
