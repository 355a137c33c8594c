// Package broker manages the shared connection to the Redis broker that
// backs both the job queues and the cache. The broker may be unreachable at
// process start; that is detected once, logged, and surfaced through
// Available so the queue and cache factories can select their degraded
// implementations. The process never crashes because the broker is down.
package broker

import (
	"context"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/caseflow-hq/caseflow-api/internal/config"
)

// Connection is the shared handle to the broker. It is created once at
// startup and injected into every component that talks to Redis.
type Connection struct {
	cfg       config.BrokerConfig
	client    *redis.Client
	available bool
	logger    *slog.Logger
}

// Connect builds the Redis client and probes the broker once with a bounded
// timeout. A failed probe does not return an error: it yields a Connection
// with Available() == false, which downstream factories translate into
// no-op queue and cache implementations for the process lifetime.
func Connect(ctx context.Context, cfg config.BrokerConfig, logger *slog.Logger) *Connection {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	probeCtx, cancel := context.WithTimeout(ctx, time.Duration(cfg.ProbeTimeoutSec)*time.Second)
	defer cancel()

	conn := &Connection{
		cfg:    cfg,
		client: client,
		logger: logger.With("component", "broker"),
	}

	if err := client.Ping(probeCtx).Err(); err != nil {
		conn.logger.Warn("broker unreachable, async processing disabled",
			"addr", cfg.Addr,
			"error", err)
		return conn
	}

	conn.available = true
	conn.logger.Info("broker connection established", "addr", cfg.Addr)
	return conn
}

// Available reports whether the startup probe succeeded.
func (c *Connection) Available() bool {
	return c.available
}

// Client returns the shared Redis client used by the cache store.
func (c *Connection) Client() *redis.Client {
	return c.client
}

// AsynqOpt returns the connection options the queue clients and worker
// servers use. All of them share the broker's single address.
func (c *Connection) AsynqOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     c.cfg.Addr,
		Password: c.cfg.Password,
		DB:       c.cfg.DB,
	}
}

// Close releases the underlying Redis client. Safe to call regardless of
// whether the startup probe succeeded.
func (c *Connection) Close() error {
	return c.client.Close()
}
