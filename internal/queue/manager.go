package queue

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/caseflow-hq/caseflow-api/internal/config"
	"github.com/caseflow-hq/caseflow-api/internal/platform/broker"
)

// Manager owns the four logical queues for the process lifetime. It is
// constructed exactly once at startup and injected into every component
// that enqueues or inspects jobs; there is no global queue registry.
type Manager struct {
	queues    map[string]Queue
	client    *asynq.Client
	inspector *asynq.Inspector
	live      bool
	logger    *slog.Logger
}

// NewManager is the single factory that decides, based on the startup
// broker probe, whether the process runs with live queues or with the
// degradation shim. The decision holds for the process lifetime.
func NewManager(conn *broker.Connection, cfg config.WorkerConfig, logger *slog.Logger) *Manager {
	m := &Manager{
		queues: make(map[string]Queue, len(Names())),
		logger: logger.With("component", "queue_manager"),
	}

	policies := map[string]Policy{
		QueueRecomputeStats:   policyFor(cfg.RecomputeStats),
		QueueSendNotification: policyFor(cfg.SendNotification),
		QueueHousekeeping:     policyFor(cfg.Housekeeping),
		QueueProcessUpload:    policyFor(cfg.ProcessUpload),
	}

	if !conn.Available() {
		for _, name := range Names() {
			m.queues[name] = NewDisabledQueue(name, policies[name], logger)
		}
		m.logger.Warn("queues disabled for process lifetime, broker unreachable")
		return m
	}

	m.live = true
	m.client = asynq.NewClient(conn.AsynqOpt())
	m.inspector = asynq.NewInspector(conn.AsynqOpt())
	for _, name := range Names() {
		m.queues[name] = newLiveQueue(name, policies[name], m.client, m.inspector, logger)
	}
	m.logger.Info("queues ready", "queues", Names())
	return m
}

// policyFor derives a queue policy from the pool configuration; retry and
// retention rules stay at their defaults, the execution deadline follows
// the config.
func policyFor(pc config.PoolConfig) Policy {
	p := DefaultPolicy()
	if pc.JobTimeoutSec > 0 {
		p.JobTimeout = time.Duration(pc.JobTimeoutSec) * time.Second
	}
	return p
}

// Live reports whether the manager runs against a reachable broker.
func (m *Manager) Live() bool { return m.live }

// Queue returns the named logical queue.
func (m *Manager) Queue(name string) (Queue, error) {
	q, ok := m.queues[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownQueue, name)
	}
	return q, nil
}

// Enqueue routes one job to the named queue. Unknown queue names are the
// only error; broker unavailability degrades to a skipped handle.
func (m *Manager) Enqueue(ctx context.Context, queueName, jobType string, payload any, opts EnqueueOptions) (*JobHandle, error) {
	q, err := m.Queue(queueName)
	if err != nil {
		return nil, err
	}
	return q.Enqueue(ctx, jobType, payload, opts)
}

// AllStats returns the introspection snapshot for every queue, keyed by
// logical queue name. With the broker down every entry is all zeros.
func (m *Manager) AllStats(ctx context.Context) map[string]Stats {
	out := make(map[string]Stats, len(m.queues))
	for name, q := range m.queues {
		out[name] = q.Stats(ctx)
	}
	return out
}

// TrimAllCompleted enforces the completed-count cap across every queue and
// returns the total number of jobs removed.
func (m *Manager) TrimAllCompleted(ctx context.Context, keep int) (int, error) {
	total := 0
	for _, name := range Names() {
		q := m.queues[name]
		n, err := q.TrimCompleted(ctx, keep)
		total += n
		if err != nil {
			return total, fmt.Errorf("trim %s: %w", name, err)
		}
	}
	return total, nil
}

// TrimAllFailed enforces each queue's failed-retention window and returns
// the total number of archived jobs removed.
func (m *Manager) TrimAllFailed(ctx context.Context) (int, error) {
	total := 0
	for _, name := range Names() {
		q := m.queues[name]
		n, err := q.TrimFailed(ctx, q.Policy().FailedRetention)
		total += n
		if err != nil {
			return total, fmt.Errorf("trim failed %s: %w", name, err)
		}
	}
	return total, nil
}

// Close releases the shared broker clients. No-op in degraded mode.
func (m *Manager) Close() error {
	if !m.live {
		return nil
	}
	if err := m.inspector.Close(); err != nil {
		m.logger.Warn("failed to close inspector", "error", err)
	}
	return m.client.Close()
}
