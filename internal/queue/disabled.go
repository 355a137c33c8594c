package queue

import (
	"context"
	"log/slog"
	"time"
)

// DisabledQueue is the degradation shim: the inert stand-in selected when
// the broker is unreachable at startup. Every operation is a safe no-op so
// the rest of the system keeps functioning without async processing, and no
// call site has to check whether the broker is up.
type DisabledQueue struct {
	name   string
	policy Policy
	logger *slog.Logger
}

// NewDisabledQueue creates the no-op queue for the given name.
func NewDisabledQueue(name string, policy Policy, logger *slog.Logger) *DisabledQueue {
	return &DisabledQueue{
		name:   name,
		policy: policy,
		logger: logger.With("component", "queue", "queue", name, "disabled", true),
	}
}

// Name returns the logical queue name.
func (q *DisabledQueue) Name() string { return q.name }

// Policy returns the queue's configured policy. Retention and retries are
// meaningless without a broker but remain inspectable.
func (q *DisabledQueue) Policy() Policy { return q.policy }

// Enqueue logs a warning and returns the skipped-job sentinel. It never
// returns an error for broker unavailability.
func (q *DisabledQueue) Enqueue(_ context.Context, jobType string, _ any, _ EnqueueOptions) (*JobHandle, error) {
	q.logger.Warn("broker unavailable, job skipped", "job_type", jobType)
	return &JobHandle{Queue: q.name, JobType: jobType, Skipped: true}, nil
}

// Stats reports all-zero counts.
func (q *DisabledQueue) Stats(context.Context) Stats { return Stats{} }

// TrimCompleted removes nothing.
func (q *DisabledQueue) TrimCompleted(context.Context, int) (int, error) { return 0, nil }

// TrimFailed removes nothing.
func (q *DisabledQueue) TrimFailed(context.Context, time.Duration) (int, error) { return 0, nil }

// Close is a no-op.
func (q *DisabledQueue) Close() error { return nil }
