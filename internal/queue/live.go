package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/hibiken/asynq"
)

// LiveQueue is the broker-backed Queue implementation. It shares one asynq
// client and inspector with the other live queues; the broker's own
// operations are atomic, so no additional locking is needed.
type LiveQueue struct {
	name      string
	policy    Policy
	client    *asynq.Client
	inspector *asynq.Inspector
	logger    *slog.Logger
}

func newLiveQueue(name string, policy Policy, client *asynq.Client, inspector *asynq.Inspector, logger *slog.Logger) *LiveQueue {
	return &LiveQueue{
		name:      name,
		policy:    policy,
		client:    client,
		inspector: inspector,
		logger:    logger.With("component", "queue", "queue", name),
	}
}

// Name returns the logical queue name.
func (q *LiveQueue) Name() string { return q.name }

// Policy returns the queue's retry/retention policy.
func (q *LiveQueue) Policy() Policy { return q.policy }

// Enqueue serializes the payload and writes one job record to the broker.
// This is a single O(1) broker round-trip regardless of queue depth. A
// broker failure is logged and reported as a skipped handle: the caller's
// own work has already succeeded and must not be aborted by a missing
// side effect.
func (q *LiveQueue) Enqueue(ctx context.Context, jobType string, payload any, opts EnqueueOptions) (*JobHandle, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	priority := opts.Priority
	if priority == 0 {
		priority = DefaultPriority
	}

	info, err := q.client.EnqueueContext(ctx, asynq.NewTask(jobType, data),
		asynq.Queue(brokerQueue(q.name, priorityBand(priority))),
		asynq.MaxRetry(q.policy.MaxAttempts-1),
		asynq.Retention(q.policy.CompletedRetention),
		asynq.Timeout(q.policy.JobTimeout),
	)
	if err != nil {
		q.logger.Warn("enqueue failed, job skipped",
			"job_type", jobType,
			"priority", priority,
			"error", err)
		return &JobHandle{Queue: q.name, JobType: jobType, Skipped: true}, nil
	}

	q.logger.Debug("job enqueued",
		"job_id", info.ID,
		"job_type", jobType,
		"priority", priority,
		"broker_queue", info.Queue)

	return &JobHandle{ID: info.ID, Queue: q.name, JobType: jobType}, nil
}

// Stats aggregates the broker's per-state counts across the queue's
// priority bands. Broker failures are logged and read as zero; the
// introspection surface must never propagate broker errors.
func (q *LiveQueue) Stats(ctx context.Context) Stats {
	var s Stats
	for bq := range BrokerQueues(q.name) {
		info, err := q.inspector.GetQueueInfo(bq)
		if err != nil {
			if !errors.Is(err, asynq.ErrQueueNotFound) {
				q.logger.Warn("queue stats unavailable", "broker_queue", bq, "error", err)
			}
			continue
		}
		s.Waiting += info.Pending
		s.Active += info.Active
		s.Completed += info.Completed
		s.Failed += info.Archived
		s.Delayed += info.Scheduled + info.Retry
	}
	return s
}

// TrimCompleted removes the oldest completed jobs beyond keep, across all
// priority bands of the logical queue.
func (q *LiveQueue) TrimCompleted(ctx context.Context, keep int) (int, error) {
	type completed struct {
		queue string
		id    string
		at    int64
	}

	var all []completed
	for bq := range BrokerQueues(q.name) {
		for page := 1; ; page++ {
			tasks, err := q.inspector.ListCompletedTasks(bq, asynq.PageSize(500), asynq.Page(page))
			if err != nil {
				if errors.Is(err, asynq.ErrQueueNotFound) {
					break
				}
				return 0, fmt.Errorf("list completed tasks for %s: %w", bq, err)
			}
			for _, t := range tasks {
				all = append(all, completed{queue: t.Queue, id: t.ID, at: t.CompletedAt.Unix()})
			}
			if len(tasks) < 500 {
				break
			}
		}
	}

	if len(all) <= keep {
		return 0, nil
	}

	sort.Slice(all, func(i, j int) bool { return all[i].at < all[j].at })

	removed := 0
	for _, c := range all[:len(all)-keep] {
		if err := q.inspector.DeleteTask(c.queue, c.id); err != nil {
			q.logger.Warn("failed to delete completed job", "job_id", c.id, "error", err)
			continue
		}
		removed++
	}
	return removed, nil
}

// TrimFailed removes terminally failed jobs whose last failure predates the
// retention window, across all priority bands of the logical queue.
func (q *LiveQueue) TrimFailed(ctx context.Context, olderThan time.Duration) (int, error) {
	type failed struct {
		queue string
		id    string
	}
	cutoff := time.Now().Add(-olderThan)

	var expired []failed
	for bq := range BrokerQueues(q.name) {
		for page := 1; ; page++ {
			tasks, err := q.inspector.ListArchivedTasks(bq, asynq.PageSize(500), asynq.Page(page))
			if err != nil {
				if errors.Is(err, asynq.ErrQueueNotFound) {
					break
				}
				return 0, fmt.Errorf("list archived tasks for %s: %w", bq, err)
			}
			for _, t := range tasks {
				if t.LastFailedAt.Before(cutoff) {
					expired = append(expired, failed{queue: t.Queue, id: t.ID})
				}
			}
			if len(tasks) < 500 {
				break
			}
		}
	}

	removed := 0
	for _, f := range expired {
		if err := q.inspector.DeleteTask(f.queue, f.id); err != nil {
			q.logger.Warn("failed to delete archived job", "job_id", f.id, "error", err)
			continue
		}
		removed++
	}
	return removed, nil
}

// Close is a no-op for a live queue: the shared asynq client is owned and
// closed by the Manager.
func (q *LiveQueue) Close() error { return nil }
