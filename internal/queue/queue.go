package queue

import (
	"context"
	"errors"
	"time"
)

// Queue-level errors.
var (
	// ErrUnknownQueue is returned when a caller names a queue outside the
	// fixed set.
	ErrUnknownQueue = errors.New("unknown queue")

	// ErrInvalidPayload is returned when a payload cannot be serialized.
	// This is a caller bug and the only enqueue failure surfaced as an
	// error; broker failures downgrade to the skipped sentinel instead.
	ErrInvalidPayload = errors.New("invalid job payload")
)

// JobHandle is the result of an enqueue. When the broker is unreachable the
// handle carries Skipped == true instead of an ID; callers that only
// fire-and-forget can ignore it entirely.
type JobHandle struct {
	ID      string
	Queue   string
	JobType string

	// Skipped means the job was not enqueued because the broker is
	// unavailable. The mutation that triggered the enqueue has already
	// succeeded; skipping the async side effect is deliberate degradation,
	// not an error.
	Skipped bool
}

// Stats is the introspection snapshot for one logical queue, aggregated
// across its priority bands.
type Stats struct {
	Waiting   int `json:"waiting"`
	Active    int `json:"active"`
	Completed int `json:"completed"`
	Failed    int `json:"failed"`
	Delayed   int `json:"delayed"`
}

// Total returns the sum across all states.
func (s Stats) Total() int {
	return s.Waiting + s.Active + s.Completed + s.Failed + s.Delayed
}

// EnqueueOptions tunes a single enqueue.
type EnqueueOptions struct {
	// Priority orders the job within its queue; lower is more urgent.
	// Zero value means DefaultPriority.
	Priority int
}

// Queue is one named, prioritized work list. Implementations are LiveQueue
// (broker-backed) and DisabledQueue (degradation shim); both are selected
// once at startup by NewManager and are safe for concurrent use.
type Queue interface {
	// Name returns the logical queue name.
	Name() string

	// Enqueue writes job metadata to the broker and returns immediately;
	// it never waits for job completion. Broker failures are logged and
	// reported through JobHandle.Skipped, never as an error — an enqueue
	// must not be able to abort the caller's unrelated work. The only
	// error return is ErrInvalidPayload for an unserializable payload.
	Enqueue(ctx context.Context, jobType string, payload any, opts EnqueueOptions) (*JobHandle, error)

	// Stats returns the queue's current per-state counts. A disabled queue
	// reports all zeros; a live queue whose broker call fails logs the
	// failure and likewise reports zeros.
	Stats(ctx context.Context) Stats

	// TrimCompleted deletes the oldest completed jobs beyond keep and
	// returns how many were removed. Invoked by the housekeeping job to
	// enforce the completed-count cap the broker cannot express.
	TrimCompleted(ctx context.Context, keep int) (int, error)

	// TrimFailed deletes terminally failed jobs whose last failure is
	// older than olderThan and returns how many were removed. The broker
	// keeps archived jobs indefinitely; the failed-retention window is
	// enforced here, by the housekeeping job.
	TrimFailed(ctx context.Context, olderThan time.Duration) (int, error)

	// Policy returns the queue's retry/retention policy.
	Policy() Policy

	// Close releases broker resources. No-op for a disabled queue.
	Close() error
}
