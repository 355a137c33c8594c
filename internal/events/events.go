package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Outcome classifies how one execution of a job ended.
type Outcome string

const (
	// OutcomeCompleted means the handler returned successfully.
	OutcomeCompleted Outcome = "completed"

	// OutcomeRetrying means the handler failed transiently and the job will
	// be retried per its backoff policy.
	OutcomeRetrying Outcome = "retrying"

	// OutcomeFailed means the job is terminally failed: either a permanent
	// error (unknown type, malformed payload) or exhausted attempts.
	OutcomeFailed Outcome = "failed"
)

// JobOutcomeEvent reports the result of one job execution. It is the
// explicit result record for a processed job; nothing about a finished job
// is communicated through side channels.
type JobOutcomeEvent struct {
	// ID is a unique identifier for this event.
	ID uuid.UUID `json:"id"`

	// Queue is the logical queue the job belonged to.
	Queue string `json:"queue"`

	// JobType is the dispatch key the job was routed by.
	JobType string `json:"job_type"`

	// JobID is the broker-assigned job identifier.
	JobID string `json:"job_id"`

	// Outcome classifies the execution result.
	Outcome Outcome `json:"outcome"`

	// Error holds the handler error message for non-completed outcomes.
	Error string `json:"error,omitempty"`

	// Attempt is the 1-based execution attempt this event reports on.
	Attempt int `json:"attempt"`

	// MaxAttempts is the job's total attempt budget.
	MaxAttempts int `json:"max_attempts"`

	// Duration is how long the handler ran.
	Duration time.Duration `json:"duration"`

	// OccurredAt is when the execution finished.
	OccurredAt time.Time `json:"occurred_at"`
}

// NewJobOutcomeEvent creates an outcome event stamped with a fresh ID and
// the current time.
func NewJobOutcomeEvent(queue, jobType, jobID string, outcome Outcome) *JobOutcomeEvent {
	return &JobOutcomeEvent{
		ID:         uuid.New(),
		Queue:      queue,
		JobType:    jobType,
		JobID:      jobID,
		Outcome:    outcome,
		OccurredAt: time.Now().UTC(),
	}
}

// OutcomeHandler is implemented by components that observe job outcomes.
type OutcomeHandler interface {
	// HandleOutcome processes the given event within the provided context.
	// Returns an error if the event cannot be handled successfully.
	HandleOutcome(ctx context.Context, event *JobOutcomeEvent) error
}

// Emitter publishes job outcome events to all registered handlers.
type Emitter interface {
	// EmitOutcome publishes the given event. A handler error never prevents
	// delivery to the remaining handlers.
	EmitOutcome(ctx context.Context, event *JobOutcomeEvent)
}
