package events

import (
	"context"
	"log/slog"
	"sync"
)

// InMemoryEmitter is a simple Emitter that stores registered handlers in
// memory and dispatches events to them synchronously, in registration order.
type InMemoryEmitter struct {
	handlers []OutcomeHandler
	mu       sync.RWMutex
	logger   *slog.Logger
}

// NewInMemoryEmitter creates a new InMemoryEmitter.
func NewInMemoryEmitter(logger *slog.Logger) *InMemoryEmitter {
	return &InMemoryEmitter{
		handlers: make([]OutcomeHandler, 0),
		logger:   logger.With("component", "outcome_emitter"),
	}
}

// RegisterHandler adds a new handler to receive outcome events.
func (e *InMemoryEmitter) RegisterHandler(handler OutcomeHandler) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.handlers = append(e.handlers, handler)
	e.logger.Debug("registered outcome handler", "handler_count", len(e.handlers))
}

// EmitOutcome publishes the event to every registered handler. A failing
// handler is logged and does not block delivery to the others; outcome
// observation must never affect job processing itself.
func (e *InMemoryEmitter) EmitOutcome(ctx context.Context, event *JobOutcomeEvent) {
	e.mu.RLock()
	handlers := make([]OutcomeHandler, len(e.handlers))
	copy(handlers, e.handlers)
	e.mu.RUnlock()

	for i, handler := range handlers {
		if err := handler.HandleOutcome(ctx, event); err != nil {
			e.logger.Error("outcome handler failed",
				"error", err,
				"handler_index", i,
				"event_id", event.ID,
				"queue", event.Queue,
				"job_type", event.JobType)
		}
	}
}

// LogHandler is the default outcome subscriber: it writes one structured
// log line per processed job.
type LogHandler struct {
	logger *slog.Logger
}

// NewLogHandler creates a LogHandler writing through the given logger.
func NewLogHandler(logger *slog.Logger) *LogHandler {
	return &LogHandler{logger: logger.With("component", "job_outcomes")}
}

// HandleOutcome logs the event at a level matching its severity: completed
// at info, retrying at warn, terminally failed at error.
func (h *LogHandler) HandleOutcome(_ context.Context, event *JobOutcomeEvent) error {
	attrs := []any{
		"queue", event.Queue,
		"job_type", event.JobType,
		"job_id", event.JobID,
		"attempt", event.Attempt,
		"max_attempts", event.MaxAttempts,
		"duration_ms", event.Duration.Milliseconds(),
	}

	switch event.Outcome {
	case OutcomeCompleted:
		h.logger.Info("job completed", attrs...)
	case OutcomeRetrying:
		h.logger.Warn("job failed, will retry", append(attrs, "error", event.Error)...)
	case OutcomeFailed:
		h.logger.Error("job failed permanently", append(attrs, "error", event.Error)...)
	}
	return nil
}
