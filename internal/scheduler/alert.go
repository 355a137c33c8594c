package scheduler

import (
	"context"
	"log/slog"

	"github.com/caseflow-hq/caseflow-api/internal/queue"
)

// Alerter receives queue-health alert conditions raised by the health-check
// producer. The default implementation logs; external notification
// transports plug in here.
type Alerter interface {
	Alert(ctx context.Context, queueName string, stats queue.Stats, reason string)
}

// LogAlerter writes alert conditions to the structured log.
type LogAlerter struct {
	logger *slog.Logger
}

// NewLogAlerter creates the default, log-only alerter.
func NewLogAlerter(logger *slog.Logger) *LogAlerter {
	return &LogAlerter{logger: logger.With("component", "queue_alerts")}
}

// Alert logs the condition at error level with the full queue snapshot.
func (a *LogAlerter) Alert(_ context.Context, queueName string, stats queue.Stats, reason string) {
	a.logger.Error("queue health alert",
		"queue", queueName,
		"reason", reason,
		"waiting", stats.Waiting,
		"active", stats.Active,
		"failed", stats.Failed,
		"delayed", stats.Delayed)
}
