// Package notify delivers rendered notifications. The log-backed
// implementation is the default; mail and chat transports implement the
// same contract behind the jobs package's Notifier interface.
package notify

import (
	"context"
	"log/slog"

	"github.com/caseflow-hq/caseflow-api/internal/domain"
)

// LogNotifier records each delivery in the structured log instead of
// calling an external provider.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier creates the log-backed notifier.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.With("component", "notifier")}
}

// Send logs one rendered-template delivery.
func (n *LogNotifier) Send(ctx context.Context, template domain.NotificationTemplate, recipient string, data map[string]any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	n.logger.Info("notification delivered",
		"template", template,
		"recipient", recipient,
		"fields", len(data))
	return nil
}
