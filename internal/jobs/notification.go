package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/caseflow-hq/caseflow-api/internal/domain"
)

// Batch delivery tuning. Chunking with a pause keeps a large batch from
// overwhelming the downstream channel.
const (
	notificationChunkSize = 10
	defaultChunkPause     = 250 * time.Millisecond
)

// Notifier renders a named template and dispatches it to one recipient.
// Template rendering and transport live outside this layer; the handler
// consumes them as this single opaque operation.
type Notifier interface {
	Send(ctx context.Context, template domain.NotificationTemplate, recipient string, data map[string]any) error
}

// NotificationHandler delivers single and batched notification jobs. A
// batch is processed in fixed-size chunks with a short pause between
// chunks, and reports per-recipient success/failure counts instead of
// failing wholesale on one bad recipient.
//
// Delivery is at-least-once: a replay after a crash may re-send to
// recipients from already-processed chunks. The downstream channel
// deduplicates where that matters.
type NotificationHandler struct {
	notifier   Notifier
	chunkPause time.Duration
	logger     *slog.Logger
}

// NewNotificationHandler creates the send-notification handler.
func NewNotificationHandler(notifier Notifier, logger *slog.Logger) *NotificationHandler {
	return &NotificationHandler{
		notifier:   notifier,
		chunkPause: defaultChunkPause,
		logger:     logger.With("component", "notification_handler"),
	}
}

// Handle processes one notification:send job.
func (h *NotificationHandler) Handle(ctx context.Context, t *asynq.Task) error {
	var p SendNotificationPayload
	if err := unmarshalPayload(t, &p); err != nil {
		return err
	}
	if !domain.ValidNotificationTemplate(p.Template) {
		return permanent(fmt.Errorf("%w: %q", domain.ErrUnknownTemplate, p.Template))
	}

	recipients := p.Recipients
	if len(recipients) == 0 && p.Recipient != "" {
		recipients = []string{p.Recipient}
	}
	if len(recipients) == 0 {
		return permanent(fmt.Errorf("%w: no recipients", ErrMalformedPayload))
	}

	if len(recipients) == 1 {
		if err := h.notifier.Send(ctx, p.Template, recipients[0], p.Data); err != nil {
			return fmt.Errorf("send %s to %s: %w", p.Template, recipients[0], err)
		}
		return nil
	}

	result, err := h.sendBatch(ctx, p, recipients)
	if err != nil {
		return err
	}

	h.logger.Info("notification batch processed",
		"template", p.Template,
		"tenant_id", p.TenantID,
		"sent", result.Sent,
		"failed", result.Failed)

	// A batch with any delivery at all counts as processed; only a total
	// failure (e.g. the downstream channel is down) is worth a retry.
	if result.Sent == 0 {
		return fmt.Errorf("batch %s: all %d recipients failed", p.Template, result.Failed)
	}
	return nil
}

// sendBatch walks the recipient list in chunks, pausing between chunks and
// tallying per-recipient outcomes.
func (h *NotificationHandler) sendBatch(ctx context.Context, p SendNotificationPayload, recipients []string) (domain.BatchResult, error) {
	var result domain.BatchResult
	for start := 0; start < len(recipients); start += notificationChunkSize {
		if start > 0 {
			select {
			case <-ctx.Done():
				return result, ctx.Err()
			case <-time.After(h.chunkPause):
			}
		}

		end := start + notificationChunkSize
		if end > len(recipients) {
			end = len(recipients)
		}
		for _, recipient := range recipients[start:end] {
			if err := h.notifier.Send(ctx, p.Template, recipient, p.Data); err != nil {
				result.Failed++
				h.logger.Warn("notification delivery failed",
					"template", p.Template,
					"recipient", recipient,
					"error", err)
				continue
			}
			result.Sent++
		}
	}
	return result, nil
}
