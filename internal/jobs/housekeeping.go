package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/caseflow-hq/caseflow-api/internal/cache"
	"github.com/caseflow-hq/caseflow-api/internal/store"
)

// Retention windows applied by the cleanup passes.
const (
	auditLogRetention    = 90 * 24 * time.Hour
	caseHistoryRetention = 180 * 24 * time.Hour
)

// QueueTrimmer enforces the broker retention rules the broker cannot
// express itself: the completed-job count cap and the failed-job age
// window. Satisfied by the queue manager.
type QueueTrimmer interface {
	TrimAllCompleted(ctx context.Context, keep int) (int, error)
	TrimAllFailed(ctx context.Context) (int, error)
}

// HousekeepingHandler runs the periodic cleanup passes. Every pass deletes
// only rows or keys that are already obsolete, so a pass is idempotent:
// running it twice with no new obsolete data in between removes zero items
// the second time, and concurrent runs of the same pass are safe.
type HousekeepingHandler struct {
	store        store.HousekeepingStore
	cache        cache.Store
	trimmer      QueueTrimmer
	completedCap int
	logger       *slog.Logger
	now          func() time.Time
}

// NewHousekeepingHandler creates the housekeeping handler.
func NewHousekeepingHandler(hs store.HousekeepingStore, cacheStore cache.Store, trimmer QueueTrimmer, completedCap int, logger *slog.Logger) *HousekeepingHandler {
	return &HousekeepingHandler{
		store:        hs,
		cache:        cacheStore,
		trimmer:      trimmer,
		completedCap: completedCap,
		logger:       logger.With("component", "housekeeping_handler"),
		now:          time.Now,
	}
}

// Handle processes one housekeeping:run job and logs the number of items
// removed.
func (h *HousekeepingHandler) Handle(ctx context.Context, t *asynq.Task) error {
	var p HousekeepingPayload
	if err := unmarshalPayload(t, &p); err != nil {
		return err
	}

	removed, err := h.run(ctx, p.Type)
	if err != nil {
		return err
	}

	h.logger.Info("housekeeping pass finished", "type", p.Type, "removed", removed)
	return nil
}

// run executes one cleanup pass and returns the number of items removed.
// An unknown sub-type is a permanent failure.
func (h *HousekeepingHandler) run(ctx context.Context, kind HousekeepingType) (int64, error) {
	now := h.now().UTC()

	switch kind {
	case HousekeepSessions:
		return h.store.DeleteExpiredSessions(ctx, now)

	case HousekeepTokens:
		return h.store.DeleteExpiredTokens(ctx, now)

	case HousekeepCache:
		swept, err := h.cache.DeletePattern(ctx, cache.DomainPattern(cache.DomainStats))
		if err != nil {
			return int64(swept), fmt.Errorf("cache sweep: %w", err)
		}
		trimmed, err := h.trimmer.TrimAllCompleted(ctx, h.completedCap)
		if err != nil {
			return int64(swept), fmt.Errorf("trim completed jobs: %w", err)
		}
		purged, err := h.trimmer.TrimAllFailed(ctx)
		if err != nil {
			return int64(swept + trimmed), fmt.Errorf("trim failed jobs: %w", err)
		}
		return int64(swept + trimmed + purged), nil

	case HousekeepLogs:
		return h.store.DeleteOldAuditLogs(ctx, now.Add(-auditLogRetention))

	case HousekeepHistory:
		return h.store.DeleteOldCaseHistory(ctx, now.Add(-caseHistoryRetention))

	case HousekeepAll:
		var total int64
		for _, sub := range []HousekeepingType{
			HousekeepSessions, HousekeepTokens, HousekeepCache, HousekeepLogs, HousekeepHistory,
		} {
			n, err := h.run(ctx, sub)
			total += n
			if err != nil {
				return total, fmt.Errorf("housekeeping %s: %w", sub, err)
			}
		}
		return total, nil

	default:
		return 0, fmt.Errorf("%w: %q: %w", ErrUnknownSubtype, kind, asynq.SkipRetry)
	}
}
