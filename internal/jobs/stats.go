package jobs

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/caseflow-hq/caseflow-api/internal/cache"
	"github.com/caseflow-hq/caseflow-api/internal/domain"
	"github.com/caseflow-hq/caseflow-api/internal/store"
)

// StatsHandler recomputes a tenant's aggregate case views from the
// relational store and repopulates the cache with a fresh TTL. Workers
// populate the cache incidentally; the synchronous read path never waits
// for them.
//
// Replaying the job recomputes the same aggregates and overwrites the same
// keys — last write wins by wall-clock completion order, which is exactly
// the invalidation protocol's contract.
type StatsHandler struct {
	stats  store.CaseStatsReader
	cache  cache.Store
	logger *slog.Logger
}

// NewStatsHandler creates the recompute-stats handler.
func NewStatsHandler(stats store.CaseStatsReader, cacheStore cache.Store, logger *slog.Logger) *StatsHandler {
	return &StatsHandler{
		stats:  stats,
		cache:  cacheStore,
		logger: logger.With("component", "stats_handler"),
	}
}

// Handle processes one stats:recompute job.
func (h *StatsHandler) Handle(ctx context.Context, t *asynq.Task) error {
	var p RecomputeStatsPayload
	if err := unmarshalPayload(t, &p); err != nil {
		return err
	}
	if p.TenantID == "" {
		return permanent(fmt.Errorf("%w: missing tenant_id", ErrMalformedPayload))
	}

	views := domain.AllStatsViews()
	if p.View != "" {
		if !domain.ValidStatsView(p.View) {
			return permanent(fmt.Errorf("%w: view %q", domain.ErrUnknownStatsView, p.View))
		}
		views = []domain.StatsView{p.View}
	}

	for _, view := range views {
		stats, err := h.stats.ComputeStats(ctx, p.TenantID, view)
		if err != nil {
			return fmt.Errorf("compute %s stats for tenant %s: %w", view, p.TenantID, err)
		}
		if err := h.cache.Set(ctx, cache.StatsKey(p.TenantID, view), stats, cache.TTLForView(view)); err != nil {
			return fmt.Errorf("cache %s stats for tenant %s: %w", view, p.TenantID, err)
		}
		h.logger.Debug("stats view recomputed",
			"tenant_id", p.TenantID,
			"view", view,
			"total_cases", stats.TotalCases)
	}
	return nil
}
