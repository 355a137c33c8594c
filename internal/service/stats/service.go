package stats

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/caseflow-hq/caseflow-api/internal/cache"
	"github.com/caseflow-hq/caseflow-api/internal/domain"
	"github.com/caseflow-hq/caseflow-api/internal/store"
)

// Service serves per-tenant aggregate views cache-aside: hit returns the
// cached value, miss computes synchronously, caches, and returns. The
// caller never blocks on the async recompute pipeline.
type Service struct {
	reader store.CaseStatsReader
	cache  cache.Store
	logger *slog.Logger
}

// NewService creates the stats read service.
func NewService(reader store.CaseStatsReader, cacheStore cache.Store, logger *slog.Logger) *Service {
	return &Service{
		reader: reader,
		cache:  cacheStore,
		logger: logger.With("component", "stats_service"),
	}
}

// GetTenantStats returns one aggregate view for a tenant. A cache miss, a
// corrupt entry, and a disabled cache all take the same path: compute from
// the source of truth and repopulate.
func (s *Service) GetTenantStats(ctx context.Context, tenantID string, view domain.StatsView) (*domain.CaseStats, error) {
	if !domain.ValidStatsView(view) {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownStatsView, view)
	}

	key := cache.StatsKey(tenantID, view)

	var cached domain.CaseStats
	err := s.cache.Get(ctx, key, &cached)
	if err == nil {
		return &cached, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		// The cache contract surfaces everything as a miss; treat anything
		// else the same way but keep a trace of it.
		s.logger.Warn("unexpected cache error, computing from store", "key", key, "error", err)
	}

	computed, err := s.reader.ComputeStats(ctx, tenantID, view)
	if err != nil {
		return nil, fmt.Errorf("compute %s stats for tenant %s: %w", view, tenantID, err)
	}

	if err := s.cache.Set(ctx, key, computed, cache.TTLForView(view)); err != nil {
		// The caller has its answer; failing to repopulate only costs the
		// next reader a recompute.
		s.logger.Warn("failed to repopulate stats cache", "key", key, "error", err)
	}
	return computed, nil
}
