package stats

import (
	"context"
	"log/slog"

	"github.com/caseflow-hq/caseflow-api/internal/cache"
	"github.com/caseflow-hq/caseflow-api/internal/jobs"
	"github.com/caseflow-hq/caseflow-api/internal/queue"
)

// Enqueuer is the slice of the queue manager the invalidator needs.
type Enqueuer interface {
	Enqueue(ctx context.Context, queueName, jobType string, payload any, opts queue.EnqueueOptions) (*queue.JobHandle, error)
}

// Invalidator implements the cache-invalidation protocol for case
// mutations: delete the tenant's enumerated stats keys immediately, then
// schedule one background recompute covering every view. Both steps are
// fire-and-forget; a mutation that already committed must never fail or
// stall because the cache or broker is unhealthy.
type Invalidator struct {
	cache  cache.Store
	queues Enqueuer
	logger *slog.Logger
}

// NewInvalidator creates the invalidator used by the case mutation paths.
func NewInvalidator(cacheStore cache.Store, queues Enqueuer, logger *slog.Logger) *Invalidator {
	return &Invalidator{
		cache:  cacheStore,
		queues: queues,
		logger: logger.With("component", "stats_invalidator"),
	}
}

// OnCaseMutation invalidates the tenant's cached stats views and enqueues
// their recompute. Never returns an error; failures are logged and the next
// read or scheduled cycle repairs the cache.
func (i *Invalidator) OnCaseMutation(ctx context.Context, tenantID string) {
	keys := cache.StatsTenantKeys(tenantID)
	if err := i.cache.Delete(ctx, keys...); err != nil {
		i.logger.Warn("failed to invalidate stats cache",
			"tenant_id", tenantID,
			"error", err)
	}

	payload := jobs.RecomputeStatsPayload{TenantID: tenantID}
	handle, err := i.queues.Enqueue(ctx, queue.QueueRecomputeStats, jobs.TypeRecomputeStats, payload, queue.EnqueueOptions{})
	if err != nil {
		i.logger.Error("failed to enqueue stats recompute",
			"tenant_id", tenantID,
			"error", err)
		return
	}
	if handle.Skipped {
		i.logger.Debug("stats recompute skipped, broker unavailable", "tenant_id", tenantID)
		return
	}
	i.logger.Debug("stats recompute enqueued",
		"tenant_id", tenantID,
		"job_id", handle.ID)
}
