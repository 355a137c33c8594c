package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/caseflow-hq/caseflow-api/internal/jobs"
	"github.com/caseflow-hq/caseflow-api/internal/queue"
)

// runStatsProducer enqueues one full stats recompute per active tenant.
// This is the safety net behind event-driven invalidation: even if an
// invalidation is lost, cached aggregates are never older than one cycle.
func (s *Scheduler) runStatsProducer(ctx context.Context) error {
	tenants, err := s.tenants.ListActive(ctx)
	if err != nil {
		return fmt.Errorf("list active tenants: %w", err)
	}

	enqueued := 0
	for i, tenant := range tenants {
		if i > 0 && s.enqueuePause > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(s.enqueuePause):
			}
		}

		payload := jobs.RecomputeStatsPayload{TenantID: tenant.ID}
		handle, err := s.queues.Enqueue(ctx, queue.QueueRecomputeStats, jobs.TypeRecomputeStats, payload, queue.EnqueueOptions{})
		if err != nil {
			s.logger.Error("failed to enqueue stats recompute",
				"tenant_id", tenant.ID,
				"error", err)
			continue
		}
		if !handle.Skipped {
			enqueued++
		}
	}

	s.logger.Info("stats recompute cycle produced",
		"tenants", len(tenants),
		"enqueued", enqueued)
	return nil
}

// runHousekeepingProducer enqueues the daily cleanup passes as independent
// jobs so one slow or failing pass never blocks the others. Sundays add the
// heavier audit-log and case-history purges.
func (s *Scheduler) runHousekeepingProducer(ctx context.Context) error {
	kinds := []jobs.HousekeepingType{
		jobs.HousekeepSessions,
		jobs.HousekeepTokens,
		jobs.HousekeepCache,
	}
	if s.now().Weekday() == time.Sunday {
		kinds = append(kinds, jobs.HousekeepLogs, jobs.HousekeepHistory)
	}

	for _, kind := range kinds {
		payload := jobs.HousekeepingPayload{Type: kind}
		if _, err := s.queues.Enqueue(ctx, queue.QueueHousekeeping, jobs.TypeHousekeeping, payload, queue.EnqueueOptions{}); err != nil {
			return fmt.Errorf("enqueue housekeeping %s: %w", kind, err)
		}
	}

	s.logger.Info("housekeeping cycle produced", "passes", len(kinds))
	return nil
}

// runHealthCheck reads every queue's depth snapshot and raises an alert per
// breached threshold. Read-only: it enqueues nothing and repairs nothing.
func (s *Scheduler) runHealthCheck(ctx context.Context) error {
	for name, stats := range s.queues.AllStats(ctx) {
		if stats.Failed > s.cfg.FailedThreshold {
			s.alerter.Alert(ctx, name, stats,
				fmt.Sprintf("failed jobs %d exceed threshold %d", stats.Failed, s.cfg.FailedThreshold))
		}
		if stats.Waiting > s.cfg.WaitingThreshold {
			s.alerter.Alert(ctx, name, stats,
				fmt.Sprintf("waiting jobs %d exceed threshold %d", stats.Waiting, s.cfg.WaitingThreshold))
		}
	}
	return nil
}
