package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/caseflow-hq/caseflow-api/internal/config"
	"github.com/caseflow-hq/caseflow-api/internal/queue"
	"github.com/caseflow-hq/caseflow-api/internal/store"
)

// JobQueues is the slice of the queue manager the producers need: enqueue
// for the stats and housekeeping producers, stats for the health check.
type JobQueues interface {
	Enqueue(ctx context.Context, queueName, jobType string, payload any, opts queue.EnqueueOptions) (*queue.JobHandle, error)
	AllStats(ctx context.Context) map[string]queue.Stats
}

// Scheduler owns the cron runner and its three registered producers. A
// single instance runs per process; producers enqueue work, they never
// execute it.
type Scheduler struct {
	cfg     config.SchedulerConfig
	queues  JobQueues
	tenants store.TenantStore
	alerter Alerter
	logger  *slog.Logger

	// enqueuePause spaces out per-tenant enqueues inside one stats tick so
	// a large tenant list does not hammer the broker in a burst.
	enqueuePause time.Duration
	now          func() time.Time

	mu      sync.Mutex
	cron    *cron.Cron
	cancel  context.CancelFunc
	started bool
}

// New builds the scheduler. Start must be called to begin firing.
func New(cfg config.SchedulerConfig, queues JobQueues, tenants store.TenantStore, alerter Alerter, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		cfg:          cfg,
		queues:       queues,
		tenants:      tenants,
		alerter:      alerter,
		logger:       logger.With("component", "scheduler"),
		enqueuePause: 100 * time.Millisecond,
		now:          time.Now,
	}
}

// Start registers the three producers and starts the cron runner. It fails
// only on an invalid cron expression; producer errors at runtime are logged
// and never stop the schedule.
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	cl := cronLogger{logger: s.logger}
	c := cron.New(
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl)),
	)

	// Producers run under a context cancelled by Stop, so a long paced run
	// cannot hold up shutdown.
	ctx, cancel := context.WithCancel(context.Background())

	entries := []struct {
		name string
		spec string
		run  func(context.Context) error
	}{
		{"stats_recompute", s.cfg.StatsCron, s.runStatsProducer},
		{"housekeeping", s.cfg.HousekeepingCron, s.runHousekeepingProducer},
		{"health_check", s.cfg.HealthCheckCron, s.runHealthCheck},
	}

	for _, e := range entries {
		e := e
		_, err := c.AddFunc(e.spec, func() {
			if err := e.run(ctx); err != nil {
				s.logger.Error("scheduled producer failed",
					"producer", e.name,
					"error", err)
			}
		})
		if err != nil {
			cancel()
			return fmt.Errorf("register %s producer (%q): %w", e.name, e.spec, err)
		}
		s.logger.Info("producer registered", "producer", e.name, "schedule", e.spec)
	}

	c.Start()
	s.cron = c
	s.cancel = cancel
	s.started = true
	s.logger.Info("scheduler started")
	return nil
}

// Stop cancels the producer context, halts the cron runner, and waits for
// any in-flight producer run to finish. Safe to call repeatedly, and safe
// before Start.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.cancel()
	<-s.cron.Stop().Done()
	s.started = false
	s.logger.Info("scheduler stopped")
}
