package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
	"golang.org/x/time/rate"

	"github.com/caseflow-hq/caseflow-api/internal/config"
	"github.com/caseflow-hq/caseflow-api/internal/events"
	"github.com/caseflow-hq/caseflow-api/internal/platform/broker"
	"github.com/caseflow-hq/caseflow-api/internal/queue"
)

// HandlerFunc executes one job. A returned error wrapping asynq.SkipRetry
// marks the job permanently failed; any other error schedules a retry per
// the queue's backoff policy until attempts are exhausted.
type HandlerFunc func(ctx context.Context, t *asynq.Task) error

// DispatchTable routes job-type names to their handlers.
type DispatchTable map[string]HandlerFunc

// Pool is a concurrency-bounded, rate-limited consumer for one logical
// queue. It claims jobs from the queue's priority bands (preferring the
// critical band), dispatches by job type, and emits one outcome event per
// execution.
type Pool struct {
	queueName string
	server    *asynq.Server
	dispatch  DispatchTable
	limiter   *rate.Limiter
	emitter   events.Emitter
	logger    *slog.Logger
}

// NewPool builds the worker pool for one queue. Both bounds hold at the
// same time: at most cfg.Concurrency jobs run at once, and at most
// cfg.RateLimit jobs may start within a cfg.RateWindowSec rolling window.
func NewPool(conn *broker.Connection, queueName string, cfg config.PoolConfig, policy queue.Policy, dispatch DispatchTable, emitter events.Emitter, logger *slog.Logger) *Pool {
	log := logger.With("component", "worker_pool", "queue", queueName)

	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 1
		log.Warn("invalid worker concurrency, using default",
			"specified", cfg.Concurrency,
			"default", 1)
	}

	var limiter *rate.Limiter
	if cfg.RateLimit > 0 && cfg.RateWindowSec > 0 {
		limiter = rate.NewLimiter(
			rate.Limit(float64(cfg.RateLimit)/float64(cfg.RateWindowSec)),
			cfg.RateLimit,
		)
	}

	server := asynq.NewServer(conn.AsynqOpt(), asynq.Config{
		Concurrency: concurrency,
		Queues:      queue.BrokerQueues(queueName),
		RetryDelayFunc: func(n int, _ error, _ *asynq.Task) time.Duration {
			return policy.RetryDelay(n)
		},
		Logger:   newAsynqLogger(log),
		LogLevel: asynq.WarnLevel,
	})

	return &Pool{
		queueName: queueName,
		server:    server,
		dispatch:  dispatch,
		limiter:   limiter,
		emitter:   emitter,
		logger:    log,
	}
}

// Start launches the pool's workers. Non-blocking; processing continues
// until Shutdown.
func (p *Pool) Start() error {
	p.logger.Info("worker pool starting", "job_types", len(p.dispatch))
	if err := p.server.Start(asynq.HandlerFunc(p.process)); err != nil {
		return fmt.Errorf("start worker pool %s: %w", p.queueName, err)
	}
	return nil
}

// Shutdown stops claiming new jobs and waits for in-flight jobs to finish.
func (p *Pool) Shutdown() {
	p.server.Shutdown()
	p.logger.Info("worker pool stopped")
}

// process is the root handler for every job the pool claims: it applies
// the start-rate limit, dispatches by type, and reports the outcome.
func (p *Pool) process(ctx context.Context, t *asynq.Task) error {
	// The limiter gates job *starts*. Waiting here intentionally holds a
	// concurrency slot, pausing the pool until the window slides.
	if p.limiter != nil {
		if err := p.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter: %w", err)
		}
	}

	start := time.Now()
	handler, ok := p.dispatch[t.Type()]

	var err error
	if !ok {
		err = fmt.Errorf("unknown job type %q on queue %s: %w", t.Type(), p.queueName, asynq.SkipRetry)
	} else {
		err = handler(ctx, t)
	}

	p.report(ctx, t, err, time.Since(start))
	return err
}

// report emits the outcome event for one execution.
func (p *Pool) report(ctx context.Context, t *asynq.Task, err error, elapsed time.Duration) {
	retried, retriedOK := asynq.GetRetryCount(ctx)
	maxRetry, maxOK := asynq.GetMaxRetry(ctx)
	jobID, _ := asynq.GetTaskID(ctx)

	outcome := events.OutcomeCompleted
	switch {
	case err == nil:
	case errors.Is(err, asynq.SkipRetry):
		outcome = events.OutcomeFailed
	case retriedOK && maxOK && retried >= maxRetry:
		// Final attempt exhausted; the broker archives the job.
		outcome = events.OutcomeFailed
	default:
		outcome = events.OutcomeRetrying
	}

	event := events.NewJobOutcomeEvent(p.queueName, t.Type(), jobID, outcome)
	event.Attempt = retried + 1
	event.MaxAttempts = maxRetry + 1
	event.Duration = elapsed
	if err != nil {
		event.Error = err.Error()
	}
	p.emitter.EmitOutcome(ctx, event)
}
