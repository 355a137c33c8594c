// Package main is the entry point for the caseflow API server: the HTTP
// surface, the worker pools for the four job queues, and the periodic
// producers, all in one process.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/caseflow-hq/caseflow-api/internal/api"
	"github.com/caseflow-hq/caseflow-api/internal/cache"
	"github.com/caseflow-hq/caseflow-api/internal/config"
	"github.com/caseflow-hq/caseflow-api/internal/events"
	"github.com/caseflow-hq/caseflow-api/internal/jobs"
	"github.com/caseflow-hq/caseflow-api/internal/platform/assets"
	"github.com/caseflow-hq/caseflow-api/internal/platform/broker"
	"github.com/caseflow-hq/caseflow-api/internal/platform/logger"
	"github.com/caseflow-hq/caseflow-api/internal/platform/notify"
	"github.com/caseflow-hq/caseflow-api/internal/platform/postgres"
	"github.com/caseflow-hq/caseflow-api/internal/queue"
	"github.com/caseflow-hq/caseflow-api/internal/scheduler"
	statssvc "github.com/caseflow-hq/caseflow-api/internal/service/stats"
	"github.com/caseflow-hq/caseflow-api/internal/worker"
)

const shutdownTimeout = 30 * time.Second

func main() {
	if err := run(); err != nil {
		log.Fatalf("server exited with error: %v", err)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	logg, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("set up logger: %w", err)
	}
	logg.Info("server starting", "port", cfg.Server.Port, "log_level", cfg.Server.LogLevel)

	// The database is a hard dependency; the broker is not.
	dbPool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer dbPool.Close()

	conn := broker.Connect(ctx, cfg.Broker, logg)
	defer func() {
		if err := conn.Close(); err != nil {
			logg.Warn("failed to close broker connection", "error", err)
		}
	}()

	queues := queue.NewManager(conn, cfg.Worker, logg)
	defer func() {
		if err := queues.Close(); err != nil {
			logg.Warn("failed to close queue manager", "error", err)
		}
	}()
	cacheStore := cache.New(conn, logg)

	// Stores.
	tenantStore := postgres.NewTenantStore(dbPool)
	statsStore := postgres.NewStatsStore(dbPool)
	housekeepingStore := postgres.NewHousekeepingStore(dbPool)
	uploadStore := postgres.NewUploadStore(dbPool)

	assetStore, err := assets.NewFSStore(cfg.Uploads.Dir, cfg.Uploads.BaseURL, logg)
	if err != nil {
		return fmt.Errorf("initialize asset store: %w", err)
	}
	notifier := notify.NewLogNotifier(logg)

	// Outcome events.
	emitter := events.NewInMemoryEmitter(logg)
	emitter.RegisterHandler(events.NewLogHandler(logg))

	// Worker pools, one per queue. They run even in degraded mode; with the
	// broker down they simply never receive work, and enqueues are skipped.
	pools := buildPools(conn, cfg.Worker, queues, cacheStore,
		statsStore, housekeepingStore, uploadStore, assetStore, notifier, emitter, logg)
	if conn.Available() {
		for _, p := range pools {
			if err := p.Start(); err != nil {
				return err
			}
		}
		defer shutdownPools(pools)
	} else {
		logg.Warn("worker pools idle, broker unavailable")
	}

	// Periodic producers.
	sched := scheduler.New(cfg.Scheduler, queues, tenantStore,
		scheduler.NewLogAlerter(logg), logg)
	if err := sched.Start(); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}
	defer sched.Stop()

	// HTTP surface.
	statsService := statssvc.NewService(statsStore, cacheStore, logg)
	invalidator := statssvc.NewInvalidator(cacheStore, queues, logg)
	router := api.NewRouter(
		api.NewHealthHandler(queues),
		api.NewQueueHandler(queues, logg),
		api.NewStatsHandler(statsService, invalidator, logg),
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logg.Info("http server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
		logg.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logg.Error("http server shutdown failed", "error", err)
	}
	// Deferred cleanup stops the scheduler, drains the pools, and closes the
	// queue manager, broker connection, and database pool in reverse order.
	return nil
}

// buildPools wires one worker pool per logical queue with its dispatch
// table.
func buildPools(
	conn *broker.Connection,
	cfg config.WorkerConfig,
	queues *queue.Manager,
	cacheStore cache.Store,
	statsStore *postgres.StatsStore,
	housekeepingStore *postgres.HousekeepingStore,
	uploadStore *postgres.UploadStore,
	assetStore *assets.FSStore,
	notifier *notify.LogNotifier,
	emitter events.Emitter,
	logg *slog.Logger,
) []*worker.Pool {
	statsHandler := jobs.NewStatsHandler(statsStore, cacheStore, logg)
	notificationHandler := jobs.NewNotificationHandler(notifier, logg)
	housekeepingHandler := jobs.NewHousekeepingHandler(housekeepingStore, cacheStore,
		queues, queue.DefaultPolicy().CompletedCap, logg)
	uploadHandler := jobs.NewUploadHandler(assetStore, uploadStore, logg)

	policy := func(name string) queue.Policy {
		q, err := queues.Queue(name)
		if err != nil {
			return queue.DefaultPolicy()
		}
		return q.Policy()
	}

	return []*worker.Pool{
		worker.NewPool(conn, queue.QueueRecomputeStats, cfg.RecomputeStats, policy(queue.QueueRecomputeStats),
			worker.DispatchTable{jobs.TypeRecomputeStats: statsHandler.Handle}, emitter, logg),
		worker.NewPool(conn, queue.QueueSendNotification, cfg.SendNotification, policy(queue.QueueSendNotification),
			worker.DispatchTable{jobs.TypeSendNotification: notificationHandler.Handle}, emitter, logg),
		worker.NewPool(conn, queue.QueueHousekeeping, cfg.Housekeeping, policy(queue.QueueHousekeeping),
			worker.DispatchTable{jobs.TypeHousekeeping: housekeepingHandler.Handle}, emitter, logg),
		worker.NewPool(conn, queue.QueueProcessUpload, cfg.ProcessUpload, policy(queue.QueueProcessUpload),
			worker.DispatchTable{jobs.TypeProcessUpload: uploadHandler.Handle}, emitter, logg),
	}
}

func shutdownPools(pools []*worker.Pool) {
	for _, p := range pools {
		p.Shutdown()
	}
}
