package scheduler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caseflow-hq/caseflow-api/internal/config"
	"github.com/caseflow-hq/caseflow-api/internal/domain"
	"github.com/caseflow-hq/caseflow-api/internal/jobs"
	"github.com/caseflow-hq/caseflow-api/internal/queue"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type enqueueCall struct {
	queueName string
	jobType   string
	payload   any
}

// fakeQueues records enqueues and serves a canned stats snapshot.
type fakeQueues struct {
	mu       sync.Mutex
	calls    []enqueueCall
	skipped  bool
	stats    map[string]queue.Stats
	enqueueE error
}

func (f *fakeQueues) Enqueue(_ context.Context, queueName, jobType string, payload any, _ queue.EnqueueOptions) (*queue.JobHandle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.enqueueE != nil {
		return nil, f.enqueueE
	}
	f.calls = append(f.calls, enqueueCall{queueName: queueName, jobType: jobType, payload: payload})
	return &queue.JobHandle{ID: "job-1", Queue: queueName, JobType: jobType, Skipped: f.skipped}, nil
}

func (f *fakeQueues) AllStats(context.Context) map[string]queue.Stats {
	return f.stats
}

func (f *fakeQueues) enqueued() []enqueueCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]enqueueCall(nil), f.calls...)
}

type fakeTenantStore struct {
	tenants []*domain.Tenant
	listErr error
}

func (f *fakeTenantStore) Get(context.Context, string) (*domain.Tenant, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeTenantStore) ListActive(context.Context) ([]*domain.Tenant, error) {
	return f.tenants, f.listErr
}

type alertCall struct {
	queueName string
	reason    string
}

type fakeAlerter struct {
	mu    sync.Mutex
	calls []alertCall
}

func (f *fakeAlerter) Alert(_ context.Context, queueName string, _ queue.Stats, reason string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, alertCall{queueName: queueName, reason: reason})
}

func (f *fakeAlerter) alerts() []alertCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]alertCall(nil), f.calls...)
}

func testScheduler(queues *fakeQueues, tenants *fakeTenantStore, alerter *fakeAlerter) *Scheduler {
	cfg := config.SchedulerConfig{
		StatsCron:        "*/30 * * * *",
		HousekeepingCron: "0 4 * * *",
		HealthCheckCron:  "*/5 * * * *",
		FailedThreshold:  10,
		WaitingThreshold: 100,
	}
	s := New(cfg, queues, tenants, alerter, discardLogger())
	s.enqueuePause = 0
	return s
}

func activeTenants(names ...string) []*domain.Tenant {
	out := make([]*domain.Tenant, 0, len(names))
	for _, name := range names {
		out = append(out, &domain.Tenant{
			ID:     "org-" + name,
			Name:   name,
			Status: domain.TenantStatusActive,
		})
	}
	return out
}

func TestStatsProducer_EnqueuesOneJobPerTenant(t *testing.T) {
	t.Parallel()

	queues := &fakeQueues{}
	tenants := &fakeTenantStore{tenants: activeTenants("acme", "globex", "initech")}
	s := testScheduler(queues, tenants, &fakeAlerter{})

	err := s.runStatsProducer(context.Background())
	require.NoError(t, err)

	calls := queues.enqueued()
	require.Len(t, calls, 3)
	for i, call := range calls {
		assert.Equal(t, queue.QueueRecomputeStats, call.queueName)
		assert.Equal(t, jobs.TypeRecomputeStats, call.jobType)

		payload, ok := call.payload.(jobs.RecomputeStatsPayload)
		require.True(t, ok)
		assert.Equal(t, tenants.tenants[i].ID, payload.TenantID)
		assert.Empty(t, payload.View, "a producer job recomputes every view")
	}
}

func TestStatsProducer_ListFailureAborts(t *testing.T) {
	t.Parallel()

	queues := &fakeQueues{}
	tenants := &fakeTenantStore{listErr: errors.New("connection refused")}
	s := testScheduler(queues, tenants, &fakeAlerter{})

	err := s.runStatsProducer(context.Background())
	require.Error(t, err)
	assert.Empty(t, queues.enqueued())
}

func TestStatsProducer_RespectsCancellationBetweenTenants(t *testing.T) {
	t.Parallel()

	queues := &fakeQueues{}
	tenants := &fakeTenantStore{tenants: activeTenants("acme", "globex")}
	s := testScheduler(queues, tenants, &fakeAlerter{})
	s.enqueuePause = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.runStatsProducer(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.Len(t, queues.enqueued(), 1, "first tenant enqueues before the pause")
}

func TestHousekeepingProducer_Weekday(t *testing.T) {
	t.Parallel()

	queues := &fakeQueues{}
	s := testScheduler(queues, &fakeTenantStore{}, &fakeAlerter{})
	// 2024-01-03 is a Wednesday.
	s.now = func() time.Time { return time.Date(2024, 1, 3, 4, 0, 0, 0, time.UTC) }

	require.NoError(t, s.runHousekeepingProducer(context.Background()))

	calls := queues.enqueued()
	require.Len(t, calls, 3)
	got := make([]jobs.HousekeepingType, 0, len(calls))
	for _, call := range calls {
		assert.Equal(t, queue.QueueHousekeeping, call.queueName)
		assert.Equal(t, jobs.TypeHousekeeping, call.jobType)
		payload, ok := call.payload.(jobs.HousekeepingPayload)
		require.True(t, ok)
		got = append(got, payload.Type)
	}
	assert.Equal(t, []jobs.HousekeepingType{jobs.HousekeepSessions, jobs.HousekeepTokens, jobs.HousekeepCache}, got)
}

func TestHousekeepingProducer_SundayAddsWeeklyPasses(t *testing.T) {
	t.Parallel()

	queues := &fakeQueues{}
	s := testScheduler(queues, &fakeTenantStore{}, &fakeAlerter{})
	// 2024-01-07 is a Sunday.
	s.now = func() time.Time { return time.Date(2024, 1, 7, 4, 0, 0, 0, time.UTC) }

	require.NoError(t, s.runHousekeepingProducer(context.Background()))

	calls := queues.enqueued()
	require.Len(t, calls, 5)
	last := calls[len(calls)-1].payload.(jobs.HousekeepingPayload)
	assert.Equal(t, jobs.HousekeepHistory, last.Type)
}

func TestHealthCheck_AlertsPerBreachedThreshold(t *testing.T) {
	t.Parallel()

	queues := &fakeQueues{stats: map[string]queue.Stats{
		queue.QueueRecomputeStats:   {Waiting: 5, Failed: 2},
		queue.QueueSendNotification: {Waiting: 250, Failed: 3},
		queue.QueueHousekeeping:     {Waiting: 150, Failed: 40},
	}}
	alerter := &fakeAlerter{}
	s := testScheduler(queues, &fakeTenantStore{}, alerter)

	require.NoError(t, s.runHealthCheck(context.Background()))

	alerts := alerter.alerts()
	assert.Len(t, alerts, 3, "one backlog alert, plus failed and backlog on housekeeping")

	byQueue := map[string]int{}
	for _, a := range alerts {
		byQueue[a.queueName]++
	}
	assert.Equal(t, 0, byQueue[queue.QueueRecomputeStats])
	assert.Equal(t, 1, byQueue[queue.QueueSendNotification])
	assert.Equal(t, 2, byQueue[queue.QueueHousekeeping])
}

func TestHealthCheck_ThresholdsAreExclusive(t *testing.T) {
	t.Parallel()

	queues := &fakeQueues{stats: map[string]queue.Stats{
		queue.QueueRecomputeStats: {Waiting: 100, Failed: 10},
	}}
	alerter := &fakeAlerter{}
	s := testScheduler(queues, &fakeTenantStore{}, alerter)

	require.NoError(t, s.runHealthCheck(context.Background()))
	assert.Empty(t, alerter.alerts(), "counts at the threshold do not alert")
}

func TestScheduler_Lifecycle(t *testing.T) {
	t.Parallel()

	s := testScheduler(&fakeQueues{}, &fakeTenantStore{}, &fakeAlerter{})

	// Stop before Start must be a no-op.
	s.Stop()

	require.NoError(t, s.Start())
	require.NoError(t, s.Start(), "second Start is a no-op")

	s.Stop()
	s.Stop()
}

func TestScheduler_StopInterruptsPacedProducer(t *testing.T) {
	t.Parallel()

	queues := &fakeQueues{}
	tenants := &fakeTenantStore{tenants: activeTenants("acme", "globex")}
	cfg := config.SchedulerConfig{
		StatsCron:        "@every 1s",
		HousekeepingCron: "0 4 * * *",
		HealthCheckCron:  "*/5 * * * *",
		FailedThreshold:  10,
		WaitingThreshold: 100,
	}
	s := New(cfg, queues, tenants, &fakeAlerter{}, discardLogger())
	s.enqueuePause = time.Hour

	require.NoError(t, s.Start())

	// Wait until the stats producer is inside its per-tenant pacing pause.
	require.Eventually(t, func() bool {
		return len(queues.enqueued()) >= 1
	}, 5*time.Second, 10*time.Millisecond)

	stopped := make(chan struct{})
	go func() {
		s.Stop()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-time.After(5 * time.Second):
		t.Fatal("Stop did not interrupt the in-flight producer run")
	}
}

func TestScheduler_StartRejectsInvalidCron(t *testing.T) {
	t.Parallel()

	cfg := config.SchedulerConfig{
		StatsCron:        "not a cron expression",
		HousekeepingCron: "0 4 * * *",
		HealthCheckCron:  "*/5 * * * *",
		FailedThreshold:  10,
		WaitingThreshold: 100,
	}
	s := New(cfg, &fakeQueues{}, &fakeTenantStore{}, &fakeAlerter{}, discardLogger())

	err := s.Start()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stats_recompute")
}
