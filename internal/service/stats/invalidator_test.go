package stats

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caseflow-hq/caseflow-api/internal/cache"
	"github.com/caseflow-hq/caseflow-api/internal/jobs"
	"github.com/caseflow-hq/caseflow-api/internal/queue"
)

type recordedEnqueue struct {
	queueName string
	jobType   string
	payload   any
}

type fakeEnqueuer struct {
	mu      sync.Mutex
	calls   []recordedEnqueue
	skipped bool
	err     error
}

func (f *fakeEnqueuer) Enqueue(_ context.Context, queueName, jobType string, payload any, _ queue.EnqueueOptions) (*queue.JobHandle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.calls = append(f.calls, recordedEnqueue{queueName: queueName, jobType: jobType, payload: payload})
	return &queue.JobHandle{ID: "job-7", Queue: queueName, JobType: jobType, Skipped: f.skipped}, nil
}

func (f *fakeEnqueuer) enqueued() []recordedEnqueue {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]recordedEnqueue(nil), f.calls...)
}

func TestInvalidator_DeletesAllViewKeysThenEnqueuesRecompute(t *testing.T) {
	t.Parallel()

	c := newMemCache()
	for _, key := range cache.StatsTenantKeys("org-9") {
		c.entries[key] = []byte(`{}`)
	}
	enq := &fakeEnqueuer{}
	inv := NewInvalidator(c, enq, discardLogger())

	inv.OnCaseMutation(context.Background(), "org-9")

	assert.ElementsMatch(t, cache.StatsTenantKeys("org-9"), c.deleted)
	assert.Empty(t, c.entries)

	calls := enq.enqueued()
	require.Len(t, calls, 1)
	assert.Equal(t, queue.QueueRecomputeStats, calls[0].queueName)
	assert.Equal(t, jobs.TypeRecomputeStats, calls[0].jobType)

	payload, ok := calls[0].payload.(jobs.RecomputeStatsPayload)
	require.True(t, ok)
	assert.Equal(t, "org-9", payload.TenantID)
	assert.Empty(t, payload.View, "the recompute covers every view")
}

func TestInvalidator_DeleteFailureStillEnqueues(t *testing.T) {
	t.Parallel()

	c := newMemCache()
	c.delErr = errors.New("connection reset")
	enq := &fakeEnqueuer{}
	inv := NewInvalidator(c, enq, discardLogger())

	inv.OnCaseMutation(context.Background(), "org-9")

	require.Len(t, enq.enqueued(), 1, "the TTL backstop depends on the recompute still running")
}

func TestInvalidator_NeverPanicsOnEnqueueFailure(t *testing.T) {
	t.Parallel()

	enq := &fakeEnqueuer{err: errors.New("unknown queue")}
	inv := NewInvalidator(newMemCache(), enq, discardLogger())

	assert.NotPanics(t, func() {
		inv.OnCaseMutation(context.Background(), "org-9")
	})
}

func TestInvalidator_SkippedHandleIsQuietDegradation(t *testing.T) {
	t.Parallel()

	enq := &fakeEnqueuer{skipped: true}
	inv := NewInvalidator(newMemCache(), enq, discardLogger())

	assert.NotPanics(t, func() {
		inv.OnCaseMutation(context.Background(), "org-9")
	})
	assert.Len(t, enq.enqueued(), 1)
}
