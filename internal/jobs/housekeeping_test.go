package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func housekeepingTask(t *testing.T, kind HousekeepingType) *asynq.Task {
	t.Helper()
	data, err := json.Marshal(HousekeepingPayload{Type: kind})
	require.NoError(t, err)
	return asynq.NewTask(TypeHousekeeping, data)
}

func newHousekeeping(hs *fakeHousekeepingStore, c *fakeCache, tr *fakeTrimmer) *HousekeepingHandler {
	return NewHousekeepingHandler(hs, c, tr, 1000, discardLogger())
}

func TestHousekeepingHandler_Subtypes(t *testing.T) {
	t.Parallel()

	t.Run("sessions", func(t *testing.T) {
		t.Parallel()
		hs := &fakeHousekeepingStore{sessions: 12}
		h := newHousekeeping(hs, newFakeCache(), &fakeTrimmer{})

		removed, err := h.run(context.Background(), HousekeepSessions)
		require.NoError(t, err)
		assert.EqualValues(t, 12, removed)
	})

	t.Run("tokens", func(t *testing.T) {
		t.Parallel()
		hs := &fakeHousekeepingStore{tokens: 4}
		h := newHousekeeping(hs, newFakeCache(), &fakeTrimmer{})

		removed, err := h.run(context.Background(), HousekeepTokens)
		require.NoError(t, err)
		assert.EqualValues(t, 4, removed)
	})

	t.Run("cache sweeps domain and trims broker retention", func(t *testing.T) {
		t.Parallel()
		c := newFakeCache()
		c.sweepN = 30
		tr := &fakeTrimmer{trimmed: 5, purged: 2}
		h := newHousekeeping(&fakeHousekeepingStore{}, c, tr)

		removed, err := h.run(context.Background(), HousekeepCache)
		require.NoError(t, err)
		assert.EqualValues(t, 37, removed)
		assert.Equal(t, []string{"stats:*"}, c.patterns)
		assert.Equal(t, []int{1000}, tr.keeps)
		assert.Equal(t, 1, tr.failedCalls, "cache pass must purge expired failed jobs")
	})

	t.Run("all sums every pass", func(t *testing.T) {
		t.Parallel()
		hs := &fakeHousekeepingStore{sessions: 1, tokens: 2, logs: 3, history: 4}
		c := newFakeCache()
		c.sweepN = 5
		h := newHousekeeping(hs, c, &fakeTrimmer{purged: 6})

		removed, err := h.run(context.Background(), HousekeepAll)
		require.NoError(t, err)
		assert.EqualValues(t, 21, removed)
	})
}

func TestHousekeepingHandler_Idempotent(t *testing.T) {
	t.Parallel()

	// With no new obsolete data between runs, the second run removes zero.
	hs := &fakeHousekeepingStore{sessions: 9}
	h := newHousekeeping(hs, newFakeCache(), &fakeTrimmer{})

	first, err := h.run(context.Background(), HousekeepSessions)
	require.NoError(t, err)
	assert.EqualValues(t, 9, first)

	second, err := h.run(context.Background(), HousekeepSessions)
	require.NoError(t, err)
	assert.Zero(t, second)
}

func TestHousekeepingHandler_UnknownSubtypeIsPermanent(t *testing.T) {
	t.Parallel()

	h := newHousekeeping(&fakeHousekeepingStore{}, newFakeCache(), &fakeTrimmer{})

	err := h.Handle(context.Background(), housekeepingTask(t, HousekeepingType("attic")))
	require.Error(t, err)
	assert.ErrorIs(t, err, asynq.SkipRetry)
	assert.ErrorIs(t, err, ErrUnknownSubtype)
}

func TestHousekeepingHandler_StoreErrorRetries(t *testing.T) {
	t.Parallel()

	hs := &fakeHousekeepingStore{err: errors.New("deadlock detected")}
	h := newHousekeeping(hs, newFakeCache(), &fakeTrimmer{})

	err := h.Handle(context.Background(), housekeepingTask(t, HousekeepLogs))
	require.Error(t, err)
	assert.NotErrorIs(t, err, asynq.SkipRetry)
}
