package jobs

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/caseflow-hq/caseflow-api/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeStatsReader returns canned stats or a canned error.
type fakeStatsReader struct {
	mu    sync.Mutex
	calls []string // "tenantID/view"
	err   error
	stats map[string]*domain.CaseStats // keyed by view
}

func (f *fakeStatsReader) ComputeStats(_ context.Context, tenantID string, view domain.StatsView) (*domain.CaseStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, tenantID+"/"+string(view))
	if f.err != nil {
		return nil, f.err
	}
	if s, ok := f.stats[string(view)]; ok {
		return s, nil
	}
	return &domain.CaseStats{TenantID: tenantID, View: view, ComputedAt: time.Now().UTC()}, nil
}

// fakeCache records sets and pattern deletes in memory.
type fakeCache struct {
	mu       sync.Mutex
	entries  map[string]any
	ttls     map[string]time.Duration
	setErr   error
	sweepN   int
	sweepErr error
	patterns []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string]any), ttls: make(map[string]time.Duration)}
}

func (f *fakeCache) Get(_ context.Context, key string, dest any) error {
	return nil // unused by handlers
}

func (f *fakeCache) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.setErr != nil {
		return f.setErr
	}
	f.entries[key] = value
	f.ttls[key] = ttl
	return nil
}

func (f *fakeCache) Delete(_ context.Context, keys ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, k := range keys {
		delete(f.entries, k)
	}
	return nil
}

func (f *fakeCache) DeletePattern(_ context.Context, pattern string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.patterns = append(f.patterns, pattern)
	if f.sweepErr != nil {
		return 0, f.sweepErr
	}
	return f.sweepN, nil
}

// fakeNotifier fails delivery for recipients listed in failFor.
type fakeNotifier struct {
	mu      sync.Mutex
	sent    []string
	failFor map[string]error
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{failFor: make(map[string]error)}
}

func (f *fakeNotifier) Send(_ context.Context, _ domain.NotificationTemplate, recipient string, _ map[string]any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.failFor[recipient]; ok {
		return err
	}
	f.sent = append(f.sent, recipient)
	return nil
}

// fakeHousekeepingStore returns fixed removal counts, draining each counter
// after the first call so a second run observes nothing left to remove.
type fakeHousekeepingStore struct {
	mu       sync.Mutex
	sessions int64
	tokens   int64
	logs     int64
	history  int64
	err      error
}

func (f *fakeHousekeepingStore) drain(n *int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return 0, f.err
	}
	v := *n
	*n = 0
	return v, nil
}

func (f *fakeHousekeepingStore) DeleteExpiredSessions(_ context.Context, _ time.Time) (int64, error) {
	return f.drain(&f.sessions)
}

func (f *fakeHousekeepingStore) DeleteExpiredTokens(_ context.Context, _ time.Time) (int64, error) {
	return f.drain(&f.tokens)
}

func (f *fakeHousekeepingStore) DeleteOldAuditLogs(_ context.Context, _ time.Time) (int64, error) {
	return f.drain(&f.logs)
}

func (f *fakeHousekeepingStore) DeleteOldCaseHistory(_ context.Context, _ time.Time) (int64, error) {
	return f.drain(&f.history)
}

// fakeTrimmer records trim invocations.
type fakeTrimmer struct {
	mu          sync.Mutex
	trimmed     int
	purged      int
	keeps       []int
	failedCalls int
}

func (f *fakeTrimmer) TrimAllCompleted(_ context.Context, keep int) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.keeps = append(f.keeps, keep)
	v := f.trimmed
	f.trimmed = 0
	return v, nil
}

func (f *fakeTrimmer) TrimAllFailed(_ context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failedCalls++
	v := f.purged
	f.purged = 0
	return v, nil
}

// fakeAssetStore returns a deterministic URL per file name.
type fakeAssetStore struct {
	mu     sync.Mutex
	stored []string
	err    error
}

func (f *fakeAssetStore) Store(_ context.Context, name, _ string, _ []byte) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	f.stored = append(f.stored, name)
	return "https://assets.caseflow.test/" + name, nil
}

// fakeUploadStore records field updates.
type fakeUploadStore struct {
	mu      sync.Mutex
	updates map[string]string // "entityType/entityID" -> url
	err     error
}

func newFakeUploadStore() *fakeUploadStore {
	return &fakeUploadStore{updates: make(map[string]string)}
}

func (f *fakeUploadStore) SetAssetURL(_ context.Context, entityType domain.EntityType, entityID, url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.updates[string(entityType)+"/"+entityID] = url
	return nil
}
