package postgres

import (
	"context"
	"fmt"
	"time"
)

// HousekeepingStore implements store.HousekeepingStore on PostgreSQL. Every
// delete targets rows strictly older than the cutoff, so reruns are
// naturally idempotent.
type HousekeepingStore struct {
	db DBTX
}

// NewHousekeepingStore creates the PostgreSQL housekeeping store.
func NewHousekeepingStore(db DBTX) *HousekeepingStore {
	return &HousekeepingStore{db: db}
}

// DeleteExpiredSessions removes sessions whose expiry is before cutoff.
func (s *HousekeepingStore) DeleteExpiredSessions(ctx context.Context, cutoff time.Time) (int64, error) {
	return s.deleteBefore(ctx, "expired sessions", `
		DELETE FROM sessions WHERE expires_at < $1
	`, cutoff)
}

// DeleteExpiredTokens removes password-reset and invitation tokens whose
// expiry is before cutoff.
func (s *HousekeepingStore) DeleteExpiredTokens(ctx context.Context, cutoff time.Time) (int64, error) {
	return s.deleteBefore(ctx, "expired tokens", `
		DELETE FROM tokens WHERE expires_at < $1
	`, cutoff)
}

// DeleteOldAuditLogs removes audit log entries older than cutoff.
func (s *HousekeepingStore) DeleteOldAuditLogs(ctx context.Context, cutoff time.Time) (int64, error) {
	return s.deleteBefore(ctx, "old audit logs", `
		DELETE FROM audit_logs WHERE created_at < $1
	`, cutoff)
}

// DeleteOldCaseHistory removes history entries older than cutoff, but only
// for cases that are already closed; open cases keep their full history.
func (s *HousekeepingStore) DeleteOldCaseHistory(ctx context.Context, cutoff time.Time) (int64, error) {
	return s.deleteBefore(ctx, "old case history", `
		DELETE FROM case_history
		WHERE created_at < $1
		  AND case_id IN (
			SELECT id FROM cases WHERE status IN ('closed', 'resolved')
		  )
	`, cutoff)
}

func (s *HousekeepingStore) deleteBefore(ctx context.Context, what, query string, cutoff time.Time) (int64, error) {
	tag, err := s.db.Exec(ctx, query, cutoff)
	if err != nil {
		return 0, fmt.Errorf("delete %s: %w", what, err)
	}
	return tag.RowsAffected(), nil
}
