package store

import (
	"context"
	"time"
)

// HousekeepingStore removes obsolete rows from the relational store. Every
// method deletes rows older than the given cutoff and returns the number of
// rows removed. Deletes are idempotent: a second run with no new obsolete
// data removes zero rows. All methods are safe to run concurrently with
// themselves.
type HousekeepingStore interface {
	// DeleteExpiredSessions removes sessions whose expiry is before cutoff.
	DeleteExpiredSessions(ctx context.Context, cutoff time.Time) (int64, error)

	// DeleteExpiredTokens removes password-reset and invitation tokens
	// whose expiry is before cutoff.
	DeleteExpiredTokens(ctx context.Context, cutoff time.Time) (int64, error)

	// DeleteOldAuditLogs removes audit log entries older than cutoff.
	DeleteOldAuditLogs(ctx context.Context, cutoff time.Time) (int64, error)

	// DeleteOldCaseHistory removes case history entries older than cutoff
	// for cases that are already closed.
	DeleteOldCaseHistory(ctx context.Context, cutoff time.Time) (int64, error)
}
