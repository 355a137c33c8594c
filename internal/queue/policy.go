package queue

import "time"

// Policy bundles the retry and retention rules one logical queue applies to
// every job it accepts.
type Policy struct {
	// MaxAttempts is the total number of executions a job may consume,
	// including the first. Once exhausted, the job is terminally Failed.
	MaxAttempts int

	// BackoffBase is the delay before the first retry; each subsequent
	// retry doubles it (2s, 4s, 8s with the default base and attempts).
	BackoffBase time.Duration

	// CompletedRetention is how long completed jobs remain inspectable.
	CompletedRetention time.Duration

	// CompletedCap bounds the number of retained completed jobs per queue.
	// The broker only expires by age; the cap is enforced by the
	// housekeeping job's periodic trim.
	CompletedCap int

	// FailedRetention is how long terminally failed jobs are kept for
	// investigation before housekeeping removes them.
	FailedRetention time.Duration

	// JobTimeout is the per-job execution deadline. A handler that exceeds
	// it is aborted and the attempt counts as a transient failure.
	JobTimeout time.Duration
}

// DefaultPolicy returns the policy every queue starts from: 3 attempts with
// exponential backoff from 2s, completed jobs kept 24h or 1000 entries,
// failed jobs kept 7 days.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts:        3,
		BackoffBase:        2 * time.Second,
		CompletedRetention: 24 * time.Hour,
		CompletedCap:       1000,
		FailedRetention:    7 * 24 * time.Hour,
		JobTimeout:         5 * time.Minute,
	}
}

// RetryDelay returns the backoff before retry n (0-based): base doubled n
// times.
func (p Policy) RetryDelay(n int) time.Duration {
	return p.BackoffBase << n
}
