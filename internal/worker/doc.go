// Package worker runs the consumer side of the async layer: one pool per
// queue, each claiming up to its concurrency limit of waiting jobs while a
// rolling-window rate limiter independently caps job starts. Dispatch is by
// job-type name into a handler table; an unknown type is a permanent
// failure. Every processed job is reported as a JobOutcomeEvent — completed,
// retrying, or terminally failed — never silently dropped.
package worker
