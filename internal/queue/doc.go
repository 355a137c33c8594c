// Package queue provides the broker-backed job queues of the async
// processing layer: four named, typed, prioritized work lists with per-queue
// retry and retention policy.
//
// Call sites depend only on the Queue interface. At process start a single
// factory (NewManager) selects between the live Redis-backed implementation
// and an inert no-op stand-in, based on a one-time broker availability
// probe. No call site ever checks whether the broker is up: with the broker
// down, Enqueue logs a warning and returns a skipped-job sentinel handle,
// statistics read as zero, and Close is a no-op.
//
// Priority is a scheduling hint, not a guarantee. A job's small-integer
// priority (lower = more urgent) maps to one of three weighted broker
// queues per logical queue; concurrent workers may still complete a
// lower-priority job before a higher-priority one claimed in an overlapping
// window, and no ordering exists across queues.
package queue
