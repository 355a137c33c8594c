// Package jobs contains the typed job handlers the worker pools dispatch
// to, one family per queue: stats recomputation, notification delivery,
// housekeeping, and upload processing.
//
// Every handler is idempotent with respect to at-least-once delivery: a job
// replayed after a crash mid-processing recomputes, re-renders, re-deletes,
// or re-writes the same result without corrupting state. Handlers never act
// across tenant boundaries; the only tenant they touch is the one named in
// their own payload.
package jobs
