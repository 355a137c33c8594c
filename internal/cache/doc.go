// Package cache provides the read-through key/value cache built atop the
// shared broker connection, plus the invalidation protocol that couples
// synchronous mutations to asynchronous recomputation.
//
// Keys are always composed as "{domain}:{tenantId}:{view}" from fixed
// enumerations, never free-form. Absence is always treated as "recompute";
// a corrupt or undecodable entry reads as a miss. When the broker is down
// the NoopStore stands in: every read misses and writes go nowhere, which
// callers already handle by recomputing from the source of truth.
package cache
