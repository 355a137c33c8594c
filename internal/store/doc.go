// Package store defines interfaces for data persistence operations.
// These interfaces abstract the underlying data storage mechanism from
// the application's core logic; job handlers and the scheduler depend on
// them rather than on a concrete database, which keeps the async layer
// testable with in-memory fakes.
package store
