// Package stats is the synchronous face of the case-statistics pipeline:
// cache-aside reads for request handlers, and the invalidation protocol
// case mutations call into. The slow recompute itself runs on the
// recompute-stats queue.
package stats
