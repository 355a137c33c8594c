// Package logger provides structured logging setup for the application.
// All components log through log/slog with a JSON handler so that queue,
// worker, scheduler, and cache events are machine-parseable in aggregate.
package logger
