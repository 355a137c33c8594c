// Package postgres implements the store interfaces on PostgreSQL via pgx.
// Queries are tenant-scoped at the SQL level; no query in this package may
// read or mutate rows across tenant boundaries.
package postgres
