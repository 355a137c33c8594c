// Package api implements the HTTP surface of the async layer: liveness,
// queue introspection, and cache-aside tenant statistics reads. Handlers
// are thin; they validate input, call one service, and translate errors to
// status codes.
package api
