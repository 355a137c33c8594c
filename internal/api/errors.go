package api

import (
	"errors"
	"net/http"

	"github.com/caseflow-hq/caseflow-api/internal/domain"
	"github.com/caseflow-hq/caseflow-api/internal/queue"
	"github.com/caseflow-hq/caseflow-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes without
// leaking internal error types or messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, store.ErrTenantNotFound),
		errors.Is(err, store.ErrNotFound),
		errors.Is(err, queue.ErrUnknownQueue):
		return http.StatusNotFound

	case errors.Is(err, domain.ErrUnknownStatsView),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns the sanitized client-facing message for err.
func GetSafeErrorMessage(err error) string {
	switch {
	case err == nil:
		return "An unexpected error occurred"
	case errors.Is(err, store.ErrTenantNotFound):
		return "Tenant not found"
	case errors.Is(err, queue.ErrUnknownQueue):
		return "Queue not found"
	case errors.Is(err, domain.ErrUnknownStatsView):
		return "Unknown statistics view"
	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid request"
	case errors.Is(err, store.ErrNotFound):
		return "Not found"
	default:
		return "An unexpected error occurred"
	}
}
