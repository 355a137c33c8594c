package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/caseflow-hq/caseflow-api/internal/api/shared"
	"github.com/caseflow-hq/caseflow-api/internal/domain"
)

// StatsReader is the read side of the stats service.
type StatsReader interface {
	GetTenantStats(ctx context.Context, tenantID string, view domain.StatsView) (*domain.CaseStats, error)
}

// StatsInvalidator is the invalidation protocol entry point, fire-and-forget.
type StatsInvalidator interface {
	OnCaseMutation(ctx context.Context, tenantID string)
}

// StatsHandler serves cache-aside tenant statistics reads and the manual
// recompute trigger.
type StatsHandler struct {
	stats       StatsReader
	invalidator StatsInvalidator
	logger      *slog.Logger
}

// NewStatsHandler creates the stats handler.
func NewStatsHandler(stats StatsReader, invalidator StatsInvalidator, logger *slog.Logger) *StatsHandler {
	return &StatsHandler{
		stats:       stats,
		invalidator: invalidator,
		logger:      logger.With("component", "stats_api"),
	}
}

// GetTenantStats handles GET /v1/tenants/{tenantID}/stats/{view}.
func (h *StatsHandler) GetTenantStats(w http.ResponseWriter, r *http.Request) {
	tenantID := chi.URLParam(r, "tenantID")
	view := domain.StatsView(chi.URLParam(r, "view"))

	if tenantID == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Tenant ID is required", nil)
		return
	}

	stats, err := h.stats.GetTenantStats(r.Context(), tenantID, view)
	if err != nil {
		shared.RespondWithError(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, stats)
}

// RecomputeTenantStats handles POST /v1/tenants/{tenantID}/stats/recompute.
// It runs the same invalidation protocol a case mutation triggers: drop the
// tenant's cached views, schedule a recompute, return immediately.
func (h *StatsHandler) RecomputeTenantStats(w http.ResponseWriter, r *http.Request) {
	tenantID := chi.URLParam(r, "tenantID")
	if tenantID == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Tenant ID is required", nil)
		return
	}

	h.invalidator.OnCaseMutation(r.Context(), tenantID)
	w.WriteHeader(http.StatusAccepted)
}
