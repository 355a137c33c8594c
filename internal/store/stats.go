package store

import (
	"context"

	"github.com/caseflow-hq/caseflow-api/internal/domain"
)

// CaseStatsReader computes aggregate case statistics from the source of
// truth. Implementations must scope every query by tenant ID; the async
// layer never aggregates across tenant boundaries.
type CaseStatsReader interface {
	// ComputeStats recomputes one aggregate view for a single tenant.
	// It always returns a populated CaseStats for an existing tenant, even
	// when the tenant has zero cases.
	// Returns ErrTenantNotFound if the tenant does not exist.
	ComputeStats(ctx context.Context, tenantID string, view domain.StatsView) (*domain.CaseStats, error)
}
