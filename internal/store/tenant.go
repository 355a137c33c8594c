package store

import (
	"context"

	"github.com/caseflow-hq/caseflow-api/internal/domain"
)

// TenantStore defines the interface for tenant data persistence.
type TenantStore interface {
	// Get retrieves a tenant by its identifier.
	// Returns ErrTenantNotFound if the tenant does not exist.
	Get(ctx context.Context, id string) (*domain.Tenant, error)

	// ListActive returns every tenant in the active state, ordered by
	// creation time. The scheduler's stats producer iterates this list on
	// each firing, so the result set is expected to be small relative to
	// the case tables.
	ListActive(ctx context.Context) ([]*domain.Tenant, error)
}
