package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/caseflow-hq/caseflow-api/internal/domain"
	"github.com/caseflow-hq/caseflow-api/internal/store"
)

// TenantStore implements store.TenantStore on PostgreSQL.
type TenantStore struct {
	db DBTX
}

// NewTenantStore creates the PostgreSQL tenant store.
func NewTenantStore(db DBTX) *TenantStore {
	return &TenantStore{db: db}
}

var _ store.TenantStore = (*TenantStore)(nil)

// Get retrieves one tenant by ID.
func (s *TenantStore) Get(ctx context.Context, id string) (*domain.Tenant, error) {
	query := `
		SELECT id, name, status, created_at, updated_at
		FROM tenants
		WHERE id = $1
	`

	var t domain.Tenant
	err := s.db.QueryRow(ctx, query, id).
		Scan(&t.ID, &t.Name, &t.Status, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrTenantNotFound
		}
		return nil, fmt.Errorf("get tenant %s: %w", id, err)
	}
	return &t, nil
}

// ListActive returns every active tenant ordered by creation time.
func (s *TenantStore) ListActive(ctx context.Context) ([]*domain.Tenant, error) {
	query := `
		SELECT id, name, status, created_at, updated_at
		FROM tenants
		WHERE status = $1
		ORDER BY created_at ASC
	`

	rows, err := s.db.Query(ctx, query, domain.TenantStatusActive)
	if err != nil {
		return nil, fmt.Errorf("list active tenants: %w", err)
	}
	defer rows.Close()

	var tenants []*domain.Tenant
	for rows.Next() {
		var t domain.Tenant
		if err := rows.Scan(&t.ID, &t.Name, &t.Status, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan tenant row: %w", err)
		}
		tenants = append(tenants, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tenant rows: %w", err)
	}
	return tenants, nil
}
