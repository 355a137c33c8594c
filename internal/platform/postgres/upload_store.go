package postgres

import (
	"context"
	"fmt"

	"github.com/caseflow-hq/caseflow-api/internal/domain"
	"github.com/caseflow-hq/caseflow-api/internal/store"
)

// UploadStore implements store.UploadStore on PostgreSQL. The entity type
// selects the table; exactly one row's asset field changes per call.
type UploadStore struct {
	db DBTX
}

// NewUploadStore creates the PostgreSQL upload store.
func NewUploadStore(db DBTX) *UploadStore {
	return &UploadStore{db: db}
}

var _ store.UploadStore = (*UploadStore)(nil)

// SetAssetURL writes the stored asset's URL onto the referenced entity.
func (s *UploadStore) SetAssetURL(ctx context.Context, entityType domain.EntityType, entityID string, url string) error {
	var query string
	var notFound error

	switch entityType {
	case domain.EntityTypeCase:
		query = `UPDATE cases SET attachment_url = $1, updated_at = NOW() WHERE id = $2`
		notFound = store.ErrCaseNotFound
	case domain.EntityTypeTenant:
		query = `UPDATE tenants SET logo_url = $1, updated_at = NOW() WHERE id = $2`
		notFound = store.ErrTenantNotFound
	case domain.EntityTypeUser:
		query = `UPDATE users SET avatar_url = $1, updated_at = NOW() WHERE id = $2`
		notFound = store.ErrUserNotFound
	default:
		return fmt.Errorf("%w: %q", domain.ErrInvalidEntityType, entityType)
	}

	tag, err := s.db.Exec(ctx, query, url, entityID)
	if err != nil {
		return fmt.Errorf("set asset url on %s %s: %w", entityType, entityID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", notFound, entityID)
	}
	return nil
}
