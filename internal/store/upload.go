package store

import (
	"context"

	"github.com/caseflow-hq/caseflow-api/internal/domain"
)

// UploadStore updates the single asset-reference field on a record after an
// uploaded asset has been transformed and stored. Exactly one field on
// exactly one row changes per call; the entity type selects which table.
type UploadStore interface {
	// SetAssetURL writes the stored asset's URL onto the referenced entity.
	// Returns the entity-specific not-found error when the row is missing,
	// and ErrInvalidEntityType (wrapped) for an entity kind outside the
	// enumeration.
	SetAssetURL(ctx context.Context, entityType domain.EntityType, entityID string, url string) error
}
