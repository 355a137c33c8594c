package jobs

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/caseflow-hq/caseflow-api/internal/domain"
	"github.com/caseflow-hq/caseflow-api/internal/store"
)

// AssetStore persists a transformed upload and returns its stable URL.
// Asset transformation and object storage live outside this layer.
type AssetStore interface {
	Store(ctx context.Context, name, contentType string, content []byte) (string, error)
}

// UploadHandler stores one uploaded asset and updates exactly one field on
// exactly one entity record, selected by the payload's entity type.
//
// Storing the same content twice yields the same URL and the field update
// overwrites with the same value, so a replayed job is harmless.
type UploadHandler struct {
	assets AssetStore
	store  store.UploadStore
	logger *slog.Logger
}

// NewUploadHandler creates the process-upload handler.
func NewUploadHandler(assets AssetStore, uploadStore store.UploadStore, logger *slog.Logger) *UploadHandler {
	return &UploadHandler{
		assets: assets,
		store:  uploadStore,
		logger: logger.With("component", "upload_handler"),
	}
}

// Handle processes one upload:process job.
func (h *UploadHandler) Handle(ctx context.Context, t *asynq.Task) error {
	var p ProcessUploadPayload
	if err := unmarshalPayload(t, &p); err != nil {
		return err
	}
	if !domain.ValidEntityType(p.EntityType) {
		return permanent(fmt.Errorf("%w: %q", domain.ErrInvalidEntityType, p.EntityType))
	}
	if p.EntityID == "" || len(p.Content) == 0 {
		return permanent(fmt.Errorf("%w: missing entity_id or content", ErrMalformedPayload))
	}

	url, err := h.assets.Store(ctx, p.FileName, p.ContentType, p.Content)
	if err != nil {
		return fmt.Errorf("store asset %s: %w", p.FileName, err)
	}

	if err := h.store.SetAssetURL(ctx, p.EntityType, p.EntityID, url); err != nil {
		// A missing record will still be missing on the next attempt.
		if store.IsNotFoundError(err) {
			return fmt.Errorf("%s %s not found: %w", p.EntityType, p.EntityID, asynq.SkipRetry)
		}
		return fmt.Errorf("update %s %s: %w", p.EntityType, p.EntityID, err)
	}

	h.logger.Debug("upload processed",
		"tenant_id", p.TenantID,
		"entity_type", p.EntityType,
		"entity_id", p.EntityID,
		"url", url)
	return nil
}
