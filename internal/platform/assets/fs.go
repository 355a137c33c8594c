// Package assets stores processed upload content on the local filesystem.
// Object storage backends implement the same contract behind the jobs
// package's AssetStore interface.
package assets

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// FSStore writes assets under a base directory and returns URLs beneath a
// base URL. Files are content-addressed: storing identical content twice
// yields the same name and the same URL, which keeps upload jobs safe to
// replay.
type FSStore struct {
	dir     string
	baseURL string
	logger  *slog.Logger
}

// NewFSStore creates the filesystem asset store, creating dir if needed.
func NewFSStore(dir, baseURL string, logger *slog.Logger) (*FSStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create asset directory %s: %w", dir, err)
	}
	return &FSStore{
		dir:     dir,
		baseURL: baseURL,
		logger:  logger.With("component", "asset_store"),
	}, nil
}

// Store writes content and returns its stable URL.
func (s *FSStore) Store(ctx context.Context, name, contentType string, content []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	sum := sha256.Sum256(content)
	stored := hex.EncodeToString(sum[:]) + filepath.Ext(name)
	path := filepath.Join(s.dir, stored)

	if _, err := os.Stat(path); err == nil {
		// Same content already stored; the URL is already stable.
		return s.baseURL + "/" + stored, nil
	}

	if err := os.WriteFile(path, content, 0o644); err != nil {
		return "", fmt.Errorf("write asset %s: %w", stored, err)
	}

	s.logger.Debug("asset stored",
		"name", name,
		"stored_as", stored,
		"content_type", contentType,
		"bytes", len(content))
	return s.baseURL + "/" + stored, nil
}
