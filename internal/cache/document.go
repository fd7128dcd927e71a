package cache

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/emrgen/manuscript/internal/model"
)

// ErrCacheMiss is returned when the document or version is not cached.
var ErrCacheMiss = errors.New("cache miss")

// DocumentCache keeps the latest accepted revision of hot documents so
// read paths can skip the store.
type DocumentCache interface {
	// GetDocument gets a document from the cache.
	GetDocument(ctx context.Context, id uuid.UUID) (*model.Document, error)
	// SetDocument sets a document in the cache.
	SetDocument(ctx context.Context, id uuid.UUID, doc *model.Document) error
	// GetVersion gets the cached version of a document.
	GetVersion(ctx context.Context, id uuid.UUID) (int64, error)
	// DeleteDocument deletes a document from the cache.
	DeleteDocument(ctx context.Context, id uuid.UUID) error
}
