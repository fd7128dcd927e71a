package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/emrgen/manuscript/internal/compress"
	"github.com/emrgen/manuscript/internal/model"
	"github.com/emrgen/manuscript/internal/store"
)

// NewSnapshotService creates a new snapshot service.
func NewSnapshotService(compress compress.Compress, store store.Store) *SnapshotService {
	return &SnapshotService{
		compress: compress,
		store:    store,
	}
}

// SnapshotService manages explicit, named copies of document content.
// Snapshots are never derived from history.
type SnapshotService struct {
	compress compress.Compress
	store    store.Store
}

// CreateSnapshot copies the document's current content into a new named
// snapshot.
func (s *SnapshotService) CreateSnapshot(ctx context.Context, docID uuid.UUID, name string) (*model.Snapshot, error) {
	var snapshot *model.Snapshot

	err := s.store.Transaction(ctx, func(tx store.Store) error {
		doc, err := tx.GetDocument(ctx, docID)
		if err != nil {
			return err
		}

		snapshot = &model.Snapshot{
			ID:          uuid.New().String(),
			DocumentID:  doc.ID,
			Name:        name,
			Content:     doc.Content,
			Compression: doc.Compression,
		}

		return tx.CreateSnapshot(ctx, snapshot)
	})
	if err != nil {
		return nil, err
	}

	logrus.Infof("created snapshot %s (%s) of document %s", snapshot.ID, name, docID)

	return snapshot, nil
}

// GetSnapshot retrieves a snapshot with its content decompressed.
func (s *SnapshotService) GetSnapshot(ctx context.Context, id uuid.UUID) (*model.Snapshot, error) {
	snapshot, err := s.store.GetSnapshot(ctx, id)
	if err != nil {
		return nil, err
	}

	content, err := s.compress.Decode([]byte(snapshot.Content))
	if err != nil {
		return nil, ErrDocumentContentCorrupted
	}

	clone := *snapshot
	clone.Content = string(content)
	return &clone, nil
}

// ListSnapshots lists the snapshots of a document, oldest first.
func (s *SnapshotService) ListSnapshots(ctx context.Context, docID uuid.UUID) ([]*model.Snapshot, error) {
	return s.store.ListSnapshots(ctx, docID)
}

// DeleteSnapshot deletes a single snapshot.
func (s *SnapshotService) DeleteSnapshot(ctx context.Context, id uuid.UUID) error {
	return s.store.DeleteSnapshot(ctx, id)
}

// DeleteDocumentSnapshots bulk deletes every snapshot of a document.
func (s *SnapshotService) DeleteDocumentSnapshots(ctx context.Context, docID uuid.UUID) error {
	return s.store.DeleteDocumentSnapshots(ctx, docID)
}
