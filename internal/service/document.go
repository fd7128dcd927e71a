package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/emrgen/manuscript/internal/cache"
	"github.com/emrgen/manuscript/internal/compress"
	"github.com/emrgen/manuscript/internal/model"
	"github.com/emrgen/manuscript/internal/queue"
	"github.com/emrgen/manuscript/internal/schema"
	"github.com/emrgen/manuscript/internal/store"
)

// NewDocumentService creates a new DocumentService. The cache and dispatcher
// are optional; without them reads always hit the store and no asynchronous
// cache sync happens.
func NewDocumentService(compress compress.Compress, store store.Store, schemas *schema.Registry,
	documentCache cache.DocumentCache, dispatcher *queue.Dispatcher) *DocumentService {
	return &DocumentService{
		compress:   compress,
		store:      store,
		schemas:    schemas,
		cache:      documentCache,
		dispatcher: dispatcher,
		applier:    JSONPatchApplier{},
	}
}

// DocumentService owns the collaborative document lifecycle: creation, the
// version reconciler and the schema migration gate.
type DocumentService struct {
	compress   compress.Compress
	store      store.Store
	schemas    *schema.Registry
	cache      cache.DocumentCache
	dispatcher *queue.Dispatcher
	applier    OperationApplier
}

// SetApplier replaces the default JSON-patch operation applier.
func (d *DocumentService) SetApplier(applier OperationApplier) {
	d.applier = applier
}

// CreateDocumentInput carries the fields of a new document. Content defaults
// to an empty JSON object.
type CreateDocumentInput struct {
	DocumentID  string
	OwnerUserID string
	ContainerID string
	Content     string
}

// ApplyResult reports the outcome of an accepted batch of operations.
type ApplyResult struct {
	NewVersion int64
	AppliedAt  time.Time
}

// CreateDocument creates a new document at version 0 with no history.
func (d *DocumentService) CreateDocument(ctx context.Context, input CreateDocumentInput) (*model.Document, error) {
	content := input.Content
	if content == "" {
		content = "{}"
	}

	contentData, err := d.compress.Encode([]byte(content))
	if err != nil {
		return nil, err
	}

	doc := &model.Document{
		ID:            input.DocumentID,
		OwnerUserID:   input.OwnerUserID,
		ContainerID:   input.ContainerID,
		Content:       string(contentData),
		Version:       0,
		SchemaVersion: d.schemas.Current(),
	}
	if doc.ID == "" {
		doc.ID = uuid.New().String()
	}

	if err := d.store.CreateDocument(ctx, doc); err != nil {
		return nil, err
	}

	d.syncCache(doc)

	return d.decoded(doc)
}

// GetDocument retrieves a document, preferring the cache when one is
// configured.
func (d *DocumentService) GetDocument(ctx context.Context, id uuid.UUID) (*model.Document, error) {
	if d.cache != nil {
		doc, err := d.cache.GetDocument(ctx, id)
		if err == nil {
			return d.decoded(doc)
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			logrus.Errorf("document cache read failed: %v", err)
		}
	}

	doc, err := d.store.GetDocument(ctx, id)
	if err != nil {
		return nil, err
	}

	d.syncCache(doc)

	return d.decoded(doc)
}

// ApplyOperations reconciles one batch of edit operations against the
// document. The whole transition runs in a single transaction holding an
// exclusive lock on the document row: version check, history append and
// version bump are atomic. A stale expectedBaseVersion loses with a
// ConflictError and nothing is written.
func (d *DocumentService) ApplyOperations(ctx context.Context, docID uuid.UUID, operations []json.RawMessage,
	expectedBaseVersion int64, clientID string) (*ApplyResult, error) {
	if clientID == "" {
		return nil, ErrEmptyClientID
	}
	if len(operations) == 0 {
		return nil, ErrNoOperations
	}

	var doc *model.Document
	err := d.store.Transaction(ctx, func(tx store.Store) error {
		var err error
		doc, err = tx.GetDocumentForUpdate(ctx, docID)
		if err != nil {
			return err
		}

		// stale stored schema must be migrated before the write lands
		if err := d.migrateLocked(ctx, tx, doc); err != nil {
			return err
		}

		if doc.Version != expectedBaseVersion {
			return &ConflictError{
				DocumentID: doc.ID,
				Expected:   expectedBaseVersion,
				Actual:     doc.Version,
			}
		}

		content, err := d.compress.Decode([]byte(doc.Content))
		if err != nil {
			return ErrDocumentContentCorrupted
		}

		applied, err := d.applier.Apply(content, operations)
		if err != nil {
			return err
		}

		opsData, err := json.Marshal(operations)
		if err != nil {
			return err
		}

		if err := tx.CreateDocumentHistory(ctx, &model.DocumentHistory{
			DocumentID: doc.ID,
			Version:    doc.Version + 1,
			Operations: string(opsData),
			ClientID:   clientID,
		}); err != nil {
			return err
		}

		encoded, err := d.compress.Encode(applied)
		if err != nil {
			return err
		}

		doc.Content = string(encoded)
		doc.Version = doc.Version + 1

		logrus.Infof("applying operations to document %s, version %d -> %d by client %s",
			doc.ID, expectedBaseVersion, doc.Version, clientID)

		return tx.UpdateDocument(ctx, doc)
	})
	if err != nil {
		return nil, err
	}

	d.syncCache(doc)

	return &ApplyResult{
		NewVersion: doc.Version,
		AppliedAt:  doc.UpdatedAt,
	}, nil
}

// ListHistory lists history records with version > fromVersion in ascending
// version order.
func (d *DocumentService) ListHistory(ctx context.Context, docID uuid.UUID, fromVersion int64) ([]*model.DocumentHistory, error) {
	return d.store.ListDocumentHistory(ctx, docID, fromVersion)
}

// Replay folds every history record's operations, in version order, over the
// version-0 content. The result must equal the current stored content.
func (d *DocumentService) Replay(ctx context.Context, docID uuid.UUID, base []byte) ([]byte, error) {
	records, err := d.store.ListDocumentHistory(ctx, docID, 0)
	if err != nil {
		return nil, err
	}

	content := base
	for _, record := range records {
		var operations []json.RawMessage
		if err := json.Unmarshal([]byte(record.Operations), &operations); err != nil {
			return nil, err
		}

		content, err = d.applier.Apply(content, operations)
		if err != nil {
			return nil, err
		}
	}

	return content, nil
}

// DeleteDocument soft deletes a document and removes its snapshots in the
// same transaction.
func (d *DocumentService) DeleteDocument(ctx context.Context, docID uuid.UUID) error {
	err := d.store.Transaction(ctx, func(tx store.Store) error {
		if _, err := tx.GetDocument(ctx, docID); err != nil {
			return err
		}

		if err := tx.DeleteDocumentSnapshots(ctx, docID); err != nil {
			return err
		}

		return tx.DeleteDocument(ctx, docID)
	})
	if err != nil {
		return err
	}

	if d.cache != nil && d.dispatcher != nil {
		d.dispatcher.Enqueue(func(ctx context.Context) error {
			return d.cache.DeleteDocument(ctx, docID)
		})
	}

	return nil
}

// EnsureCurrentSchema migrates a stale document to the current schema
// version inside one transaction: transform, backup, then the in-place
// update. A document already at the current version is returned unchanged
// and no backup is written.
func (d *DocumentService) EnsureCurrentSchema(ctx context.Context, docID uuid.UUID) (*model.Document, error) {
	var doc *model.Document
	err := d.store.Transaction(ctx, func(tx store.Store) error {
		var err error
		doc, err = tx.GetDocumentForUpdate(ctx, docID)
		if err != nil {
			return err
		}

		return d.migrateLocked(ctx, tx, doc)
	})
	if err != nil {
		return nil, err
	}

	d.syncCache(doc)

	return d.decoded(doc)
}

// migrateLocked runs the schema migration gate against a row-locked
// document. Any failure aborts the enclosing transaction so partial
// migration state is never observable.
func (d *DocumentService) migrateLocked(ctx context.Context, tx store.Store, doc *model.Document) error {
	stale, err := d.schemas.Stale(doc.SchemaVersion)
	if err != nil {
		return err
	}
	if !stale {
		return nil
	}

	content, err := d.compress.Decode([]byte(doc.Content))
	if err != nil {
		return ErrDocumentContentCorrupted
	}

	migrated, err := d.schemas.Transform(content, doc.SchemaVersion)
	if err != nil {
		return err
	}

	backup := &model.MigrationBackup{
		ID:            uuid.New().String(),
		DocumentID:    doc.ID,
		SchemaVersion: doc.SchemaVersion,
		Content:       doc.Content,
		Compression:   doc.Compression,
	}
	if err := tx.CreateMigrationBackup(ctx, backup); err != nil {
		return err
	}

	encoded, err := d.compress.Encode(migrated)
	if err != nil {
		return err
	}

	logrus.Infof("migrating document %s schema %s -> %s", doc.ID, doc.SchemaVersion, d.schemas.Current())

	doc.Content = string(encoded)
	doc.SchemaVersion = d.schemas.Current()

	return tx.UpdateDocument(ctx, doc)
}

// syncCache pushes the stored form of the document to the cache through the
// FIFO dispatcher so cache writes stay ordered.
func (d *DocumentService) syncCache(doc *model.Document) {
	if d.cache == nil || d.dispatcher == nil || doc == nil {
		return
	}

	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return
	}

	clone := *doc
	d.dispatcher.Enqueue(func(ctx context.Context) error {
		return d.cache.SetDocument(ctx, id, &clone)
	})
}

// decoded returns a copy of the document with its content decompressed.
func (d *DocumentService) decoded(doc *model.Document) (*model.Document, error) {
	content, err := d.compress.Decode([]byte(doc.Content))
	if err != nil {
		return nil, ErrDocumentContentCorrupted
	}

	clone := *doc
	clone.Content = string(content)
	return &clone, nil
}
