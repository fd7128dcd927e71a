package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/emrgen/manuscript/internal/model"
	"github.com/emrgen/manuscript/internal/object"
)

type Store interface {
	ObjectStore
	DocumentStore
	HistoryStore
	SnapshotStore
	MigrationBackupStore
	Transaction(ctx context.Context, f func(tx Store) error) error
	Migrate() error
}

type ObjectStore interface {
	// CreateObject creates a new managed object.
	CreateObject(ctx context.Context, obj *model.ManagedObject) error
	// GetObject retrieves a managed object by ID, tombstoned rows included.
	GetObject(ctx context.Context, id string) (*model.ManagedObject, error)
	// SaveObject upserts a managed object.
	SaveObject(ctx context.Context, obj *model.ManagedObject) error
	// ListContainedObjects retrieves the objects carrying the container ID.
	ListContainedObjects(ctx context.Context, containerID string) ([]*model.ManagedObject, error)
	// GetContainer resolves a container object by ID into its decoded form.
	// A nil object with a nil error means the container is absent.
	GetContainer(ctx context.Context, id string) (object.Object, error)
}

type DocumentStore interface {
	// CreateDocument creates a new document.
	CreateDocument(ctx context.Context, doc *model.Document) error
	// GetDocument retrieves a document by ID.
	GetDocument(ctx context.Context, id uuid.UUID) (*model.Document, error)
	// GetDocumentForUpdate retrieves a document holding an exclusive row
	// lock for the duration of the enclosing transaction.
	GetDocumentForUpdate(ctx context.Context, id uuid.UUID) (*model.Document, error)
	// UpdateDocument updates a document.
	UpdateDocument(ctx context.Context, doc *model.Document) error
	// DeleteDocument soft deletes a document by ID.
	DeleteDocument(ctx context.Context, id uuid.UUID) error
	// EraseDocument hard deletes a document by ID.
	EraseDocument(ctx context.Context, id uuid.UUID) error
	// ListDeletedDocumentsBefore lists documents soft deleted before the cutoff.
	ListDeletedDocumentsBefore(ctx context.Context, cutoff time.Time) ([]*model.Document, error)
}

type HistoryStore interface {
	// CreateDocumentHistory appends a history record.
	CreateDocumentHistory(ctx context.Context, record *model.DocumentHistory) error
	// ListDocumentHistory lists history records with version > fromVersion,
	// ordered by version ascending.
	ListDocumentHistory(ctx context.Context, docID uuid.UUID, fromVersion int64) ([]*model.DocumentHistory, error)
	// DeleteDocumentHistory removes all history records of a document.
	DeleteDocumentHistory(ctx context.Context, docID uuid.UUID) error
}

type SnapshotStore interface {
	// CreateSnapshot creates a new snapshot.
	CreateSnapshot(ctx context.Context, snapshot *model.Snapshot) error
	// GetSnapshot retrieves a snapshot by ID.
	GetSnapshot(ctx context.Context, id uuid.UUID) (*model.Snapshot, error)
	// ListSnapshots retrieves the snapshots of a document.
	ListSnapshots(ctx context.Context, docID uuid.UUID) ([]*model.Snapshot, error)
	// DeleteSnapshot deletes a snapshot by ID.
	DeleteSnapshot(ctx context.Context, id uuid.UUID) error
	// DeleteDocumentSnapshots deletes all snapshots of a document.
	DeleteDocumentSnapshots(ctx context.Context, docID uuid.UUID) error
}

type MigrationBackupStore interface {
	// CreateMigrationBackup appends a pre-migration backup.
	CreateMigrationBackup(ctx context.Context, backup *model.MigrationBackup) error
	// ListMigrationBackups retrieves the backups of a document.
	ListMigrationBackups(ctx context.Context, docID uuid.UUID) ([]*model.MigrationBackup, error)
	// DeleteMigrationBackups removes all backups of a document.
	DeleteMigrationBackups(ctx context.Context, docID uuid.UUID) error
}
