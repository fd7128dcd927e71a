package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/emrgen/manuscript/internal/model"
	"github.com/emrgen/manuscript/internal/object"
)

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{
		db: db,
	}
}

var _ Store = (*GormStore)(nil)

type GormStore struct {
	db *gorm.DB
}

func (g *GormStore) CreateObject(ctx context.Context, obj *model.ManagedObject) error {
	return g.db.WithContext(ctx).Create(obj).Error
}

func (g *GormStore) GetObject(ctx context.Context, id string) (*model.ManagedObject, error) {
	var obj model.ManagedObject
	err := g.db.WithContext(ctx).Where("id = ?", id).First(&obj).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrObjectNotFound
	}
	if err != nil {
		return nil, err
	}
	return &obj, nil
}

func (g *GormStore) SaveObject(ctx context.Context, obj *model.ManagedObject) error {
	return g.db.WithContext(ctx).Save(obj).Error
}

func (g *GormStore) ListContainedObjects(ctx context.Context, containerID string) ([]*model.ManagedObject, error) {
	var objs []*model.ManagedObject
	err := g.db.WithContext(ctx).Where("container_id = ?", containerID).Find(&objs).Error
	return objs, err
}

func (g *GormStore) GetContainer(ctx context.Context, id string) (object.Object, error) {
	row, err := g.GetObject(ctx, id)
	if errors.Is(err, ErrObjectNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return object.FromJSON([]byte(row.Data))
}

func (g *GormStore) CreateDocument(ctx context.Context, doc *model.Document) error {
	return g.db.WithContext(ctx).Create(doc).Error
}

func (g *GormStore) GetDocument(ctx context.Context, id uuid.UUID) (*model.Document, error) {
	var doc model.Document
	err := g.db.WithContext(ctx).Where("id = ?", id.String()).First(&doc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrDocumentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// GetDocumentForUpdate takes a SELECT ... FOR UPDATE lock so concurrent
// applies against the same document serialize at the storage layer. Must be
// called inside a transaction.
func (g *GormStore) GetDocumentForUpdate(ctx context.Context, id uuid.UUID) (*model.Document, error) {
	var doc model.Document
	err := g.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id.String()).
		First(&doc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrDocumentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (g *GormStore) UpdateDocument(ctx context.Context, doc *model.Document) error {
	return g.db.WithContext(ctx).Save(doc).Error
}

func (g *GormStore) DeleteDocument(ctx context.Context, id uuid.UUID) error {
	return g.db.WithContext(ctx).Where("id = ?", id.String()).Delete(&model.Document{}).Error
}

func (g *GormStore) EraseDocument(ctx context.Context, id uuid.UUID) error {
	return g.db.WithContext(ctx).Unscoped().Where("id = ?", id.String()).Delete(&model.Document{}).Error
}

func (g *GormStore) ListDeletedDocumentsBefore(ctx context.Context, cutoff time.Time) ([]*model.Document, error) {
	var docs []*model.Document
	err := g.db.WithContext(ctx).Unscoped().
		Where("deleted_at IS NOT NULL AND deleted_at < ?", cutoff).
		Find(&docs).Error
	return docs, err
}

func (g *GormStore) CreateDocumentHistory(ctx context.Context, record *model.DocumentHistory) error {
	return g.db.WithContext(ctx).Create(record).Error
}

func (g *GormStore) ListDocumentHistory(ctx context.Context, docID uuid.UUID, fromVersion int64) ([]*model.DocumentHistory, error) {
	var records []*model.DocumentHistory
	err := g.db.WithContext(ctx).
		Where("document_id = ? AND version > ?", docID.String(), fromVersion).
		Order("version asc").
		Find(&records).Error
	return records, err
}

func (g *GormStore) DeleteDocumentHistory(ctx context.Context, docID uuid.UUID) error {
	return g.db.WithContext(ctx).Where("document_id = ?", docID.String()).Delete(&model.DocumentHistory{}).Error
}

func (g *GormStore) CreateSnapshot(ctx context.Context, snapshot *model.Snapshot) error {
	return g.db.WithContext(ctx).Create(snapshot).Error
}

func (g *GormStore) GetSnapshot(ctx context.Context, id uuid.UUID) (*model.Snapshot, error) {
	var snapshot model.Snapshot
	err := g.db.WithContext(ctx).Where("id = ?", id.String()).First(&snapshot).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSnapshotNotFound
	}
	if err != nil {
		return nil, err
	}
	return &snapshot, nil
}

func (g *GormStore) ListSnapshots(ctx context.Context, docID uuid.UUID) ([]*model.Snapshot, error) {
	var snapshots []*model.Snapshot
	err := g.db.WithContext(ctx).
		Where("document_id = ?", docID.String()).
		Order("created_at asc").
		Find(&snapshots).Error
	return snapshots, err
}

func (g *GormStore) DeleteSnapshot(ctx context.Context, id uuid.UUID) error {
	return g.db.WithContext(ctx).Where("id = ?", id.String()).Delete(&model.Snapshot{}).Error
}

func (g *GormStore) DeleteDocumentSnapshots(ctx context.Context, docID uuid.UUID) error {
	return g.db.WithContext(ctx).Where("document_id = ?", docID.String()).Delete(&model.Snapshot{}).Error
}

func (g *GormStore) CreateMigrationBackup(ctx context.Context, backup *model.MigrationBackup) error {
	return g.db.WithContext(ctx).Create(backup).Error
}

func (g *GormStore) ListMigrationBackups(ctx context.Context, docID uuid.UUID) ([]*model.MigrationBackup, error) {
	var backups []*model.MigrationBackup
	err := g.db.WithContext(ctx).
		Where("document_id = ?", docID.String()).
		Order("created_at asc").
		Find(&backups).Error
	return backups, err
}

func (g *GormStore) DeleteMigrationBackups(ctx context.Context, docID uuid.UUID) error {
	return g.db.WithContext(ctx).Unscoped().Where("document_id = ?", docID.String()).Delete(&model.MigrationBackup{}).Error
}

func (g *GormStore) Migrate() error {
	return model.Migrate(g.db)
}

func (g *GormStore) Transaction(ctx context.Context, f func(tx Store) error) error {
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return f(&GormStore{db: tx})
	})
}
