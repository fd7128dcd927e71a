package model

import "gorm.io/gorm"

// MigrationBackup is a full copy of a document's content taken immediately
// before an in-place schema transform. The table is an append-only audit
// trail; rows are never mutated.
type MigrationBackup struct {
	gorm.Model
	ID            string `gorm:"primaryKey;uuid;"`
	DocumentID    string `gorm:"uuid;not null;index:migration_backup_doc_idx"`
	SchemaVersion string `gorm:"not null"` // schema version of the content before the transform
	Content       string `gorm:""`
	Compression   string
}

func (MigrationBackup) TableName() string {
	return "migration_backups"
}
