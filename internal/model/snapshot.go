package model

import "gorm.io/gorm"

// Snapshot is an explicit, named copy of a document's content. Snapshots
// are created by user action only, never derived from history, and are
// deleted explicitly or in bulk when the owning document is deleted.
type Snapshot struct {
	gorm.Model
	ID          string `gorm:"primaryKey;uuid;not null;"`
	DocumentID  string `gorm:"uuid;not null;index:snapshot_doc_idx"`
	Name        string `gorm:""`
	Content     string `gorm:""`
	Compression string
}
