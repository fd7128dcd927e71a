package model

import "time"

// DocumentHistory records one accepted batch of edit operations. The row is
// keyed by the document version it produced and is immutable once created.
// Replaying every record's operations in version order against the
// version-0 content reproduces the current document content.
type DocumentHistory struct {
	DocumentID string `gorm:"primaryKey;uuid;not null;"`
	Version    int64  `gorm:"primaryKey"`
	Operations string `gorm:"not null"` // ordered JSON array of edit steps
	ClientID   string `gorm:"not null"`
	CreatedAt  time.Time
}

func (DocumentHistory) TableName() string {
	return "document_histories"
}
