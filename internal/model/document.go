package model

import (
	"encoding/json"

	"gorm.io/gorm"
)

// Document is a live collaborative document. Version advances by exactly 1
// per accepted batch of operations; it never decreases and never skips.
type Document struct {
	gorm.Model
	ID            string `gorm:"primaryKey;uuid;not null;"`
	OwnerUserID   string `gorm:"not null"`
	ContainerID   string `gorm:"uuid;not null;index:document_container_idx"`
	Content       string `gorm:"not null"`
	Version       int64
	SchemaVersion string `gorm:"not null"`
	Compression   string // the compression algorithm used to compress the document content
}

func (d *Document) MarshalBinary() ([]byte, error) {
	return json.Marshal(d)
}
