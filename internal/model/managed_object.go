package model

import (
	"gorm.io/gorm"
)

// ManagedObject is a versioned, access-controlled record stored as its raw
// JSON payload plus a few extracted columns for lookups. The id carries the
// objectType as prefix ("MPProject:<uuid>"). Deletion is a tombstone flag,
// not physical removal.
type ManagedObject struct {
	gorm.Model
	ID          string `gorm:"primaryKey;not null;"`
	ObjectType  string `gorm:"not null;index:managed_object_type_idx"`
	ContainerID string `gorm:"index:managed_object_container_idx"`
	Deleted     bool
	Data        string `gorm:"not null"` // full JSON payload
}

func (ManagedObject) TableName() string {
	return "managed_objects"
}
