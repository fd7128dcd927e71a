package store

import (
	"errors"
)

var (
	ErrObjectNotFound   = errors.New("managed object not found")
	ErrDocumentNotFound = errors.New("document not found")
	ErrSnapshotNotFound = errors.New("snapshot not found")
)
