package service

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyClientID is returned when a batch of operations carries no
	// client attribution.
	ErrEmptyClientID = errors.New("clientID must not be empty")
	// ErrNoOperations is returned when an apply request carries no
	// operations.
	ErrNoOperations = errors.New("operations must not be empty")
	// ErrDocumentContentCorrupted is returned when stored content cannot be
	// decoded.
	ErrDocumentContentCorrupted = errors.New("document content is corrupted")
)

// ConflictError signals an optimistic-concurrency loss: the document version
// advanced past the caller's expected base version. The caller should
// refetch and retry; the service never retries on its own.
type ConflictError struct {
	DocumentID string
	Expected   int64
	Actual     int64
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflict: document %s is at version %d, expected base version %d",
		e.DocumentID, e.Actual, e.Expected)
}
