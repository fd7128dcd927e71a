// Package schema tracks the supported document schema version and the
// version-aware content transforms that bring stale documents up to date.
package schema

import (
	"errors"
	"fmt"

	"github.com/Masterminds/semver"
)

var (
	// ErrUnknownVersion is returned when no transform is registered for a
	// stored schema version.
	ErrUnknownVersion = errors.New("no migration registered for schema version")
	// ErrFutureVersion is returned when a document carries a schema version
	// newer than the supported one.
	ErrFutureVersion = errors.New("document schema version is newer than supported")
)

// MigrateFunc transforms document content from one stored schema version to
// the registry's current version.
type MigrateFunc func(content []byte) ([]byte, error)

// Registry maps stored schema versions to their transforms.
type Registry struct {
	current    *semver.Version
	migrations map[string]MigrateFunc
}

// NewRegistry creates a registry for the given current schema version.
func NewRegistry(current string) (*Registry, error) {
	v, err := semver.NewVersion(current)
	if err != nil {
		return nil, fmt.Errorf("invalid schema version %q: %w", current, err)
	}
	return &Registry{
		current:    v,
		migrations: make(map[string]MigrateFunc),
	}, nil
}

// Register installs the transform for documents stored at fromVersion.
func (r *Registry) Register(fromVersion string, fn MigrateFunc) error {
	v, err := semver.NewVersion(fromVersion)
	if err != nil {
		return fmt.Errorf("invalid schema version %q: %w", fromVersion, err)
	}
	if !v.LessThan(r.current) {
		return fmt.Errorf("migration source %s must be older than current %s", fromVersion, r.current)
	}
	r.migrations[v.String()] = fn
	return nil
}

// Current returns the supported schema version string.
func (r *Registry) Current() string {
	return r.current.String()
}

// Stale reports whether the stored version is older than the current one.
// A version newer than current is an error.
func (r *Registry) Stale(stored string) (bool, error) {
	v, err := semver.NewVersion(stored)
	if err != nil {
		return false, fmt.Errorf("invalid stored schema version %q: %w", stored, err)
	}
	if v.GreaterThan(r.current) {
		return false, fmt.Errorf("%w: %s > %s", ErrFutureVersion, stored, r.current)
	}
	return v.LessThan(r.current), nil
}

// Transform migrates content stored at the given version to the current
// version.
func (r *Registry) Transform(content []byte, stored string) ([]byte, error) {
	v, err := semver.NewVersion(stored)
	if err != nil {
		return nil, fmt.Errorf("invalid stored schema version %q: %w", stored, err)
	}
	fn, ok := r.migrations[v.String()]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownVersion, stored)
	}
	return fn(content)
}
