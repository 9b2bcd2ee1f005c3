package storage

import (
	"context"
	"errors"
	"strings"
)

// ErrNotInitialized is returned by Load when the backing store has never
// been initialized.
var ErrNotInitialized = errors.New("storage not initialized, run 'vibequest init' first")

// Provider persists the whole State as one blob.
type Provider interface {
	// Init creates the backing store (file, database schema) if needed.
	// It does not overwrite existing state.
	Init(ctx context.Context) error
	// Load returns the stored state, or a fresh State when the store is
	// initialized but empty.
	Load(ctx context.Context) (*State, error)
	Save(ctx context.Context, s *State) error
	Close() error
	// Location is a non-sensitive description of where state lives.
	Location() string
}

// IsPostgres reports whether location is a PostgreSQL connection string.
func IsPostgres(location string) bool {
	return strings.HasPrefix(location, "postgres://") || strings.HasPrefix(location, "postgresql://")
}

// Open picks a backend for location: a PostgreSQL URL, a *.json file, or
// otherwise a SQLite database file.
func Open(location string) (Provider, error) {
	switch {
	case IsPostgres(location):
		return NewPostgresStore(location)
	case strings.HasSuffix(strings.ToLower(location), ".json"):
		return NewJSONStore(location), nil
	default:
		return NewSQLiteStore(location), nil
	}
}

// Migrator is implemented by backends with a versioned schema.
type Migrator interface {
	Migrate(ctx context.Context) error
}
