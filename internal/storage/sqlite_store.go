package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/vibequest/internal/migration"
)

// SQLiteStore keeps the blob in a kv table of a local SQLite database.
type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

func (s *SQLiteStore) open() error {
	if s.db != nil {
		return nil
	}
	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	// one writer; avoids SQLITE_BUSY between pooled connections
	db.SetMaxOpenConns(1)
	s.db = db
	return nil
}

func (s *SQLiteStore) kv() kvTable {
	return kvTable{db: s.db, dialect: migration.SQLite}
}

func (s *SQLiteStore) Init(ctx context.Context) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := s.open(); err != nil {
		return err
	}
	if err := s.kv().migrate(ctx); err != nil {
		return err
	}

	existing, err := s.kv().load(ctx)
	if err != nil {
		return err
	}
	if existing == nil {
		return s.Save(ctx, NewState())
	}
	return nil
}

func (s *SQLiteStore) Load(ctx context.Context) (*State, error) {
	if s.db == nil {
		if _, err := os.Stat(s.path); os.IsNotExist(err) {
			return nil, ErrNotInitialized
		}
		if err := s.open(); err != nil {
			return nil, err
		}
	}
	if err := s.kv().validate(ctx); err != nil {
		return nil, err
	}

	data, err := s.kv().load(ctx)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return NewState(), nil
	}
	return Decode(data)
}

func (s *SQLiteStore) Save(ctx context.Context, state *State) error {
	if s.db == nil {
		return ErrNotInitialized
	}
	data, err := Encode(state)
	if err != nil {
		return err
	}
	return s.kv().save(ctx, data)
}

func (s *SQLiteStore) History(ctx context.Context) ([]HistoryEntry, error) {
	if s.db == nil {
		return nil, ErrNotInitialized
	}
	return s.kv().history(ctx)
}

// Migrate applies pending schema migrations to an existing database.
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	if err := s.open(); err != nil {
		return err
	}
	return s.kv().migrate(ctx)
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		err := s.db.Close()
		s.db = nil
		return err
	}
	return nil
}

func (s *SQLiteStore) Location() string {
	return s.path
}
