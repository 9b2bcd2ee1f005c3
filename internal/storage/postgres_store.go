package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	pq "github.com/lib/pq"

	"github.com/julianstephens/vibequest/internal/constants"
	"github.com/julianstephens/vibequest/internal/logger"
	"github.com/julianstephens/vibequest/internal/migration"
)

var (
	ErrInvalidConnectionString = errors.New("invalid PostgreSQL connection string")
	ErrEmbeddedCredentials     = errors.New("connection string must not contain a password")
)

// PostgresStore keeps the blob in a kv table inside the vibequest schema.
type PostgresStore struct {
	connStr string
	db      *sql.DB
}

// NewPostgresStore validates connStr and pins search_path to the app schema.
// Use NewTrustedPostgresStore for strings that came from the keyring or the
// environment, where an embedded password is acceptable.
func NewPostgresStore(connStr string) (*PostgresStore, error) {
	if _, err := ValidateConnString(connStr); err != nil {
		return nil, err
	}
	return NewTrustedPostgresStore(connStr), nil
}

func NewTrustedPostgresStore(connStr string) *PostgresStore {
	return &PostgresStore{connStr: withSearchPath(connStr)}
}

func withSearchPath(connStr string) string {
	if IsPostgres(connStr) {
		u, err := url.Parse(connStr)
		if err != nil {
			logger.Warn("Failed to parse Postgres connection string", "error", err)
			return connStr
		}
		q := u.Query()
		if q.Get("search_path") == "" {
			q.Set("search_path", constants.AppName)
			u.RawQuery = q.Encode()
		}
		return u.String()
	}
	if !hasParam(connStr, "search_path") {
		return strings.TrimSpace(connStr) + " search_path=" + constants.AppName
	}
	return connStr
}

// hasParam reports whether a key=value DSN contains key (case-insensitive).
func hasParam(connStr, key string) bool {
	for _, part := range strings.Fields(connStr) {
		k, _, ok := strings.Cut(part, "=")
		if ok && strings.EqualFold(k, key) {
			return true
		}
	}
	return false
}

func hasSSLMode(connStr string) bool {
	if u, err := url.Parse(connStr); err == nil && u.Scheme != "" {
		for key := range u.Query() {
			if strings.EqualFold(key, "sslmode") {
				return true
			}
		}
	}
	return hasParam(connStr, "sslmode")
}

// ValidateConnString checks that connStr is a usable PostgreSQL URI or DSN
// without an embedded password.
func ValidateConnString(connStr string) (bool, error) {
	if strings.TrimSpace(connStr) == "" {
		return false, fmt.Errorf("%w: connection string cannot be empty", ErrInvalidConnectionString)
	}
	if _, err := pq.NewConnector(connStr); err != nil {
		return false, fmt.Errorf("%w: invalid connection string format: %v", ErrInvalidConnectionString, err)
	}

	if IsPostgres(connStr) {
		u, err := url.Parse(connStr)
		if err != nil {
			return false, fmt.Errorf("%w: failed to parse connection URL: %v", ErrInvalidConnectionString, err)
		}
		if _, isSet := u.User.Password(); isSet {
			return false, ErrEmbeddedCredentials
		}
		if u.Host == "" && u.User == nil && (u.Path == "" || u.Path == "/") {
			return false, fmt.Errorf("%w: connection URL is incomplete", ErrInvalidConnectionString)
		}
		return true, nil
	}

	if hasParam(connStr, "password") {
		return false, ErrEmbeddedCredentials
	}
	return true, nil
}

func (s *PostgresStore) connect(ctx context.Context) error {
	if s.db != nil {
		return nil
	}
	db, err := sql.Open("postgres", s.connStr)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		if strings.Contains(err.Error(), "SSL is not enabled on the server") && !hasSSLMode(s.connStr) {
			return fmt.Errorf("failed to connect to database: %w (hint: try adding ?sslmode=disable to your connection string)", err)
		}
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	s.db = db
	return nil
}

func (s *PostgresStore) kv() kvTable {
	return kvTable{db: s.db, dialect: migration.Postgres}
}

func (s *PostgresStore) Init(ctx context.Context) error {
	if err := s.connect(ctx); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, "CREATE SCHEMA IF NOT EXISTS "+pq.QuoteIdentifier(constants.AppName)); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
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

func (s *PostgresStore) Load(ctx context.Context) (*State, error) {
	if err := s.connect(ctx); err != nil {
		return nil, err
	}
	if err := s.kv().validate(ctx); err != nil {
		return nil, notInitialized(err)
	}
	data, err := s.kv().load(ctx)
	if err != nil {
		return nil, notInitialized(err)
	}
	if data == nil {
		return NewState(), nil
	}
	return Decode(data)
}

func (s *PostgresStore) Save(ctx context.Context, state *State) error {
	if s.db == nil {
		return ErrNotInitialized
	}
	data, err := Encode(state)
	if err != nil {
		return err
	}
	return s.kv().save(ctx, data)
}

func (s *PostgresStore) History(ctx context.Context) ([]HistoryEntry, error) {
	if s.db == nil {
		return nil, ErrNotInitialized
	}
	return s.kv().history(ctx)
}

func (s *PostgresStore) Migrate(ctx context.Context) error {
	if err := s.connect(ctx); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, "CREATE SCHEMA IF NOT EXISTS "+pq.QuoteIdentifier(constants.AppName)); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return s.kv().migrate(ctx)
}

func (s *PostgresStore) Close() error {
	if s.db != nil {
		err := s.db.Close()
		s.db = nil
		return err
	}
	return nil
}

// notInitialized maps "schema or table missing" errors to ErrNotInitialized.
func notInitialized(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "42P01", "3F000": // undefined_table, invalid_schema_name
			return ErrNotInitialized
		}
	}
	return err
}

// Location does not expose the connection string.
func (s *PostgresStore) Location() string {
	return "postgresql"
}
