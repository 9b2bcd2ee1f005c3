package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/julianstephens/vibequest/internal/constants"
	"github.com/julianstephens/vibequest/internal/migration"
	"github.com/julianstephens/vibequest/migrations"
)

// historyDepth is how many replaced blobs kv_history keeps per key.
const historyDepth = 10

// kvTable is the blob table shared by the SQL backends.
type kvTable struct {
	db      *sql.DB
	dialect migration.Dialect
}

func (k kvTable) runner() (*migration.Runner, error) {
	sub, err := fs.Sub(migrations.FS, k.dialect.Dir())
	if err != nil {
		return nil, fmt.Errorf("failed to access %s migrations: %w", k.dialect, err)
	}
	return migration.NewRunner(k.db, sub, k.dialect), nil
}

func (k kvTable) migrate(ctx context.Context) error {
	r, err := k.runner()
	if err != nil {
		return err
	}
	if _, err := r.ApplyMigrations(ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

func (k kvTable) validate(ctx context.Context) error {
	r, err := k.runner()
	if err != nil {
		return err
	}
	return r.ValidateVersion(ctx)
}

// load returns the blob under the state key, or nil when no row exists.
func (k kvTable) load(ctx context.Context) ([]byte, error) {
	var value string
	err := k.db.QueryRowContext(ctx,
		k.dialect.Rebind("SELECT value FROM kv WHERE key = ?"),
		constants.StateKey,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read state: %w", err)
	}
	return []byte(value), nil
}

// save upserts the blob and moves the previous value to kv_history, all in
// one transaction.
func (k kvTable) save(ctx context.Context, data []byte) error {
	tx, err := k.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, k.dialect.Rebind(`
		INSERT INTO kv_history (key, value, replaced_at)
		SELECT key, value, updated_at FROM kv WHERE key = ?`),
		constants.StateKey,
	); err != nil {
		return fmt.Errorf("failed to archive previous state: %w", err)
	}

	if _, err := tx.ExecContext(ctx, k.dialect.Rebind(`
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`),
		constants.StateKey, string(data), k.dialect.Timestamp(time.Now()),
	); err != nil {
		return fmt.Errorf("failed to write state: %w", err)
	}

	if _, err := tx.ExecContext(ctx, k.dialect.Rebind(`
		DELETE FROM kv_history WHERE key = ? AND id NOT IN (
			SELECT id FROM kv_history WHERE key = ? ORDER BY id DESC LIMIT ?
		)`),
		constants.StateKey, constants.StateKey, historyDepth,
	); err != nil {
		return fmt.Errorf("failed to prune state history: %w", err)
	}

	return tx.Commit()
}

// history returns up to historyDepth previous blobs, newest first.
func (k kvTable) history(ctx context.Context) ([]HistoryEntry, error) {
	rows, err := k.db.QueryContext(ctx, k.dialect.Rebind(
		"SELECT id, value FROM kv_history WHERE key = ? ORDER BY id DESC"),
		constants.StateKey,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to read state history: %w", err)
	}
	defer rows.Close()

	var out []HistoryEntry
	for rows.Next() {
		var h HistoryEntry
		var value string
		if err := rows.Scan(&h.ID, &value); err != nil {
			return nil, err
		}
		h.Data = []byte(value)
		out = append(out, h)
	}
	return out, rows.Err()
}

// HistoryEntry is a previously stored blob kept by the SQL backends.
type HistoryEntry struct {
	ID   int64
	Data []byte
}

// Historian is implemented by backends that keep previous blobs.
type Historian interface {
	History(ctx context.Context) ([]HistoryEntry, error)
}
