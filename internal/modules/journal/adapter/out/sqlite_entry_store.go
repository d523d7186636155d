package out

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"innertone/internal/modules/journal/domain"

	_ "modernc.org/sqlite"
)

// SQLiteEntryStore keeps the journal as one JSON list in a key/value table,
// read whole and rewritten on every change.
type SQLiteEntryStore struct {
	db *sql.DB
}

func NewSQLiteEntryStore(dbPath string) (*SQLiteEntryStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	store := &SQLiteEntryStore{db: db}
	if err := store.ensureSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (s *SQLiteEntryStore) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS kv (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updated_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ', 'now'))
);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create kv table: %w", err)
	}
	return nil
}

func (s *SQLiteEntryStore) Load(ctx context.Context) ([]domain.Entry, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, domain.StorageKey).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return []domain.Entry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load journal: %w", err)
	}
	var entries []domain.Entry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, fmt.Errorf("decode journal: %w", err)
	}
	return entries, nil
}

func (s *SQLiteEntryStore) Save(ctx context.Context, entries []domain.Entry) error {
	if entries == nil {
		entries = []domain.Entry{}
	}
	raw, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode journal: %w", err)
	}
	const stmt = `
INSERT INTO kv (key, value, updated_at)
VALUES (?, ?, strftime('%Y-%m-%dT%H:%M:%SZ', 'now'))
ON CONFLICT(key) DO UPDATE SET
  value=excluded.value,
  updated_at=excluded.updated_at;
`
	if _, err := s.db.ExecContext(ctx, stmt, domain.StorageKey, string(raw)); err != nil {
		return fmt.Errorf("save journal: %w", err)
	}
	return nil
}

func (s *SQLiteEntryStore) Close() error {
	return s.db.Close()
}
