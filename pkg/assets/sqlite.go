package assets

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps assets in a single SQLite file so a deck and its images
// travel together.
type SQLiteStore struct {
	conn *sql.DB
}

// OpenSQLite opens (or creates) the store at dbPath.
func OpenSQLite(dbPath string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("assets: create db directory: %w", err)
		}
	}

	conn, err := sql.Open("sqlite", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("assets: open sqlite: %w", err)
	}
	// single writer
	conn.SetMaxOpenConns(1)

	store := &SQLiteStore{conn: conn}
	if err := store.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("assets: migrate: %w", err)
	}
	return store, nil
}

func (s *SQLiteStore) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS assets (
			key TEXT PRIMARY KEY,
			content_type TEXT NOT NULL DEFAULT '',
			data BLOB NOT NULL,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
	}
	for _, stmt := range migrations {
		if _, err := s.conn.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.conn.Close()
}

// Put inserts or replaces the asset stored under key.
func (s *SQLiteStore) Put(ctx context.Context, key, contentType string, data []byte) error {
	if key == "" {
		return errors.New("assets: key is required")
	}
	_, err := s.conn.ExecContext(ctx,
		`INSERT INTO assets (key, content_type, data, updated_at) VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET content_type = excluded.content_type, data = excluded.data, updated_at = CURRENT_TIMESTAMP`,
		key, contentType, data)
	if err != nil {
		return fmt.Errorf("assets: put %q: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	if _, err := s.conn.ExecContext(ctx, `DELETE FROM assets WHERE key = ?`, key); err != nil {
		return fmt.Errorf("assets: delete %q: %w", key, err)
	}
	return nil
}

// Keys lists stored keys in order.
func (s *SQLiteStore) Keys(ctx context.Context) ([]string, error) {
	rows, err := s.conn.QueryContext(ctx, `SELECT key FROM assets ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("assets: list keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("assets: scan key: %w", err)
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}

// Load implements Provider.
func (s *SQLiteStore) Load(ctx context.Context, key string) ([]byte, error) {
	var data []byte
	err := s.conn.QueryRowContext(ctx, `SELECT data FROM assets WHERE key = ?`, key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, key)
	}
	if err != nil {
		return nil, fmt.Errorf("assets: load %q: %w", key, err)
	}
	return data, nil
}

// Import copies every key from src into the store, skipping keys src does not
// hold. It returns the number of assets written.
func (s *SQLiteStore) Import(ctx context.Context, src Provider, keys []string) (int, error) {
	written := 0
	for _, key := range keys {
		data, err := src.Load(ctx, key)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				continue
			}
			return written, err
		}
		if err := s.Put(ctx, key, sniff(data), data); err != nil {
			return written, err
		}
		written++
	}
	return written, nil
}
