package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/multierr"
	_ "modernc.org/sqlite"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS kv (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
)`

// SQLite stores entries in a single kv table.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens the database at path (":memory:" works) and creates the
// kv table if needed.
func OpenSQLite(ctx context.Context, path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Single connection: an in-memory database lives and dies with it, and
	// SQLite only ever has one writer anyway.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			return nil, multierr.Append(fmt.Errorf("%s: %w", p, err), db.Close())
		}
	}

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		return nil, multierr.Append(fmt.Errorf("failed to create kv table: %w", err), db.Close())
	}

	return &SQLite{db: db}, nil
}

func (s *SQLite) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (s *SQLite) Set(ctx context.Context, key, value string) error {
	return s.Apply(ctx, Put(key, value))
}

func (s *SQLite) Delete(ctx context.Context, key string) error {
	return s.Apply(ctx, Del(key))
}

// Apply writes all ops in one transaction.
func (s *SQLite) Apply(ctx context.Context, ops ...Op) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			err = multierr.Append(err, tx.Rollback())
		}
	}()

	for _, op := range ops {
		if op.Delete {
			_, err = tx.ExecContext(ctx, "DELETE FROM kv WHERE key = ?", op.Key)
		} else {
			_, err = tx.ExecContext(ctx,
				"INSERT INTO kv (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
				op.Key, op.Value)
		}
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
