// Package storage provides the local persistence layer: a key-value store
// holding one JSON blob per entity collection, plus timestamped backups with
// bounded retention and export/import round-trips.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// Primary storage keys, one per entity collection. The values predate this
// implementation and must not change: export files reference collections
// through them.
const (
	KeyIncomes        = "budget_incomes"
	KeyExpenses       = "budget_expenses"
	KeyLoans          = "budget_loans"
	KeyFutureExpenses = "budget_future_expenses"
	KeyCategories     = "budget_categories"
	KeyBudgetLines    = "budget_budget_lines"
	KeyDailyExpenses  = "budget_daily_expenses"
)

// PrimaryKeys lists every collection key in snapshot order.
var PrimaryKeys = []string{
	KeyIncomes,
	KeyExpenses,
	KeyLoans,
	KeyFutureExpenses,
	KeyCategories,
	KeyBudgetLines,
	KeyDailyExpenses,
}

// Store is the SQLite-backed key-value store. Access is single-session:
// last write wins, no cross-process coordination.
type Store struct {
	db     *sql.DB
	dbPath string
}

// NewStore opens (or creates) the store at dbPath.
func NewStore(dbPath string) (*Store, error) {
	if err := validateKey(dbPath, "dbPath"); err != nil {
		return nil, err
	}

	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite doesn't benefit from multiple connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{db: db, dbPath: dbPath}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save serializes value as JSON and writes it under key, replacing any
// previous value. A failed save leaves the previous value in place.
func (s *Store) Save(ctx context.Context, key string, value any) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateKey(key, "key"); err != nil {
		return err
	}

	blob, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to serialize value for key %q: %w", key, err)
	}

	return s.saveRaw(ctx, s.db, key, blob)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (s *Store) saveRaw(ctx context.Context, db execer, key string, blob []byte) error {
	query := `
		INSERT INTO kv (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`

	if _, err := db.ExecContext(ctx, query, key, string(blob)); err != nil {
		return fmt.Errorf("failed to save key %q: %w", key, err)
	}
	return nil
}

// Load unmarshals the value stored under key into dest and reports whether a
// usable value was found. Missing keys and corrupt values leave dest
// unchanged and return false; corruption is logged but never surfaces as an
// error, so a single bad record cannot take the application down.
func (s *Store) Load(ctx context.Context, key string, dest any) bool {
	if ctx == nil || key == "" {
		return false
	}

	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&raw)
	if err == sql.ErrNoRows {
		return false
	}
	if err != nil {
		slog.Error("failed to load key", "key", key, "error", err)
		return false
	}

	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		slog.Error("corrupt value in store, falling back to default", "key", key, "error", err)
		return false
	}
	return true
}

// loadRaw returns the raw JSON blob under key, or nil when absent.
func (s *Store) loadRaw(ctx context.Context, key string) ([]byte, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load key %q: %w", key, err)
	}
	return []byte(raw), nil
}

// Remove deletes the value under key. Removing an absent key is a no-op.
func (s *Store) Remove(ctx context.Context, key string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateKey(key, "key"); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to remove key %q: %w", key, err)
	}
	return nil
}

// ClearAll erases every primary key and every backup. Irreversible; callers
// must confirm destructive intent before invoking it.
func (s *Store) ClearAll(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM kv`); err != nil {
		return fmt.Errorf("failed to clear store: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM backups`); err != nil {
		return fmt.Errorf("failed to clear backups: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit clear: %w", err)
	}

	slog.Info("cleared all data", "path", s.dbPath)
	return nil
}

// isoFormat is RFC3339 with a fixed-width fraction. time.RFC3339Nano strips
// trailing zeros, which breaks lexicographic ordering of backup keys.
const isoFormat = "2006-01-02T15:04:05.000000000Z"

// nowISO returns the current time in the ISO-8601 form used throughout the
// persisted state.
func nowISO() string {
	return time.Now().UTC().Format(isoFormat)
}
