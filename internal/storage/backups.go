package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jkonate/solde/internal/common"
	"github.com/jkonate/solde/internal/model"
)

// BackupRetention is the number of backups kept by CleanOldBackups. Fixed
// policy constant.
const BackupRetention = 5

const backupKeyPrefix = "backup_"

// Snapshot reads every primary collection into a Backup record. The read
// runs in a single transaction so the snapshot reflects one consistent point
// in the store, not a mix of states.
func (s *Store) Snapshot(ctx context.Context) (*model.Backup, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, fmt.Errorf("failed to begin snapshot: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	backup := &model.Backup{
		Version:   model.BackupVersion,
		Timestamp: nowISO(),
	}

	targets := map[string]any{
		KeyIncomes:        &backup.Data.Incomes,
		KeyExpenses:       &backup.Data.Expenses,
		KeyLoans:          &backup.Data.Loans,
		KeyFutureExpenses: &backup.Data.FutureExpenses,
		KeyCategories:     &backup.Data.Categories,
		KeyBudgetLines:    &backup.Data.BudgetLines,
		KeyDailyExpenses:  &backup.Data.DailyExpenses,
	}

	for _, key := range PrimaryKeys {
		var raw string
		err := tx.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&raw)
		if err == sql.ErrNoRows {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read key %q: %w", key, err)
		}
		if err := json.Unmarshal([]byte(raw), targets[key]); err != nil {
			// A corrupt collection is snapshotted as empty rather than
			// aborting the whole backup.
			slog.Error("corrupt value skipped during snapshot", "key", key, "error", err)
		}
	}

	return backup, nil
}

// CreateBackup snapshots the current store under a freshly time-stamped
// backup key. Nanosecond timestamps keep concurrent backups from colliding.
func (s *Store) CreateBackup(ctx context.Context) (*model.BackupInfo, error) {
	backup, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(backup)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize backup: %w", err)
	}

	key := backupKeyPrefix + backup.Timestamp
	query := `INSERT INTO backups (key, created_at, payload) VALUES (?, ?, ?)`
	if _, err := s.db.ExecContext(ctx, query, key, backup.Timestamp, string(payload)); err != nil {
		return nil, fmt.Errorf("failed to store backup: %w", err)
	}

	slog.Info("created backup", "key", key, "size", len(payload))
	return &model.BackupInfo{
		Key:       key,
		CreatedAt: backup.Timestamp,
		Size:      int64(len(payload)),
	}, nil
}

// ListBackups returns all backups, newest first.
func (s *Store) ListBackups(ctx context.Context) ([]model.BackupInfo, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT key, created_at, LENGTH(payload)
		FROM backups
		ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query backups: %w", err)
	}
	defer rows.Close()

	var backups []model.BackupInfo
	for rows.Next() {
		var info model.BackupInfo
		if err := rows.Scan(&info.Key, &info.CreatedAt, &info.Size); err != nil {
			return nil, fmt.Errorf("failed to scan backup: %w", err)
		}
		backups = append(backups, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating backups: %w", err)
	}

	return backups, nil
}

// GetBackup loads and parses a stored backup by key.
func (s *Store) GetBackup(ctx context.Context, key string) (*model.Backup, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateKey(key, "key"); err != nil {
		return nil, err
	}

	var payload string
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM backups WHERE key = ?`, key).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, common.ErrBackupNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load backup %q: %w", key, err)
	}

	var backup model.Backup
	if err := json.Unmarshal([]byte(payload), &backup); err != nil {
		return nil, fmt.Errorf("backup %q is corrupted: %w", key, err)
	}
	return &backup, nil
}

// RestoreBackup overwrites every primary storage key from the backup's data
// in a single transaction. This is a full replace, not a merge: records
// created since the backup are lost, and confirming that destructive intent
// is the caller's job.
func (s *Store) RestoreBackup(ctx context.Context, backup *model.Backup) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if backup == nil {
		return fmt.Errorf("backup: %w", ErrEmptyString)
	}

	collections := map[string]any{
		KeyIncomes:        backup.Data.Incomes,
		KeyExpenses:       backup.Data.Expenses,
		KeyLoans:          backup.Data.Loans,
		KeyFutureExpenses: backup.Data.FutureExpenses,
		KeyCategories:     backup.Data.Categories,
		KeyBudgetLines:    backup.Data.BudgetLines,
		KeyDailyExpenses:  backup.Data.DailyExpenses,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin restore: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, key := range PrimaryKeys {
		blob, err := json.Marshal(collections[key])
		if err != nil {
			return fmt.Errorf("failed to serialize collection %q: %w", key, err)
		}
		if err := s.saveRaw(ctx, tx, key, blob); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit restore: %w", err)
	}

	slog.Info("restored store from backup", "timestamp", backup.Timestamp)
	return nil
}

// DeleteBackup removes a single backup.
func (s *Store) DeleteBackup(ctx context.Context, key string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateKey(key, "key"); err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, `DELETE FROM backups WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("failed to delete backup %q: %w", key, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrBackupNotFound
	}
	return nil
}

// CleanOldBackups deletes everything but the BackupRetention most recent
// backups and returns how many were removed.
func (s *Store) CleanOldBackups(ctx context.Context) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	query := `
		DELETE FROM backups
		WHERE key NOT IN (
			SELECT key FROM backups
			ORDER BY created_at DESC
			LIMIT ?
		)`

	res, err := s.db.ExecContext(ctx, query, BackupRetention)
	if err != nil {
		return 0, fmt.Errorf("failed to clean old backups: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, nil
	}
	if n > 0 {
		slog.Debug("pruned old backups", "deleted", n, "kept", BackupRetention)
	}
	return int(n), nil
}

// ExportJSON produces a self-describing export document: a fresh snapshot
// serialized as pretty-printed JSON, suitable for saving to a file.
func (s *Store) ExportJSON(ctx context.Context) (string, error) {
	backup, err := s.Snapshot(ctx)
	if err != nil {
		return "", err
	}

	out, err := json.MarshalIndent(backup, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to serialize export: %w", err)
	}
	return string(out), nil
}

// ExportFilename suggests a download name for an export taken now.
func ExportFilename(now time.Time) string {
	return fmt.Sprintf("budget-export-%s.json", now.Format("2006-01-02"))
}

// ImportJSON parses text as an export document and restores the store from
// it. The payload is validated fully before any write: structurally invalid
// input is rejected with no partial effects.
func (s *Store) ImportJSON(ctx context.Context, text string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	if strings.TrimSpace(text) == "" {
		return common.ErrInvalidImport
	}

	// Version and data must both be present; anything else is not an export
	// of ours.
	var probe struct {
		Version *string          `json:"version"`
		Data    *json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal([]byte(text), &probe); err != nil {
		return fmt.Errorf("%w: %v", common.ErrInvalidImport, err)
	}
	if probe.Version == nil || *probe.Version == "" || probe.Data == nil {
		return common.ErrInvalidImport
	}

	var backup model.Backup
	if err := json.Unmarshal([]byte(text), &backup); err != nil {
		return fmt.Errorf("%w: %v", common.ErrInvalidImport, err)
	}

	return s.RestoreBackup(ctx, &backup)
}
