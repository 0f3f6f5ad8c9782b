package storage

import (
	"context"
	"fmt"

	"github.com/jkonate/solde/internal/model"
)

// assumedCapacity is the storage ceiling used for the utilization estimate.
// The true device quota is not introspectable, so the percentage is only
// trend-accurate, which is all users need from it.
const assumedCapacity = 5 * 1024 * 1024

// Stats sums the byte length of keys and values across the store, including
// backups, and reports utilization against the assumed capacity.
func (s *Store) Stats(ctx context.Context) (model.StorageStats, error) {
	if err := validateContext(ctx); err != nil {
		return model.StorageStats{}, err
	}

	query := `
		SELECT
			COALESCE(SUM(LENGTH(key) + LENGTH(value)), 0),
			COUNT(*)
		FROM kv`

	var kvBytes int64
	var kvCount int
	if err := s.db.QueryRowContext(ctx, query).Scan(&kvBytes, &kvCount); err != nil {
		return model.StorageStats{}, fmt.Errorf("failed to measure store: %w", err)
	}

	backupQuery := `
		SELECT
			COALESCE(SUM(LENGTH(key) + LENGTH(payload)), 0),
			COUNT(*)
		FROM backups`

	var backupBytes int64
	var backupCount int
	if err := s.db.QueryRowContext(ctx, backupQuery).Scan(&backupBytes, &backupCount); err != nil {
		return model.StorageStats{}, fmt.Errorf("failed to measure backups: %w", err)
	}

	used := kvBytes + backupBytes
	return model.StorageStats{
		Used:       used,
		Total:      assumedCapacity,
		Percentage: float64(used) / float64(assumedCapacity) * 100,
		ItemCount:  kvCount + backupCount,
	}, nil
}
