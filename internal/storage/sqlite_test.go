package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/jkonate/solde/internal/model"
)

// Helper function to create test storage.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := NewStore(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	ctx := context.Background()
	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}

	return store
}

func testIncomes() []model.Income {
	return []model.Income{
		{ID: "i1", Description: "Salaire", Amount: 5000, Date: "2025-01-01T00:00:00Z"},
		{ID: "i2", Description: "Prime", Amount: 750.50, Date: "2025-01-15T00:00:00Z"},
	}
}

func TestStore_SaveLoad(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	incomes := testIncomes()
	if err := store.Save(ctx, KeyIncomes, incomes); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	var loaded []model.Income
	if found := store.Load(ctx, KeyIncomes, &loaded); !found {
		t.Fatal("Load() found = false, want true")
	}
	if len(loaded) != 2 || loaded[0].ID != "i1" || loaded[1].Amount != 750.50 {
		t.Errorf("Load() = %+v, want original incomes", loaded)
	}
}

func TestStore_SaveOverwrites(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, KeyIncomes, testIncomes()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	replacement := []model.Income{{ID: "i3", Amount: 100}}
	if err := store.Save(ctx, KeyIncomes, replacement); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	var loaded []model.Income
	store.Load(ctx, KeyIncomes, &loaded)
	if len(loaded) != 1 || loaded[0].ID != "i3" {
		t.Errorf("Load() after overwrite = %+v, want replacement", loaded)
	}
}

func TestStore_LoadMissingKey(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	loaded := []model.Income{{ID: "sentinel"}}
	if found := store.Load(ctx, "budget_nothing", &loaded); found {
		t.Error("Load() found = true for missing key")
	}
	// Dest is untouched so the caller's default survives.
	if len(loaded) != 1 || loaded[0].ID != "sentinel" {
		t.Errorf("Load() modified dest on miss: %+v", loaded)
	}
}

func TestStore_LoadCorruptValue(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	// Write garbage directly, bypassing Save.
	if err := store.saveRaw(ctx, store.db, KeyExpenses, []byte("{not json")); err != nil {
		t.Fatalf("saveRaw() error = %v", err)
	}

	loaded := []model.Expense{{ID: "default"}}
	if found := store.Load(ctx, KeyExpenses, &loaded); found {
		t.Error("Load() found = true for corrupt value")
	}
	if len(loaded) != 1 || loaded[0].ID != "default" {
		t.Errorf("Load() modified dest on corruption: %+v", loaded)
	}
}

func TestStore_Remove(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, KeyLoans, []model.Loan{{ID: "l1"}}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := store.Remove(ctx, KeyLoans); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}

	var loaded []model.Loan
	if found := store.Load(ctx, KeyLoans, &loaded); found {
		t.Error("Load() found = true after Remove()")
	}

	// Removing an absent key is a no-op.
	if err := store.Remove(ctx, KeyLoans); err != nil {
		t.Errorf("Remove() on absent key error = %v", err)
	}
}

func TestStore_ClearAll(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, KeyIncomes, testIncomes()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if _, err := store.CreateBackup(ctx); err != nil {
		t.Fatalf("CreateBackup() error = %v", err)
	}

	if err := store.ClearAll(ctx); err != nil {
		t.Fatalf("ClearAll() error = %v", err)
	}

	var loaded []model.Income
	if found := store.Load(ctx, KeyIncomes, &loaded); found {
		t.Error("primary key survived ClearAll()")
	}
	backups, err := store.ListBackups(ctx)
	if err != nil {
		t.Fatalf("ListBackups() error = %v", err)
	}
	if len(backups) != 0 {
		t.Errorf("%d backups survived ClearAll()", len(backups))
	}
}

func TestStore_Stats(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	empty, err := store.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if empty.Used != 0 || empty.ItemCount != 0 {
		t.Errorf("Stats() on empty store = %+v", empty)
	}

	if err := store.Save(ctx, KeyIncomes, testIncomes()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if _, err := store.CreateBackup(ctx); err != nil {
		t.Fatalf("CreateBackup() error = %v", err)
	}

	stats, err := store.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if stats.Used <= 0 || stats.ItemCount != 2 {
		t.Errorf("Stats() = %+v, want positive usage and 2 items", stats)
	}
	if stats.Percentage <= 0 || stats.Percentage >= 100 {
		t.Errorf("Stats() percentage = %v, want small positive value", stats.Percentage)
	}
	if stats.Total != assumedCapacity {
		t.Errorf("Stats() total = %v, want %v", stats.Total, assumedCapacity)
	}
}

func TestStore_ValidatesInput(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, "", "value"); err == nil {
		t.Error("Save() with empty key should fail")
	}
	if err := store.Save(nil, KeyIncomes, "value"); err == nil { //nolint:staticcheck // testing nil context
		t.Error("Save() with nil context should fail")
	}
}
