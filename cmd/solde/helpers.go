package main

import (
	"context"
	"fmt"

	"github.com/spf13/viper"

	"github.com/jkonate/solde/internal/cli"
	"github.com/jkonate/solde/internal/config"
	"github.com/jkonate/solde/internal/ledger"
	"github.com/jkonate/solde/internal/service"
	"github.com/jkonate/solde/internal/storage"
)

// initStore opens the store at the configured path and migrates it.
func initStore(ctx context.Context) (*storage.Store, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = "$HOME/.local/share/solde/solde.db"
	}

	// Expand tilde and environment variables
	dbPath = config.ExpandPath(dbPath)

	store, err := storage.NewStore(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// initRepository opens the store and wraps it in the repository. The caller
// owns the store and must close it.
func initRepository(ctx context.Context) (*service.Repository, *storage.Store, error) {
	store, err := initStore(ctx)
	if err != nil {
		return nil, nil, err
	}
	return service.New(store), store, nil
}

// signedAmount renders a currency value colored by its sign.
func signedAmount(v float64) string {
	return cli.FormatAmount(ledger.FormatCurrency(v), v < 0)
}

func formatFileSize(size int64) string {
	switch {
	case size >= 1024*1024:
		return fmt.Sprintf("%.1f MB", float64(size)/(1024*1024))
	case size >= 1024:
		return fmt.Sprintf("%.1f KB", float64(size)/1024)
	default:
		return fmt.Sprintf("%d B", size)
	}
}
