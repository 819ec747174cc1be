package main

import (
	"context"
	"fmt"

	"github.com/subtrail/subtrail/internal/config"
	"github.com/subtrail/subtrail/internal/storage"
)

// openStorage opens the SQLite database and applies pending migrations.
// Callers own the returned storage and must Close it.
func openStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	store, err := storage.NewSQLiteStorage(config.DatabasePath())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}
