package main

import (
	"context"
	"fmt"

	"github.com/spf13/viper"

	"github.com/ledgerline/cadence/internal/config"
	"github.com/ledgerline/cadence/internal/model"
	"github.com/ledgerline/cadence/internal/recur"
	"github.com/ledgerline/cadence/internal/storage"
)

// initStorage opens the configured database and applies pending migrations.
func initStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = config.DefaultDBPath
	}
	dbPath = config.ExpandPath(dbPath)

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// loadRegistry rehydrates a suggestion registry from the store so CLI
// invocations share detector state across processes.
func loadRegistry(ctx context.Context, store *storage.SQLiteStorage) (*recur.Registry, error) {
	patterns, err := store.GetPatterns(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load patterns: %w", err)
	}

	var suggestions []model.RecurringSuggestion
	for _, status := range []model.SuggestionStatus{
		model.SuggestionPending, model.SuggestionDismissed, model.SuggestionPromoted,
	} {
		batch, err := store.GetSuggestions(ctx, status)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s suggestions: %w", status, err)
		}
		suggestions = append(suggestions, batch...)
	}

	registry := recur.NewRegistry()
	registry.Restore(patterns, suggestions)
	return registry, nil
}

// persistDetection saves any pattern and suggestion produced for an expense.
func persistDetection(ctx context.Context, store *storage.SQLiteStorage, registry *recur.Registry, suggestion *model.RecurringSuggestion) error {
	for _, pattern := range registry.ListPatterns() {
		p := pattern
		if err := store.UpsertPattern(ctx, &p); err != nil {
			return fmt.Errorf("failed to persist pattern: %w", err)
		}
	}

	if suggestion != nil {
		if err := store.SaveSuggestion(ctx, suggestion); err != nil {
			return fmt.Errorf("failed to persist suggestion: %w", err)
		}
	}

	return nil
}
