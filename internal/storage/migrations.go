package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the latest schema version that the application expects.
// If the database cannot be migrated to this version, it's a fatal error.
const ExpectedSchemaVersion = 2

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Initial schema",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS expenses (
					id TEXT PRIMARY KEY,
					title TEXT NOT NULL,
					category TEXT,
					amount REAL NOT NULL,
					occurred_at DATETIME NOT NULL,
					is_recurring BOOLEAN NOT NULL DEFAULT 0,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE INDEX idx_expenses_occurred_at ON expenses(occurred_at)`,
				`CREATE INDEX idx_expenses_title ON expenses(title)`,

				`CREATE TABLE IF NOT EXISTS patterns (
					id TEXT PRIMARY KEY,
					title TEXT NOT NULL,
					category TEXT NOT NULL,
					average_amount REAL NOT NULL,
					frequency TEXT NOT NULL,
					confidence REAL NOT NULL,
					last_occurrence DATETIME NOT NULL,
					next_predicted DATETIME,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,

				`CREATE TABLE IF NOT EXISTS suggestions (
					id TEXT PRIMARY KEY,
					expense_id TEXT NOT NULL,
					pattern_id TEXT NOT NULL,
					confidence REAL NOT NULL,
					status TEXT NOT NULL DEFAULT 'pending',
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
					FOREIGN KEY (expense_id) REFERENCES expenses(id),
					FOREIGN KEY (pattern_id) REFERENCES patterns(id)
				)`,
				`CREATE INDEX idx_suggestions_status ON suggestions(status)`,
				`CREATE INDEX idx_suggestions_expense ON suggestions(expense_id)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute %q: %w", query[:40], err)
				}
			}
			return nil
		},
	},
	{
		Version:     2,
		Description: "Index patterns by predicted date for upcoming queries",
		Up: func(tx *sql.Tx) error {
			_, err := tx.Exec(`CREATE INDEX IF NOT EXISTS idx_patterns_next_predicted
				ON patterns(next_predicted) WHERE next_predicted IS NOT NULL`)
			if err != nil {
				return fmt.Errorf("failed to create next_predicted index: %w", err)
			}
			return nil
		},
	},
}

// Migrate applies all pending schema migrations.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	var currentVersion int
	err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, txErr := s.db.BeginTx(ctx, nil)
		if txErr != nil {
			return fmt.Errorf("failed to begin transaction: %w", txErr)
		}

		if upErr := migration.Up(tx); upErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, upErr)
		}

		if _, execErr := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", migration.Version)); execErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to update schema version: %w", execErr)
		}

		if commitErr := tx.Commit(); commitErr != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, commitErr)
		}

		slog.Info("Applied migration",
			"version", migration.Version,
			"description", migration.Description)
	}

	var finalVersion int
	err = s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&finalVersion)
	if err != nil {
		return fmt.Errorf("failed to verify final schema version: %w", err)
	}

	if finalVersion != ExpectedSchemaVersion {
		return fmt.Errorf("database schema version mismatch: expected %d, got %d", ExpectedSchemaVersion, finalVersion)
	}

	return nil
}
