// Package service defines the interfaces shared across the application.
package service

import (
	"context"
	"time"

	"github.com/ledgerline/cadence/internal/model"
)

// ExpenseFilter defines filtering options for expense queries.
type ExpenseFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Limit     int
}

// Storage defines the contract for the persistence layer.
type Storage interface {
	// Expense operations
	SaveExpenses(ctx context.Context, expenses []model.Expense) error
	GetExpenses(ctx context.Context, filter ExpenseFilter) ([]model.Expense, error)
	GetExpenseByID(ctx context.Context, id string) (*model.Expense, error)
	SetExpenseRecurring(ctx context.Context, id string) error

	// Pattern operations
	UpsertPattern(ctx context.Context, pattern *model.RecurringPattern) error
	GetPatterns(ctx context.Context) ([]model.RecurringPattern, error)

	// Suggestion operations
	SaveSuggestion(ctx context.Context, suggestion *model.RecurringSuggestion) error
	GetSuggestions(ctx context.Context, status model.SuggestionStatus) ([]model.RecurringSuggestion, error)
	UpdateSuggestionStatus(ctx context.Context, id string, status model.SuggestionStatus) error

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}
