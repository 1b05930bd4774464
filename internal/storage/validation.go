// Package storage provides the data persistence layer for the cadence application.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ledgerline/cadence/internal/model"
)

// Validation errors.
var (
	ErrNilContext        = errors.New("context cannot be nil")
	ErrEmptyString       = errors.New("string parameter cannot be empty")
	ErrNilParameter      = errors.New("parameter cannot be nil")
	ErrEmptySlice        = errors.New("slice cannot be empty")
	ErrInvalidExpense    = errors.New("invalid expense")
	ErrInvalidPattern    = errors.New("invalid pattern")
	ErrInvalidSuggestion = errors.New("invalid suggestion")
	ErrInvalidStatus     = errors.New("invalid suggestion status")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateExpenses validates a slice of expenses.
func validateExpenses(expenses []model.Expense) error {
	if expenses == nil {
		return fmt.Errorf("%w: expenses", ErrNilParameter)
	}
	if len(expenses) == 0 {
		return fmt.Errorf("%w: expenses", ErrEmptySlice)
	}

	for i, expense := range expenses {
		if err := validateExpense(&expense); err != nil {
			return fmt.Errorf("expense at index %d: %w", i, err)
		}
	}
	return nil
}

// validateExpense validates a single expense.
func validateExpense(expense *model.Expense) error {
	if expense == nil {
		return fmt.Errorf("%w: expense", ErrNilParameter)
	}
	if expense.ID == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidExpense)
	}
	if expense.Date.IsZero() {
		return fmt.Errorf("%w: missing date", ErrInvalidExpense)
	}
	if expense.Amount < 0 {
		return fmt.Errorf("%w: negative amount", ErrInvalidExpense)
	}
	return nil
}

// validatePattern validates a recurring pattern.
func validatePattern(pattern *model.RecurringPattern) error {
	if pattern == nil {
		return fmt.Errorf("%w: pattern", ErrNilParameter)
	}
	if pattern.ID == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidPattern)
	}
	if pattern.Confidence < 0 || pattern.Confidence > 1 {
		return fmt.Errorf("%w: confidence out of range", ErrInvalidPattern)
	}
	return nil
}

// validateSuggestion validates a recurring suggestion.
func validateSuggestion(suggestion *model.RecurringSuggestion) error {
	if suggestion == nil {
		return fmt.Errorf("%w: suggestion", ErrNilParameter)
	}
	if suggestion.ID == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidSuggestion)
	}
	if suggestion.Expense.ID == "" {
		return fmt.Errorf("%w: missing expense reference", ErrInvalidSuggestion)
	}
	if suggestion.PatternID == "" {
		return fmt.Errorf("%w: missing pattern reference", ErrInvalidSuggestion)
	}
	return nil
}

// validateStatus ensures a suggestion status is one of the known values.
func validateStatus(status model.SuggestionStatus) error {
	switch status {
	case model.SuggestionPending, model.SuggestionDismissed, model.SuggestionPromoted:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
}
