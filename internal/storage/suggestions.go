package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ledgerline/cadence/internal/model"
)

// SaveSuggestion persists a suggestion. Replays of the same id are ignored.
func (s *SQLiteStorage) SaveSuggestion(ctx context.Context, suggestion *model.RecurringSuggestion) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateSuggestion(suggestion); err != nil {
		return err
	}

	query := `
		INSERT OR IGNORE INTO suggestions (id, expense_id, pattern_id, confidence, status)
		VALUES (?, ?, ?, ?, ?)
	`

	if _, err := s.db.ExecContext(ctx, query,
		suggestion.ID, suggestion.Expense.ID, suggestion.PatternID,
		suggestion.Confidence, string(suggestion.Status),
	); err != nil {
		return fmt.Errorf("failed to save suggestion: %w", err)
	}

	return nil
}

// GetSuggestions retrieves suggestions with the given status, joined with
// their triggering expenses, in insertion order.
func (s *SQLiteStorage) GetSuggestions(ctx context.Context, status model.SuggestionStatus) ([]model.RecurringSuggestion, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateStatus(status); err != nil {
		return nil, err
	}

	query := `
		SELECT s.id, s.pattern_id, s.confidence, s.status, s.created_at,
			e.id, e.title, e.category, e.amount, e.occurred_at, e.is_recurring
		FROM suggestions s
		JOIN expenses e ON e.id = s.expense_id
		WHERE s.status = ?
		ORDER BY s.created_at ASC, s.id ASC
	`

	rows, err := s.db.QueryContext(ctx, query, string(status))
	if err != nil {
		return nil, fmt.Errorf("failed to query suggestions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var suggestions []model.RecurringSuggestion
	for rows.Next() {
		var suggestion model.RecurringSuggestion
		var suggestionStatus string
		var category sql.NullString

		if err := rows.Scan(
			&suggestion.ID, &suggestion.PatternID, &suggestion.Confidence,
			&suggestionStatus, &suggestion.CreatedAt,
			&suggestion.Expense.ID, &suggestion.Expense.Title, &category,
			&suggestion.Expense.Amount, &suggestion.Expense.Date,
			&suggestion.Expense.IsRecurring,
		); err != nil {
			return nil, fmt.Errorf("failed to scan suggestion: %w", err)
		}

		suggestion.Status = model.SuggestionStatus(suggestionStatus)
		if category.Valid {
			suggestion.Expense.Category = category.String
		}

		suggestions = append(suggestions, suggestion)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate suggestions: %w", err)
	}

	return suggestions, nil
}

// UpdateSuggestionStatus records a lifecycle transition. Unknown ids are a
// no-op, matching the registry's dismiss/promote semantics.
func (s *SQLiteStorage) UpdateSuggestionStatus(ctx context.Context, id string, status model.SuggestionStatus) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}
	if err := validateStatus(status); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx,
		"UPDATE suggestions SET status = ? WHERE id = ?", string(status), id); err != nil {
		return fmt.Errorf("failed to update suggestion status: %w", err)
	}

	return nil
}
