package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ledgerline/cadence/internal/common"
	"github.com/ledgerline/cadence/internal/model"
	"github.com/ledgerline/cadence/internal/service"
)

// SaveExpenses persists a batch of expenses, skipping records whose id
// already exists so replayed imports stay idempotent.
func (s *SQLiteStorage) SaveExpenses(ctx context.Context, expenses []model.Expense) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateExpenses(expenses); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
		INSERT OR IGNORE INTO expenses (id, title, category, amount, occurred_at, is_recurring)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	for _, expense := range expenses {
		if _, err := tx.ExecContext(ctx, query,
			expense.ID, expense.Title, nullableString(expense.Category),
			expense.Amount, expense.Date, expense.IsRecurring,
		); err != nil {
			return fmt.Errorf("failed to save expense %s: %w", expense.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit expenses: %w", err)
	}

	return nil
}

// GetExpenses retrieves expenses matching the filter, ordered chronologically.
func (s *SQLiteStorage) GetExpenses(ctx context.Context, filter service.ExpenseFilter) ([]model.Expense, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT id, title, category, amount, occurred_at, is_recurring
		FROM expenses
	`
	var conditions []string
	var args []any

	if filter.StartDate != nil {
		conditions = append(conditions, "occurred_at >= ?")
		args = append(args, *filter.StartDate)
	}
	if filter.EndDate != nil {
		conditions = append(conditions, "occurred_at <= ?")
		args = append(args, *filter.EndDate)
	}
	for i, cond := range conditions {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += " ORDER BY occurred_at ASC, id ASC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var expenses []model.Expense
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, expense)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	return expenses, nil
}

// GetExpenseByID retrieves a single expense.
func (s *SQLiteStorage) GetExpenseByID(ctx context.Context, id string) (*model.Expense, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, title, category, amount, occurred_at, is_recurring
		FROM expenses
		WHERE id = ?
	`, id)

	expense, err := scanExpense(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("expense %s: %w", id, common.ErrNotFound)
		}
		return nil, err
	}

	return &expense, nil
}

// SetExpenseRecurring flips the recurring flag on an expense. Unknown ids
// are a no-op, matching the forgiving promote semantics.
func (s *SQLiteStorage) SetExpenseRecurring(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx,
		"UPDATE expenses SET is_recurring = 1 WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to mark expense recurring: %w", err)
	}

	return nil
}

// scanner abstracts sql.Row and sql.Rows for shared scan code.
type scanner interface {
	Scan(dest ...any) error
}

func scanExpense(row scanner) (model.Expense, error) {
	var expense model.Expense
	var category sql.NullString

	err := row.Scan(&expense.ID, &expense.Title, &category,
		&expense.Amount, &expense.Date, &expense.IsRecurring)
	if err != nil {
		if err == sql.ErrNoRows {
			return model.Expense{}, err
		}
		return model.Expense{}, fmt.Errorf("failed to scan expense: %w", err)
	}

	if category.Valid {
		expense.Category = category.String
	}

	return expense, nil
}

// nullableString converts empty strings to NULL on the way in.
func nullableString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
