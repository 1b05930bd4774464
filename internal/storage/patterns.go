package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ledgerline/cadence/internal/model"
)

// UpsertPattern stores a detected pattern, replacing any previous row with
// the same series identity.
func (s *SQLiteStorage) UpsertPattern(ctx context.Context, pattern *model.RecurringPattern) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validatePattern(pattern); err != nil {
		return err
	}

	query := `
		INSERT INTO patterns (
			id, title, category, average_amount, frequency,
			confidence, last_occurrence, next_predicted
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			average_amount = excluded.average_amount,
			confidence = excluded.confidence,
			last_occurrence = excluded.last_occurrence,
			next_predicted = excluded.next_predicted
	`

	var nextPredicted any
	if pattern.NextPredicted != nil {
		nextPredicted = *pattern.NextPredicted
	}

	if _, err := s.db.ExecContext(ctx, query,
		pattern.ID, pattern.Title, pattern.Category, pattern.AverageAmount,
		string(pattern.Frequency), pattern.Confidence, pattern.LastOccurrence,
		nextPredicted,
	); err != nil {
		return fmt.Errorf("failed to upsert pattern: %w", err)
	}

	return nil
}

// GetPatterns retrieves all stored patterns in insertion order.
func (s *SQLiteStorage) GetPatterns(ctx context.Context) ([]model.RecurringPattern, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT id, title, category, average_amount, frequency,
			confidence, last_occurrence, next_predicted, created_at
		FROM patterns
		ORDER BY created_at ASC, id ASC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query patterns: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var patterns []model.RecurringPattern
	for rows.Next() {
		var p model.RecurringPattern
		var frequency string
		var nextPredicted sql.NullTime

		if err := rows.Scan(&p.ID, &p.Title, &p.Category, &p.AverageAmount,
			&frequency, &p.Confidence, &p.LastOccurrence, &nextPredicted,
			&p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan pattern: %w", err)
		}

		p.Frequency = model.ParseFrequency(frequency)
		if nextPredicted.Valid {
			next := nextPredicted.Time.UTC()
			p.NextPredicted = &next
		}
		p.LastOccurrence = p.LastOccurrence.UTC()

		patterns = append(patterns, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate patterns: %w", err)
	}

	return patterns, nil
}

// UpcomingPatterns retrieves stored patterns predicted within the window
// [now, now+withinDays], ascending by predicted date.
func (s *SQLiteStorage) UpcomingPatterns(ctx context.Context, now time.Time, withinDays int) ([]model.RecurringPattern, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT id, title, category, average_amount, frequency,
			confidence, last_occurrence, next_predicted, created_at
		FROM patterns
		WHERE next_predicted IS NOT NULL
			AND next_predicted >= ?
			AND next_predicted <= ?
		ORDER BY next_predicted ASC
	`

	rows, err := s.db.QueryContext(ctx, query, now, now.AddDate(0, 0, withinDays))
	if err != nil {
		return nil, fmt.Errorf("failed to query upcoming patterns: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var patterns []model.RecurringPattern
	for rows.Next() {
		var p model.RecurringPattern
		var frequency string
		var nextPredicted sql.NullTime

		if err := rows.Scan(&p.ID, &p.Title, &p.Category, &p.AverageAmount,
			&frequency, &p.Confidence, &p.LastOccurrence, &nextPredicted,
			&p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan pattern: %w", err)
		}

		p.Frequency = model.ParseFrequency(frequency)
		if nextPredicted.Valid {
			next := nextPredicted.Time.UTC()
			p.NextPredicted = &next
		}

		patterns = append(patterns, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate upcoming patterns: %w", err)
	}

	return patterns, nil
}
