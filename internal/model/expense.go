// Package model defines the core domain types for the cadence application.
package model

import (
	"crypto/sha256"
	"fmt"
	"time"
)

// CategoryOther is substituted whenever an expense carries no category.
const CategoryOther = "Other"

// Expense represents a single recorded expense from any source.
type Expense struct {
	Date        time.Time
	ID          string
	Title       string // Free-text description, may be empty
	Category    string // Optional label, empty means "Other"
	Amount      float64
	IsRecurring bool
}

// NormalizedCategory returns the expense category, substituting CategoryOther
// when none is set.
func (e *Expense) NormalizedCategory() string {
	if e.Category == "" {
		return CategoryOther
	}
	return e.Category
}

// GenerateID creates a stable identifier for duplicate detection across imports.
func (e *Expense) GenerateID() string {
	data := fmt.Sprintf("%s:%.2f:%s",
		e.Date.Format("2006-01-02"),
		e.Amount,
		e.Title)
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash)
}
