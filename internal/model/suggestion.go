package model

import "time"

// SuggestionStatus tracks a suggestion through its lifecycle.
type SuggestionStatus string

// Suggestion status constants. Pending suggestions await user review;
// dismissed and promoted are terminal.
const (
	SuggestionPending   SuggestionStatus = "pending"
	SuggestionDismissed SuggestionStatus = "dismissed"
	SuggestionPromoted  SuggestionStatus = "promoted"
)

// RecurringSuggestion proposes marking an expense as recurring. It references
// the triggering expense and the pattern that matched it.
type RecurringSuggestion struct {
	CreatedAt  time.Time
	ID         string
	PatternID  string
	Expense    Expense // copy of the triggering expense
	Confidence float64 // copied from the pattern at creation time
	Status     SuggestionStatus
}
