package recur

import (
	"sort"

	"github.com/ledgerline/cadence/internal/model"
)

// Ensure Builder implements PatternBuilder interface.
var _ PatternBuilder = (*Builder)(nil)

// Builder assembles RecurringPatterns from a trigger expense and the cluster
// of similar history entries. Builder is stateless and safe for concurrent use.
type Builder struct{}

// NewBuilder creates a new pattern builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Build merges the trigger with its cluster, infers the cadence, and returns
// a pattern when confidence clears ConfidenceThreshold. Returns nil for
// clusters too small or too irregular to call a series.
//
// The pattern id is deterministic per (title, category) so repeated analysis
// of the same logical series resolves to the same identity.
func (b *Builder) Build(trigger model.Expense, cluster []model.Expense) *model.RecurringPattern {
	series := make([]model.Expense, 0, len(cluster)+1)
	series = append(series, trigger)
	series = append(series, cluster...)
	if len(series) < 2 {
		return nil
	}

	sort.Slice(series, func(i, j int) bool {
		return series[i].Date.Before(series[j].Date)
	})

	freq, confidence := AnalyzeIntervals(series)
	if confidence <= ConfidenceThreshold {
		return nil
	}

	var total float64
	for _, e := range series {
		total += e.Amount
	}

	last := series[len(series)-1].Date

	pattern := &model.RecurringPattern{
		ID:             model.PatternID(trigger.Title, trigger.NormalizedCategory()),
		Title:          trigger.Title,
		Category:       trigger.NormalizedCategory(),
		AverageAmount:  total / float64(len(series)),
		Frequency:      freq,
		Confidence:     confidence,
		LastOccurrence: last,
	}

	if next, ok := freq.Next(last); ok {
		pattern.NextPredicted = &next
	}

	return pattern
}
