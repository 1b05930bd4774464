// Package recur implements recurring-expense pattern detection: fuzzy
// similarity clustering, interval inference, and the suggestion registry.
package recur

import (
	"github.com/ledgerline/cadence/internal/model"
)

// ClusterScorer computes pairwise expense similarity and filters a history
// down to the expenses plausibly belonging to the same series as a target.
type ClusterScorer interface {
	// Similarity returns a symmetric score in [0,1].
	Similarity(a, b model.Expense) float64
	// FindCluster returns all history entries similar enough to target to be
	// considered part of the same recurring series. The target itself is
	// excluded by id.
	FindCluster(target model.Expense, history []model.Expense) []model.Expense
}

// PatternBuilder turns a triggering expense and its cluster into a
// RecurringPattern, or nil when the series is not regular enough.
type PatternBuilder interface {
	Build(trigger model.Expense, cluster []model.Expense) *model.RecurringPattern
}
