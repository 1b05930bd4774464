package recur

import (
	"github.com/ledgerline/cadence/internal/model"
)

// Similarity weights. They must total 1.0.
const (
	amountWeight   = 0.40
	titleWeight    = 0.35
	categoryWeight = 0.25
)

// ClusterThreshold is the minimum similarity for two expenses to be treated
// as members of the same recurring series.
const ClusterThreshold = 0.8

// Ensure Scorer implements ClusterScorer interface.
var _ ClusterScorer = (*Scorer)(nil)

// Scorer computes fuzzy similarity between expense records across amount,
// title, and category. Scorer is stateless and safe for concurrent use.
type Scorer struct{}

// NewScorer creates a new similarity scorer.
func NewScorer() *Scorer {
	return &Scorer{}
}

// Similarity returns a weighted similarity score in [0,1]. The score is
// symmetric, and reflexive for records with non-empty fields. Two completely
// empty records never match.
func (s *Scorer) Similarity(a, b model.Expense) float64 {
	if a.Amount == 0 && b.Amount == 0 &&
		a.Title == "" && b.Title == "" &&
		a.Category == "" && b.Category == "" {
		return 0.0
	}

	return amountWeight*amountSimilarity(a.Amount, b.Amount) +
		titleWeight*titleSimilarity(a.Title, b.Title) +
		categoryWeight*categorySimilarity(a.NormalizedCategory(), b.NormalizedCategory())
}

// FindCluster returns all history entries whose similarity to target meets
// ClusterThreshold, excluding the target itself (matched by id).
func (s *Scorer) FindCluster(target model.Expense, history []model.Expense) []model.Expense {
	var cluster []model.Expense
	for _, candidate := range history {
		if candidate.ID == target.ID {
			continue
		}
		if s.Similarity(target, candidate) >= ClusterThreshold {
			cluster = append(cluster, candidate)
		}
	}
	return cluster
}

// amountSimilarity compares amounts relative to the larger of the two, so a
// $1 difference matters on a coffee but not on rent.
func amountSimilarity(a, b float64) float64 {
	if a == 0 && b == 0 {
		return 1.0
	}
	maxAmount := a
	if b > maxAmount {
		maxAmount = b
	}
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return 1.0 - diff/maxAmount
}

// titleSimilarity is a normalized edit distance over the raw title strings.
func titleSimilarity(a, b string) float64 {
	if a == "" && b == "" {
		return 1.0
	}
	if a == "" || b == "" {
		return 0.0
	}

	ra, rb := []rune(a), []rune(b)
	maxLen := len(ra)
	if len(rb) > maxLen {
		maxLen = len(rb)
	}
	return 1.0 - float64(levenshtein(ra, rb))/float64(maxLen)
}

// categorySimilarity is exact, case-sensitive equality.
func categorySimilarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	return 0.0
}

// levenshtein computes the edit distance between two rune slices using the
// two-row dynamic programming formulation.
func levenshtein(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := 0; j <= len(b); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = minInt(curr[j-1]+1, minInt(prev[j]+1, prev[j-1]+cost))
		}
		prev, curr = curr, prev
	}

	return prev[len(b)]
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
