package recur

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ledgerline/cadence/internal/model"
)

func TestScorer_Similarity(t *testing.T) {
	scorer := NewScorer()
	date := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		a    model.Expense
		b    model.Expense
		want float64
	}{
		{
			name: "identical expenses",
			a:    model.Expense{ID: "a", Title: "Netflix", Category: "Entertainment", Amount: 15.99, Date: date},
			b:    model.Expense{ID: "b", Title: "Netflix", Category: "Entertainment", Amount: 15.99, Date: date},
			want: 1.0,
		},
		{
			name: "same title and category, wildly different amounts",
			a:    model.Expense{ID: "a", Title: "Payment", Category: "Other", Amount: 10.0},
			b:    model.Expense{ID: "b", Title: "Payment", Category: "Other", Amount: 1000.0},
			want: 0.40*(1.0-990.0/1000.0) + 0.35 + 0.25,
		},
		{
			name: "different category only",
			a:    model.Expense{ID: "a", Title: "Gym", Category: "Health", Amount: 30},
			b:    model.Expense{ID: "b", Title: "Gym", Category: "Sports", Amount: 30},
			want: 0.40 + 0.35,
		},
		{
			name: "missing category treated as Other on both sides",
			a:    model.Expense{ID: "a", Title: "Rent", Amount: 900},
			b:    model.Expense{ID: "b", Title: "Rent", Category: "Other", Amount: 900},
			want: 1.0,
		},
		{
			name: "one empty title scores zero on the title term",
			a:    model.Expense{ID: "a", Title: "", Category: "Food", Amount: 5},
			b:    model.Expense{ID: "b", Title: "Lunch", Category: "Food", Amount: 5},
			want: 0.40 + 0.25,
		},
		{
			name: "both titles empty scores full title term",
			a:    model.Expense{ID: "a", Title: "", Category: "Food", Amount: 5},
			b:    model.Expense{ID: "b", Title: "", Category: "Food", Amount: 5},
			want: 1.0,
		},
		{
			name: "both amounts zero scores full amount term",
			a:    model.Expense{ID: "a", Title: "Freebie", Category: "Other", Amount: 0},
			b:    model.Expense{ID: "b", Title: "Freebie", Category: "Other", Amount: 0},
			want: 1.0,
		},
		{
			name: "completely empty records never match",
			a:    model.Expense{ID: "a"},
			b:    model.Expense{ID: "b"},
			want: 0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scorer.Similarity(tt.a, tt.b)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestScorer_SimilarityIsSymmetric(t *testing.T) {
	scorer := NewScorer()

	pairs := []struct {
		a model.Expense
		b model.Expense
	}{
		{
			a: model.Expense{ID: "a", Title: "Spotify Premium", Category: "Entertainment", Amount: 9.99},
			b: model.Expense{ID: "b", Title: "Spotify", Category: "Music", Amount: 10.99},
		},
		{
			a: model.Expense{ID: "a", Title: "", Amount: 0},
			b: model.Expense{ID: "b", Title: "Coffee", Category: "Food", Amount: 4.5},
		},
		{
			a: model.Expense{ID: "a", Title: "Rent May", Amount: 1200},
			b: model.Expense{ID: "b", Title: "Rent June", Amount: 1250},
		},
	}

	for _, pair := range pairs {
		ab := scorer.Similarity(pair.a, pair.b)
		ba := scorer.Similarity(pair.b, pair.a)
		assert.Equal(t, ab, ba)
		assert.GreaterOrEqual(t, ab, 0.0)
		assert.LessOrEqual(t, ab, 1.0)
	}
}

func TestScorer_FindCluster(t *testing.T) {
	scorer := NewScorer()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	target := model.Expense{ID: "t", Title: "Netflix", Category: "Entertainment", Amount: 15.99, Date: base.AddDate(0, 2, 0)}
	history := []model.Expense{
		{ID: "h1", Title: "Netflix", Category: "Entertainment", Amount: 15.99, Date: base},
		{ID: "h2", Title: "Netflix", Category: "Entertainment", Amount: 15.99, Date: base.AddDate(0, 1, 0)},
		{ID: "h3", Title: "Groceries", Category: "Food", Amount: 82.13, Date: base},
		{ID: "t", Title: "Netflix", Category: "Entertainment", Amount: 15.99, Date: base}, // same id as target
	}

	cluster := scorer.FindCluster(target, history)

	assert.Len(t, cluster, 2)
	for _, e := range cluster {
		assert.NotEqual(t, target.ID, e.ID)
		assert.Equal(t, "Netflix", e.Title)
	}
}

func TestScorer_FindClusterAmountMismatch(t *testing.T) {
	scorer := NewScorer()

	target := model.Expense{ID: "t", Title: "Transfer", Category: "Other", Amount: 1000.0}
	history := []model.Expense{
		{ID: "h1", Title: "Transfer", Category: "Other", Amount: 10.0},
	}

	assert.Empty(t, scorer.FindCluster(target, history))
}

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a    string
		b    string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"kitten", "sitting", 3},
		{"netflix", "netflix", 0},
		{"café", "cafe", 1}, // rune-wise, not byte-wise
	}

	for _, tt := range tests {
		got := levenshtein([]rune(tt.a), []rune(tt.b))
		assert.Equal(t, tt.want, got, "levenshtein(%q, %q)", tt.a, tt.b)
	}
}
