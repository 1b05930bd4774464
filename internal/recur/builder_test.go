package recur

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerline/cadence/internal/model"
)

func TestBuilder_BuildMonthlySeries(t *testing.T) {
	builder := NewBuilder()

	jan := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	feb := jan.AddDate(0, 1, 0)
	mar := feb.AddDate(0, 1, 0)

	trigger := model.Expense{ID: "e3", Title: "Netflix", Category: "Entertainment", Amount: 15.99, Date: mar}
	cluster := []model.Expense{
		{ID: "e1", Title: "Netflix", Category: "Entertainment", Amount: 15.99, Date: jan},
		{ID: "e2", Title: "Netflix", Category: "Entertainment", Amount: 16.49, Date: feb},
	}

	pattern := builder.Build(trigger, cluster)
	require.NotNil(t, pattern)

	assert.Equal(t, model.PatternID("Netflix", "Entertainment"), pattern.ID)
	assert.Equal(t, "Netflix", pattern.Title)
	assert.Equal(t, "Entertainment", pattern.Category)
	assert.Equal(t, model.FrequencyMonthly, pattern.Frequency)
	assert.InDelta(t, (15.99+16.49+15.99)/3, pattern.AverageAmount, 1e-9)
	assert.Greater(t, pattern.Confidence, 0.6)
	assert.Equal(t, mar, pattern.LastOccurrence)

	require.NotNil(t, pattern.NextPredicted)
	assert.Equal(t, mar.AddDate(0, 1, 0), *pattern.NextPredicted)
}

func TestBuilder_BuildTriggerOutOfOrder(t *testing.T) {
	builder := NewBuilder()

	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	// Trigger is chronologically in the middle of its cluster.
	trigger := model.Expense{ID: "t", Title: "Gym", Category: "Health", Amount: 30, Date: base.AddDate(0, 0, 7)}
	cluster := []model.Expense{
		{ID: "a", Title: "Gym", Category: "Health", Amount: 30, Date: base},
		{ID: "b", Title: "Gym", Category: "Health", Amount: 30, Date: base.AddDate(0, 0, 14)},
	}

	pattern := builder.Build(trigger, cluster)
	require.NotNil(t, pattern)
	assert.Equal(t, model.FrequencyWeekly, pattern.Frequency)
	assert.Equal(t, base.AddDate(0, 0, 14), pattern.LastOccurrence)
}

func TestBuilder_BuildUnknownFrequencyHasNoPrediction(t *testing.T) {
	builder := NewBuilder()

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	// Regular 40-day cadence: high confidence, but no bucket matches.
	trigger := model.Expense{ID: "t", Title: "Water bill", Category: "Housing", Amount: 55, Date: base.AddDate(0, 0, 80)}
	cluster := []model.Expense{
		{ID: "a", Title: "Water bill", Category: "Housing", Amount: 55, Date: base},
		{ID: "b", Title: "Water bill", Category: "Housing", Amount: 55, Date: base.AddDate(0, 0, 40)},
	}

	pattern := builder.Build(trigger, cluster)
	require.NotNil(t, pattern)
	assert.Equal(t, model.FrequencyUnknown, pattern.Frequency)
	assert.Nil(t, pattern.NextPredicted)
}

func TestBuilder_BuildReturnsNil(t *testing.T) {
	builder := NewBuilder()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("empty cluster", func(t *testing.T) {
		trigger := model.Expense{ID: "t", Title: "One-off", Amount: 12, Date: base}
		assert.Nil(t, builder.Build(trigger, nil))
	})

	t.Run("irregular series below confidence gate", func(t *testing.T) {
		// Gaps of 1 and 3 days give a coefficient of variation of 0.5.
		trigger := model.Expense{ID: "t", Title: "Snack", Amount: 3, Date: base.AddDate(0, 0, 4)}
		cluster := []model.Expense{
			{ID: "a", Title: "Snack", Amount: 3, Date: base},
			{ID: "b", Title: "Snack", Amount: 3, Date: base.AddDate(0, 0, 1)},
		}
		assert.Nil(t, builder.Build(trigger, cluster))
	})
}

func TestBuilder_BuildCategoryDefaultsToOther(t *testing.T) {
	builder := NewBuilder()
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	trigger := model.Expense{ID: "t", Title: "Storage unit", Amount: 89, Date: base.AddDate(0, 0, 30)}
	cluster := []model.Expense{
		{ID: "a", Title: "Storage unit", Amount: 89, Date: base},
	}

	pattern := builder.Build(trigger, cluster)
	require.NotNil(t, pattern)
	assert.Equal(t, model.CategoryOther, pattern.Category)
	assert.Equal(t, model.PatternID("Storage unit", model.CategoryOther), pattern.ID)
}
