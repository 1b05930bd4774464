package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrequencyNext(t *testing.T) {
	from := time.Date(2024, 1, 31, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		frequency Frequency
		want      time.Time
		ok        bool
	}{
		{FrequencyDaily, from.AddDate(0, 0, 1), true},
		{FrequencyWeekly, from.AddDate(0, 0, 7), true},
		{FrequencyBiweekly, from.AddDate(0, 0, 14), true},
		{FrequencyMonthly, from.AddDate(0, 1, 0), true},
		{FrequencyQuarterly, from.AddDate(0, 3, 0), true},
		{FrequencyYearly, from.AddDate(1, 0, 0), true},
		{FrequencyUnknown, time.Time{}, false},
	}

	for _, tt := range tests {
		got, ok := tt.frequency.Next(from)
		assert.Equal(t, tt.ok, ok, "frequency %s", tt.frequency)
		assert.Equal(t, tt.want, got, "frequency %s", tt.frequency)
	}
}

func TestFrequencyNextUsesCalendarMonths(t *testing.T) {
	// A monthly charge on the 15th stays on the 15th regardless of month length.
	from := time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC)
	next, ok := FrequencyMonthly.Next(from)

	require.True(t, ok)
	assert.Equal(t, time.March, next.Month())
	assert.Equal(t, 15, next.Day())
}

func TestParseFrequency(t *testing.T) {
	assert.Equal(t, FrequencyMonthly, ParseFrequency("monthly"))
	assert.Equal(t, FrequencyUnknown, ParseFrequency("unknown"))
	assert.Equal(t, FrequencyUnknown, ParseFrequency("fortnightly"))
	assert.Equal(t, FrequencyUnknown, ParseFrequency(""))
}

func TestPatternID(t *testing.T) {
	id := PatternID("Netflix", "Entertainment")

	assert.Equal(t, id, PatternID("Netflix", "Entertainment"), "same series, same id")
	assert.NotEqual(t, id, PatternID("Netflix", "Other"))
	assert.NotEqual(t, id, PatternID("netflix", "Entertainment"), "title comparison is case-sensitive")
	assert.NotEqual(t, PatternID("ab", "c"), PatternID("a", "bc"), "fields must not concatenate ambiguously")
}

func TestExpenseNormalizedCategory(t *testing.T) {
	withCategory := Expense{Category: "Food"}
	assert.Equal(t, "Food", withCategory.NormalizedCategory())

	noCategory := Expense{}
	assert.Equal(t, CategoryOther, noCategory.NormalizedCategory())
}

func TestExpenseGenerateID(t *testing.T) {
	date := time.Date(2024, 5, 2, 18, 30, 0, 0, time.UTC)
	a := Expense{Title: "Lunch", Amount: 12.50, Date: date}
	b := Expense{Title: "Lunch", Amount: 12.50, Date: date}
	c := Expense{Title: "Lunch", Amount: 13.00, Date: date}

	assert.Equal(t, a.GenerateID(), b.GenerateID())
	assert.NotEqual(t, a.GenerateID(), c.GenerateID())
	assert.Len(t, a.GenerateID(), 64)
}
