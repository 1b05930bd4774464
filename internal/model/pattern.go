package model

import (
	"crypto/sha256"
	"fmt"
	"time"
)

// Frequency classifies the repetition cadence of a recurring series.
type Frequency string

// Frequency bucket constants.
const (
	FrequencyDaily     Frequency = "daily"
	FrequencyWeekly    Frequency = "weekly"
	FrequencyBiweekly  Frequency = "biweekly"
	FrequencyMonthly   Frequency = "monthly"
	FrequencyQuarterly Frequency = "quarterly"
	FrequencyYearly    Frequency = "yearly"
	FrequencyUnknown   Frequency = "unknown"
)

// ParseFrequency converts a stored string back to a Frequency, falling back
// to FrequencyUnknown for unrecognized values.
func ParseFrequency(s string) Frequency {
	switch Frequency(s) {
	case FrequencyDaily, FrequencyWeekly, FrequencyBiweekly,
		FrequencyMonthly, FrequencyQuarterly, FrequencyYearly:
		return Frequency(s)
	}
	return FrequencyUnknown
}

// Next advances t by exactly one cadence unit. Monthly, quarterly and yearly
// cadences advance by calendar units, not fixed day counts. The second return
// is false for FrequencyUnknown, which has no defined next occurrence.
func (f Frequency) Next(t time.Time) (time.Time, bool) {
	switch f {
	case FrequencyDaily:
		return t.AddDate(0, 0, 1), true
	case FrequencyWeekly:
		return t.AddDate(0, 0, 7), true
	case FrequencyBiweekly:
		return t.AddDate(0, 0, 14), true
	case FrequencyMonthly:
		return t.AddDate(0, 1, 0), true
	case FrequencyQuarterly:
		return t.AddDate(0, 3, 0), true
	case FrequencyYearly:
		return t.AddDate(1, 0, 0), true
	}
	return time.Time{}, false
}

// RecurringPattern describes a detected recurring expense series.
type RecurringPattern struct {
	LastOccurrence time.Time
	NextPredicted  *time.Time // nil when Frequency is unknown
	CreatedAt      time.Time
	ID             string
	Title          string
	Category       string
	Frequency      Frequency
	AverageAmount  float64
	Confidence     float64
}

// PatternID derives the stable identity of a logical series from its
// representative title and category. Repeated detection of the same series
// must resolve to the same id.
func PatternID(title, category string) string {
	hash := sha256.Sum256([]byte(fmt.Sprintf("%s\x00%s", title, category)))
	return fmt.Sprintf("%x", hash)
}
