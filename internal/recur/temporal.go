package recur

import (
	"math"

	"github.com/ledgerline/cadence/internal/model"
)

// ConfidenceThreshold gates pattern emission: a candidate series below this
// regularity score produces no pattern.
const ConfidenceThreshold = 0.6

const secondsPerDay = 24 * 60 * 60

// AnalyzeIntervals infers a cadence and a regularity confidence from a series
// of expenses sorted ascending by date. Fewer than two points yields
// (FrequencyUnknown, 0).
//
// Confidence is 1 minus the coefficient of variation of the consecutive
// gaps, clamped at zero. Penalizing relative rather than absolute deviation
// means a series with large but very regular gaps still scores high, which is
// what catches "same charge every ~30 days" subscriptions despite a couple
// days of jitter.
func AnalyzeIntervals(sorted []model.Expense) (model.Frequency, float64) {
	if len(sorted) < 2 {
		return model.FrequencyUnknown, 0.0
	}

	gaps := make([]float64, 0, len(sorted)-1)
	for i := 1; i < len(sorted); i++ {
		gaps = append(gaps, sorted[i].Date.Sub(sorted[i-1].Date).Seconds())
	}

	var sum float64
	for _, g := range gaps {
		sum += g
	}
	mean := sum / float64(len(gaps))

	freq := classifyInterval(mean / secondsPerDay)

	if mean == 0 {
		// All points coincide: infinite relative variation.
		return freq, 0.0
	}

	var sumSq float64
	for _, g := range gaps {
		d := g - mean
		sumSq += d * d
	}
	variance := sumSq / float64(len(gaps))
	stdDev := math.Sqrt(variance)

	confidence := 1.0 - stdDev/mean
	if confidence < 0 {
		confidence = 0.0
	}

	return freq, confidence
}

// classifyInterval maps a mean gap in days onto a frequency bucket. The
// ranges deliberately leave gaps (a 4-day cadence matches nothing); those
// series classify as unknown.
func classifyInterval(days float64) model.Frequency {
	switch {
	case days < 2:
		return model.FrequencyDaily
	case days >= 6 && days <= 8:
		return model.FrequencyWeekly
	case days >= 13 && days <= 17:
		return model.FrequencyBiweekly
	case days >= 28 && days <= 32:
		return model.FrequencyMonthly
	case days >= 88 && days <= 95:
		return model.FrequencyQuarterly
	case days >= 360 && days <= 370:
		return model.FrequencyYearly
	}
	return model.FrequencyUnknown
}
