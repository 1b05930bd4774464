// Package category guesses an expense category from free text using a
// configurable keyword table.
package category

import (
	"sort"
	"strings"
)

// Guesser maps keywords found in expense titles onto categories. It is a
// pure lookup with no state beyond its table, safe for concurrent use.
type Guesser struct {
	keywords   map[string][]string
	categories []string
}

// NewGuesser creates a guesser from a category → keywords table. A nil or
// empty table falls back to DefaultKeywords. Categories are evaluated in
// sorted order so guesses are deterministic.
func NewGuesser(keywords map[string][]string) *Guesser {
	if len(keywords) == 0 {
		keywords = DefaultKeywords()
	}

	normalized := make(map[string][]string, len(keywords))
	categories := make([]string, 0, len(keywords))
	for cat, words := range keywords {
		lowered := make([]string, 0, len(words))
		for _, w := range words {
			if w = strings.ToLower(strings.TrimSpace(w)); w != "" {
				lowered = append(lowered, w)
			}
		}
		normalized[cat] = lowered
		categories = append(categories, cat)
	}
	sort.Strings(categories)

	return &Guesser{keywords: normalized, categories: categories}
}

// DefaultKeywords returns the built-in keyword table.
func DefaultKeywords() map[string][]string {
	return map[string][]string{
		"Entertainment": {"netflix", "spotify", "hulu", "cinema", "theater", "steam"},
		"Food":          {"coffee", "restaurant", "grocery", "groceries", "pizza", "lunch", "dinner"},
		"Health":        {"pharmacy", "gym", "doctor", "dental", "fitness"},
		"Housing":       {"rent", "mortgage", "electric", "water", "internet", "utility"},
		"Transport":     {"uber", "lyft", "gas", "fuel", "parking", "transit", "metro"},
	}
}

// Guess returns the category whose keywords appear in text, or false when
// nothing matches.
func (g *Guesser) Guess(text string) (string, bool) {
	lowered := strings.ToLower(text)
	if strings.TrimSpace(lowered) == "" {
		return "", false
	}

	for _, cat := range g.categories {
		for _, keyword := range g.keywords[cat] {
			if strings.Contains(lowered, keyword) {
				return cat, true
			}
		}
	}

	return "", false
}
