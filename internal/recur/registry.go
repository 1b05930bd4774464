package recur

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ledgerline/cadence/internal/model"
)

// EventKind identifies the type of registry change an Event describes.
type EventKind string

// Registry event kinds.
const (
	EventPatternDetected     EventKind = "pattern_detected"
	EventSuggestionCreated   EventKind = "suggestion_created"
	EventSuggestionDismissed EventKind = "suggestion_dismissed"
	EventSuggestionPromoted  EventKind = "suggestion_promoted"
)

// Event describes a change to registry state, delivered to subscribers.
type Event struct {
	Kind         EventKind
	PatternID    string
	SuggestionID string
	ExpenseID    string
}

// eventBuffer is the per-subscriber channel capacity. Delivery is lossy:
// events are dropped for subscribers that fall behind rather than blocking
// detection.
const eventBuffer = 16

// Registry owns detected patterns and pending suggestions. It is the only
// shared mutable state in the detector; a single mutex guards both read and
// write paths, so a Registry is safe for concurrent use.
type Registry struct {
	clock        func() time.Time
	scorer       ClusterScorer
	builder      PatternBuilder
	patterns     map[string]*model.RecurringPattern
	suggestions  map[string]*model.RecurringSuggestion
	suggested    map[suggestionKey]bool
	patternOrder []string
	suggestOrder []string
	subscribers  []chan Event
	mu           sync.RWMutex
}

// suggestionKey deduplicates suggestions per triggering expense and pattern.
type suggestionKey struct {
	expenseID string
	patternID string
}

// RegistryOption customizes registry construction.
type RegistryOption func(*Registry)

// WithClock injects the time source used for Upcoming queries and creation
// timestamps. Defaults to time.Now.
func WithClock(clock func() time.Time) RegistryOption {
	return func(r *Registry) {
		r.clock = clock
	}
}

// WithScorer replaces the default similarity scorer.
func WithScorer(scorer ClusterScorer) RegistryOption {
	return func(r *Registry) {
		r.scorer = scorer
	}
}

// WithBuilder replaces the default pattern builder.
func WithBuilder(builder PatternBuilder) RegistryOption {
	return func(r *Registry) {
		r.builder = builder
	}
}

// NewRegistry creates an empty suggestion registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		clock:       time.Now,
		scorer:      NewScorer(),
		builder:     NewBuilder(),
		patterns:    make(map[string]*model.RecurringPattern),
		suggestions: make(map[string]*model.RecurringSuggestion),
		suggested:   make(map[suggestionKey]bool),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Analyze evaluates a newly recorded expense against prior history. When the
// expense belongs to a regular series, the pattern is stored (deduplicated by
// series identity) and, unless the expense is already flagged recurring, a
// pending suggestion is created and returned. Returns nil when no pattern is
// detected, when the expense is already recurring, or when an equivalent
// suggestion was already issued.
func (r *Registry) Analyze(expense model.Expense, history []model.Expense) *model.RecurringSuggestion {
	cluster := r.scorer.FindCluster(expense, history)
	pattern := r.builder.Build(expense, cluster)
	if pattern == nil {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.clock()

	stored, exists := r.patterns[pattern.ID]
	if !exists {
		pattern.CreatedAt = now
		r.patterns[pattern.ID] = pattern
		r.patternOrder = append(r.patternOrder, pattern.ID)
		stored = pattern
		r.notify(Event{Kind: EventPatternDetected, PatternID: pattern.ID, ExpenseID: expense.ID})
	} else if pattern.LastOccurrence.After(stored.LastOccurrence) {
		// The series gained a newer occurrence: recompute the prediction.
		stored.LastOccurrence = pattern.LastOccurrence
		stored.NextPredicted = pattern.NextPredicted
	}

	if expense.IsRecurring {
		return nil
	}

	key := suggestionKey{expenseID: expense.ID, patternID: stored.ID}
	if r.suggested[key] {
		return nil
	}
	r.suggested[key] = true

	suggestion := &model.RecurringSuggestion{
		ID:         uuid.NewString(),
		PatternID:  stored.ID,
		Expense:    expense,
		Confidence: stored.Confidence,
		Status:     model.SuggestionPending,
		CreatedAt:  now,
	}
	r.suggestions[suggestion.ID] = suggestion
	r.suggestOrder = append(r.suggestOrder, suggestion.ID)
	r.notify(Event{Kind: EventSuggestionCreated, PatternID: stored.ID, SuggestionID: suggestion.ID, ExpenseID: expense.ID})

	out := *suggestion
	return &out
}

// ListPatterns returns a snapshot of stored patterns in insertion order.
func (r *Registry) ListPatterns() []model.RecurringPattern {
	r.mu.RLock()
	defer r.mu.RUnlock()

	patterns := make([]model.RecurringPattern, 0, len(r.patternOrder))
	for _, id := range r.patternOrder {
		patterns = append(patterns, *r.patterns[id])
	}
	return patterns
}

// ListSuggestions returns a snapshot of pending suggestions in insertion order.
func (r *Registry) ListSuggestions() []model.RecurringSuggestion {
	r.mu.RLock()
	defer r.mu.RUnlock()

	suggestions := make([]model.RecurringSuggestion, 0, len(r.suggestOrder))
	for _, id := range r.suggestOrder {
		if s, ok := r.suggestions[id]; ok {
			suggestions = append(suggestions, *s)
		}
	}
	return suggestions
}

// Upcoming returns patterns predicted to recur within the next withinDays
// days, sorted ascending by predicted date. Patterns with no prediction are
// excluded.
func (r *Registry) Upcoming(withinDays int) []model.RecurringPattern {
	r.mu.RLock()
	defer r.mu.RUnlock()

	now := r.clock()
	limit := now.AddDate(0, 0, withinDays)

	var due []model.RecurringPattern
	for _, id := range r.patternOrder {
		p := r.patterns[id]
		if p.NextPredicted == nil {
			continue
		}
		if p.NextPredicted.Before(now) || p.NextPredicted.After(limit) {
			continue
		}
		due = append(due, *p)
	}

	sort.Slice(due, func(i, j int) bool {
		return due[i].NextPredicted.Before(*due[j].NextPredicted)
	})

	return due
}

// Dismiss removes a pending suggestion. The underlying pattern is kept.
// Unknown ids are a no-op: dismissals typically race a stale UI snapshot and
// must tolerate being replayed.
func (r *Registry) Dismiss(suggestionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	suggestion, ok := r.suggestions[suggestionID]
	if !ok {
		return
	}

	suggestion.Status = model.SuggestionDismissed
	r.removeSuggestion(suggestionID)
	r.notify(Event{
		Kind:         EventSuggestionDismissed,
		PatternID:    suggestion.PatternID,
		SuggestionID: suggestionID,
		ExpenseID:    suggestion.Expense.ID,
	})
}

// Promote accepts the suggestion(s) referencing an expense: every pending
// suggestion for that expense is removed, and a copy of the expense with
// IsRecurring set is returned so the caller can persist the flag. Returns nil
// when no suggestion references the expense (no-op).
func (r *Registry) Promote(expenseID string) *model.Expense {
	r.mu.Lock()
	defer r.mu.Unlock()

	var promoted *model.Expense
	for _, id := range append([]string(nil), r.suggestOrder...) {
		suggestion, ok := r.suggestions[id]
		if !ok || suggestion.Expense.ID != expenseID {
			continue
		}

		if promoted == nil {
			expense := suggestion.Expense
			expense.IsRecurring = true
			promoted = &expense
		}

		suggestion.Status = model.SuggestionPromoted
		r.removeSuggestion(id)
		r.notify(Event{
			Kind:         EventSuggestionPromoted,
			PatternID:    suggestion.PatternID,
			SuggestionID: id,
			ExpenseID:    expenseID,
		})
	}

	return promoted
}

// Restore rehydrates registry state from storage. Only pending suggestions
// are installed; terminal ones merely mark their (expense, pattern) pair as
// already suggested so analysis does not resurrect them.
func (r *Registry) Restore(patterns []model.RecurringPattern, suggestions []model.RecurringSuggestion) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range patterns {
		p := patterns[i]
		if _, ok := r.patterns[p.ID]; ok {
			continue
		}
		r.patterns[p.ID] = &p
		r.patternOrder = append(r.patternOrder, p.ID)
	}

	for i := range suggestions {
		s := suggestions[i]
		r.suggested[suggestionKey{expenseID: s.Expense.ID, patternID: s.PatternID}] = true
		if s.Status != model.SuggestionPending {
			continue
		}
		if _, ok := r.suggestions[s.ID]; ok {
			continue
		}
		r.suggestions[s.ID] = &s
		r.suggestOrder = append(r.suggestOrder, s.ID)
	}
}

// Subscribe returns a channel of registry change events. Delivery is
// best-effort; subscribers that stop draining lose events rather than
// blocking the registry.
func (r *Registry) Subscribe() <-chan Event {
	r.mu.Lock()
	defer r.mu.Unlock()

	ch := make(chan Event, eventBuffer)
	r.subscribers = append(r.subscribers, ch)
	return ch
}

// removeSuggestion deletes a suggestion from both the map and the insertion
// order. Callers must hold the write lock.
func (r *Registry) removeSuggestion(id string) {
	delete(r.suggestions, id)
	for i, existing := range r.suggestOrder {
		if existing == id {
			r.suggestOrder = append(r.suggestOrder[:i], r.suggestOrder[i+1:]...)
			break
		}
	}
}

// notify fans an event out to subscribers. Callers must hold the write lock.
func (r *Registry) notify(event Event) {
	for _, ch := range r.subscribers {
		select {
		case ch <- event:
		default:
		}
	}
}
