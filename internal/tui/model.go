// Package tui implements the interactive suggestion review flow.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ledgerline/cadence/internal/model"
)

// Action is a review decision for a single suggestion.
type Action int

// Review actions.
const (
	ActionPromote Action = iota
	ActionDismiss
)

// Decision records what the user chose for one suggestion. Decisions are
// collected while the program runs and applied by the caller afterwards.
type Decision struct {
	SuggestionID string
	ExpenseID    string
	Action       Action
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7C6FF0")).
			MarginBottom(1)

	cursorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7C6FF0"))

	promotedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	dismissedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			Strikethrough(true)

	detailStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// Model holds the review TUI state.
type Model struct {
	decided     map[string]Action
	patterns    map[string]model.RecurringPattern
	suggestions []model.RecurringSuggestion
	keymap      KeyMap
	help        help.Model
	cursor      int
	quitting    bool
}

// New creates a review model over pending suggestions. The patterns map
// provides cadence details for display, keyed by pattern id.
func New(suggestions []model.RecurringSuggestion, patterns map[string]model.RecurringPattern) Model {
	return Model{
		suggestions: suggestions,
		patterns:    patterns,
		decided:     make(map[string]Action),
		keymap:      DefaultKeyMap(),
		help:        help.New(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(keyMsg, m.keymap.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(keyMsg, m.keymap.Down):
		if m.cursor < len(m.suggestions)-1 {
			m.cursor++
		}

	case key.Matches(keyMsg, m.keymap.Promote):
		m.decide(ActionPromote)

	case key.Matches(keyMsg, m.keymap.Dismiss):
		m.decide(ActionDismiss)

	case key.Matches(keyMsg, m.keymap.Undo):
		if s := m.current(); s != nil {
			delete(m.decided, s.ID)
		}

	case key.Matches(keyMsg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll
	}

	return m, nil
}

// decide records an action for the suggestion under the cursor and advances.
func (m *Model) decide(action Action) {
	s := m.current()
	if s == nil {
		return
	}
	m.decided[s.ID] = action
	if m.cursor < len(m.suggestions)-1 {
		m.cursor++
	}
}

func (m *Model) current() *model.RecurringSuggestion {
	if m.cursor < 0 || m.cursor >= len(m.suggestions) {
		return nil
	}
	return &m.suggestions[m.cursor]
}

// Decisions returns the collected decisions in suggestion order.
func (m Model) Decisions() []Decision {
	var decisions []Decision
	for _, s := range m.suggestions {
		action, ok := m.decided[s.ID]
		if !ok {
			continue
		}
		decisions = append(decisions, Decision{
			SuggestionID: s.ID,
			ExpenseID:    s.Expense.ID,
			Action:       action,
		})
	}
	return decisions
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if len(m.suggestions) == 0 {
		return titleStyle.Render("Recurring suggestions") + "\nNothing pending to review.\n"
	}

	out := titleStyle.Render("Recurring suggestions") + "\n"

	for i, s := range m.suggestions {
		cursor := "  "
		if i == m.cursor {
			cursor = cursorStyle.Render("❯ ")
		}

		line := fmt.Sprintf("%s  $%.2f  %s", s.Expense.Title, s.Expense.Amount, m.cadence(s))

		if action, ok := m.decided[s.ID]; ok {
			switch action {
			case ActionPromote:
				line = promotedStyle.Render("✓ " + line)
			case ActionDismiss:
				line = dismissedStyle.Render(line)
			}
		}

		out += cursor + line + "\n"
	}

	out += "\n" + m.help.View(m.keymap) + "\n"
	return out
}

// cadence renders the matched pattern's frequency and confidence.
func (m Model) cadence(s model.RecurringSuggestion) string {
	p, ok := m.patterns[s.PatternID]
	if !ok {
		return detailStyle.Render(fmt.Sprintf("%.0f%% confidence", s.Confidence*100))
	}
	return detailStyle.Render(fmt.Sprintf("%s, %.0f%% confidence", p.Frequency, p.Confidence*100))
}
