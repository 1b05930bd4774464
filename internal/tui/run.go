package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ledgerline/cadence/internal/model"
)

// Run starts the review flow and blocks until the user quits, returning the
// decisions they made.
func Run(suggestions []model.RecurringSuggestion, patterns map[string]model.RecurringPattern) ([]Decision, error) {
	program := tea.NewProgram(New(suggestions, patterns))

	final, err := program.Run()
	if err != nil {
		return nil, fmt.Errorf("review flow failed: %w", err)
	}

	m, ok := final.(Model)
	if !ok {
		return nil, fmt.Errorf("unexpected model type %T", final)
	}

	return m.Decisions(), nil
}
