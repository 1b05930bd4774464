package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ledgerline/cadence/internal/cli"
	"github.com/ledgerline/cadence/internal/model"
)

func suggestionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "suggestions",
		Short: "List pending recurring-expense suggestions",
		RunE:  runSuggestions,
	}
}

func runSuggestions(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	suggestions, err := store.GetSuggestions(ctx, model.SuggestionPending)
	if err != nil {
		return fmt.Errorf("failed to load suggestions: %w", err)
	}

	if len(suggestions) == 0 {
		fmt.Println(cli.SubtleStyle.Render("No pending suggestions."))
		return nil
	}

	fmt.Println(cli.TitleStyle.Render("Pending suggestions"))
	for _, s := range suggestions {
		fmt.Printf("  %s  %-28s $%-9.2f %s\n",
			s.ID[:8], truncate(s.Expense.Title, 28), s.Expense.Amount,
			cli.SubtleStyle.Render(fmt.Sprintf("%.0f%% confidence", s.Confidence*100)))
	}
	fmt.Println(cli.SubtleStyle.Render("\nUse 'cadence review', or 'cadence dismiss <id>' / 'cadence promote <expense-id>'."))

	return nil
}
