package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ledgerline/cadence/internal/cli"
	"github.com/ledgerline/cadence/internal/model"
	"github.com/ledgerline/cadence/internal/tui"
)

func reviewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "review",
		Short: "Interactively review pending suggestions",
		RunE:  runReview,
	}
}

func runReview(cmd *cobra.Command, _ []string) error {
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
		fmt.Println(cli.SubtleStyle.Render("No pending suggestions to review."))
		return nil
	}

	storedPatterns, err := store.GetPatterns(ctx)
	if err != nil {
		return fmt.Errorf("failed to load patterns: %w", err)
	}
	patterns := make(map[string]model.RecurringPattern, len(storedPatterns))
	for _, p := range storedPatterns {
		patterns[p.ID] = p
	}

	decisions, err := tui.Run(suggestions, patterns)
	if err != nil {
		return err
	}

	registry, err := loadRegistry(ctx, store)
	if err != nil {
		return err
	}

	var promoted, dismissed int
	for _, decision := range decisions {
		switch decision.Action {
		case tui.ActionPromote:
			if expense := registry.Promote(decision.ExpenseID); expense != nil {
				if err := store.SetExpenseRecurring(ctx, expense.ID); err != nil {
					return err
				}
			}
			if err := store.UpdateSuggestionStatus(ctx, decision.SuggestionID, model.SuggestionPromoted); err != nil {
				return err
			}
			promoted++
		case tui.ActionDismiss:
			registry.Dismiss(decision.SuggestionID)
			if err := store.UpdateSuggestionStatus(ctx, decision.SuggestionID, model.SuggestionDismissed); err != nil {
				return err
			}
			dismissed++
		}
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Review complete: %d promoted, %d dismissed", promoted, dismissed)))
	return nil
}
