package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ledgerline/cadence/internal/cli"
	"github.com/ledgerline/cadence/internal/model"
)

func promoteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "promote <expense-id>",
		Short: "Accept a suggestion and mark the expense as recurring",
		Long: `Mark the referenced expense as recurring and clear every pending suggestion
that points at it. Promoting an expense with no pending suggestion is a
no-op.`,
		Args: cobra.ExactArgs(1),
		RunE: runPromote,
	}
}

func runPromote(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	expenseID := args[0]

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	registry, err := loadRegistry(ctx, store)
	if err != nil {
		return err
	}

	// Snapshot the suggestions being promoted before the registry drops them.
	pending, err := store.GetSuggestions(ctx, model.SuggestionPending)
	if err != nil {
		return fmt.Errorf("failed to load suggestions: %w", err)
	}

	promoted := registry.Promote(expenseID)
	if promoted == nil {
		fmt.Println(cli.SubtleStyle.Render("No pending suggestion references that expense; nothing to do."))
		return nil
	}

	if err := store.SetExpenseRecurring(ctx, promoted.ID); err != nil {
		return err
	}
	for _, s := range pending {
		if s.Expense.ID != expenseID {
			continue
		}
		if err := store.UpdateSuggestionStatus(ctx, s.ID, model.SuggestionPromoted); err != nil {
			return err
		}
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Marked %q as recurring", promoted.Title)))
	return nil
}
