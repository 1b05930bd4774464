package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ledgerline/cadence/internal/cli"
	"github.com/ledgerline/cadence/internal/model"
	"github.com/ledgerline/cadence/internal/storage"
)

func dismissCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dismiss <suggestion-id>",
		Short: "Dismiss a pending suggestion",
		Long: `Dismiss a pending suggestion. The detected pattern is kept, so the series
still shows up in 'cadence patterns' and 'cadence upcoming'. Dismissing an
unknown or already-handled id is a no-op.`,
		Args: cobra.ExactArgs(1),
		RunE: runDismiss,
	}
}

func runDismiss(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	id, err := resolveSuggestionID(cmd, store, args[0])
	if err != nil {
		return err
	}
	if id == "" {
		fmt.Println(cli.SubtleStyle.Render("No matching pending suggestion; nothing to do."))
		return nil
	}

	registry, err := loadRegistry(ctx, store)
	if err != nil {
		return err
	}
	registry.Dismiss(id)

	if err := store.UpdateSuggestionStatus(ctx, id, model.SuggestionDismissed); err != nil {
		return err
	}

	fmt.Println(cli.FormatSuccess("Suggestion dismissed"))
	return nil
}

// resolveSuggestionID matches a full id or unique prefix against pending
// suggestions. Returns empty when nothing matches.
func resolveSuggestionID(cmd *cobra.Command, store *storage.SQLiteStorage, arg string) (string, error) {
	suggestions, err := store.GetSuggestions(cmd.Context(), model.SuggestionPending)
	if err != nil {
		return "", fmt.Errorf("failed to load suggestions: %w", err)
	}

	var matches []string
	for _, s := range suggestions {
		if s.ID == arg {
			return s.ID, nil
		}
		if strings.HasPrefix(s.ID, arg) {
			matches = append(matches, s.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", nil
	case 1:
		return matches[0], nil
	}
	return "", fmt.Errorf("suggestion id %q is ambiguous (%d matches)", arg, len(matches))
}
