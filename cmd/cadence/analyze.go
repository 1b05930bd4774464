package main

import (
	"fmt"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/ledgerline/cadence/internal/cli"
	"github.com/ledgerline/cadence/internal/model"
	"github.com/ledgerline/cadence/internal/service"
)

func analyzeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze",
		Short: "Detect recurring series across the full expense history",
		Long: `Replay the stored expense history in chronological order through the
detector, as if each expense had just been recorded. Detection is
deterministic, so re-running analyze never duplicates patterns or
suggestions.`,
		RunE: runAnalyze,
	}
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	expenses, err := store.GetExpenses(ctx, service.ExpenseFilter{})
	if err != nil {
		return fmt.Errorf("failed to load expenses: %w", err)
	}

	if len(expenses) < 2 {
		fmt.Println(cli.FormatWarning("Not enough history to analyze; import or add some expenses first"))
		return nil
	}

	registry, err := loadRegistry(ctx, store)
	if err != nil {
		return err
	}

	bar := progressbar.NewOptions(len(expenses),
		progressbar.OptionSetDescription("Analyzing expenses"),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)

	var created []model.RecurringSuggestion
	for i, expense := range expenses {
		// Everything recorded before this expense is its history.
		if suggestion := registry.Analyze(expense, expenses[:i]); suggestion != nil {
			created = append(created, *suggestion)
		}
		_ = bar.Add(1)
	}

	for _, pattern := range registry.ListPatterns() {
		p := pattern
		if err := store.UpsertPattern(ctx, &p); err != nil {
			return fmt.Errorf("failed to persist pattern: %w", err)
		}
	}
	for i := range created {
		if err := store.SaveSuggestion(ctx, &created[i]); err != nil {
			return fmt.Errorf("failed to persist suggestion: %w", err)
		}
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf(
		"Analyzed %d expenses: %d patterns, %d new suggestions",
		len(expenses), len(registry.ListPatterns()), len(created))))

	return nil
}
