package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ledgerline/cadence/internal/category"
	"github.com/ledgerline/cadence/internal/cli"
	"github.com/ledgerline/cadence/internal/model"
	"github.com/ledgerline/cadence/internal/service"
)

func addCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record an expense and check it for recurring patterns",
		Long: `Record a single expense. The new expense is checked against the stored
history; if it looks like part of a recurring series you get a suggestion
to mark it recurring.`,
		RunE: runAdd,
	}

	cmd.Flags().Float64P("amount", "a", 0, "expense amount (required)")
	cmd.Flags().StringP("title", "t", "", "expense description (required)")
	cmd.Flags().StringP("category", "c", "", "category (guessed from the title when omitted)")
	cmd.Flags().StringP("date", "d", "", "date of the expense (format: 2006-01-02, default today)")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

func runAdd(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	amount, _ := cmd.Flags().GetFloat64("amount")
	title, _ := cmd.Flags().GetString("title")
	categoryName, _ := cmd.Flags().GetString("category")
	dateStr, _ := cmd.Flags().GetString("date")

	if amount < 0 {
		return fmt.Errorf("amount must be non-negative, got %.2f", amount)
	}

	date := time.Now()
	if dateStr != "" {
		parsed, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			return fmt.Errorf("invalid date %q: %w", dateStr, err)
		}
		date = parsed
	}

	if categoryName == "" {
		guesser := category.NewGuesser(viper.GetStringMapStringSlice("categories.keywords"))
		if guessed, ok := guesser.Guess(title); ok {
			categoryName = guessed
			slog.Debug("Guessed category", "title", title, "category", guessed)
		}
	}

	expense := model.Expense{
		Title:    title,
		Category: categoryName,
		Amount:   amount,
		Date:     date,
	}
	expense.ID = expense.GenerateID()

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	// History must be read before the new expense is saved: the detector
	// expects the trigger to be absent from it.
	history, err := store.GetExpenses(ctx, service.ExpenseFilter{})
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}

	if err := store.SaveExpenses(ctx, []model.Expense{expense}); err != nil {
		return fmt.Errorf("failed to save expense: %w", err)
	}

	registry, err := loadRegistry(ctx, store)
	if err != nil {
		return err
	}

	suggestion := registry.Analyze(expense, history)
	if err := persistDetection(ctx, store, registry, suggestion); err != nil {
		return err
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Recorded %s ($%.2f)", expense.Title, expense.Amount)))

	if suggestion != nil {
		fmt.Println(cli.WarningStyle.Render(fmt.Sprintf(
			"%s This looks like a recurring expense (%.0f%% confidence). Run 'cadence review' or 'cadence promote %s' to confirm.",
			cli.RepeatIcon, suggestion.Confidence*100, expense.ID)))
	}

	return nil
}
