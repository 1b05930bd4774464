package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ledgerline/cadence/internal/cli"
	"github.com/ledgerline/cadence/internal/model"
)

func patternsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "patterns",
		Short: "List detected recurring patterns",
		RunE:  runPatterns,
	}
}

func runPatterns(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	patterns, err := store.GetPatterns(ctx)
	if err != nil {
		return fmt.Errorf("failed to load patterns: %w", err)
	}

	if len(patterns) == 0 {
		fmt.Println(cli.SubtleStyle.Render("No recurring patterns detected yet. Run 'cadence analyze'."))
		return nil
	}

	fmt.Println(cli.TitleStyle.Render("Recurring patterns"))
	fmt.Println(renderPatternTable(patterns))

	return nil
}

func renderPatternTable(patterns []model.RecurringPattern) string {
	var b strings.Builder

	header := fmt.Sprintf("%-28s %-14s %-10s %-11s %-11s %s",
		"TITLE", "CATEGORY", "AVG", "FREQUENCY", "CONFIDENCE", "NEXT")
	b.WriteString(cli.TableHeaderStyle.Render(header))
	b.WriteString("\n")

	for _, p := range patterns {
		next := "-"
		if p.NextPredicted != nil {
			next = p.NextPredicted.Format("2006-01-02")
		}
		row := fmt.Sprintf("%-28s %-14s $%-9.2f %-11s %-11s %s",
			truncate(p.Title, 28), truncate(p.Category, 14), p.AverageAmount,
			p.Frequency, fmt.Sprintf("%.0f%%", p.Confidence*100), next)
		b.WriteString(cli.TableCellStyle.Render(row))
		b.WriteString("\n")
	}

	return b.String()
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 1 {
		return s[:max]
	}
	return s[:max-1] + "…"
}
