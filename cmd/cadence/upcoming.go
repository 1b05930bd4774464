package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ledgerline/cadence/internal/cli"
)

func upcomingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "upcoming",
		Short: "Show recurring expenses predicted in the next days",
		RunE:  runUpcoming,
	}

	cmd.Flags().IntP("days", "d", 30, "look-ahead window in days")
	_ = viper.BindPFlag("upcoming.days", cmd.Flags().Lookup("days"))

	return cmd
}

func runUpcoming(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	days := viper.GetInt("upcoming.days")
	if days <= 0 {
		days = 30
	}

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	patterns, err := store.UpcomingPatterns(ctx, time.Now(), days)
	if err != nil {
		return fmt.Errorf("failed to load upcoming patterns: %w", err)
	}

	if len(patterns) == 0 {
		fmt.Println(cli.SubtleStyle.Render(fmt.Sprintf("Nothing predicted in the next %d days.", days)))
		return nil
	}

	fmt.Println(cli.TitleStyle.Render(fmt.Sprintf("Upcoming in the next %d days", days)))
	for _, p := range patterns {
		fmt.Printf("  %s  %-28s $%-9.2f %s\n",
			p.NextPredicted.Format("2006-01-02"), truncate(p.Title, 28),
			p.AverageAmount, cli.SubtleStyle.Render(string(p.Frequency)))
	}

	return nil
}
