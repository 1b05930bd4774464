package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ledgerline/cadence/internal/cli"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database schema migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			// initStorage migrates as a side effect; this command exists so the
			// schema can be advanced explicitly before other tooling touches it.
			store, err := initStorage(cmd.Context())
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}
			defer func() { _ = store.Close() }()

			fmt.Println(cli.FormatSuccess("Database schema is up to date"))
			return nil
		},
	}
}
