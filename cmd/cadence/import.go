package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ledgerline/cadence/internal/cli"
	"github.com/ledgerline/cadence/internal/common"
	"github.com/ledgerline/cadence/internal/ofx"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file.ofx|file.qfx> [more files...]",
		Short: "Import expenses from OFX/QFX bank statements",
		Long: `Import the debit transactions of one or more OFX/QFX statement files into
the local database. Records are deduplicated by transaction id, so importing
the same statement twice is safe. Run 'cadence analyze' afterwards to detect
recurring series in the imported history.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runOFXImport,
	}

	return cmd
}

func runOFXImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	parser := ofx.NewParser()
	total := 0

	for _, path := range args {
		file, err := os.Open(path) //nolint:gosec // user-supplied import path
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", path, err)
		}

		expenses, err := parser.ParseFile(ctx, file)
		_ = file.Close()
		if err != nil {
			return common.NewUserError(fmt.Sprintf("could not parse %s", filepath.Base(path)), err)
		}

		if len(expenses) == 0 {
			slog.Warn("No debit transactions found", "file", filepath.Base(path))
			continue
		}

		if err := store.SaveExpenses(ctx, expenses); err != nil {
			return fmt.Errorf("failed to save expenses from %s: %w", path, err)
		}

		slog.Info("Imported statement", "file", filepath.Base(path), "expenses", len(expenses))
		total += len(expenses)
	}

	if total == 0 {
		return common.ErrNoExpenses
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Imported %d expenses", total)))
	return nil
}
