package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jkonate/solde/internal/cli"
	"github.com/jkonate/solde/internal/storage"
)

func exportCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all budget data to a JSON file",
		Long: `Export the complete budget data as a versioned JSON document.

The file can later be loaded on any machine with "solde import".`,
		Example: `  solde export
  solde export --output ~/backups/budget.json
  solde export -o - > budget.json`,
		RunE: func(_ *cobra.Command, _ []string) error {
			ctx := context.Background()

			store, err := initStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			text, err := store.ExportJSON(ctx)
			if err != nil {
				return fmt.Errorf("failed to export data: %w", err)
			}

			if output == "-" {
				fmt.Println(text)
				return nil
			}

			if output == "" {
				output = storage.ExportFilename(time.Now())
			}

			if err := os.WriteFile(output, []byte(text), 0o600); err != nil {
				return fmt.Errorf("failed to write %s: %w", output, err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Exported to %s (%s)",
				output, formatFileSize(int64(len(text))))))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default budget-export-<date>.json, \"-\" for stdout)")

	return cmd
}

func importCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import budget data from a JSON export, replacing all current data",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			store, err := initStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			raw, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}

			if !force && !cli.Confirm(cmd.InOrStdin(), os.Stdout,
				"Importing replaces ALL current data. Continue?") {
				fmt.Println(cli.SubtleStyle.Render("Cancelled."))
				return nil
			}

			if err := store.ImportJSON(ctx, string(raw)); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Imported data from %s", args[0])))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation")

	return cmd
}
