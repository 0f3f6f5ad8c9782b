package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jkonate/solde/internal/cli"
)

func resetCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete all budget data, including backups",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := context.Background()

			store, err := initStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if !force && !cli.Confirm(cmd.InOrStdin(), os.Stdout,
				"This deletes ALL budget data and backups. Continue?") {
				fmt.Println(cli.SubtleStyle.Render("Cancelled."))
				return nil
			}

			if err := store.ClearAll(ctx); err != nil {
				return fmt.Errorf("failed to reset data: %w", err)
			}

			fmt.Println(cli.FormatSuccess("All data deleted"))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation")

	return cmd
}
