package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/jkonate/solde/internal/cli"
	"github.com/jkonate/solde/internal/ledger"
	"github.com/jkonate/solde/internal/storage"
)

func backupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Manage backups of the budget data",
		Long: fmt.Sprintf(`Create, list, restore, and delete backups of the complete budget data.

Backups are stored inside the local database. The %d most recent backups
are kept; older ones can be pruned with "solde backup clean".`, storage.BackupRetention),
	}

	cmd.AddCommand(createBackupCmd())
	cmd.AddCommand(listBackupsCmd())
	cmd.AddCommand(restoreBackupCmd())
	cmd.AddCommand(deleteBackupCmd())
	cmd.AddCommand(cleanBackupsCmd())

	return cmd
}

func createBackupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create",
		Short: "Create a backup of the current data",
		RunE: func(_ *cobra.Command, _ []string) error {
			ctx := context.Background()

			store, err := initStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			info, err := store.CreateBackup(ctx)
			if err != nil {
				return fmt.Errorf("failed to create backup: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Backup created: %s (%s)",
				info.Key, formatFileSize(info.Size))))
			return nil
		},
	}
}

func listBackupsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available backups, newest first",
		RunE: func(_ *cobra.Command, _ []string) error {
			ctx := context.Background()

			store, err := initStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			backups, err := store.ListBackups(ctx)
			if err != nil {
				return fmt.Errorf("failed to list backups: %w", err)
			}

			if len(backups) == 0 {
				fmt.Println(cli.InfoStyle.Render("No backups yet. Create one with: solde backup create"))
				return nil
			}

			fmt.Println(cli.TitleStyle.Render(fmt.Sprintf("%s Backups", cli.BackupIcon)))

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("4"))
			fmt.Fprintf(w, "%s\t%s\t%s\n",
				headerStyle.Render("KEY"),
				headerStyle.Render("CREATED"),
				headerStyle.Render("SIZE"))

			for _, b := range backups {
				fmt.Fprintf(w, "%s\t%s\t%s\n",
					b.Key,
					ledger.FormatDate(b.CreatedAt),
					formatFileSize(b.Size))
			}
			return nil
		},
	}
}

func restoreBackupCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "restore <key>",
		Short: "Restore a backup, replacing all current data",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			store, err := initStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			backup, err := store.GetBackup(ctx, args[0])
			if err != nil {
				return err
			}

			if !force && !cli.Confirm(cmd.InOrStdin(), os.Stdout,
				"Restoring replaces ALL current data. Continue?") {
				fmt.Println(cli.SubtleStyle.Render("Cancelled."))
				return nil
			}

			if err := store.RestoreBackup(ctx, backup); err != nil {
				return fmt.Errorf("failed to restore backup: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Restored backup from %s",
				ledger.FormatDate(backup.Timestamp))))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation")

	return cmd
}

func deleteBackupCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <key>",
		Short: "Delete a backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			store, err := initStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if !force && !cli.Confirm(cmd.InOrStdin(), os.Stdout,
				fmt.Sprintf("Delete backup %s?", args[0])) {
				fmt.Println(cli.SubtleStyle.Render("Cancelled."))
				return nil
			}

			if err := store.DeleteBackup(ctx, args[0]); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess("Backup deleted"))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation")

	return cmd
}

func cleanBackupsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: fmt.Sprintf("Delete all but the %d most recent backups", storage.BackupRetention),
		RunE: func(_ *cobra.Command, _ []string) error {
			ctx := context.Background()

			store, err := initStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			removed, err := store.CleanOldBackups(ctx)
			if err != nil {
				return fmt.Errorf("failed to clean backups: %w", err)
			}

			if removed == 0 {
				fmt.Println(cli.InfoStyle.Render("Nothing to clean."))
				return nil
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Removed %d old backup(s)", removed)))
			return nil
		},
	}
}
