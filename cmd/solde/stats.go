package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jkonate/solde/internal/cli"
)

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show local storage usage",
		RunE: func(_ *cobra.Command, _ []string) error {
			ctx := context.Background()

			store, err := initStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			stats, err := store.Stats(ctx)
			if err != nil {
				return fmt.Errorf("failed to read storage stats: %w", err)
			}

			fmt.Println(cli.TitleStyle.Render(fmt.Sprintf("%s Storage", cli.ChartIcon)))

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "Used\t%s\n", formatFileSize(stats.Used))
			fmt.Fprintf(w, "Capacity\t%s\n", formatFileSize(stats.Total))
			fmt.Fprintf(w, "Utilization\t%.2f%%\n", stats.Percentage)
			fmt.Fprintf(w, "Entries\t%d\n", stats.ItemCount)
			w.Flush()

			if stats.Percentage >= 80 {
				fmt.Println(cli.FormatWarning("Storage is filling up; consider cleaning old backups."))
			}
			return nil
		},
	}
}
