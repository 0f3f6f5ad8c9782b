package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/jkonate/solde/internal/cli"
	"github.com/jkonate/solde/internal/guard"
	"github.com/jkonate/solde/internal/ledger"
)

func lineCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "line",
		Short: "Manage budget lines",
		Long: `List, add, update, and delete budget lines.

A budget line is a planned spending bucket with a cap. The sum of all caps
may never exceed total income, and daily expenses recorded against a line are
blocked once the cap is reached.`,
	}

	cmd.AddCommand(listLinesCmd())
	cmd.AddCommand(addLineCmd())
	cmd.AddCommand(updateLineCmd())
	cmd.AddCommand(deleteLineCmd())

	return cmd
}

func gauge(pct float64) string {
	const width = 20
	filled := int(pct / 100 * width)
	if filled > width {
		filled = width
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)

	style := cli.SuccessStyle
	switch guard.StatusOf(pct) {
	case guard.StatusWarning:
		style = cli.WarningStyle
	case guard.StatusOver:
		style = cli.ErrorStyle
	}
	return style.Render(bar)
}

func listLinesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List budget lines with their utilization",
		RunE: func(_ *cobra.Command, _ []string) error {
			ctx := context.Background()

			repo, store, err := initRepository(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			statuses := repo.LineStatuses(ctx)
			if len(statuses) == 0 {
				fmt.Println(cli.InfoStyle.Render("No budget lines. Use 'solde line add' to create one."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("4"))
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				headerStyle.Render("ID"),
				headerStyle.Render("DESCRIPTION"),
				headerStyle.Render("CATEGORY"),
				headerStyle.Render("SPENT / PLANNED"),
				headerStyle.Render("USAGE"),
				headerStyle.Render(""))

			for _, ls := range statuses {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%.1f%%\n",
					cli.SubtleStyle.Render(ls.Line.ID),
					ls.Line.Description,
					ls.Line.Category,
					fmt.Sprintf("%s / %s",
						ledger.FormatCurrency(ls.Spent),
						ledger.FormatCurrency(ls.Line.PlannedAmount)),
					gauge(ls.Percentage),
					ls.Percentage)
			}

			for _, ls := range statuses {
				switch ls.Status {
				case guard.StatusWarning:
					fmt.Println(cli.FormatWarning(fmt.Sprintf(
						"%q is near its cap (%.1f%%)", ls.Line.Description, ls.Percentage)))
				case guard.StatusOver:
					fmt.Println(cli.FormatError(fmt.Sprintf(
						"%q has exceeded its cap (%.1f%%)", ls.Line.Description, ls.Percentage)))
				}
			}
			return nil
		},
	}
}

func addLineCmd() *cobra.Command {
	var (
		planned  float64
		category string
	)

	cmd := &cobra.Command{
		Use:   "add <description>",
		Short: "Create a budget line",
		Args:  cobra.ExactArgs(1),
		Example: `  solde line add "Courses du mois" --planned 90000 --category Alimentation`,
		RunE: func(_ *cobra.Command, args []string) error {
			ctx := context.Background()

			repo, store, err := initRepository(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if _, err := repo.AddBudgetLine(ctx, args[0], category, planned); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Created budget line %q with cap %s",
				args[0], ledger.FormatCurrency(planned))))
			return nil
		},
	}

	cmd.Flags().Float64VarP(&planned, "planned", "p", 0, "Planned amount (spending cap)")
	cmd.Flags().StringVarP(&category, "category", "c", "Divers", "Category name")
	_ = cmd.MarkFlagRequired("planned")

	return cmd
}

func updateLineCmd() *cobra.Command {
	var (
		planned     float64
		category    string
		description string
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a budget line",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			ctx := context.Background()

			repo, store, err := initRepository(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if _, err := repo.UpdateBudgetLine(ctx, args[0], description, category, planned); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess("Budget line updated"))
			return nil
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "New description")
	cmd.Flags().StringVarP(&category, "category", "c", "", "New category")
	cmd.Flags().Float64VarP(&planned, "planned", "p", 0, "New planned amount")
	_ = cmd.MarkFlagRequired("description")
	_ = cmd.MarkFlagRequired("category")
	_ = cmd.MarkFlagRequired("planned")

	return cmd
}

func deleteLineCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a budget line",
		Long:  `Delete a budget line. Rejected while any daily expense is attached to it.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			repo, store, err := initRepository(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if !force && !cli.Confirm(cmd.InOrStdin(), os.Stdout, "Delete this budget line?") {
				fmt.Println(cli.SubtleStyle.Render("Cancelled."))
				return nil
			}

			if _, err := repo.DeleteBudgetLine(ctx, args[0]); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess("Budget line deleted"))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation")

	return cmd
}
