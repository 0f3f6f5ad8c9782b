package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/jkonate/solde/internal/cli"
	"github.com/jkonate/solde/internal/guard"
	"github.com/jkonate/solde/internal/ledger"
)

func dailyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "daily",
		Short: "Manage daily expenses against budget lines",
		Long: `List, add, and delete daily expenses.

Every daily expense belongs to a budget line and is checked against the
line's cap: past 80% utilization the spend is recorded with a warning, at
100% it is rejected.`,
	}

	cmd.AddCommand(listDailyCmd())
	cmd.AddCommand(addDailyCmd())
	cmd.AddCommand(deleteDailyCmd())

	return cmd
}

func listDailyCmd() *cobra.Command {
	var lineID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List daily expenses",
		RunE: func(_ *cobra.Command, _ []string) error {
			ctx := context.Background()

			repo, store, err := initRepository(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			daily := repo.DailyExpenses(ctx)
			if len(daily) == 0 {
				fmt.Println(cli.InfoStyle.Render("No daily expenses recorded."))
				return nil
			}

			// Resolve line descriptions for display.
			lineNames := make(map[string]string)
			for _, line := range repo.BudgetLines(ctx) {
				lineNames[line.ID] = line.Description
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("4"))
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				headerStyle.Render("ID"),
				headerStyle.Render("BUDGET LINE"),
				headerStyle.Render("DESCRIPTION"),
				headerStyle.Render("AMOUNT"),
				headerStyle.Render("DATE"))

			var total float64
			for _, de := range daily {
				if lineID != "" && de.BudgetLineID != lineID {
					continue
				}
				name := lineNames[de.BudgetLineID]
				if name == "" {
					name = cli.SubtleStyle.Render(de.BudgetLineID)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					cli.SubtleStyle.Render(de.ID),
					name,
					de.Description,
					ledger.FormatCurrency(de.Amount),
					ledger.FormatDate(de.ExpenseDate))
				total += de.Amount
			}

			fmt.Fprintf(w, "\t\t%s\t%s\t\n",
				cli.BoldStyle.Render("Total"),
				cli.BoldStyle.Render(ledger.FormatCurrency(total)))
			return nil
		},
	}

	cmd.Flags().StringVar(&lineID, "line", "", "Show only expenses of this budget line")

	return cmd
}

func addDailyCmd() *cobra.Command {
	var (
		amount float64
		date   string
	)

	cmd := &cobra.Command{
		Use:   "add <budget-line-id> <description>",
		Short: "Record a daily expense against a budget line",
		Args:  cobra.ExactArgs(2),
		Example: `  solde daily add <budget-line-id> "Marché" --amount 4500
  solde daily add <budget-line-id> "Taxi" -a 1500 --date 2025-03-12`,
		RunE: func(_ *cobra.Command, args []string) error {
			ctx := context.Background()

			repo, store, err := initRepository(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if date == "" {
				date = time.Now().Format("2006-01-02")
			}

			result, err := repo.AddDailyExpense(ctx, args[0], args[1], date, amount)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Recorded %q (%s)",
				args[1], ledger.FormatCurrency(amount))))
			if result.Decision.Status == guard.StatusWarning {
				fmt.Println(cli.FormatWarning(fmt.Sprintf(
					"Budget line near its cap (%.1f%%)", result.Decision.Percentage)))
			}
			return nil
		},
	}

	cmd.Flags().Float64VarP(&amount, "amount", "a", 0, "Expense amount")
	cmd.Flags().StringVar(&date, "date", "", "Expense date (YYYY-MM-DD, default today)")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func deleteDailyCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a daily expense",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			repo, store, err := initRepository(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if !force && !cli.Confirm(cmd.InOrStdin(), os.Stdout, "Delete this daily expense?") {
				fmt.Println(cli.SubtleStyle.Render("Cancelled."))
				return nil
			}

			if _, err := repo.DeleteDailyExpense(ctx, args[0]); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess("Daily expense deleted"))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation")

	return cmd
}
