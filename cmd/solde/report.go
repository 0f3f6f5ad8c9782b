package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/jkonate/solde/internal/cli"
	"github.com/jkonate/solde/internal/guard"
	"github.com/jkonate/solde/internal/ledger"
)

func reportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Show the monthly budget dashboard",
		Long: `Show the aggregate view of the month: totals, remaining budget with and
without loans, projected balance, savings rate, spending by category, and
budget line utilization.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			ctx := context.Background()

			repo, store, err := initRepository(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			summary := repo.Summary(ctx)

			fmt.Println(cli.TitleStyle.Render(fmt.Sprintf("%s Budget", cli.WalletIcon)))
			fmt.Println()

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "Income\t%s\n", signedAmount(summary.TotalIncome))
			fmt.Fprintf(w, "Expenses\t%s (paid %s, pending %s)\n",
				ledger.FormatCurrency(summary.TotalExpenses),
				ledger.FormatCurrency(summary.PaidExpenses),
				ledger.FormatCurrency(summary.UnpaidExpenses))
			fmt.Fprintf(w, "Loans\t%s\n", ledger.FormatCurrency(summary.TotalLoans))
			fmt.Fprintf(w, "Remaining\t%s\n", signedAmount(summary.RemainingBudget))
			fmt.Fprintf(w, "Remaining (with loans)\t%s\n", signedAmount(summary.RemainingBudgetWithLoans))
			fmt.Fprintf(w, "Projected balance\t%s\n", signedAmount(summary.ProjectedBalance))
			fmt.Fprintf(w, "Savings rate\t%.1f%%\n", summary.SavingsRate)
			w.Flush()

			if len(summary.CategoryStats) > 0 {
				fmt.Println()
				fmt.Println(cli.SubtitleStyle.Render("Spending by category"))

				cw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
				for _, stat := range summary.CategoryStats {
					swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(stat.Color)).Render("●")
					cw.Write([]byte(fmt.Sprintf("%s %s\t%s\t%.1f%%\n",
						swatch, stat.Category, ledger.FormatCurrency(stat.Amount), stat.Percentage)))
				}
				cw.Flush()
			}

			statuses := repo.LineStatuses(ctx)
			if len(statuses) > 0 {
				fmt.Println()
				fmt.Println(cli.SubtitleStyle.Render("Budget lines"))

				lw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
				for _, ls := range statuses {
					fmt.Fprintf(lw, "%s\t%s\t%s / %s\t%.1f%%\n",
						ls.Line.Description,
						gauge(ls.Percentage),
						ledger.FormatCurrency(ls.Spent),
						ledger.FormatCurrency(ls.Line.PlannedAmount),
						ls.Percentage)
				}
				lw.Flush()

				fmt.Printf("\nPlanned %s, spent %s, remaining %s\n",
					ledger.FormatCurrency(summary.TotalPlanned),
					ledger.FormatCurrency(summary.TotalDailySpent),
					signedAmount(summary.PlannedRemaining))

				for _, ls := range statuses {
					switch ls.Status {
					case guard.StatusWarning:
						fmt.Println(cli.FormatWarning(fmt.Sprintf(
							"%q is at %.1f%% of its cap", ls.Line.Description, ls.Percentage)))
					case guard.StatusOver:
						fmt.Println(cli.FormatError(fmt.Sprintf(
							"%q has exhausted its cap (%.1f%%)", ls.Line.Description, ls.Percentage)))
					}
				}
			}

			return nil
		},
	}
}
