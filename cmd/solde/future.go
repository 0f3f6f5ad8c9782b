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

func futureCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "future",
		Short: "Manage planned future expenses",
		Long: `List, add, settle, and delete planned future expenses.

A future expense linked to a budget line with --line is settled through the
budget-line guard, like a daily expense.`,
	}

	cmd.AddCommand(listFutureCmd())
	cmd.AddCommand(addFutureCmd())
	cmd.AddCommand(payFutureCmd())
	cmd.AddCommand(toggleFutureCmd())
	cmd.AddCommand(deleteFutureCmd())

	return cmd
}

func listFutureCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List planned future expenses",
		RunE: func(_ *cobra.Command, _ []string) error {
			ctx := context.Background()

			repo, store, err := initRepository(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			futures := repo.FutureExpenses(ctx)
			if len(futures) == 0 {
				fmt.Println(cli.InfoStyle.Render("No future expenses planned."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("4"))
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				headerStyle.Render("ID"),
				headerStyle.Render("DESCRIPTION"),
				headerStyle.Render("CATEGORY"),
				headerStyle.Render("AMOUNT"),
				headerStyle.Render("TARGET"),
				headerStyle.Render("STATUS"))

			for _, fe := range futures {
				status := cli.InfoStyle.Render("planned")
				if fe.IsPaid {
					status = cli.SuccessStyle.Render("paid")
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					cli.SubtleStyle.Render(fe.ID),
					fe.Description,
					fe.Category,
					ledger.FormatCurrency(fe.Amount),
					ledger.FormatDate(fe.TargetDate),
					status)
			}
			return nil
		},
	}
}

func addFutureCmd() *cobra.Command {
	var (
		amount   float64
		category string
		target   string
		lineID   string
	)

	cmd := &cobra.Command{
		Use:   "add <description>",
		Short: "Plan a future expense",
		Args:  cobra.ExactArgs(1),
		Example: `  solde future add "Rentrée scolaire" --amount 150000 --category Divers --target 2025-09-01
  solde future add "Assurance" -a 60000 -c Transport -t 2025-06-30 --line <budget-line-id>`,
		RunE: func(_ *cobra.Command, args []string) error {
			ctx := context.Background()

			repo, store, err := initRepository(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if _, err := repo.AddFutureExpense(ctx, args[0], category, target, amount, lineID); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Planned expense %q (%s) for %s",
				args[0], ledger.FormatCurrency(amount), ledger.FormatDate(target))))
			return nil
		},
	}

	cmd.Flags().Float64VarP(&amount, "amount", "a", 0, "Expense amount")
	cmd.Flags().StringVarP(&category, "category", "c", "Divers", "Category name")
	cmd.Flags().StringVarP(&target, "target", "t", "", "Target date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&lineID, "line", "", "Budget line for guarded settlement")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("target")

	return cmd
}

func payFutureCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pay <id>",
		Short: "Settle a planned expense",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			ctx := context.Background()

			repo, store, err := initRepository(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			result, err := repo.PayFutureExpense(ctx, args[0])
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess("Future expense settled"))
			if result.Decision.Status == guard.StatusWarning {
				fmt.Println(cli.FormatWarning(fmt.Sprintf(
					"Budget line near its cap (%.1f%%)", result.Decision.Percentage)))
			}
			return nil
		},
	}
}

func toggleFutureCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <id>",
		Short: "Flip a planned expense's paid status without touching budget lines",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			ctx := context.Background()

			repo, store, err := initRepository(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			futures, err := repo.ToggleFutureExpensePaid(ctx, args[0])
			if err != nil {
				return err
			}

			for _, fe := range futures {
				if fe.ID == args[0] {
					state := "planned"
					if fe.IsPaid {
						state = "paid"
					}
					fmt.Println(cli.FormatSuccess(fmt.Sprintf("Future expense %q is now %s", fe.Description, state)))
					break
				}
			}
			return nil
		},
	}
}

func deleteFutureCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a planned expense",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			repo, store, err := initRepository(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if !force && !cli.Confirm(cmd.InOrStdin(), os.Stdout, "Delete this planned expense?") {
				fmt.Println(cli.SubtleStyle.Render("Cancelled."))
				return nil
			}

			if _, err := repo.DeleteFutureExpense(ctx, args[0]); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess("Planned expense deleted"))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation")

	return cmd
}
