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

func loanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "loan",
		Short: "Manage loans",
		Long: `List, add, repay, and delete loans.

A loan linked to a budget line with --line is repaid through the budget-line
guard: the repayment is recorded as a daily expense and can be blocked when
the line's cap would be exceeded.`,
	}

	cmd.AddCommand(listLoansCmd())
	cmd.AddCommand(addLoanCmd())
	cmd.AddCommand(payLoanCmd())
	cmd.AddCommand(toggleLoanCmd())
	cmd.AddCommand(deleteLoanCmd())

	return cmd
}

func listLoansCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all loans",
		RunE: func(_ *cobra.Command, _ []string) error {
			ctx := context.Background()

			repo, store, err := initRepository(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			loans := repo.Loans(ctx)
			if len(loans) == 0 {
				fmt.Println(cli.InfoStyle.Render("No loans recorded."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("4"))
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				headerStyle.Render("ID"),
				headerStyle.Render("DESCRIPTION"),
				headerStyle.Render("AMOUNT"),
				headerStyle.Render("DATE"),
				headerStyle.Render("STATUS"))

			for _, loan := range loans {
				status := cli.WarningStyle.Render("outstanding")
				if loan.IsPaid {
					status = cli.SuccessStyle.Render("repaid")
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					cli.SubtleStyle.Render(loan.ID),
					loan.Description,
					ledger.FormatCurrency(loan.Amount),
					ledger.FormatDate(loan.Date),
					status)
			}

			fmt.Fprintf(w, "\t%s\t%s\t\t%s\n",
				cli.BoldStyle.Render("Total"),
				cli.BoldStyle.Render(ledger.FormatCurrency(ledger.TotalLoans(loans))),
				cli.SubtleStyle.Render(fmt.Sprintf("repaid %s / outstanding %s",
					ledger.FormatCurrency(ledger.PaidLoans(loans)),
					ledger.FormatCurrency(ledger.UnpaidLoans(loans)))))
			return nil
		},
	}
}

func addLoanCmd() *cobra.Command {
	var (
		amount float64
		lineID string
	)

	cmd := &cobra.Command{
		Use:   "add <description>",
		Short: "Record a new loan",
		Args:  cobra.ExactArgs(1),
		Example: `  solde loan add "Avance de Mamadou" --amount 50000
  solde loan add "Prêt équipement" -a 80000 --line <budget-line-id>`,
		RunE: func(_ *cobra.Command, args []string) error {
			ctx := context.Background()

			repo, store, err := initRepository(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if _, err := repo.AddLoan(ctx, args[0], amount, lineID); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Recorded loan %q (%s)",
				args[0], ledger.FormatCurrency(amount))))
			return nil
		},
	}

	cmd.Flags().Float64VarP(&amount, "amount", "a", 0, "Loan amount")
	cmd.Flags().StringVar(&lineID, "line", "", "Budget line for guarded repayment")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func payLoanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pay <id>",
		Short: "Mark a loan as repaid",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			ctx := context.Background()

			repo, store, err := initRepository(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			result, err := repo.PayLoan(ctx, args[0])
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess("Loan repaid"))
			if result.Decision.Status == guard.StatusWarning {
				fmt.Println(cli.FormatWarning(fmt.Sprintf(
					"Budget line near its cap (%.1f%%)", result.Decision.Percentage)))
			}
			return nil
		},
	}
}

func toggleLoanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <id>",
		Short: "Flip a loan's repaid status without touching budget lines",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			ctx := context.Background()

			repo, store, err := initRepository(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			loans, err := repo.ToggleLoanPaid(ctx, args[0])
			if err != nil {
				return err
			}

			for _, loan := range loans {
				if loan.ID == args[0] {
					state := "pending"
					if loan.IsPaid {
						state = "repaid"
					}
					fmt.Println(cli.FormatSuccess(fmt.Sprintf("Loan %q is now %s", loan.Description, state)))
					break
				}
			}
			return nil
		},
	}
}

func deleteLoanCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a loan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			repo, store, err := initRepository(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if !force && !cli.Confirm(cmd.InOrStdin(), os.Stdout, "Delete this loan?") {
				fmt.Println(cli.SubtleStyle.Render("Cancelled."))
				return nil
			}

			if _, err := repo.DeleteLoan(ctx, args[0]); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess("Loan deleted"))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation")

	return cmd
}
