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
)

func expenseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "expense",
		Short: "Manage expenses",
		Long:  `List, add, update, toggle, and delete expenses.`,
	}

	cmd.AddCommand(listExpensesCmd())
	cmd.AddCommand(addExpenseCmd())
	cmd.AddCommand(updateExpenseCmd())
	cmd.AddCommand(toggleExpenseCmd())
	cmd.AddCommand(deleteExpenseCmd())

	return cmd
}

func listExpensesCmd() *cobra.Command {
	var unpaidOnly bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all expenses",
		RunE: func(_ *cobra.Command, _ []string) error {
			ctx := context.Background()

			repo, store, err := initRepository(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			expenses := repo.Expenses(ctx)
			if len(expenses) == 0 {
				fmt.Println(cli.InfoStyle.Render("No expenses recorded. Use 'solde expense add' to create one."))
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
				headerStyle.Render("DATE"),
				headerStyle.Render("STATUS"))

			for _, expense := range expenses {
				if unpaidOnly && expense.IsPaid {
					continue
				}
				status := cli.WarningStyle.Render("pending")
				if expense.IsPaid {
					status = cli.SuccessStyle.Render("paid")
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					cli.SubtleStyle.Render(expense.ID),
					expense.Description,
					expense.Category,
					ledger.FormatCurrency(expense.Amount),
					ledger.FormatDate(expense.Date),
					status)
			}

			fmt.Fprintf(w, "\t%s\t\t%s\t\t%s\n",
				cli.BoldStyle.Render("Total"),
				cli.BoldStyle.Render(ledger.FormatCurrency(ledger.TotalExpenses(expenses))),
				cli.SubtleStyle.Render(fmt.Sprintf("paid %s / pending %s",
					ledger.FormatCurrency(ledger.PaidExpenses(expenses)),
					ledger.FormatCurrency(ledger.UnpaidExpenses(expenses)))))
			return nil
		},
	}

	cmd.Flags().BoolVar(&unpaidOnly, "unpaid", false, "Show only pending expenses")

	return cmd
}

func addExpenseCmd() *cobra.Command {
	var (
		amount   float64
		category string
		paid     bool
	)

	cmd := &cobra.Command{
		Use:   "add <description>",
		Short: "Record a new expense",
		Args:  cobra.ExactArgs(1),
		Example: `  solde expense add "Loyer" --amount 120000 --category Logement --paid
  solde expense add "Internet" -a 25000 -c Logement`,
		RunE: func(_ *cobra.Command, args []string) error {
			ctx := context.Background()

			repo, store, err := initRepository(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if _, err := repo.AddExpense(ctx, args[0], category, amount, paid); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Recorded expense %q (%s, %s)",
				args[0], ledger.FormatCurrency(amount), category)))
			return nil
		},
	}

	cmd.Flags().Float64VarP(&amount, "amount", "a", 0, "Expense amount")
	cmd.Flags().StringVarP(&category, "category", "c", "Divers", "Category name")
	cmd.Flags().BoolVarP(&paid, "paid", "p", false, "Mark as already paid")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func updateExpenseCmd() *cobra.Command {
	var (
		amount      float64
		category    string
		description string
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update an expense",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			ctx := context.Background()

			repo, store, err := initRepository(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if _, err := repo.UpdateExpense(ctx, args[0], description, category, amount); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess("Expense updated"))
			return nil
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "New description")
	cmd.Flags().StringVarP(&category, "category", "c", "", "New category")
	cmd.Flags().Float64VarP(&amount, "amount", "a", 0, "New amount")
	_ = cmd.MarkFlagRequired("description")
	_ = cmd.MarkFlagRequired("category")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func toggleExpenseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <id>",
		Short: "Toggle an expense between paid and pending",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			ctx := context.Background()

			repo, store, err := initRepository(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			expenses, err := repo.ToggleExpensePaid(ctx, args[0])
			if err != nil {
				return err
			}

			for _, expense := range expenses {
				if expense.ID == args[0] {
					state := "pending"
					if expense.IsPaid {
						state = "paid"
					}
					fmt.Println(cli.FormatSuccess(fmt.Sprintf("Expense %q is now %s", expense.Description, state)))
					break
				}
			}
			return nil
		},
	}
}

func deleteExpenseCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an expense",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			repo, store, err := initRepository(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if !force && !cli.Confirm(cmd.InOrStdin(), os.Stdout, "Delete this expense?") {
				fmt.Println(cli.SubtleStyle.Render("Cancelled."))
				return nil
			}

			if _, err := repo.DeleteExpense(ctx, args[0]); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess("Expense deleted"))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation")

	return cmd
}
