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

func incomeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "income",
		Short: "Manage income sources",
		Long:  `List, add, update, and delete income sources.`,
	}

	cmd.AddCommand(listIncomesCmd())
	cmd.AddCommand(addIncomeCmd())
	cmd.AddCommand(updateIncomeCmd())
	cmd.AddCommand(deleteIncomeCmd())

	return cmd
}

func listIncomesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all income sources",
		RunE: func(_ *cobra.Command, _ []string) error {
			ctx := context.Background()

			repo, store, err := initRepository(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			incomes := repo.Incomes(ctx)
			if len(incomes) == 0 {
				fmt.Println(cli.InfoStyle.Render("No incomes recorded. Use 'solde income add' to create one."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("4"))
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				headerStyle.Render("ID"),
				headerStyle.Render("DESCRIPTION"),
				headerStyle.Render("AMOUNT"),
				headerStyle.Render("DATE"))

			for _, income := range incomes {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					cli.SubtleStyle.Render(income.ID),
					income.Description,
					ledger.FormatCurrency(income.Amount),
					ledger.FormatDate(income.Date))
			}

			fmt.Fprintf(w, "\t%s\t%s\t\n",
				cli.BoldStyle.Render("Total"),
				cli.BoldStyle.Render(ledger.FormatCurrency(ledger.TotalIncome(incomes))))
			return nil
		},
	}
}

func addIncomeCmd() *cobra.Command {
	var amount float64

	cmd := &cobra.Command{
		Use:   "add <description>",
		Short: "Record a new income source",
		Args:  cobra.ExactArgs(1),
		Example: `  solde income add "Salaire" --amount 450000
  solde income add "Prime" -a 50000`,
		RunE: func(_ *cobra.Command, args []string) error {
			ctx := context.Background()

			repo, store, err := initRepository(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			incomes, err := repo.AddIncome(ctx, args[0], amount)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Recorded income %q (%s). Total income: %s",
				args[0], ledger.FormatCurrency(amount), ledger.FormatCurrency(ledger.TotalIncome(incomes)))))
			return nil
		},
	}

	cmd.Flags().Float64VarP(&amount, "amount", "a", 0, "Income amount")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func updateIncomeCmd() *cobra.Command {
	var amount float64
	var description string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update an income source",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			ctx := context.Background()

			repo, store, err := initRepository(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if _, err := repo.UpdateIncome(ctx, args[0], description, amount); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess("Income updated"))
			return nil
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "New description")
	cmd.Flags().Float64VarP(&amount, "amount", "a", 0, "New amount")
	_ = cmd.MarkFlagRequired("description")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func deleteIncomeCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an income source",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			repo, store, err := initRepository(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if !force && !cli.Confirm(cmd.InOrStdin(), os.Stdout, "Delete this income?") {
				fmt.Println(cli.SubtleStyle.Render("Cancelled."))
				return nil
			}

			if _, err := repo.DeleteIncome(ctx, args[0]); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess("Income deleted"))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation")

	return cmd
}
