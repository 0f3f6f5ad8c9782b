package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/jkonate/solde/internal/cli"
)

func categoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "category",
		Short: "Manage expense categories",
		Long: `List, add, rename, restyle, and delete expense categories.

Categories are joined to expenses and budget lines by name. Renaming a
category rewrites every referencing record in the same operation, and a
category still in use cannot be deleted.`,
	}

	cmd.AddCommand(listCategoriesCmd())
	cmd.AddCommand(addCategoryCmd())
	cmd.AddCommand(renameCategoryCmd())
	cmd.AddCommand(styleCategoryCmd())
	cmd.AddCommand(deleteCategoryCmd())

	return cmd
}

func listCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all categories",
		RunE: func(_ *cobra.Command, _ []string) error {
			ctx := context.Background()

			repo, store, err := initRepository(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			categories := repo.Categories(ctx)

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				headerStyle.Render("ID"),
				headerStyle.Render("NAME"),
				headerStyle.Render("ICON"),
				headerStyle.Render("COLOR"),
				headerStyle.Render("IN USE"))

			for _, cat := range categories {
				inUse := cli.SubtleStyle.Render("no")
				if repo.IsCategoryInUse(ctx, cat.Name) {
					inUse = cli.InfoStyle.Render("yes")
				}
				color := lipgloss.NewStyle().Foreground(lipgloss.Color(cat.Color)).Render(cat.Color)
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					cli.SubtleStyle.Render(cat.ID), cat.Name, cat.Icon, color, inUse)
			}
			return nil
		},
	}
}

func addCategoryCmd() *cobra.Command {
	var (
		icon  string
		color string
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a new category",
		Args:  cobra.ExactArgs(1),
		Example: `  solde category add "Santé" --icon 💊 --color "#22C55E"`,
		RunE: func(_ *cobra.Command, args []string) error {
			ctx := context.Background()

			repo, store, err := initRepository(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if _, err := repo.AddCategory(ctx, args[0], icon, color); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Added category %q", args[0])))
			return nil
		},
	}

	cmd.Flags().StringVar(&icon, "icon", "📦", "Category icon")
	cmd.Flags().StringVar(&color, "color", "#6B7280", "Category color (hex)")

	return cmd
}

func renameCategoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <id> <new-name>",
		Short: "Rename a category",
		Long: `Rename a category and rewrite the category field on every referencing
expense, future expense, and budget line so the name join stays consistent.`,
		Args: cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			ctx := context.Background()

			repo, store, err := initRepository(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if _, err := repo.RenameCategory(ctx, args[0], args[1]); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Category renamed to %q, references updated", args[1])))
			return nil
		},
	}
}

func styleCategoryCmd() *cobra.Command {
	var (
		icon  string
		color string
	)

	cmd := &cobra.Command{
		Use:   "style <id>",
		Short: "Change a category's icon and color",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			ctx := context.Background()

			repo, store, err := initRepository(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if _, err := repo.UpdateCategoryStyle(ctx, args[0], icon, color); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess("Category updated"))
			return nil
		},
	}

	cmd.Flags().StringVar(&icon, "icon", "📦", "Category icon")
	cmd.Flags().StringVar(&color, "color", "#6B7280", "Category color (hex)")

	return cmd
}

func deleteCategoryCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a category",
		Long:  `Delete a category. Rejected while any expense, future expense, or budget line still references it.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			repo, store, err := initRepository(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if !force && !cli.Confirm(cmd.InOrStdin(), os.Stdout, "Delete this category?") {
				fmt.Println(cli.SubtleStyle.Render("Cancelled."))
				return nil
			}

			if _, err := repo.DeleteCategory(ctx, args[0]); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess("Category deleted"))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation")

	return cmd
}
