package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/SergioSanchezIglesias/retiros-backend/internal/models"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage income and expense categories",
	}

	cmd.AddCommand(addCategoryCmd())
	cmd.AddCommand(listCategoriesCmd())
	cmd.AddCommand(showCategoryCmd())
	cmd.AddCommand(updateCategoryCmd())
	cmd.AddCommand(deleteCategoryCmd())

	return cmd
}

func addCategoryCmd() *cobra.Command {
	var (
		name  string
		kind  string
		color string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new category",
		RunE: func(cmd *cobra.Command, args []string) error {
			gw, err := initGateway()
			if err != nil {
				return err
			}

			category, err := gw.Categories.CreateCategory(name, models.CategoryKind(kind), color)
			if err != nil {
				return err
			}

			fmt.Printf("Created category %s (%s, %s, %s)\n", category.ID, category.Name, category.Kind, category.Color)
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "category name")
	cmd.Flags().StringVarP(&kind, "kind", "k", "", "category kind (income or expense)")
	cmd.Flags().StringVarP(&color, "color", "c", "", "display color (#RRGGBB)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("kind")
	_ = cmd.MarkFlagRequired("color")

	return cmd
}

func listCategoriesCmd() *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			gw, err := initGateway()
			if err != nil {
				return err
			}

			var categories []models.Category
			if kind != "" {
				categories, err = gw.Categories.GetCategoriesByKind(models.CategoryKind(kind))
			} else {
				categories, err = gw.Categories.GetCategories()
			}
			if err != nil {
				return err
			}

			if len(categories) == 0 {
				fmt.Println("No categories found.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintln(w, "ID\tNAME\tKIND\tCOLOR")
			for _, cat := range categories {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", cat.ID, cat.Name, cat.Kind, cat.Color)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&kind, "kind", "k", "", "filter by kind (income or expense)")

	return cmd
}

func showCategoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gw, err := initGateway()
			if err != nil {
				return err
			}

			category, err := gw.Categories.GetCategoryByID(args[0])
			if err != nil {
				return err
			}

			fmt.Printf("ID:      %s\n", category.ID)
			fmt.Printf("Name:    %s\n", category.Name)
			fmt.Printf("Kind:    %s\n", category.Kind)
			fmt.Printf("Color:   %s\n", category.Color)
			fmt.Printf("Created: %s\n", category.CreatedAt.Format("2006-01-02 15:04:05"))
			return nil
		},
	}
}

func updateCategoryCmd() *cobra.Command {
	var (
		name  string
		kind  string
		color string
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gw, err := initGateway()
			if err != nil {
				return err
			}

			// Unset flags keep their current values.
			current, err := gw.Categories.GetCategoryByID(args[0])
			if err != nil {
				return err
			}
			if name == "" {
				name = current.Name
			}
			if kind == "" {
				kind = string(current.Kind)
			}
			if color == "" {
				color = current.Color
			}

			category, err := gw.Categories.UpdateCategory(args[0], name, models.CategoryKind(kind), color)
			if err != nil {
				return err
			}

			fmt.Printf("Updated category %s (%s, %s, %s)\n", category.ID, category.Name, category.Kind, category.Color)
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "new category name")
	cmd.Flags().StringVarP(&kind, "kind", "k", "", "new category kind (income or expense)")
	cmd.Flags().StringVarP(&color, "color", "c", "", "new display color (#RRGGBB)")

	return cmd
}

func deleteCategoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a category (refused while transactions reference it)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gw, err := initGateway()
			if err != nil {
				return err
			}

			if err := gw.Categories.DeleteCategory(args[0]); err != nil {
				return err
			}

			fmt.Println("Category deleted.")
			return nil
		},
	}
}
