package main

import (
	"github.com/spf13/cobra"

	"github.com/pennyjar/pennyjar/internal/cli"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage a budget's categories",
	}

	var budgetID string
	cmd.PersistentFlags().StringVar(&budgetID, "budget", "", "budget id (required)")
	_ = cmd.MarkPersistentFlagRequired("budget")

	addCmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a category to a budget",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			category, err := store.AddCategory(ctx, budgetID, args[0])
			if err != nil {
				return err
			}
			cli.Success("added category %q (%s)", category.Name, category.ID)
			return nil
		},
	}

	var parentCategoryID string
	addSubCmd := &cobra.Command{
		Use:   "add-sub <name>",
		Short: "Add a sub-category under a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			sub, err := store.AddSubCategory(ctx, budgetID, parentCategoryID, args[0])
			if err != nil {
				return err
			}
			if sub == nil {
				cli.Error("category %s not found in budget %s", parentCategoryID, budgetID)
				return nil
			}
			cli.Success("added sub-category %q (%s)", sub.Name, sub.ID)
			return nil
		},
	}
	addSubCmd.Flags().StringVar(&parentCategoryID, "category", "", "parent category id (required)")
	_ = addSubCmd.MarkFlagRequired("category")

	deleteCmd := &cobra.Command{
		Use:   "delete <category-id>",
		Short: "Delete a category and its embedded items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.DeleteCategory(ctx, budgetID, args[0]); err != nil {
				return err
			}
			cli.Success("deleted category %s", args[0])
			return nil
		},
	}

	cmd.AddCommand(addCmd, addSubCmd, deleteCmd)
	return cmd
}
