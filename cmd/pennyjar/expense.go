package main

import (
	"github.com/spf13/cobra"

	"github.com/pennyjar/pennyjar/internal/cli"
	"github.com/pennyjar/pennyjar/internal/model"
	"github.com/pennyjar/pennyjar/internal/storage"
)

func expenseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "expense",
		Short: "Record and manage expenses",
	}

	var budgetID string
	cmd.PersistentFlags().StringVar(&budgetID, "budget", "", "budget id (required)")
	_ = cmd.MarkPersistentFlagRequired("budget")

	var (
		categoryID    string
		subCategoryID string
		amountFlag    string
		dateFlag      string
		notesFlag     string
		tagsFlag      []string
	)
	addCmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add an expense to a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			amount, err := model.ParseAmount(amountFlag)
			if err != nil {
				return err
			}
			date, err := parseDate(dateFlag)
			if err != nil {
				return err
			}

			store, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			input := model.ExpenseItem{
				Name:   args[0],
				Amount: amount,
				Notes:  notesFlag,
				Tags:   tagsFlag,
			}
			if date != nil {
				input.Date = *date
			}

			item, err := store.AddExpense(ctx, budgetID, categoryID, subCategoryID, input)
			if err != nil {
				return err
			}
			if item == nil {
				cli.Error("category %s not found in budget %s", categoryID, budgetID)
				return nil
			}
			cli.Success("recorded %s for %q (%s)", model.FormatUSD(item.Amount), item.Name, item.ID)
			return nil
		},
	}
	addCmd.Flags().StringVar(&categoryID, "category", "", "category id (required)")
	addCmd.Flags().StringVar(&subCategoryID, "subcategory", "", "sub-category id")
	addCmd.Flags().StringVar(&amountFlag, "amount", "", "expense amount (required)")
	addCmd.Flags().StringVar(&dateFlag, "date", "", "expense date (YYYY-MM-DD, default today)")
	addCmd.Flags().StringVar(&notesFlag, "notes", "", "free-form notes")
	addCmd.Flags().StringSliceVar(&tagsFlag, "tag", nil, "tags (repeatable)")
	_ = addCmd.MarkFlagRequired("category")
	_ = addCmd.MarkFlagRequired("amount")

	var (
		updateAmount string
		updateNotes  string
	)
	updateCmd := &cobra.Command{
		Use:   "update <expense-id>",
		Short: "Update an expense",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var patch storage.ExpensePatch
			if updateAmount != "" {
				amount, err := model.ParseAmount(updateAmount)
				if err != nil {
					return err
				}
				patch.Amount = &amount
			}
			if cmd.Flags().Changed("notes") {
				patch.Notes = &updateNotes
			}

			store, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			item, err := store.UpdateExpense(ctx, budgetID, args[0], patch)
			if err != nil {
				return err
			}
			if item == nil {
				cli.Error("expense %s not found in budget %s", args[0], budgetID)
				return nil
			}
			cli.Success("updated expense %q", item.Name)
			return nil
		},
	}
	updateCmd.Flags().StringVar(&updateAmount, "amount", "", "new amount")
	updateCmd.Flags().StringVar(&updateNotes, "notes", "", "new notes")

	deleteCmd := &cobra.Command{
		Use:   "delete <expense-id>",
		Short: "Delete an expense",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.DeleteExpense(ctx, budgetID, args[0]); err != nil {
				return err
			}
			cli.Success("deleted expense %s", args[0])
			return nil
		},
	}

	cmd.AddCommand(addCmd, updateCmd, deleteCmd)
	return cmd
}
