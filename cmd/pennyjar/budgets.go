package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pennyjar/pennyjar/internal/cli"
	"github.com/pennyjar/pennyjar/internal/model"
)

func budgetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "budgets",
		Short: "Manage budgets",
	}

	cmd.AddCommand(budgetsListCmd())
	cmd.AddCommand(budgetsAddCmd())
	cmd.AddCommand(budgetsShowCmd())
	cmd.AddCommand(budgetsDeleteCmd())
	cmd.AddCommand(budgetsAssociateDebtCmd())
	cmd.AddCommand(budgetsDissociateDebtCmd())

	return cmd
}

func budgetsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List budgets with spent and remaining amounts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			store, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			budgets := store.GetBudgets(ctx)
			if len(budgets) == 0 {
				cli.Subtle("No budgets yet. Create one with: pennyjar budgets add <name> --amount <amount>")
				return nil
			}

			cli.Title("Budgets")
			for _, b := range budgets {
				summary, err := store.Summary(ctx, b.ID)
				if err != nil {
					return err
				}
				fmt.Printf("%s  planned %s  spent %s  remaining %s\n",
					cli.BoldStyle.Render(b.Name),
					model.FormatUSD(summary.Amount),
					model.FormatUSD(summary.TotalSpent),
					model.FormatUSD(summary.Remaining))
				cli.Subtle("  id: %s", b.ID)
			}
			return nil
		},
	}
}

func budgetsAddCmd() *cobra.Command {
	var amountFlag string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a new budget",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			amount, err := model.ParseAmount(amountFlag)
			if err != nil {
				return err
			}

			store, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			budget, err := store.CreateBudget(ctx, args[0], amount)
			if err != nil {
				return err
			}
			cli.Success("created budget %q (%s)", budget.Name, budget.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&amountFlag, "amount", "", "planned amount (required)")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

func budgetsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <budget-id>",
		Short: "Show a budget's category tree and expenses",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			budget, err := store.GetBudget(ctx, args[0])
			if err != nil {
				return err
			}
			if budget == nil {
				cli.Error("budget %s not found", args[0])
				return nil
			}

			summary, err := store.Summary(ctx, budget.ID)
			if err != nil {
				return err
			}

			cli.Title(budget.Name)
			fmt.Printf("planned %s  spent %s  remaining %s\n",
				model.FormatUSD(summary.Amount),
				model.FormatUSD(summary.TotalSpent),
				model.FormatUSD(summary.Remaining))

			data := store.GetBudgetData(ctx, budget.ID)
			for _, cat := range data.Categories {
				fmt.Printf("\n%s\n", cli.BoldStyle.Render(cat.Name))
				cli.Subtle("  id: %s", cat.ID)
				for _, item := range cat.Items {
					fmt.Printf("  %s  %s  %s\n", item.Date.Format("2006-01-02"), model.FormatUSD(item.Amount), item.Name)
				}
				for _, sub := range cat.SubCategories {
					fmt.Printf("  %s\n", sub.Name)
					for _, item := range sub.Items {
						fmt.Printf("    %s  %s  %s\n", item.Date.Format("2006-01-02"), model.FormatUSD(item.Amount), item.Name)
					}
				}
			}

			if len(budget.AssociatedDebtIDs) > 0 {
				fmt.Println()
				cli.Subtle("associated debts: %v", budget.AssociatedDebtIDs)
			}
			return nil
		},
	}
}

func budgetsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <budget-id>",
		Short: "Delete a budget and everything it owns",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.DeleteBudget(ctx, args[0]); err != nil {
				return err
			}
			cli.Success("deleted budget %s", args[0])
			return nil
		},
	}
}

func budgetsAssociateDebtCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "associate-debt <budget-id> <debt-id>",
		Short: "Link a global debt to a budget",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.AssociateDebt(ctx, args[0], args[1]); err != nil {
				return err
			}
			cli.Success("associated debt %s with budget %s", args[1], args[0])
			return nil
		},
	}
}

func budgetsDissociateDebtCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dissociate-debt <budget-id> <debt-id>",
		Short: "Remove a debt link from a budget",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.DissociateDebt(ctx, args[0], args[1]); err != nil {
				return err
			}
			cli.Success("dissociated debt %s from budget %s", args[1], args[0])
			return nil
		},
	}
}
