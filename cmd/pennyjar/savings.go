package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pennyjar/pennyjar/internal/cli"
	"github.com/pennyjar/pennyjar/internal/model"
	"github.com/pennyjar/pennyjar/internal/storage"
)

func savingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "savings",
		Short: "Track savings goals",
	}

	cmd.AddCommand(savingsListCmd())
	cmd.AddCommand(savingsAddCmd())
	cmd.AddCommand(savingsUpdateCmd())
	cmd.AddCommand(savingsContributeCmd())
	cmd.AddCommand(savingsDeleteCmd())

	return cmd
}

func savingsListCmd() *cobra.Command {
	var budgetID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List savings goals",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			store, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			goals := store.GetSavingsGoals(ctx, budgetID)
			summary := store.SavingsSummary(ctx, budgetID)

			cli.Title("Savings goals")
			for _, g := range goals {
				status := cli.WarningStyle.Render("in progress")
				if g.IsCompleted {
					status = cli.SuccessStyle.Render("completed")
				}
				fmt.Printf("%s  %s / %s  %s\n",
					cli.BoldStyle.Render(g.Name),
					model.FormatUSD(g.CurrentAmount),
					model.FormatUSD(g.TargetAmount),
					status)
				cli.Subtle("  id: %s  target date: %s", g.ID, g.TargetDate.Format("2006-01-02"))
			}
			fmt.Printf("\nsaved %s of %s across %d goals (%d completed)\n",
				model.FormatUSD(summary.CurrentTotal),
				model.FormatUSD(summary.TargetTotal),
				summary.Active+summary.Completed,
				summary.Completed)
			return nil
		},
	}

	cmd.Flags().StringVar(&budgetID, "budget", "", "filter to one budget")
	return cmd
}

func savingsAddCmd() *cobra.Command {
	var (
		targetFlag string
		dateFlag   string
		budgetID   string
		descFlag   string
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a savings goal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			target, err := model.ParseAmount(targetFlag)
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

			input := model.SavingsGoal{
				Name:         args[0],
				TargetAmount: target,
				Description:  descFlag,
				BudgetID:     budgetID,
			}
			if date != nil {
				input.TargetDate = *date
			}

			goal, err := store.AddSavingsGoal(ctx, input)
			if err != nil {
				return err
			}
			cli.Success("created savings goal %q (%s)", goal.Name, goal.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&targetFlag, "target", "", "target amount (required)")
	cmd.Flags().StringVar(&dateFlag, "date", "", "target date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&budgetID, "budget", "", "owning budget id")
	cmd.Flags().StringVar(&descFlag, "description", "", "goal description")
	_ = cmd.MarkFlagRequired("target")
	return cmd
}

func savingsUpdateCmd() *cobra.Command {
	var (
		targetFlag  string
		currentFlag string
		nameFlag    string
	)

	cmd := &cobra.Command{
		Use:   "update <goal-id>",
		Short: "Update a savings goal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var patch storage.SavingsGoalPatch
			if targetFlag != "" {
				target, err := model.ParseAmount(targetFlag)
				if err != nil {
					return err
				}
				patch.TargetAmount = &target
			}
			if currentFlag != "" {
				current, err := model.ParseAmount(currentFlag)
				if err != nil {
					return err
				}
				patch.CurrentAmount = &current
			}
			if nameFlag != "" {
				patch.Name = &nameFlag
			}

			store, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			goal, err := store.UpdateSavingsGoal(ctx, args[0], patch)
			if err != nil {
				return err
			}
			if goal == nil {
				cli.Error("savings goal %s not found", args[0])
				return nil
			}
			cli.Success("updated goal %q (completed: %v)", goal.Name, goal.IsCompleted)
			return nil
		},
	}

	cmd.Flags().StringVar(&targetFlag, "target", "", "new target amount")
	cmd.Flags().StringVar(&currentFlag, "current", "", "new current amount")
	cmd.Flags().StringVar(&nameFlag, "name", "", "new name")
	return cmd
}

func savingsContributeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "contribute <goal-id> <amount>",
		Short: "Add a contribution to a goal",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			amount, err := model.ParseAmount(args[1])
			if err != nil {
				return err
			}

			store, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			goal, err := store.AddToSavingsGoal(ctx, args[0], amount)
			if err != nil {
				return err
			}
			if goal == nil {
				cli.Error("savings goal %s not found", args[0])
				return nil
			}
			if goal.IsCompleted {
				cli.Success("goal %q reached! %s saved", goal.Name, model.FormatUSD(goal.CurrentAmount))
			} else {
				cli.Success("%s saved toward %q (%s to go)", model.FormatUSD(goal.CurrentAmount), goal.Name,
					model.FormatUSD(goal.TargetAmount.Sub(goal.CurrentAmount)))
			}
			return nil
		},
	}
}

func savingsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <goal-id>",
		Short: "Delete a savings goal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.DeleteSavingsGoal(ctx, args[0]); err != nil {
				return err
			}
			cli.Success("deleted savings goal %s", args[0])
			return nil
		},
	}
}
