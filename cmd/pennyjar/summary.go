package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pennyjar/pennyjar/internal/cli"
	"github.com/pennyjar/pennyjar/internal/model"
	"github.com/pennyjar/pennyjar/internal/storage"
)

func summaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show budgets, global debt and income totals, and savings progress",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			store, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			cli.Title("Budgets")
			for _, budget := range store.GetBudgets(ctx) {
				s, err := store.Summary(ctx, budget.ID)
				if err != nil {
					return err
				}
				if s == nil {
					continue
				}
				remaining := cli.SuccessStyle.Render(model.FormatUSD(s.Remaining))
				if s.Remaining.IsNegative() {
					remaining = cli.ErrorStyle.Render(model.FormatUSD(s.Remaining))
				}
				fmt.Printf("%s  spent %s of %s, %s remaining\n",
					cli.BoldStyle.Render(s.Name),
					model.FormatUSD(s.TotalSpent),
					model.FormatUSD(s.Amount),
					remaining)
			}

			debtTotal, err := store.TotalDebt(ctx, storage.GlobalScope, nil, nil)
			if err != nil {
				return err
			}
			incomeTotal, err := store.TotalIncome(ctx, storage.GlobalIncomeScope, nil, nil)
			if err != nil {
				return err
			}
			fmt.Printf("\nglobal debt:   %s\n", model.FormatUSD(debtTotal))
			fmt.Printf("global income: %s\n", model.FormatUSD(incomeTotal))

			savings := store.SavingsSummary(ctx, "")
			fmt.Printf("savings:       %s of %s (%d goals completed, %d active)\n",
				model.FormatUSD(savings.CurrentTotal),
				model.FormatUSD(savings.TargetTotal),
				savings.Completed,
				savings.Active)

			alerts, err := store.CheckThresholds(ctx)
			if err != nil {
				return err
			}
			for _, a := range alerts {
				cli.Warning("%s is at %s%% of its budget", a.Name, a.SpentPercent.StringFixed(1))
			}
			return nil
		},
	}
}
