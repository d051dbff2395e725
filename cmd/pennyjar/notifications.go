package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pennyjar/pennyjar/internal/cli"
	"github.com/pennyjar/pennyjar/internal/model"
)

func notificationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notifications",
		Short: "Configure and check budget spending alerts",
	}

	cmd.AddCommand(notificationsSetCmd())
	cmd.AddCommand(notificationsUnsetCmd())
	cmd.AddCommand(notificationsCheckCmd())

	return cmd
}

func notificationsSetCmd() *cobra.Command {
	var (
		percent int
		disable bool
	)

	cmd := &cobra.Command{
		Use:   "set <budget-id>",
		Short: "Set a budget's warning threshold",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			cfg := model.NotificationConfig{
				Enabled:        !disable,
				WarningPercent: percent,
			}
			if err := store.SetNotificationConfig(ctx, args[0], cfg); err != nil {
				return err
			}
			if disable {
				cli.Success("alerts disabled for budget %s", args[0])
			} else {
				cli.Success("alert set at %d%% for budget %s", percent, args[0])
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&percent, "percent", 80, "warning threshold as percent of the budget amount (1-100)")
	cmd.Flags().BoolVar(&disable, "disable", false, "keep the config but stop alerting")
	return cmd
}

func notificationsUnsetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unset <budget-id>",
		Short: "Remove a budget's alert config",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.DeleteNotificationConfig(ctx, args[0]); err != nil {
				return err
			}
			cli.Success("removed alert config for budget %s", args[0])
			return nil
		},
	}
}

func notificationsCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Report budgets over their warning threshold",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			store, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			alerts, err := store.CheckThresholds(ctx)
			if err != nil {
				return err
			}
			if len(alerts) == 0 {
				cli.Success("all budgets under their warning thresholds")
				return nil
			}
			for _, a := range alerts {
				cli.Warning("%s: spent %s%% of budget (threshold %d%%)",
					a.Name, a.SpentPercent.StringFixed(1), a.WarningPercent)
				fmt.Println(cli.SubtleStyle.Render("  id: " + a.BudgetID))
			}
			return nil
		},
	}
}
