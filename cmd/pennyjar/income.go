package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pennyjar/pennyjar/internal/cli"
	"github.com/pennyjar/pennyjar/internal/model"
	"github.com/pennyjar/pennyjar/internal/storage"
)

func incomeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "income",
		Short: "Track income sources and entries",
	}

	cmd.AddCommand(incomeSourcesCmd())
	cmd.AddCommand(incomeAddCmd())
	cmd.AddCommand(incomeListCmd())
	cmd.AddCommand(incomeUpdateCmd())
	cmd.AddCommand(incomeDeleteCmd())
	cmd.AddCommand(incomeTotalCmd())

	return cmd
}

func incomeSourcesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sources",
		Short: "Manage income sources",
	}

	var scope, color string
	addCmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Register an income source",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			source, err := store.AddIncomeSource(ctx, scope, args[0], color)
			if err != nil {
				return err
			}
			cli.Success("added income source %q (%s)", source.Name, source.ID)
			return nil
		},
	}
	addCmd.Flags().StringVar(&scope, "scope", storage.GlobalIncomeScope, "budget id, \"global\", or \"global_income\"")
	addCmd.Flags().StringVar(&color, "color", "", "display color")

	var deleteScope string
	deleteCmd := &cobra.Command{
		Use:   "delete <source-id>",
		Short: "Delete a source and all of its income entries",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.DeleteIncomeSource(ctx, deleteScope, args[0]); err != nil {
				return err
			}
			cli.Success("deleted income source %s and its entries", args[0])
			return nil
		},
	}
	deleteCmd.Flags().StringVar(&deleteScope, "scope", storage.GlobalIncomeScope, "budget id, \"global\", or \"global_income\"")

	cmd.AddCommand(addCmd, deleteCmd)
	return cmd
}

func incomeAddCmd() *cobra.Command {
	var (
		scope      string
		sourceID   string
		amountFlag string
		dateFlag   string
		notesFlag  string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record an income entry",
		RunE: func(cmd *cobra.Command, _ []string) error {
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

			input := model.IncomeItem{
				SourceID: sourceID,
				Amount:   amount,
				Notes:    notesFlag,
			}
			if date != nil {
				input.Date = *date
			}

			item, err := store.AddIncome(ctx, scope, input)
			if err != nil {
				return err
			}
			cli.Success("recorded income %s from %s (%s)", model.FormatUSD(item.Amount), item.SourceName, item.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&scope, "scope", storage.GlobalIncomeScope, "budget id, \"global\", or \"global_income\"")
	cmd.Flags().StringVar(&sourceID, "source", "", "income source id (required)")
	cmd.Flags().StringVar(&amountFlag, "amount", "", "income amount (required)")
	cmd.Flags().StringVar(&dateFlag, "date", "", "income date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&notesFlag, "notes", "", "free-form notes")
	_ = cmd.MarkFlagRequired("source")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

func incomeListCmd() *cobra.Command {
	var scope string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List income entries (all scopes unless --scope is given)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			store, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if scope != "" {
				data := store.GetIncomeData(ctx, scope)
				cli.Title(fmt.Sprintf("Income (%s)", scope))
				for _, item := range data.Items {
					fmt.Printf("%s  %s  %s\n", item.Date.Format("2006-01-02"), model.FormatUSD(item.Amount), item.SourceName)
				}
				return nil
			}

			all, err := store.AllIncome(ctx)
			if err != nil {
				return err
			}
			cli.Title("Income (all scopes)")
			for _, item := range all {
				fmt.Printf("%s  %s  %s  %s\n", item.Date.Format("2006-01-02"), model.FormatUSD(item.Amount), item.SourceName, cli.SubtleStyle.Render(item.Scope))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&scope, "scope", "", "budget id, \"global\", or \"global_income\"")
	return cmd
}

func incomeUpdateCmd() *cobra.Command {
	var (
		scope      string
		amountFlag string
		notesFlag  string
	)

	cmd := &cobra.Command{
		Use:   "update <income-id>",
		Short: "Update an income entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var patch storage.IncomePatch
			if amountFlag != "" {
				amount, err := model.ParseAmount(amountFlag)
				if err != nil {
					return err
				}
				patch.Amount = &amount
			}
			if cmd.Flags().Changed("notes") {
				patch.Notes = &notesFlag
			}

			store, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			item, err := store.UpdateIncome(ctx, scope, args[0], patch)
			if err != nil {
				return err
			}
			if item == nil {
				cli.Error("income entry %s not found in scope %s", args[0], scope)
				return nil
			}
			cli.Success("updated income entry %s", item.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&scope, "scope", storage.GlobalIncomeScope, "budget id, \"global\", or \"global_income\"")
	cmd.Flags().StringVar(&amountFlag, "amount", "", "new amount")
	cmd.Flags().StringVar(&notesFlag, "notes", "", "new notes")
	return cmd
}

func incomeDeleteCmd() *cobra.Command {
	var scope string

	cmd := &cobra.Command{
		Use:   "delete <income-id>",
		Short: "Delete an income entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.DeleteIncome(ctx, scope, args[0]); err != nil {
				return err
			}
			cli.Success("deleted income entry %s", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&scope, "scope", storage.GlobalIncomeScope, "budget id, \"global\", or \"global_income\"")
	return cmd
}

func incomeTotalCmd() *cobra.Command {
	var (
		scope    string
		fromFlag string
		toFlag   string
	)

	cmd := &cobra.Command{
		Use:   "total",
		Short: "Sum income for a scope, optionally within a date range",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			from, err := parseDate(fromFlag)
			if err != nil {
				return err
			}
			to, err := parseDate(toFlag)
			if err != nil {
				return err
			}

			store, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			total, err := store.TotalIncome(ctx, scope, from, to)
			if err != nil {
				return err
			}
			fmt.Printf("total income (%s): %s\n", scope, model.FormatUSD(total))
			return nil
		},
	}

	cmd.Flags().StringVar(&scope, "scope", storage.GlobalIncomeScope, "budget id, \"global\", or \"global_income\"")
	cmd.Flags().StringVar(&fromFlag, "from", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&toFlag, "to", "", "end date (YYYY-MM-DD)")
	return cmd
}
