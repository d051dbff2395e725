package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pennyjar/pennyjar/internal/cli"
	"github.com/pennyjar/pennyjar/internal/model"
	"github.com/pennyjar/pennyjar/internal/storage"
)

func debtsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "debts",
		Short: "Track debts per budget or globally",
	}

	cmd.AddCommand(debtsListCmd())
	cmd.AddCommand(debtsAddCmd())
	cmd.AddCommand(debtsEditCmd())
	cmd.AddCommand(debtsDeleteCmd())
	cmd.AddCommand(debtsTotalCmd())

	return cmd
}

func debtsListCmd() *cobra.Command {
	var scope string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List debts (all scopes unless --scope is given)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			store, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if scope != "" {
				data := store.GetDebtData(ctx, scope)
				cli.Title(fmt.Sprintf("Debts (%s)", scope))
				for _, item := range data.Items {
					printDebt(item)
				}
				return nil
			}

			all, err := store.AllDebts(ctx)
			if err != nil {
				return err
			}
			cli.Title("Debts (all scopes)")
			for _, item := range all {
				cli.Subtle("scope: %s", item.Scope)
				printDebt(item.DebtItem)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&scope, "scope", "", "budget id or \"global\"")
	return cmd
}

func printDebt(item model.DebtItem) {
	fmt.Printf("%s  %s  %s\n", cli.BoldStyle.Render(item.Name), model.FormatUSD(item.Amount), item.Type)
	cli.Subtle("  id: %s", item.ID)
}

func debtsAddCmd() *cobra.Command {
	var (
		scope       string
		amountFlag  string
		typeFlag    string
		rateFlag    string
		minPayFlag  string
		notesFlag   string
		paymentFlag string
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a debt to a scope",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			amount, err := model.ParseAmount(amountFlag)
			if err != nil {
				return err
			}

			input := model.DebtItem{
				Name:   args[0],
				Amount: amount,
				Type:   model.DebtType(typeFlag),
				Notes:  notesFlag,
			}
			if rateFlag != "" {
				rate, err := model.ParseAmount(rateFlag)
				if err != nil {
					return err
				}
				input.InterestRate = rate
			}
			if minPayFlag != "" {
				minPay, err := model.ParseAmount(minPayFlag)
				if err != nil {
					return err
				}
				input.MinimumPayment = minPay
			}
			if paymentFlag != "" {
				date, err := parseDate(paymentFlag)
				if err != nil {
					return err
				}
				input.PaymentDate = date
			}

			store, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			item, err := store.AddDebt(ctx, scope, input)
			if err != nil {
				return err
			}
			cli.Success("added debt %q (%s) under %s", item.Name, item.ID, scope)
			return nil
		},
	}

	cmd.Flags().StringVar(&scope, "scope", storage.GlobalScope, "budget id or \"global\"")
	cmd.Flags().StringVar(&amountFlag, "amount", "", "debt amount (required)")
	cmd.Flags().StringVar(&typeFlag, "type", string(model.DebtTypeOther), "loan, credit_card, mortgage, personal, or other")
	cmd.Flags().StringVar(&rateFlag, "interest", "", "interest rate percent")
	cmd.Flags().StringVar(&minPayFlag, "min-payment", "", "minimum payment")
	cmd.Flags().StringVar(&notesFlag, "notes", "", "free-form notes")
	cmd.Flags().StringVar(&paymentFlag, "payment-date", "", "payment date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

func debtsEditCmd() *cobra.Command {
	var (
		scope      string
		amountFlag string
		notesFlag  string
	)

	cmd := &cobra.Command{
		Use:   "edit <debt-id>",
		Short: "Update a debt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var patch storage.DebtPatch
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

			item, err := store.UpdateDebt(ctx, scope, args[0], patch)
			if err != nil {
				return err
			}
			if item == nil {
				cli.Error("debt %s not found in scope %s", args[0], scope)
				return nil
			}
			cli.Success("updated debt %q", item.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&scope, "scope", storage.GlobalScope, "budget id or \"global\"")
	cmd.Flags().StringVar(&amountFlag, "amount", "", "new amount")
	cmd.Flags().StringVar(&notesFlag, "notes", "", "new notes")
	return cmd
}

func debtsDeleteCmd() *cobra.Command {
	var scope string

	cmd := &cobra.Command{
		Use:   "delete <debt-id>",
		Short: "Delete a debt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.DeleteDebt(ctx, scope, args[0]); err != nil {
				return err
			}
			cli.Success("deleted debt %s from %s", args[0], scope)
			return nil
		},
	}

	cmd.Flags().StringVar(&scope, "scope", storage.GlobalScope, "budget id or \"global\"")
	return cmd
}

func debtsTotalCmd() *cobra.Command {
	var (
		scope    string
		fromFlag string
		toFlag   string
	)

	cmd := &cobra.Command{
		Use:   "total",
		Short: "Sum debts for a scope, optionally within a date range",
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

			total, err := store.TotalDebt(ctx, scope, from, to)
			if err != nil {
				return err
			}
			fmt.Printf("total debt (%s): %s\n", scope, model.FormatUSD(total))
			return nil
		},
	}

	cmd.Flags().StringVar(&scope, "scope", storage.GlobalScope, "budget id or \"global\"")
	cmd.Flags().StringVar(&fromFlag, "from", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&toFlag, "to", "", "end date (YYYY-MM-DD)")
	return cmd
}
