package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pennyjar/pennyjar/internal/model"
)

func TestBudgetLifecycle(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	budget, err := s.CreateBudget(ctx, "Household", amt(t, "1000"))
	require.NoError(t, err)
	require.NotEmpty(t, budget.ID)
	assert.Equal(t, "Household", budget.Name)

	t.Run("registry lists the budget", func(t *testing.T) {
		budgets := s.GetBudgets(ctx)
		require.Len(t, budgets, 1)
		assert.Equal(t, budget.ID, budgets[0].ID)
	})

	t.Run("lookup by id", func(t *testing.T) {
		got, err := s.GetBudget(ctx, budget.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "Household", got.Name)
	})

	t.Run("lookup of absent id returns nil, not an error", func(t *testing.T) {
		got, err := s.GetBudget(ctx, "nope")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("data blob seeded with the amount", func(t *testing.T) {
		data := s.GetBudgetData(ctx, budget.ID)
		assert.True(t, data.Amount.Equal(amt(t, "1000")))
		assert.Empty(t, data.Categories)
	})
}

func TestBudgetSpendingSummary(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	budget, err := s.CreateBudget(ctx, "Monthly", amt(t, "1000"))
	require.NoError(t, err)

	category, err := s.AddCategory(ctx, budget.ID, "Groceries")
	require.NoError(t, err)

	sub, err := s.AddSubCategory(ctx, budget.ID, category.ID, "Snacks")
	require.NoError(t, err)
	require.NotNil(t, sub)

	_, err = s.AddExpense(ctx, budget.ID, category.ID, "", model.ExpenseItem{
		Name: "weekly shop", Amount: amt(t, "300"),
	})
	require.NoError(t, err)

	_, err = s.AddExpense(ctx, budget.ID, category.ID, sub.ID, model.ExpenseItem{
		Name: "chips", Amount: amt(t, "150"),
	})
	require.NoError(t, err)

	summary, err := s.Summary(ctx, budget.ID)
	require.NoError(t, err)
	require.NotNil(t, summary)
	assert.True(t, summary.TotalSpent.Equal(amt(t, "450")), "spent %s", summary.TotalSpent)
	assert.True(t, summary.Remaining.Equal(amt(t, "550")), "remaining %s", summary.Remaining)
}

func TestExpenseOperations(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	budget, err := s.CreateBudget(ctx, "Monthly", amt(t, "500"))
	require.NoError(t, err)
	category, err := s.AddCategory(ctx, budget.ID, "Transport")
	require.NoError(t, err)

	item, err := s.AddExpense(ctx, budget.ID, category.ID, "", model.ExpenseItem{
		Name: "bus pass", Amount: amt(t, "60"),
	})
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.NotEmpty(t, item.ID)
	assert.False(t, item.Date.IsZero(), "date defaults to now")

	t.Run("add into missing category returns nil", func(t *testing.T) {
		got, err := s.AddExpense(ctx, budget.ID, "no-such-category", "", model.ExpenseItem{
			Name: "x", Amount: amt(t, "1"),
		})
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("partial update only touches patched fields", func(t *testing.T) {
		newAmount := amt(t, "75")
		updated, err := s.UpdateExpense(ctx, budget.ID, item.ID, ExpensePatch{Amount: &newAmount})
		require.NoError(t, err)
		require.NotNil(t, updated)
		assert.True(t, updated.Amount.Equal(newAmount))
		assert.Equal(t, "bus pass", updated.Name, "unpatched field must survive")
	})

	t.Run("update of absent expense returns nil", func(t *testing.T) {
		newAmount := amt(t, "10")
		updated, err := s.UpdateExpense(ctx, budget.ID, "ghost", ExpensePatch{Amount: &newAmount})
		require.NoError(t, err)
		assert.Nil(t, updated)
	})

	t.Run("delete removes the item", func(t *testing.T) {
		require.NoError(t, s.DeleteExpense(ctx, budget.ID, item.ID))

		summary, err := s.Summary(ctx, budget.ID)
		require.NoError(t, err)
		assert.True(t, summary.TotalSpent.IsZero())
	})

	t.Run("delete of absent expense still succeeds", func(t *testing.T) {
		require.NoError(t, s.DeleteExpense(ctx, budget.ID, "ghost"))
	})
}

func TestDeleteCategoryDropsItems(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	budget, err := s.CreateBudget(ctx, "Monthly", amt(t, "500"))
	require.NoError(t, err)
	category, err := s.AddCategory(ctx, budget.ID, "Dining")
	require.NoError(t, err)
	_, err = s.AddExpense(ctx, budget.ID, category.ID, "", model.ExpenseItem{
		Name: "dinner", Amount: amt(t, "40"),
	})
	require.NoError(t, err)

	require.NoError(t, s.DeleteCategory(ctx, budget.ID, category.ID))

	data := s.GetBudgetData(ctx, budget.ID)
	assert.Empty(t, data.Categories)
	assert.True(t, data.TotalSpent().IsZero())
}

func TestDebtAssociations(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	budget, err := s.CreateBudget(ctx, "Monthly", amt(t, "500"))
	require.NoError(t, err)

	debt, err := s.AddDebt(ctx, GlobalScope, model.DebtItem{Name: "car loan", Amount: amt(t, "9000")})
	require.NoError(t, err)

	t.Run("association requires an existing global debt", func(t *testing.T) {
		err := s.AssociateDebt(ctx, budget.ID, "no-such-debt")
		require.ErrorIs(t, err, ErrDebtNotFound)
	})

	t.Run("associate then read back", func(t *testing.T) {
		require.NoError(t, s.AssociateDebt(ctx, budget.ID, debt.ID))

		got, err := s.GetBudget(ctx, budget.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{debt.ID}, got.AssociatedDebtIDs)
	})

	t.Run("associating twice is idempotent", func(t *testing.T) {
		require.NoError(t, s.AssociateDebt(ctx, budget.ID, debt.ID))

		got, err := s.GetBudget(ctx, budget.ID)
		require.NoError(t, err)
		assert.Len(t, got.AssociatedDebtIDs, 1)
	})

	t.Run("deleting the global debt scrubs the association", func(t *testing.T) {
		require.NoError(t, s.DeleteDebt(ctx, GlobalScope, debt.ID))

		got, err := s.GetBudget(ctx, budget.ID)
		require.NoError(t, err)
		assert.Empty(t, got.AssociatedDebtIDs)
	})

	t.Run("dissociate from unknown budget errors", func(t *testing.T) {
		err := s.DissociateDebt(ctx, "ghost", debt.ID)
		require.ErrorIs(t, err, ErrBudgetNotFound)
	})
}

func TestDeleteBudgetCascades(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	budget, err := s.CreateBudget(ctx, "Doomed", amt(t, "500"))
	require.NoError(t, err)

	_, err = s.AddDebt(ctx, budget.ID, model.DebtItem{Name: "scoped debt", Amount: amt(t, "100")})
	require.NoError(t, err)
	_, err = s.AddIncomeSource(ctx, budget.ID, "side gig", "")
	require.NoError(t, err)
	_, err = s.AddSavingsGoal(ctx, model.SavingsGoal{
		Name: "vacation", TargetAmount: amt(t, "2000"), BudgetID: budget.ID,
	})
	require.NoError(t, err)
	require.NoError(t, s.SetNotificationConfig(ctx, budget.ID, model.NotificationConfig{
		Enabled: true, WarningPercent: 80,
	}))

	keeper, err := s.AddSavingsGoal(ctx, model.SavingsGoal{Name: "global goal", TargetAmount: amt(t, "100")})
	require.NoError(t, err)

	require.NoError(t, s.DeleteBudget(ctx, budget.ID))

	assert.Empty(t, s.GetBudgets(ctx))
	assert.Empty(t, s.GetDebtData(ctx, budget.ID).Items)
	assert.Empty(t, s.GetIncomeData(ctx, budget.ID).Sources)
	assert.Nil(t, s.GetNotificationConfig(ctx, budget.ID))

	goals := s.GetSavingsGoals(ctx, "")
	require.Len(t, goals, 1, "goals of other budgets must survive")
	assert.Equal(t, keeper.ID, goals[0].ID)
}
