package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pennyjar/pennyjar/internal/model"
)

func TestAddDebt(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	item, err := s.AddDebt(ctx, GlobalScope, model.DebtItem{
		Name:   "student loan",
		Amount: amt(t, "12000"),
		Type:   model.DebtTypeLoan,
	})
	require.NoError(t, err)
	require.NotEmpty(t, item.ID)
	assert.False(t, item.CreatedAt.IsZero())
	assert.Equal(t, item.CreatedAt, item.UpdatedAt)

	t.Run("round-trips through the scope blob", func(t *testing.T) {
		data := s.GetDebtData(ctx, GlobalScope)
		require.Len(t, data.Items, 1)
		assert.Equal(t, item.ID, data.Items[0].ID)
		assert.True(t, data.Items[0].Amount.Equal(amt(t, "12000")))
	})

	t.Run("each add gets a fresh id", func(t *testing.T) {
		second, err := s.AddDebt(ctx, GlobalScope, model.DebtItem{
			Name: "student loan", Amount: amt(t, "12000"), Type: model.DebtTypeLoan,
		})
		require.NoError(t, err)
		assert.NotEqual(t, item.ID, second.ID)
		assert.Len(t, s.GetDebtData(ctx, GlobalScope).Items, 2)
	})

	t.Run("empty type defaults to other", func(t *testing.T) {
		d, err := s.AddDebt(ctx, "some-budget", model.DebtItem{Name: "iou", Amount: amt(t, "50")})
		require.NoError(t, err)
		assert.Equal(t, model.DebtTypeOther, d.Type)
	})

	t.Run("scopes are isolated", func(t *testing.T) {
		assert.Len(t, s.GetDebtData(ctx, "some-budget").Items, 1)
		assert.Len(t, s.GetDebtData(ctx, GlobalScope).Items, 2)
	})
}

func TestUpdateDebt(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	item, err := s.AddDebt(ctx, GlobalScope, model.DebtItem{Name: "card", Amount: amt(t, "800")})
	require.NoError(t, err)

	t.Run("patch merges into the stored item", func(t *testing.T) {
		newAmount := amt(t, "650")
		notes := "paid some off"
		updated, err := s.UpdateDebt(ctx, GlobalScope, item.ID, DebtPatch{
			Amount: &newAmount,
			Notes:  &notes,
		})
		require.NoError(t, err)
		require.NotNil(t, updated)
		assert.True(t, updated.Amount.Equal(newAmount))
		assert.Equal(t, "paid some off", updated.Notes)
		assert.Equal(t, "card", updated.Name, "unpatched field must survive")
		assert.True(t, updated.UpdatedAt.After(updated.CreatedAt) || updated.UpdatedAt.Equal(updated.CreatedAt))
	})

	t.Run("absent id returns nil, not an error", func(t *testing.T) {
		updated, err := s.UpdateDebt(ctx, GlobalScope, "ghost", DebtPatch{})
		require.NoError(t, err)
		assert.Nil(t, updated)
	})

	t.Run("non-positive patched amount rejected", func(t *testing.T) {
		bad := amt(t, "5").Neg()
		_, err := s.UpdateDebt(ctx, GlobalScope, item.ID, DebtPatch{Amount: &bad})
		require.ErrorIs(t, err, ErrInvalidAmount)
	})
}

func TestDeleteDebt(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	item, err := s.AddDebt(ctx, GlobalScope, model.DebtItem{Name: "loan", Amount: amt(t, "100")})
	require.NoError(t, err)

	require.NoError(t, s.DeleteDebt(ctx, GlobalScope, item.ID))
	assert.Empty(t, s.GetDebtData(ctx, GlobalScope).Items)

	// A nil error only means the collection was persisted.
	require.NoError(t, s.DeleteDebt(ctx, GlobalScope, "never-existed"))
}

func TestTotalDebt(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	jan := mustDate(t, "2024-01-15")
	jun := mustDate(t, "2024-06-15")

	_, err := s.AddDebt(ctx, GlobalScope, model.DebtItem{
		Name: "january", Amount: amt(t, "100"), PaymentDate: &jan,
	})
	require.NoError(t, err)
	_, err = s.AddDebt(ctx, GlobalScope, model.DebtItem{
		Name: "june", Amount: amt(t, "250.50"), PaymentDate: &jun,
	})
	require.NoError(t, err)

	t.Run("unbounded sums everything", func(t *testing.T) {
		total, err := s.TotalDebt(ctx, GlobalScope, nil, nil)
		require.NoError(t, err)
		assert.True(t, total.Equal(amt(t, "350.50")), "got %s", total)
	})

	t.Run("range bounds are inclusive", func(t *testing.T) {
		from := mustDate(t, "2024-01-15")
		to := mustDate(t, "2024-01-15")
		total, err := s.TotalDebt(ctx, GlobalScope, &from, &to)
		require.NoError(t, err)
		assert.True(t, total.Equal(amt(t, "100")), "got %s", total)
	})

	t.Run("empty scope sums to zero", func(t *testing.T) {
		total, err := s.TotalDebt(ctx, "empty-budget", nil, nil)
		require.NoError(t, err)
		assert.True(t, total.IsZero())
	})
}

func TestAllDebts(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, err := s.AddDebt(ctx, GlobalScope, model.DebtItem{Name: "global loan", Amount: amt(t, "100")})
	require.NoError(t, err)
	_, err = s.AddDebt(ctx, "budget-1", model.DebtItem{Name: "scoped loan", Amount: amt(t, "200")})
	require.NoError(t, err)

	all, err := s.AllDebts(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)

	scopes := map[string]string{}
	for _, d := range all {
		scopes[d.Name] = d.Scope
	}
	assert.Equal(t, GlobalScope, scopes["global loan"])
	assert.Equal(t, "budget-1", scopes["scoped loan"])
}
