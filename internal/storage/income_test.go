package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pennyjar/pennyjar/internal/model"
)

func TestIncomeSources(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	source, err := s.AddIncomeSource(ctx, GlobalIncomeScope, "Salary", "#4CAF50")
	require.NoError(t, err)
	require.NotEmpty(t, source.ID)

	t.Run("source appears in the scope", func(t *testing.T) {
		data := s.GetIncomeData(ctx, GlobalIncomeScope)
		require.Len(t, data.Sources, 1)
		assert.Equal(t, "Salary", data.Sources[0].Name)
	})

	t.Run("empty name rejected", func(t *testing.T) {
		_, err := s.AddIncomeSource(ctx, GlobalIncomeScope, "", "")
		require.ErrorIs(t, err, ErrEmptyString)
	})
}

func TestAddIncomeResolvesSourceName(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	source, err := s.AddIncomeSource(ctx, GlobalIncomeScope, "Freelance", "")
	require.NoError(t, err)

	item, err := s.AddIncome(ctx, GlobalIncomeScope, model.IncomeItem{
		SourceID: source.ID,
		Amount:   amt(t, "1500"),
	})
	require.NoError(t, err)
	require.NotEmpty(t, item.ID)
	assert.Equal(t, "Freelance", item.SourceName, "name denormalized from the source")
	assert.False(t, item.Date.IsZero(), "date defaults to now")

	t.Run("unknown source id leaves the name blank", func(t *testing.T) {
		orphan, err := s.AddIncome(ctx, GlobalIncomeScope, model.IncomeItem{
			SourceID: "no-such-source",
			Amount:   amt(t, "10"),
		})
		require.NoError(t, err)
		assert.Empty(t, orphan.SourceName)
	})
}

func TestDeleteIncomeSourceCascades(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	salary, err := s.AddIncomeSource(ctx, GlobalIncomeScope, "Salary", "")
	require.NoError(t, err)
	gig, err := s.AddIncomeSource(ctx, GlobalIncomeScope, "Gig", "")
	require.NoError(t, err)

	_, err = s.AddIncome(ctx, GlobalIncomeScope, model.IncomeItem{SourceID: salary.ID, Amount: amt(t, "3000")})
	require.NoError(t, err)
	_, err = s.AddIncome(ctx, GlobalIncomeScope, model.IncomeItem{SourceID: salary.ID, Amount: amt(t, "3000")})
	require.NoError(t, err)
	kept, err := s.AddIncome(ctx, GlobalIncomeScope, model.IncomeItem{SourceID: gig.ID, Amount: amt(t, "400")})
	require.NoError(t, err)

	require.NoError(t, s.DeleteIncomeSource(ctx, GlobalIncomeScope, salary.ID))

	data := s.GetIncomeData(ctx, GlobalIncomeScope)
	require.Len(t, data.Sources, 1)
	assert.Equal(t, gig.ID, data.Sources[0].ID)
	require.Len(t, data.Items, 1, "items of the deleted source must go with it")
	assert.Equal(t, kept.ID, data.Items[0].ID)
}

func TestUpdateAndDeleteIncome(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	item, err := s.AddIncome(ctx, GlobalIncomeScope, model.IncomeItem{Amount: amt(t, "100")})
	require.NoError(t, err)

	t.Run("patch merges", func(t *testing.T) {
		newAmount := amt(t, "120")
		notes := "raise"
		updated, err := s.UpdateIncome(ctx, GlobalIncomeScope, item.ID, IncomePatch{
			Amount: &newAmount,
			Notes:  &notes,
		})
		require.NoError(t, err)
		require.NotNil(t, updated)
		assert.True(t, updated.Amount.Equal(newAmount))
		assert.Equal(t, "raise", updated.Notes)
	})

	t.Run("absent id returns nil", func(t *testing.T) {
		updated, err := s.UpdateIncome(ctx, GlobalIncomeScope, "ghost", IncomePatch{})
		require.NoError(t, err)
		assert.Nil(t, updated)
	})

	t.Run("delete removes the item", func(t *testing.T) {
		require.NoError(t, s.DeleteIncome(ctx, GlobalIncomeScope, item.ID))
		assert.Empty(t, s.GetIncomeData(ctx, GlobalIncomeScope).Items)
	})
}

func TestTotalIncome(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	jan := mustDate(t, "2024-01-10")
	dec := mustDate(t, "2024-12-10")

	_, err := s.AddIncome(ctx, GlobalIncomeScope, model.IncomeItem{Amount: amt(t, "1000"), Date: jan})
	require.NoError(t, err)
	_, err = s.AddIncome(ctx, GlobalIncomeScope, model.IncomeItem{Amount: amt(t, "2000"), Date: dec})
	require.NoError(t, err)

	total, err := s.TotalIncome(ctx, GlobalIncomeScope, nil, nil)
	require.NoError(t, err)
	assert.True(t, total.Equal(amt(t, "3000")), "got %s", total)

	from := mustDate(t, "2024-06-01")
	bounded, err := s.TotalIncome(ctx, GlobalIncomeScope, &from, nil)
	require.NoError(t, err)
	assert.True(t, bounded.Equal(amt(t, "2000")), "got %s", bounded)
}

func TestAllIncome(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, err := s.AddIncome(ctx, GlobalIncomeScope, model.IncomeItem{Amount: amt(t, "100")})
	require.NoError(t, err)
	_, err = s.AddIncome(ctx, "budget-1", model.IncomeItem{Amount: amt(t, "50")})
	require.NoError(t, err)

	all, err := s.AllIncome(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)

	scopes := make(map[string]bool)
	for _, item := range all {
		scopes[item.Scope] = true
	}
	assert.True(t, scopes[GlobalIncomeScope])
	assert.True(t, scopes["budget-1"])
}
