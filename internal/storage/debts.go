package storage

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pennyjar/pennyjar/internal/model"
)

func debtKey(scope string) string { return debtKeyPrefix + scope }

// GetDebtData returns the debt collection for a scope, defaulting to an
// empty shape on miss or corruption.
func (s *Store) GetDebtData(ctx context.Context, scope string) model.DebtData {
	return loadJSON(ctx, s, debtKey(scope), model.DebtData{Items: []model.DebtItem{}})
}

// SaveDebtData persists a scope's debt collection wholesale.
func (s *Store) SaveDebtData(ctx context.Context, scope string, data model.DebtData) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(scope, "scope"); err != nil {
		return err
	}
	return saveJSON(ctx, s, debtKey(scope), data)
}

// AddDebt records a new debt under the scope with a fresh id and timestamps.
func (s *Store) AddDebt(ctx context.Context, scope string, input model.DebtItem) (*model.DebtItem, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(scope, "scope"); err != nil {
		return nil, err
	}
	if err := validateString(input.Name, "name"); err != nil {
		return nil, err
	}
	if err := validateAmount(input.Amount, "amount"); err != nil {
		return nil, err
	}

	item := input
	item.ID = uuid.NewString()
	now := time.Now()
	item.CreatedAt = now
	item.UpdatedAt = now
	if item.Type == "" {
		item.Type = model.DebtTypeOther
	}

	data := s.GetDebtData(ctx, scope)
	data.Items = append(data.Items, item)
	if err := s.SaveDebtData(ctx, scope, data); err != nil {
		return nil, err
	}

	slog.Debug("added debt", "scope", scope, "id", item.ID, "name", item.Name)
	return &item, nil
}

// UpdateDebt merges a patch into the debt with the given id. Returns nil
// (not an error) when the debt is absent from the scope.
func (s *Store) UpdateDebt(ctx context.Context, scope, id string, patch DebtPatch) (*model.DebtItem, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if patch.Amount != nil {
		if err := validateAmount(*patch.Amount, "amount"); err != nil {
			return nil, err
		}
	}

	data := s.GetDebtData(ctx, scope)
	for i := range data.Items {
		if data.Items[i].ID != id {
			continue
		}
		patch.apply(&data.Items[i])
		data.Items[i].UpdatedAt = time.Now()
		if err := s.SaveDebtData(ctx, scope, data); err != nil {
			return nil, err
		}
		updated := data.Items[i]
		return &updated, nil
	}
	return nil, nil
}

// DeleteDebt removes the debt with the given id from the scope. The
// collection is persisted whether or not anything matched, so a nil return
// does not mean a debt was removed. Deleting from the global scope also
// scrubs the id from every budget that references it.
func (s *Store) DeleteDebt(ctx context.Context, scope, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	data := s.GetDebtData(ctx, scope)
	kept := make([]model.DebtItem, 0, len(data.Items))
	for _, item := range data.Items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	data.Items = kept
	if err := s.SaveDebtData(ctx, scope, data); err != nil {
		return err
	}

	if scope == GlobalScope {
		if err := s.scrubDebtAssociations(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// TotalDebt sums debt amounts for a scope, optionally bounded to an
// inclusive date range on each item's effective date.
func (s *Store) TotalDebt(ctx context.Context, scope string, from, to *time.Time) (decimal.Decimal, error) {
	if err := validateContext(ctx); err != nil {
		return decimal.Zero, err
	}
	if err := validateRange(from, to); err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, item := range s.GetDebtData(ctx, scope).Items {
		if inRange(item.EffectiveDate(), from, to) {
			total = total.Add(item.Amount)
		}
	}
	return total, nil
}

// AllDebts loads every debt scope in the store and concatenates the items,
// each tagged with the scope it came from.
func (s *Store) AllDebts(ctx context.Context) ([]model.ScopedDebt, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	keys, err := s.keysWithPrefix(ctx, debtKeyPrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate debt scopes: %w", err)
	}

	var all []model.ScopedDebt
	for _, key := range keys {
		scope := strings.TrimPrefix(key, debtKeyPrefix)
		for _, item := range s.GetDebtData(ctx, scope).Items {
			all = append(all, model.ScopedDebt{Scope: scope, DebtItem: item})
		}
	}
	return all, nil
}

// scrubDebtAssociations removes a deleted global debt's id from every
// budget's association list.
func (s *Store) scrubDebtAssociations(ctx context.Context, debtID string) error {
	budgets := s.GetBudgets(ctx)
	changed := false
	updated := make([]model.Budget, 0, len(budgets))
	for _, b := range budgets {
		kept := make([]string, 0, len(b.AssociatedDebtIDs))
		for _, id := range b.AssociatedDebtIDs {
			if id != debtID {
				kept = append(kept, id)
			}
		}
		if len(kept) != len(b.AssociatedDebtIDs) {
			changed = true
			if len(kept) == 0 {
				kept = nil
			}
			b.AssociatedDebtIDs = kept
		}
		updated = append(updated, b)
	}
	if !changed {
		return nil
	}
	slog.Debug("scrubbed debt associations", "debt_id", debtID)
	return saveJSON(ctx, s, budgetsKey, updated)
}
