package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pennyjar/pennyjar/internal/model"
)

func incomeKey(scope string) string { return incomeKeyPrefix + scope }

// GetIncomeData returns the income sources and items for a scope,
// defaulting to an empty shape on miss or corruption.
func (s *Store) GetIncomeData(ctx context.Context, scope string) model.IncomeData {
	return loadJSON(ctx, s, incomeKey(scope), model.IncomeData{
		Sources: []model.IncomeSource{},
		Items:   []model.IncomeItem{},
	})
}

// SaveIncomeData persists a scope's income collection wholesale.
func (s *Store) SaveIncomeData(ctx context.Context, scope string, data model.IncomeData) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(scope, "scope"); err != nil {
		return err
	}
	return saveJSON(ctx, s, incomeKey(scope), data)
}

// AddIncomeSource registers a new income source under the scope.
func (s *Store) AddIncomeSource(ctx context.Context, scope, name, color string) (*model.IncomeSource, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(scope, "scope"); err != nil {
		return nil, err
	}
	if err := validateString(name, "name"); err != nil {
		return nil, err
	}

	source := model.IncomeSource{
		ID:    uuid.NewString(),
		Name:  name,
		Color: color,
	}

	data := s.GetIncomeData(ctx, scope)
	data.Sources = append(data.Sources, source)
	if err := s.SaveIncomeData(ctx, scope, data); err != nil {
		return nil, err
	}
	return &source, nil
}

// DeleteIncomeSource removes a source and every income item that references
// it. Items belonging to other sources are untouched.
func (s *Store) DeleteIncomeSource(ctx context.Context, scope, sourceID string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	data := s.GetIncomeData(ctx, scope)

	keptSources := make([]model.IncomeSource, 0, len(data.Sources))
	for _, src := range data.Sources {
		if src.ID != sourceID {
			keptSources = append(keptSources, src)
		}
	}
	keptItems := make([]model.IncomeItem, 0, len(data.Items))
	for _, item := range data.Items {
		if item.SourceID != sourceID {
			keptItems = append(keptItems, item)
		}
	}

	data.Sources = keptSources
	data.Items = keptItems
	return s.SaveIncomeData(ctx, scope, data)
}

// AddIncome records a new income item under the scope. The source name is
// resolved from the scope's sources when the id matches.
func (s *Store) AddIncome(ctx context.Context, scope string, input model.IncomeItem) (*model.IncomeItem, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(scope, "scope"); err != nil {
		return nil, err
	}
	if err := validateAmount(input.Amount, "amount"); err != nil {
		return nil, err
	}

	item := input
	item.ID = uuid.NewString()
	if item.Date.IsZero() {
		item.Date = time.Now()
	}

	data := s.GetIncomeData(ctx, scope)
	if item.SourceName == "" {
		for _, src := range data.Sources {
			if src.ID == item.SourceID {
				item.SourceName = src.Name
				break
			}
		}
	}

	data.Items = append(data.Items, item)
	if err := s.SaveIncomeData(ctx, scope, data); err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateIncome merges a patch into the income item with the given id.
// Returns nil when absent.
func (s *Store) UpdateIncome(ctx context.Context, scope, id string, patch IncomePatch) (*model.IncomeItem, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if patch.Amount != nil {
		if err := validateAmount(*patch.Amount, "amount"); err != nil {
			return nil, err
		}
	}

	data := s.GetIncomeData(ctx, scope)
	for i := range data.Items {
		if data.Items[i].ID != id {
			continue
		}
		patch.apply(&data.Items[i])
		if err := s.SaveIncomeData(ctx, scope, data); err != nil {
			return nil, err
		}
		updated := data.Items[i]
		return &updated, nil
	}
	return nil, nil
}

// DeleteIncome removes the income item with the given id. The collection is
// persisted whether or not anything matched.
func (s *Store) DeleteIncome(ctx context.Context, scope, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	data := s.GetIncomeData(ctx, scope)
	kept := make([]model.IncomeItem, 0, len(data.Items))
	for _, item := range data.Items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	data.Items = kept
	return s.SaveIncomeData(ctx, scope, data)
}

// TotalIncome sums income amounts for a scope, optionally bounded to an
// inclusive date range.
func (s *Store) TotalIncome(ctx context.Context, scope string, from, to *time.Time) (decimal.Decimal, error) {
	if err := validateContext(ctx); err != nil {
		return decimal.Zero, err
	}
	if err := validateRange(from, to); err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, item := range s.GetIncomeData(ctx, scope).Items {
		if inRange(item.Date, from, to) {
			total = total.Add(item.Amount)
		}
	}
	return total, nil
}

// AllIncome loads every income scope in the store and concatenates the
// items, each tagged with the scope it came from.
func (s *Store) AllIncome(ctx context.Context) ([]model.ScopedIncome, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	keys, err := s.keysWithPrefix(ctx, incomeKeyPrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate income scopes: %w", err)
	}

	var all []model.ScopedIncome
	for _, key := range keys {
		scope := strings.TrimPrefix(key, incomeKeyPrefix)
		for _, item := range s.GetIncomeData(ctx, scope).Items {
			all = append(all, model.ScopedIncome{Scope: scope, IncomeItem: item})
		}
	}
	return all, nil
}
