package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pennyjar/pennyjar/internal/model"
)

func budgetKey(id string) string { return budgetKeyPrefix + id }

// GetBudgets returns the budget registry. A missing or corrupt registry
// degrades to an empty list.
func (s *Store) GetBudgets(ctx context.Context) []model.Budget {
	return loadJSON(ctx, s, budgetsKey, []model.Budget{})
}

// GetBudget returns the budget with the given id, or nil when absent.
// Associated debt ids that no longer resolve to a global debt are filtered
// out of the returned record; the stored record is left untouched.
func (s *Store) GetBudget(ctx context.Context, id string) (*model.Budget, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	for _, b := range s.GetBudgets(ctx) {
		if b.ID == id {
			b.AssociatedDebtIDs = s.liveDebtIDs(ctx, b.AssociatedDebtIDs)
			return &b, nil
		}
	}
	return nil, nil
}

// CreateBudget registers a new budget and initializes its data blob.
func (s *Store) CreateBudget(ctx context.Context, name string, amount decimal.Decimal) (*model.Budget, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(name, "name"); err != nil {
		return nil, err
	}
	if err := validateAmount(amount, "amount"); err != nil {
		return nil, err
	}

	budget := model.Budget{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: time.Now(),
	}

	budgets := append(s.GetBudgets(ctx), budget)
	if err := saveJSON(ctx, s, budgetsKey, budgets); err != nil {
		return nil, fmt.Errorf("failed to save budget registry: %w", err)
	}

	data := model.BudgetData{Amount: amount, Categories: []model.Category{}}
	if err := saveJSON(ctx, s, budgetKey(budget.ID), data); err != nil {
		return nil, fmt.Errorf("failed to initialize budget data: %w", err)
	}

	slog.Info("created budget", "id", budget.ID, "name", name)
	return &budget, nil
}

// DeleteBudget removes a budget and everything it owns: the data blob, its
// debt and income scopes, its savings goals, and its notification config.
func (s *Store) DeleteBudget(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	budgets := s.GetBudgets(ctx)
	kept := make([]model.Budget, 0, len(budgets))
	for _, b := range budgets {
		if b.ID != id {
			kept = append(kept, b)
		}
	}
	if err := saveJSON(ctx, s, budgetsKey, kept); err != nil {
		return fmt.Errorf("failed to save budget registry: %w", err)
	}

	for _, key := range []string{budgetKey(id), debtKey(id), incomeKey(id)} {
		if err := s.deleteKey(ctx, key); err != nil {
			return err
		}
	}

	goals := s.GetSavingsGoals(ctx, "")
	keptGoals := make([]model.SavingsGoal, 0, len(goals))
	for _, g := range goals {
		if g.BudgetID != id {
			keptGoals = append(keptGoals, g)
		}
	}
	if err := saveJSON(ctx, s, savingsGoalsKey, keptGoals); err != nil {
		return fmt.Errorf("failed to save savings goals: %w", err)
	}

	if err := s.DeleteNotificationConfig(ctx, id); err != nil {
		return err
	}

	slog.Info("deleted budget", "id", id)
	return nil
}

// GetBudgetData returns the per-budget blob, defaulting to an empty shape.
func (s *Store) GetBudgetData(ctx context.Context, id string) model.BudgetData {
	return loadJSON(ctx, s, budgetKey(id), model.BudgetData{Categories: []model.Category{}})
}

// SaveBudgetData persists the per-budget blob wholesale.
func (s *Store) SaveBudgetData(ctx context.Context, id string, data model.BudgetData) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}
	return saveJSON(ctx, s, budgetKey(id), data)
}

// AddCategory appends an empty category to the budget's tree.
func (s *Store) AddCategory(ctx context.Context, budgetID, name string) (*model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(name, "name"); err != nil {
		return nil, err
	}

	data := s.GetBudgetData(ctx, budgetID)
	category := model.Category{
		ID:            uuid.NewString(),
		Name:          name,
		Items:         []model.ExpenseItem{},
		SubCategories: []model.SubCategory{},
	}
	data.Categories = append(data.Categories, category)

	if err := s.SaveBudgetData(ctx, budgetID, data); err != nil {
		return nil, err
	}
	return &category, nil
}

// AddSubCategory appends an empty sub-category to a category.
// Returns nil when the category does not exist.
func (s *Store) AddSubCategory(ctx context.Context, budgetID, categoryID, name string) (*model.SubCategory, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(name, "name"); err != nil {
		return nil, err
	}

	data := s.GetBudgetData(ctx, budgetID)
	for i := range data.Categories {
		if data.Categories[i].ID != categoryID {
			continue
		}
		sub := model.SubCategory{
			ID:    uuid.NewString(),
			Name:  name,
			Items: []model.ExpenseItem{},
		}
		data.Categories[i].SubCategories = append(data.Categories[i].SubCategories, sub)
		if err := s.SaveBudgetData(ctx, budgetID, data); err != nil {
			return nil, err
		}
		return &sub, nil
	}
	return nil, nil
}

// DeleteCategory removes a category and, with it, every embedded item and
// sub-category. The blob is persisted even when nothing matched.
func (s *Store) DeleteCategory(ctx context.Context, budgetID, categoryID string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	data := s.GetBudgetData(ctx, budgetID)
	kept := make([]model.Category, 0, len(data.Categories))
	for _, cat := range data.Categories {
		if cat.ID != categoryID {
			kept = append(kept, cat)
		}
	}
	data.Categories = kept
	return s.SaveBudgetData(ctx, budgetID, data)
}

// AddExpense records a new expense item under a category, or under one of
// its sub-categories when subCategoryID is non-empty. Returns nil when the
// target container does not exist.
func (s *Store) AddExpense(ctx context.Context, budgetID, categoryID, subCategoryID string, input model.ExpenseItem) (*model.ExpenseItem, error) {
	if err := validateContext(ctx); err != nil {
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
	if item.Date.IsZero() {
		item.Date = time.Now()
	}

	data := s.GetBudgetData(ctx, budgetID)
	for i := range data.Categories {
		if data.Categories[i].ID != categoryID {
			continue
		}
		if subCategoryID == "" {
			data.Categories[i].Items = append(data.Categories[i].Items, item)
		} else {
			placed := false
			for j := range data.Categories[i].SubCategories {
				if data.Categories[i].SubCategories[j].ID == subCategoryID {
					item.SubCategoryID = subCategoryID
					data.Categories[i].SubCategories[j].Items = append(data.Categories[i].SubCategories[j].Items, item)
					placed = true
					break
				}
			}
			if !placed {
				return nil, nil
			}
		}
		if err := s.SaveBudgetData(ctx, budgetID, data); err != nil {
			return nil, err
		}
		return &item, nil
	}
	return nil, nil
}

// UpdateExpense merges a patch into the expense with the given id, wherever
// it lives in the budget's tree. Returns nil when absent.
func (s *Store) UpdateExpense(ctx context.Context, budgetID, expenseID string, patch ExpensePatch) (*model.ExpenseItem, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if patch.Amount != nil {
		if err := validateAmount(*patch.Amount, "amount"); err != nil {
			return nil, err
		}
	}

	data := s.GetBudgetData(ctx, budgetID)
	item := findExpense(&data, expenseID)
	if item == nil {
		return nil, nil
	}

	patch.apply(item)
	if err := s.SaveBudgetData(ctx, budgetID, data); err != nil {
		return nil, err
	}
	updated := *item
	return &updated, nil
}

// DeleteExpense removes the expense with the given id from the budget's
// tree. The blob is persisted even when nothing matched.
func (s *Store) DeleteExpense(ctx context.Context, budgetID, expenseID string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	data := s.GetBudgetData(ctx, budgetID)
	for i := range data.Categories {
		data.Categories[i].Items = removeExpense(data.Categories[i].Items, expenseID)
		for j := range data.Categories[i].SubCategories {
			data.Categories[i].SubCategories[j].Items = removeExpense(data.Categories[i].SubCategories[j].Items, expenseID)
		}
	}
	return s.SaveBudgetData(ctx, budgetID, data)
}

// Summary computes planned, spent, and remaining amounts for a budget.
// Returns nil when the budget does not exist.
func (s *Store) Summary(ctx context.Context, budgetID string) (*model.BudgetSummary, error) {
	budget, err := s.GetBudget(ctx, budgetID)
	if err != nil {
		return nil, err
	}
	if budget == nil {
		return nil, nil
	}

	data := s.GetBudgetData(ctx, budgetID)
	spent := data.TotalSpent()
	return &model.BudgetSummary{
		BudgetID:   budget.ID,
		Name:       budget.Name,
		Amount:     data.Amount,
		TotalSpent: spent,
		Remaining:  data.Amount.Sub(spent),
	}, nil
}

// AssociateDebt links a globally scoped debt to a budget by id. The link is
// weak: the debt record itself is not modified.
func (s *Store) AssociateDebt(ctx context.Context, budgetID, debtID string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	found := false
	for _, d := range s.GetDebtData(ctx, GlobalScope).Items {
		if d.ID == debtID {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("global debt %s: %w", debtID, ErrDebtNotFound)
	}

	budgets := s.GetBudgets(ctx)
	for i := range budgets {
		if budgets[i].ID != budgetID {
			continue
		}
		for _, existing := range budgets[i].AssociatedDebtIDs {
			if existing == debtID {
				return nil
			}
		}
		budgets[i].AssociatedDebtIDs = append(budgets[i].AssociatedDebtIDs, debtID)
		return saveJSON(ctx, s, budgetsKey, budgets)
	}
	return fmt.Errorf("budget %s: %w", budgetID, ErrBudgetNotFound)
}

// DissociateDebt removes a debt link from a budget.
func (s *Store) DissociateDebt(ctx context.Context, budgetID, debtID string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	budgets := s.GetBudgets(ctx)
	for i := range budgets {
		if budgets[i].ID != budgetID {
			continue
		}
		kept := make([]string, 0, len(budgets[i].AssociatedDebtIDs))
		for _, id := range budgets[i].AssociatedDebtIDs {
			if id != debtID {
				kept = append(kept, id)
			}
		}
		budgets[i].AssociatedDebtIDs = kept
		return saveJSON(ctx, s, budgetsKey, budgets)
	}
	return fmt.Errorf("budget %s: %w", budgetID, ErrBudgetNotFound)
}

// liveDebtIDs filters ids down to those that still resolve to a global debt.
func (s *Store) liveDebtIDs(ctx context.Context, ids []string) []string {
	if len(ids) == 0 {
		return ids
	}
	live := make(map[string]bool, len(ids))
	for _, d := range s.GetDebtData(ctx, GlobalScope).Items {
		live[d.ID] = true
	}
	kept := make([]string, 0, len(ids))
	for _, id := range ids {
		if live[id] {
			kept = append(kept, id)
		}
	}
	return kept
}

func findExpense(data *model.BudgetData, id string) *model.ExpenseItem {
	for i := range data.Categories {
		for j := range data.Categories[i].Items {
			if data.Categories[i].Items[j].ID == id {
				return &data.Categories[i].Items[j]
			}
		}
		for j := range data.Categories[i].SubCategories {
			for k := range data.Categories[i].SubCategories[j].Items {
				if data.Categories[i].SubCategories[j].Items[k].ID == id {
					return &data.Categories[i].SubCategories[j].Items[k]
				}
			}
		}
	}
	return nil
}

func removeExpense(items []model.ExpenseItem, id string) []model.ExpenseItem {
	kept := make([]model.ExpenseItem, 0, len(items))
	for _, item := range items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	return kept
}
