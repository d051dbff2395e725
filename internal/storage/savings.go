package storage

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pennyjar/pennyjar/internal/model"
)

// GetSavingsGoals returns savings goals, filtered to one budget when
// budgetID is non-empty. Missing or corrupt data degrades to an empty list.
func (s *Store) GetSavingsGoals(ctx context.Context, budgetID string) []model.SavingsGoal {
	goals := loadJSON(ctx, s, savingsGoalsKey, []model.SavingsGoal{})
	if budgetID == "" {
		return goals
	}
	filtered := make([]model.SavingsGoal, 0, len(goals))
	for _, g := range goals {
		if g.BudgetID == budgetID {
			filtered = append(filtered, g)
		}
	}
	return filtered
}

// GetSavingsGoal returns the goal with the given id, or nil when absent.
func (s *Store) GetSavingsGoal(ctx context.Context, id string) (*model.SavingsGoal, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	for _, g := range s.GetSavingsGoals(ctx, "") {
		if g.ID == id {
			return &g, nil
		}
	}
	return nil, nil
}

// AddSavingsGoal records a new goal with a fresh id. The completion flag is
// derived from the amounts, never taken from the caller.
func (s *Store) AddSavingsGoal(ctx context.Context, input model.SavingsGoal) (*model.SavingsGoal, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(input.Name, "name"); err != nil {
		return nil, err
	}
	if err := validateAmount(input.TargetAmount, "targetAmount"); err != nil {
		return nil, err
	}

	goal := input
	goal.ID = uuid.NewString()
	if goal.StartDate.IsZero() {
		goal.StartDate = time.Now()
	}
	goal.Recalculate()

	goals := append(s.GetSavingsGoals(ctx, ""), goal)
	if err := saveJSON(ctx, s, savingsGoalsKey, goals); err != nil {
		return nil, err
	}
	return &goal, nil
}

// UpdateSavingsGoal merges a patch into the goal with the given id and
// re-derives the completion flag from the merged amounts. Returns nil when
// absent.
func (s *Store) UpdateSavingsGoal(ctx context.Context, id string, patch SavingsGoalPatch) (*model.SavingsGoal, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if patch.TargetAmount != nil {
		if err := validateAmount(*patch.TargetAmount, "targetAmount"); err != nil {
			return nil, err
		}
	}

	goals := s.GetSavingsGoals(ctx, "")
	updated := make([]model.SavingsGoal, 0, len(goals))
	var result *model.SavingsGoal
	for _, g := range goals {
		if g.ID == id {
			patch.apply(&g)
			g.Recalculate()
			copied := g
			result = &copied
		}
		updated = append(updated, g)
	}
	if result == nil {
		return nil, nil
	}
	if err := saveJSON(ctx, s, savingsGoalsKey, updated); err != nil {
		return nil, err
	}
	return result, nil
}

// AddToSavingsGoal adds a contribution to the goal's current amount.
// Returns nil when the goal is absent.
func (s *Store) AddToSavingsGoal(ctx context.Context, id string, amount decimal.Decimal) (*model.SavingsGoal, error) {
	if err := validateAmount(amount, "amount"); err != nil {
		return nil, err
	}

	goal, err := s.GetSavingsGoal(ctx, id)
	if err != nil {
		return nil, err
	}
	if goal == nil {
		return nil, nil
	}

	next := goal.CurrentAmount.Add(amount)
	return s.UpdateSavingsGoal(ctx, id, SavingsGoalPatch{CurrentAmount: &next})
}

// DeleteSavingsGoal removes the goal with the given id. The list is
// persisted whether or not anything matched.
func (s *Store) DeleteSavingsGoal(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	goals := s.GetSavingsGoals(ctx, "")
	kept := make([]model.SavingsGoal, 0, len(goals))
	for _, g := range goals {
		if g.ID != id {
			kept = append(kept, g)
		}
	}
	return saveJSON(ctx, s, savingsGoalsKey, kept)
}

// SavingsSummary aggregates goal progress, filtered to one budget when
// budgetID is non-empty.
func (s *Store) SavingsSummary(ctx context.Context, budgetID string) model.SavingsSummary {
	summary := model.SavingsSummary{
		TargetTotal:  decimal.Zero,
		CurrentTotal: decimal.Zero,
	}
	for _, g := range s.GetSavingsGoals(ctx, budgetID) {
		summary.TargetTotal = summary.TargetTotal.Add(g.TargetAmount)
		summary.CurrentTotal = summary.CurrentTotal.Add(g.CurrentAmount)
		if g.IsCompleted {
			summary.Completed++
		} else {
			summary.Active++
		}
	}
	return summary
}
