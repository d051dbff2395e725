package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// SavingsGoal is a target amount to save by a date, optionally tied to a
// budget. Goals live in one global list and are filtered by BudgetID.
type SavingsGoal struct {
	StartDate     time.Time       `json:"startDate"`
	TargetDate    time.Time       `json:"targetDate"`
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	Category      string          `json:"category,omitempty"`
	Color         string          `json:"color,omitempty"`
	BudgetID      string          `json:"budgetId,omitempty"`
	TargetAmount  decimal.Decimal `json:"targetAmount"`
	CurrentAmount decimal.Decimal `json:"currentAmount"`
	IsCompleted   bool            `json:"isCompleted"`
}

// Recalculate keeps the completion flag consistent with the amounts.
// It must be called after every mutation of CurrentAmount or TargetAmount.
func (g *SavingsGoal) Recalculate() {
	g.IsCompleted = g.CurrentAmount.GreaterThanOrEqual(g.TargetAmount)
}

// SavingsSummary aggregates goal progress, optionally per budget.
type SavingsSummary struct {
	TargetTotal  decimal.Decimal `json:"targetTotal"`
	CurrentTotal decimal.Decimal `json:"currentTotal"`
	Completed    int             `json:"completed"`
	Active       int             `json:"active"`
}
