// Package model defines the entity records persisted by the budget store.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Budget is the root aggregate: a named spending plan that owns embedded
// categories and optionally references globally scoped debts by id.
type Budget struct {
	CreatedAt         time.Time `json:"createdAt"`
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	AssociatedDebtIDs []string  `json:"associatedDebtIds,omitempty"`
}

// BudgetData is the per-budget blob stored under budget_<id>: the planned
// amount plus the full category tree with its embedded expense items.
type BudgetData struct {
	Amount     decimal.Decimal `json:"amount"`
	Categories []Category      `json:"categories"`
}

// Category groups expense items inside a budget. Items and sub-categories
// are exclusively owned; deleting the category deletes them with it.
type Category struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Items         []ExpenseItem `json:"items"`
	SubCategories []SubCategory `json:"subCategories"`
}

// SubCategory is a second-level grouping owned by exactly one category.
type SubCategory struct {
	ID    string        `json:"id"`
	Name  string        `json:"name"`
	Items []ExpenseItem `json:"items"`
}

// BudgetSummary reports planned, spent, and remaining amounts for a budget.
type BudgetSummary struct {
	BudgetID   string          `json:"budgetId"`
	Name       string          `json:"name"`
	Amount     decimal.Decimal `json:"amount"`
	TotalSpent decimal.Decimal `json:"totalSpent"`
	Remaining  decimal.Decimal `json:"remaining"`
}

// TotalSpent sums every expense item in the category tree, including
// sub-category items.
func (d *BudgetData) TotalSpent() decimal.Decimal {
	total := decimal.Zero
	for _, cat := range d.Categories {
		for _, item := range cat.Items {
			total = total.Add(item.Amount)
		}
		for _, sub := range cat.SubCategories {
			for _, item := range sub.Items {
				total = total.Add(item.Amount)
			}
		}
	}
	return total
}
