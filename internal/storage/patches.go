package storage

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/pennyjar/pennyjar/internal/model"
)

// Patch types express partial updates: nil fields are left untouched,
// non-nil fields are merged into the stored record.

// ExpensePatch is a partial update of an expense item.
type ExpensePatch struct {
	Name       *string
	Amount     *decimal.Decimal
	Date       *time.Time
	Notes      *string
	ReceiptURL *string
	Tags       *[]string
}

func (p ExpensePatch) apply(item *model.ExpenseItem) {
	if p.Name != nil {
		item.Name = *p.Name
	}
	if p.Amount != nil {
		item.Amount = *p.Amount
	}
	if p.Date != nil {
		item.Date = *p.Date
	}
	if p.Notes != nil {
		item.Notes = *p.Notes
	}
	if p.ReceiptURL != nil {
		item.ReceiptURL = *p.ReceiptURL
	}
	if p.Tags != nil {
		item.Tags = *p.Tags
	}
}

// DebtPatch is a partial update of a debt item.
type DebtPatch struct {
	Name           *string
	Amount         *decimal.Decimal
	Type           *model.DebtType
	InterestRate   *decimal.Decimal
	MinimumPayment *decimal.Decimal
	Notes          *string
	PaymentDate    *time.Time
	StartDate      *time.Time
	EndDate        *time.Time
	IsRecurring    *bool
}

func (p DebtPatch) apply(item *model.DebtItem) {
	if p.Name != nil {
		item.Name = *p.Name
	}
	if p.Amount != nil {
		item.Amount = *p.Amount
	}
	if p.Type != nil {
		item.Type = *p.Type
	}
	if p.InterestRate != nil {
		item.InterestRate = *p.InterestRate
	}
	if p.MinimumPayment != nil {
		item.MinimumPayment = *p.MinimumPayment
	}
	if p.Notes != nil {
		item.Notes = *p.Notes
	}
	if p.PaymentDate != nil {
		item.PaymentDate = p.PaymentDate
	}
	if p.StartDate != nil {
		item.StartDate = p.StartDate
	}
	if p.EndDate != nil {
		item.EndDate = p.EndDate
	}
	if p.IsRecurring != nil {
		item.IsRecurring = *p.IsRecurring
	}
}

// IncomePatch is a partial update of an income item.
type IncomePatch struct {
	Amount *decimal.Decimal
	Date   *time.Time
	Notes  *string
	Tags   *[]string
}

func (p IncomePatch) apply(item *model.IncomeItem) {
	if p.Amount != nil {
		item.Amount = *p.Amount
	}
	if p.Date != nil {
		item.Date = *p.Date
	}
	if p.Notes != nil {
		item.Notes = *p.Notes
	}
	if p.Tags != nil {
		item.Tags = *p.Tags
	}
}

// SavingsGoalPatch is a partial update of a savings goal.
type SavingsGoalPatch struct {
	Name          *string
	Description   *string
	Category      *string
	Color         *string
	TargetAmount  *decimal.Decimal
	CurrentAmount *decimal.Decimal
	TargetDate    *time.Time
	BudgetID      *string
}

func (p SavingsGoalPatch) apply(goal *model.SavingsGoal) {
	if p.Name != nil {
		goal.Name = *p.Name
	}
	if p.Description != nil {
		goal.Description = *p.Description
	}
	if p.Category != nil {
		goal.Category = *p.Category
	}
	if p.Color != nil {
		goal.Color = *p.Color
	}
	if p.TargetAmount != nil {
		goal.TargetAmount = *p.TargetAmount
	}
	if p.CurrentAmount != nil {
		goal.CurrentAmount = *p.CurrentAmount
	}
	if p.TargetDate != nil {
		goal.TargetDate = *p.TargetDate
	}
	if p.BudgetID != nil {
		goal.BudgetID = *p.BudgetID
	}
}

// ProfilePatch is a partial update of a user profile.
type ProfilePatch struct {
	Name   *string
	Email  *string
	Avatar *string
}

func (p ProfilePatch) apply(profile *model.UserProfile) {
	if p.Name != nil {
		profile.Name = *p.Name
	}
	if p.Email != nil {
		profile.Email = *p.Email
	}
	if p.Avatar != nil {
		profile.Avatar = *p.Avatar
	}
}
