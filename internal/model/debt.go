package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DebtType categorizes a debt for display and reporting.
type DebtType string

// Known debt types.
const (
	DebtTypeLoan       DebtType = "loan"
	DebtTypeCreditCard DebtType = "credit_card"
	DebtTypeMortgage   DebtType = "mortgage"
	DebtTypePersonal   DebtType = "personal"
	DebtTypeOther      DebtType = "other"
)

// DebtItem is a single debt tracked under a budget scope or globally.
type DebtItem struct {
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
	PaymentDate    *time.Time      `json:"paymentDate,omitempty"`
	StartDate      *time.Time      `json:"startDate,omitempty"`
	EndDate        *time.Time      `json:"endDate,omitempty"`
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Notes          string          `json:"notes,omitempty"`
	Type           DebtType        `json:"type"`
	Amount         decimal.Decimal `json:"amount"`
	InterestRate   decimal.Decimal `json:"interestRate"`
	MinimumPayment decimal.Decimal `json:"minimumPayment"`
	IsRecurring    bool            `json:"isRecurring,omitempty"`
}

// DebtData is the per-scope blob stored under debt_<scope>.
type DebtData struct {
	Items []DebtItem `json:"items"`
}

// ScopedDebt tags a debt item with the scope it was loaded from,
// for views that span every budget.
type ScopedDebt struct {
	Scope string
	DebtItem
}

// EffectiveDate is the date used for range queries: the payment date when
// set, otherwise the creation time.
func (d *DebtItem) EffectiveDate() time.Time {
	if d.PaymentDate != nil {
		return *d.PaymentDate
	}
	return d.CreatedAt
}
