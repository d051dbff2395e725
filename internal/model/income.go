package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// IncomeSource is a named origin of income (employer, side gig, ...).
type IncomeSource struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// IncomeItem is a single income entry referencing its source by id.
// SourceName is denormalized so items survive display even if the source
// record changes.
type IncomeItem struct {
	Date          time.Time        `json:"date"`
	Recurring     *RecurringConfig `json:"recurringConfig,omitempty"`
	ID            string           `json:"id"`
	SourceID      string           `json:"sourceId"`
	SourceName    string           `json:"sourceName"`
	Notes         string           `json:"notes,omitempty"`
	AttachmentURL string           `json:"attachmentUrl,omitempty"`
	Tags          []string         `json:"tags,omitempty"`
	Amount        decimal.Decimal  `json:"amount"`
	IsRecurring   bool             `json:"isRecurring,omitempty"`
}

// IncomeData is the per-scope blob stored under income_<scope>.
type IncomeData struct {
	Sources []IncomeSource `json:"sources"`
	Items   []IncomeItem   `json:"items"`
}

// ScopedIncome tags an income item with the scope it was loaded from.
type ScopedIncome struct {
	Scope string
	IncomeItem
}
