package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecurringConfig describes how a recurring expense or income repeats.
type RecurringConfig struct {
	EndDate   *time.Time `json:"endDate,omitempty"`
	Frequency string     `json:"frequency"`
}

// Recurrence frequencies accepted in RecurringConfig.
const (
	FrequencyWeekly  = "weekly"
	FrequencyMonthly = "monthly"
	FrequencyYearly  = "yearly"
)

// ExpenseItem is a single spend entry owned by a category or sub-category.
type ExpenseItem struct {
	Date          time.Time        `json:"date"`
	Recurring     *RecurringConfig `json:"recurringConfig,omitempty"`
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Notes         string           `json:"notes,omitempty"`
	ReceiptURL    string           `json:"receiptUrl,omitempty"`
	SubCategoryID string           `json:"subCategoryId,omitempty"`
	Tags          []string         `json:"tags,omitempty"`
	Amount        decimal.Decimal  `json:"amount"`
	IsRecurring   bool             `json:"isRecurring,omitempty"`
}
