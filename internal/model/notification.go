package model

import "github.com/shopspring/decimal"

// NotificationConfig is a per-budget spending alert threshold.
type NotificationConfig struct {
	Enabled        bool `json:"enabled"`
	WarningPercent int  `json:"warningPercent"`
}

// ThresholdAlert reports a budget whose spending crossed its configured
// warning threshold.
type ThresholdAlert struct {
	BudgetID       string          `json:"budgetId"`
	Name           string          `json:"name"`
	SpentPercent   decimal.Decimal `json:"spentPercent"`
	WarningPercent int             `json:"warningPercent"`
}
