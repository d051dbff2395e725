package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Validation errors.
var (
	ErrNilContext       = errors.New("context cannot be nil")
	ErrEmptyString      = errors.New("string parameter cannot be empty")
	ErrInvalidAmount    = errors.New("amount must be positive")
	ErrInvalidDateRange = errors.New("start date must be before end date")
	ErrInvalidPercent   = errors.New("percent must be between 1 and 100")

	ErrBudgetNotFound  = errors.New("budget not found")
	ErrDebtNotFound    = errors.New("debt not found")
	ErrProfileNotFound = errors.New("profile not found")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateAmount ensures a monetary amount is strictly positive.
func validateAmount(d decimal.Decimal, paramName string) error {
	if !d.IsPositive() {
		return fmt.Errorf("%w: %s is %s", ErrInvalidAmount, paramName, d)
	}
	return nil
}

// validateRange ensures from does not come after to. Nil bounds are open.
func validateRange(from, to *time.Time) error {
	if from != nil && to != nil && to.Before(*from) {
		return fmt.Errorf("%w: %v after %v", ErrInvalidDateRange, from, to)
	}
	return nil
}
