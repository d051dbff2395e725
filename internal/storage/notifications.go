package storage

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/pennyjar/pennyjar/internal/model"
)

// GetNotificationConfigs returns the per-budget alert threshold map.
func (s *Store) GetNotificationConfigs(ctx context.Context) map[string]model.NotificationConfig {
	return loadJSON(ctx, s, notificationsKey, map[string]model.NotificationConfig{})
}

// GetNotificationConfig returns a budget's threshold config, or nil when
// none is set.
func (s *Store) GetNotificationConfig(ctx context.Context, budgetID string) *model.NotificationConfig {
	if cfg, ok := s.GetNotificationConfigs(ctx)[budgetID]; ok {
		return &cfg
	}
	return nil
}

// SetNotificationConfig stores a budget's alert threshold.
func (s *Store) SetNotificationConfig(ctx context.Context, budgetID string, cfg model.NotificationConfig) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(budgetID, "budgetID"); err != nil {
		return err
	}
	if cfg.WarningPercent < 1 || cfg.WarningPercent > 100 {
		return fmt.Errorf("%w: %d", ErrInvalidPercent, cfg.WarningPercent)
	}

	configs := s.GetNotificationConfigs(ctx)
	updated := make(map[string]model.NotificationConfig, len(configs)+1)
	for id, c := range configs {
		updated[id] = c
	}
	updated[budgetID] = cfg
	return saveJSON(ctx, s, notificationsKey, updated)
}

// DeleteNotificationConfig removes a budget's threshold config.
func (s *Store) DeleteNotificationConfig(ctx context.Context, budgetID string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	configs := s.GetNotificationConfigs(ctx)
	if _, ok := configs[budgetID]; !ok {
		return nil
	}
	updated := make(map[string]model.NotificationConfig, len(configs))
	for id, c := range configs {
		if id != budgetID {
			updated[id] = c
		}
	}
	return saveJSON(ctx, s, notificationsKey, updated)
}

// CheckThresholds reports every budget whose spending has reached its
// configured warning percentage of the planned amount.
func (s *Store) CheckThresholds(ctx context.Context) ([]model.ThresholdAlert, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	configs := s.GetNotificationConfigs(ctx)
	var alerts []model.ThresholdAlert
	for _, budget := range s.GetBudgets(ctx) {
		cfg, ok := configs[budget.ID]
		if !ok || !cfg.Enabled {
			continue
		}

		data := s.GetBudgetData(ctx, budget.ID)
		if !data.Amount.IsPositive() {
			continue
		}

		spentPercent := data.TotalSpent().Div(data.Amount).Mul(decimal.NewFromInt(100))
		if spentPercent.GreaterThanOrEqual(decimal.NewFromInt(int64(cfg.WarningPercent))) {
			alerts = append(alerts, model.ThresholdAlert{
				BudgetID:       budget.ID,
				Name:           budget.Name,
				SpentPercent:   spentPercent,
				WarningPercent: cfg.WarningPercent,
			})
		}
	}
	return alerts, nil
}
