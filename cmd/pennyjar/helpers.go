package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/pennyjar/pennyjar/internal/common"
	"github.com/pennyjar/pennyjar/internal/config"
	"github.com/pennyjar/pennyjar/internal/storage"
)

// openStore opens the configured budget store and runs pending migrations.
// Callers must Close it.
func openStore(ctx context.Context) (*storage.Store, error) {
	path := viper.GetString("storage.path")
	if path == "" {
		path = config.DefaultDataPath()
	}
	path = config.ExpandPath(path)

	store, err := storage.Open(ctx, path)
	if err != nil {
		return nil, common.NewUserError(fmt.Sprintf("could not open the budget store at %s", path), err)
	}
	return store, nil
}

// parseDate parses a YYYY-MM-DD flag value. Empty input yields a nil time.
func parseDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", value, err)
	}
	return &t, nil
}
