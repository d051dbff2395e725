package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/pennyjar/pennyjar/internal/kvstore"
)

// CurrentSchemaVersion is the latest key-namespace version the application
// expects. Stores at a newer version are refused rather than downgraded.
const CurrentSchemaVersion = 1

// Migration upgrades the stored key namespace by one version.
type Migration struct {
	Up          func(ctx context.Context, kv kvstore.Store) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Seed empty registries",
		Up: func(ctx context.Context, kv kvstore.Store) error {
			seeds := map[string]string{
				budgetsKey:       "[]",
				savingsGoalsKey:  "[]",
				profilesKey:      "[]",
				notificationsKey: "{}",
			}
			for key, empty := range seeds {
				_, err := kv.Get(ctx, key)
				if err == nil {
					continue
				}
				if !errors.Is(err, kvstore.ErrKeyNotFound) {
					return err
				}
				if err := kv.Set(ctx, key, empty); err != nil {
					return err
				}
			}
			return nil
		},
	},
}

// SchemaVersion reads the stored schema version; an uninitialized store
// reports version 0.
func (s *Store) SchemaVersion(ctx context.Context) (int, error) {
	raw, err := s.kv.Get(ctx, schemaVersionKey)
	if err != nil {
		if errors.Is(err, kvstore.ErrKeyNotFound) {
			return 0, nil
		}
		return 0, err
	}
	version, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid schema version %q: %w", raw, err)
	}
	return version, nil
}

// Migrate applies pending migrations in order, recording the version after
// each one.
func (s *Store) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	version, err := s.SchemaVersion(ctx)
	if err != nil {
		return err
	}
	if version > CurrentSchemaVersion {
		return fmt.Errorf("store schema version %d is newer than supported version %d", version, CurrentSchemaVersion)
	}

	for _, m := range migrations {
		if m.Version <= version {
			continue
		}
		slog.Info("applying migration", "version", m.Version, "description", m.Description)
		if err := m.Up(ctx, s.kv); err != nil {
			return fmt.Errorf("migration %d failed: %w", m.Version, err)
		}
		if err := s.kv.Set(ctx, schemaVersionKey, strconv.Itoa(m.Version)); err != nil {
			return fmt.Errorf("failed to record schema version %d: %w", m.Version, err)
		}
	}
	return nil
}
