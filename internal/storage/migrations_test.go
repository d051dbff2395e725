package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pennyjar/pennyjar/internal/kvstore"
)

func TestMigrate(t *testing.T) {
	ctx := context.Background()

	t.Run("fresh store reports version zero", func(t *testing.T) {
		s := NewStore(kvstore.NewMemoryStore())
		t.Cleanup(func() { _ = s.Close() })

		version, err := s.SchemaVersion(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, version)
	})

	t.Run("migrate seeds registries and records the version", func(t *testing.T) {
		kv := kvstore.NewMemoryStore()
		s := NewStore(kv)
		t.Cleanup(func() { _ = s.Close() })

		require.NoError(t, s.Migrate(ctx))

		version, err := s.SchemaVersion(ctx)
		require.NoError(t, err)
		assert.Equal(t, CurrentSchemaVersion, version)

		for key, want := range map[string]string{
			budgetsKey:       "[]",
			savingsGoalsKey:  "[]",
			profilesKey:      "[]",
			notificationsKey: "{}",
		} {
			value, err := kv.Get(ctx, key)
			require.NoError(t, err, key)
			assert.Equal(t, want, value, key)
		}
	})

	t.Run("migrate is idempotent and preserves data", func(t *testing.T) {
		kv := kvstore.NewMemoryStore()
		s := NewStore(kv)
		t.Cleanup(func() { _ = s.Close() })

		require.NoError(t, s.Migrate(ctx))
		require.NoError(t, kv.Set(ctx, budgetsKey, `[{"id":"b1"}]`))
		require.NoError(t, s.Migrate(ctx))

		value, err := kv.Get(ctx, budgetsKey)
		require.NoError(t, err)
		assert.Equal(t, `[{"id":"b1"}]`, value, "a second migrate must not reseed")
	})

	t.Run("newer store version is refused", func(t *testing.T) {
		kv := kvstore.NewMemoryStore()
		s := NewStore(kv)
		t.Cleanup(func() { _ = s.Close() })

		require.NoError(t, kv.Set(ctx, schemaVersionKey, "999"))
		require.Error(t, s.Migrate(ctx))
	})

	t.Run("garbage version is an error", func(t *testing.T) {
		kv := kvstore.NewMemoryStore()
		s := NewStore(kv)
		t.Cleanup(func() { _ = s.Close() })

		require.NoError(t, kv.Set(ctx, schemaVersionKey, "not-a-number"))
		_, err := s.SchemaVersion(ctx)
		require.Error(t, err)
	})
}
