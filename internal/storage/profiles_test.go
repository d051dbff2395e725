package storage

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pennyjar/pennyjar/internal/kvstore"
	"github.com/pennyjar/pennyjar/internal/model"
)

func TestCreateProfile(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	alice, err := s.CreateProfile(ctx, "Alice", "alice@example.com", "")
	require.NoError(t, err)
	require.NotEmpty(t, alice.ID)
	assert.True(t, alice.IsActive, "a new profile becomes active immediately")

	active, err := s.GetActiveProfile(ctx)
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, alice.ID, active.ID)

	t.Run("back-to-back creates get distinct ids", func(t *testing.T) {
		bob, err := s.CreateProfile(ctx, "Bob", "", "")
		require.NoError(t, err)
		assert.NotEqual(t, alice.ID, bob.ID)
		assert.Len(t, s.GetProfiles(ctx), 2)
	})

	t.Run("empty name rejected", func(t *testing.T) {
		_, err := s.CreateProfile(ctx, " ", "", "")
		require.ErrorIs(t, err, ErrEmptyString)
	})
}

func TestProfileSwapIsExact(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	alice, err := s.CreateProfile(ctx, "Alice", "", "")
	require.NoError(t, err)

	// Build up Alice's data while she is active.
	budget, err := s.CreateBudget(ctx, "Alice budget", amt(t, "1000"))
	require.NoError(t, err)
	_, err = s.AddDebt(ctx, GlobalScope, model.DebtItem{Name: "alice debt", Amount: amt(t, "50")})
	require.NoError(t, err)

	bob, err := s.CreateProfile(ctx, "Bob", "", "")
	require.NoError(t, err)

	t.Run("new profile sees none of the old data", func(t *testing.T) {
		assert.Empty(t, s.GetBudgets(ctx))
		assert.Empty(t, s.GetDebtData(ctx, GlobalScope).Items)
	})

	// Bob writes his own data.
	_, err = s.CreateBudget(ctx, "Bob budget", amt(t, "200"))
	require.NoError(t, err)

	t.Run("switching back restores the old data exactly", func(t *testing.T) {
		require.NoError(t, s.SetActiveProfile(ctx, alice.ID))

		budgets := s.GetBudgets(ctx)
		require.Len(t, budgets, 1)
		assert.Equal(t, budget.ID, budgets[0].ID)
		assert.Equal(t, "Alice budget", budgets[0].Name)

		debts := s.GetDebtData(ctx, GlobalScope)
		require.Len(t, debts.Items, 1)
		assert.Equal(t, "alice debt", debts.Items[0].Name)
	})

	t.Run("profile registry survives every swap", func(t *testing.T) {
		profiles := s.GetProfiles(ctx)
		require.Len(t, profiles, 2)
		for _, p := range profiles {
			if p.ID == alice.ID {
				assert.True(t, p.IsActive)
			}
			if p.ID == bob.ID {
				assert.False(t, p.IsActive)
			}
		}
	})

	t.Run("switching to the active profile is a no-op", func(t *testing.T) {
		require.NoError(t, s.SetActiveProfile(ctx, alice.ID))
		assert.Len(t, s.GetBudgets(ctx), 1)
	})

	t.Run("unknown profile id errors", func(t *testing.T) {
		require.ErrorIs(t, s.SetActiveProfile(ctx, "ghost"), ErrProfileNotFound)
	})
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	profile, err := s.CreateProfile(ctx, "Alice", "old@example.com", "")
	require.NoError(t, err)

	email := "new@example.com"
	updated, err := s.UpdateProfile(ctx, profile.ID, ProfilePatch{Email: &email})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "new@example.com", updated.Email)
	assert.Equal(t, "Alice", updated.Name, "unpatched field must survive")

	missing, err := s.UpdateProfile(ctx, "ghost", ProfilePatch{})
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestDeleteProfile(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	alice, err := s.CreateProfile(ctx, "Alice", "", "")
	require.NoError(t, err)
	_, err = s.CreateBudget(ctx, "Alice budget", amt(t, "100"))
	require.NoError(t, err)

	bob, err := s.CreateProfile(ctx, "Bob", "", "")
	require.NoError(t, err)

	t.Run("deleting the active profile promotes a survivor", func(t *testing.T) {
		require.NoError(t, s.DeleteProfile(ctx, bob.ID))

		active, err := s.GetActiveProfile(ctx)
		require.NoError(t, err)
		require.NotNil(t, active)
		assert.Equal(t, alice.ID, active.ID)

		budgets := s.GetBudgets(ctx)
		require.Len(t, budgets, 1, "promoted profile's data must be restored")
		assert.Equal(t, "Alice budget", budgets[0].Name)
	})

	t.Run("deleting the last profile leaves none active", func(t *testing.T) {
		require.NoError(t, s.DeleteProfile(ctx, alice.ID))

		active, err := s.GetActiveProfile(ctx)
		require.NoError(t, err)
		assert.Nil(t, active)
		assert.Empty(t, s.GetProfiles(ctx))
		assert.Empty(t, s.GetBudgets(ctx), "deleted profile's live data is cleared")
	})

	t.Run("unknown profile id errors", func(t *testing.T) {
		require.ErrorIs(t, s.DeleteProfile(ctx, "ghost"), ErrProfileNotFound)
	})
}

func TestExportImportProfileData(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	alice, err := s.CreateProfile(ctx, "Alice", "", "")
	require.NoError(t, err)
	_, err = s.CreateBudget(ctx, "Alice budget", amt(t, "100"))
	require.NoError(t, err)

	snapshot, err := s.ExportProfileData(ctx, alice.ID)
	require.NoError(t, err)
	assert.Contains(t, snapshot, budgetsKey)

	t.Run("system keys never leave via export", func(t *testing.T) {
		assert.NotContains(t, snapshot, profilesKey)
		assert.NotContains(t, snapshot, activeProfileKey)
		assert.NotContains(t, snapshot, schemaVersionKey)
	})

	t.Run("import replaces the live data", func(t *testing.T) {
		require.NoError(t, s.ImportProfileData(ctx, alice.ID, model.ProfileSnapshot{
			budgetsKey: `[{"id":"imported","name":"Imported","createdAt":"2024-01-01T00:00:00Z"}]`,
		}))

		budgets := s.GetBudgets(ctx)
		require.Len(t, budgets, 1)
		assert.Equal(t, "imported", budgets[0].ID)
	})

	t.Run("import skips system keys", func(t *testing.T) {
		require.NoError(t, s.ImportProfileData(ctx, alice.ID, model.ProfileSnapshot{
			activeProfileKey: "hijacked",
			budgetsKey:       `[]`,
		}))

		active, err := s.GetActiveProfile(ctx)
		require.NoError(t, err)
		require.NotNil(t, active)
		assert.Equal(t, alice.ID, active.ID)
	})

	t.Run("inactive profile round-trips through its snapshot", func(t *testing.T) {
		bob, err := s.CreateProfile(ctx, "Bob", "", "")
		require.NoError(t, err)
		require.NoError(t, s.SetActiveProfile(ctx, alice.ID))

		require.NoError(t, s.ImportProfileData(ctx, bob.ID, model.ProfileSnapshot{
			budgetsKey: `[{"id":"bobs","name":"Bobs","createdAt":"2024-01-01T00:00:00Z"}]`,
		}))

		exported, err := s.ExportProfileData(ctx, bob.ID)
		require.NoError(t, err)
		assert.Contains(t, exported[budgetsKey], `"bobs"`)
	})

	t.Run("unknown profile id errors", func(t *testing.T) {
		_, err := s.ExportProfileData(ctx, "ghost")
		require.ErrorIs(t, err, ErrProfileNotFound)
		require.ErrorIs(t, s.ImportProfileData(ctx, "ghost", nil), ErrProfileNotFound)
	})
}

func TestSnapshotRestoreSkipsSystemKeys(t *testing.T) {
	ctx := context.Background()
	kv := kvstore.NewMemoryStore()
	s := NewStore(kv)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.Migrate(ctx))

	alice, err := s.CreateProfile(ctx, "Alice", "", "")
	require.NoError(t, err)
	_, err = s.CreateBudget(ctx, "Alice budget", amt(t, "100"))
	require.NoError(t, err)
	bob, err := s.CreateProfile(ctx, "Bob", "", "")
	require.NoError(t, err)
	require.NoError(t, s.SetActiveProfile(ctx, alice.ID))

	t.Run("imports into an inactive profile are filtered", func(t *testing.T) {
		require.NoError(t, s.ImportProfileData(ctx, bob.ID, model.ProfileSnapshot{
			schemaVersionKey:     "999",
			profileKey(alice.ID): "junk",
			budgetsKey:           `[{"id":"bobs","name":"Bobs","createdAt":"2024-01-01T00:00:00Z"}]`,
		}))

		stored, err := s.ExportProfileData(ctx, bob.ID)
		require.NoError(t, err)
		assert.NotContains(t, stored, schemaVersionKey)
		assert.NotContains(t, stored, profileKey(alice.ID))
		assert.Contains(t, stored, budgetsKey)
	})

	t.Run("a poisoned snapshot cannot clobber system state on switch", func(t *testing.T) {
		// Write the snapshot past the import filter, as an older version or
		// another tool could have.
		poisoned, err := json.Marshal(model.ProfileSnapshot{
			schemaVersionKey:     "999",
			profileKey(alice.ID): "junk",
			budgetsKey:           `[{"id":"bobs","name":"Bobs","createdAt":"2024-01-01T00:00:00Z"}]`,
		})
		require.NoError(t, err)
		require.NoError(t, kv.Set(ctx, profileKey(bob.ID), string(poisoned)))
		s.cache.Clear()

		require.NoError(t, s.SetActiveProfile(ctx, bob.ID))

		version, err := s.SchemaVersion(ctx)
		require.NoError(t, err)
		assert.Equal(t, CurrentSchemaVersion, version, "schema version must survive the switch")

		budgets := s.GetBudgets(ctx)
		require.Len(t, budgets, 1)
		assert.Equal(t, "bobs", budgets[0].ID, "data keys from the snapshot are restored")

		require.NoError(t, s.SetActiveProfile(ctx, alice.ID))
		budgets = s.GetBudgets(ctx)
		require.Len(t, budgets, 1)
		assert.Equal(t, "Alice budget", budgets[0].Name, "the other profile's snapshot must be intact")
	})
}
