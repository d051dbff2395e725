package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/pennyjar/pennyjar/internal/kvstore"
	"github.com/pennyjar/pennyjar/internal/model"
)

func profileKey(id string) string { return profileKeyPrefix + id }

func taken(profiles []model.UserProfile, id string) bool {
	for _, p := range profiles {
		if p.ID == id {
			return true
		}
	}
	return false
}

// isSystemKey reports whether a key belongs to the profile machinery itself
// and must never be swapped with user data.
func isSystemKey(key string) bool {
	switch key {
	case profilesKey, activeProfileKey, schemaVersionKey:
		return true
	}
	return strings.HasPrefix(key, profileKeyPrefix)
}

// GetProfiles returns the profile registry.
func (s *Store) GetProfiles(ctx context.Context) []model.UserProfile {
	return loadJSON(ctx, s, profilesKey, []model.UserProfile{})
}

// GetActiveProfile returns the currently active profile, or nil when no
// profile is active.
func (s *Store) GetActiveProfile(ctx context.Context) (*model.UserProfile, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	id, err := s.activeProfileID(ctx)
	if err != nil {
		return nil, err
	}
	if id == "" {
		return nil, nil
	}
	for _, p := range s.GetProfiles(ctx) {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, nil
}

// CreateProfile registers a new profile, initializes its empty snapshot, and
// immediately makes it active.
func (s *Store) CreateProfile(ctx context.Context, name, email, avatar string) (*model.UserProfile, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(name, "name"); err != nil {
		return nil, err
	}

	now := time.Now()
	existing := s.GetProfiles(ctx)

	// Millisecond ids can collide when profiles are created back to back.
	id := now.UnixMilli()
	for taken(existing, fmt.Sprintf("user_%d", id)) {
		id++
	}

	profile := model.UserProfile{
		ID:        fmt.Sprintf("user_%d", id),
		Name:      name,
		Email:     email,
		Avatar:    avatar,
		CreatedAt: now,
		LastLogin: now,
	}

	profiles := append(existing, profile)
	if err := saveJSON(ctx, s, profilesKey, profiles); err != nil {
		return nil, fmt.Errorf("failed to save profile registry: %w", err)
	}
	if err := saveJSON(ctx, s, profileKey(profile.ID), model.ProfileSnapshot{}); err != nil {
		return nil, fmt.Errorf("failed to initialize profile snapshot: %w", err)
	}

	if err := s.SetActiveProfile(ctx, profile.ID); err != nil {
		return nil, err
	}

	profile.IsActive = true
	slog.Info("created profile", "id", profile.ID, "name", name)
	return &profile, nil
}

// SetActiveProfile switches the live store to the given profile: the
// outgoing profile's non-system keys are snapshotted, the live store is
// cleared, and the incoming profile's snapshot is loaded back. The swap is
// O(total keys) and not atomic; a crash mid-swap can leave a mixed store.
func (s *Store) SetActiveProfile(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	profiles := s.GetProfiles(ctx)
	found := false
	for _, p := range profiles {
		if p.ID == id {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("%w: %s", ErrProfileNotFound, id)
	}

	current, err := s.activeProfileID(ctx)
	if err != nil {
		return err
	}
	if current == id {
		return nil
	}

	if current != "" {
		snapshot, err := s.liveSnapshot(ctx)
		if err != nil {
			return fmt.Errorf("failed to snapshot outgoing profile: %w", err)
		}
		if err := saveJSON(ctx, s, profileKey(current), snapshot); err != nil {
			return fmt.Errorf("failed to save outgoing snapshot: %w", err)
		}
	}

	if err := s.clearLiveKeys(ctx); err != nil {
		return fmt.Errorf("failed to clear live store: %w", err)
	}

	// Snapshots can come from imported files; never replay system keys.
	incoming := loadJSON(ctx, s, profileKey(id), model.ProfileSnapshot{})
	for key, value := range incoming {
		if isSystemKey(key) {
			continue
		}
		if err := s.kv.Set(ctx, key, value); err != nil {
			return fmt.Errorf("failed to restore key %q: %w", key, err)
		}
	}

	if err := s.kv.Set(ctx, activeProfileKey, id); err != nil {
		return fmt.Errorf("failed to update active profile pointer: %w", err)
	}

	now := time.Now()
	updated := make([]model.UserProfile, 0, len(profiles))
	for _, p := range profiles {
		p.IsActive = p.ID == id
		if p.IsActive {
			p.LastLogin = now
		}
		updated = append(updated, p)
	}
	if err := saveJSON(ctx, s, profilesKey, updated); err != nil {
		return fmt.Errorf("failed to save profile registry: %w", err)
	}

	// Everything cached before the swap belongs to the outgoing profile.
	s.cache.Clear()

	slog.Info("switched active profile", "from", current, "to", id)
	return nil
}

// UpdateProfile merges a patch into the profile record. Returns nil when
// the profile is absent.
func (s *Store) UpdateProfile(ctx context.Context, id string, patch ProfilePatch) (*model.UserProfile, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	profiles := s.GetProfiles(ctx)
	updated := make([]model.UserProfile, 0, len(profiles))
	var result *model.UserProfile
	for _, p := range profiles {
		if p.ID == id {
			patch.apply(&p)
			copied := p
			result = &copied
		}
		updated = append(updated, p)
	}
	if result == nil {
		return nil, nil
	}
	if err := saveJSON(ctx, s, profilesKey, updated); err != nil {
		return nil, err
	}
	return result, nil
}

// DeleteProfile removes a profile and its snapshot. When the active profile
// is deleted, its live data is cleared and the first remaining profile is
// promoted; with no profiles left, no profile is active.
func (s *Store) DeleteProfile(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	profiles := s.GetProfiles(ctx)
	kept := make([]model.UserProfile, 0, len(profiles))
	found := false
	for _, p := range profiles {
		if p.ID == id {
			found = true
			continue
		}
		kept = append(kept, p)
	}
	if !found {
		return fmt.Errorf("%w: %s", ErrProfileNotFound, id)
	}

	current, err := s.activeProfileID(ctx)
	if err != nil {
		return err
	}
	wasActive := current == id

	if err := saveJSON(ctx, s, profilesKey, kept); err != nil {
		return fmt.Errorf("failed to save profile registry: %w", err)
	}
	if err := s.deleteKey(ctx, profileKey(id)); err != nil {
		return err
	}

	if wasActive {
		if err := s.deleteKey(ctx, activeProfileKey); err != nil {
			return err
		}
		if err := s.clearLiveKeys(ctx); err != nil {
			return fmt.Errorf("failed to clear deleted profile data: %w", err)
		}
		s.cache.Clear()

		if len(kept) > 0 {
			return s.SetActiveProfile(ctx, kept[0].ID)
		}
	}

	slog.Info("deleted profile", "id", id, "was_active", wasActive)
	return nil
}

// ExportProfileData returns a profile's full snapshot as a flat key-value
// map. For the active profile the live store is exported.
func (s *Store) ExportProfileData(ctx context.Context, id string) (model.ProfileSnapshot, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	found := false
	for _, p := range s.GetProfiles(ctx) {
		if p.ID == id {
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrProfileNotFound, id)
	}

	current, err := s.activeProfileID(ctx)
	if err != nil {
		return nil, err
	}
	if current == id {
		return s.liveSnapshot(ctx)
	}
	return loadJSON(ctx, s, profileKey(id), model.ProfileSnapshot{}), nil
}

// ImportProfileData overwrites a profile's snapshot with the given map,
// ignoring any system keys it carries. For the active profile the live store
// is replaced directly.
func (s *Store) ImportProfileData(ctx context.Context, id string, data model.ProfileSnapshot) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	found := false
	for _, p := range s.GetProfiles(ctx) {
		if p.ID == id {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("%w: %s", ErrProfileNotFound, id)
	}

	current, cerr := s.activeProfileID(ctx)
	if cerr != nil {
		return cerr
	}
	if current != id {
		filtered := make(model.ProfileSnapshot, len(data))
		for key, value := range data {
			if isSystemKey(key) {
				continue
			}
			filtered[key] = value
		}
		return saveJSON(ctx, s, profileKey(id), filtered)
	}

	if err := s.clearLiveKeys(ctx); err != nil {
		return fmt.Errorf("failed to clear live store before import: %w", err)
	}
	for key, value := range data {
		if isSystemKey(key) {
			continue
		}
		if err := s.kv.Set(ctx, key, value); err != nil {
			return fmt.Errorf("failed to import key %q: %w", key, err)
		}
	}
	s.cache.Clear()
	return nil
}

// activeProfileID reads the active profile pointer, returning "" when no
// profile is active. The pointer is stored raw, not JSON-encoded.
func (s *Store) activeProfileID(ctx context.Context) (string, error) {
	id, err := s.kv.Get(ctx, activeProfileKey)
	if err != nil {
		if errors.Is(err, kvstore.ErrKeyNotFound) {
			return "", nil
		}
		return "", err
	}
	return id, nil
}

// liveSnapshot copies every non-system key and value from the live store.
func (s *Store) liveSnapshot(ctx context.Context) (model.ProfileSnapshot, error) {
	keys, err := s.kv.Keys(ctx)
	if err != nil {
		return nil, err
	}

	snapshot := make(model.ProfileSnapshot)
	for _, key := range keys {
		if isSystemKey(key) {
			continue
		}
		value, err := s.kv.Get(ctx, key)
		if err != nil {
			return nil, err
		}
		snapshot[key] = value
	}
	return snapshot, nil
}

// clearLiveKeys removes every non-system key from the live store.
func (s *Store) clearLiveKeys(ctx context.Context) error {
	keys, err := s.kv.Keys(ctx)
	if err != nil {
		return err
	}
	for _, key := range keys {
		if isSystemKey(key) {
			continue
		}
		if err := s.kv.Delete(ctx, key); err != nil {
			return err
		}
	}
	return nil
}
