package collection

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"

	"github.com/flashdeck/flashdeck-api/internal/domain"
	"github.com/flashdeck/flashdeck-api/internal/platform/storage"
)

const settingsRecordKey = "flashcard-settings-storage"

// SettingsPatch describes a partial settings update. Nil fields are left
// unchanged.
type SettingsPatch struct {
	ShowProgressBar *bool
	Theme           *domain.Theme
}

// SettingsStore owns the durable user preferences record. It follows the
// same hydrate/read/write-through lifecycle as the collection Store but
// holds a single Settings value instead of collections.
type SettingsStore struct {
	mu       sync.RWMutex
	records  storage.RecordStore
	logger   *slog.Logger
	settings domain.Settings
	hydrated bool
}

// NewSettings creates a new SettingsStore backed by the given record store.
func NewSettings(records storage.RecordStore, logger *slog.Logger) *SettingsStore {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for collection.SettingsStore")
	}

	return &SettingsStore{
		records:  records,
		logger:   logger.With(slog.String("component", "settings_store")),
		settings: domain.DefaultSettings(),
	}
}

// Hydrate loads the settings record, falling back to defaults when the
// record is missing, unreadable, or invalid. It never fails the caller and
// is idempotent.
func (s *SettingsStore) Hydrate(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.hydrated {
		return
	}
	s.hydrated = true

	data, err := s.records.Read(ctx, settingsRecordKey)
	if err != nil {
		if !errors.Is(err, storage.ErrNoRecord) {
			s.logger.Warn("failed to read settings record, using defaults",
				slog.Any("error", err))
		}
		return
	}

	var loaded domain.Settings
	if err := json.Unmarshal(data, &loaded); err != nil {
		s.logger.Warn("failed to parse settings record, using defaults",
			slog.Any("error", err))
		return
	}
	if err := loaded.Validate(); err != nil {
		s.logger.Warn("stored settings invalid, using defaults",
			slog.Any("error", err))
		return
	}

	s.settings = loaded
}

// IsHydrated reports whether Hydrate has completed.
func (s *SettingsStore) IsHydrated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hydrated
}

// Settings returns the current settings.
func (s *SettingsStore) Settings() domain.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// Update merges the patch into the in-memory settings and persists the
// whole record. Returns the updated settings, or domain.ErrInvalidTheme if
// the patch carries an unknown theme (state untouched).
func (s *SettingsStore) Update(ctx context.Context, patch SettingsPatch) (domain.Settings, error) {
	if patch.Theme != nil && !patch.Theme.Valid() {
		return domain.Settings{}, domain.ErrInvalidTheme
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if patch.ShowProgressBar != nil {
		s.settings.ShowProgressBar = *patch.ShowProgressBar
	}
	if patch.Theme != nil {
		s.settings.Theme = *patch.Theme
	}

	data, err := json.Marshal(s.settings)
	if err != nil {
		s.logger.Error("failed to serialize settings record", slog.Any("error", err))
		return s.settings, nil
	}
	if err := s.records.Write(ctx, settingsRecordKey, data); err != nil {
		s.logger.Error("failed to persist settings record", slog.Any("error", err))
	}

	return s.settings, nil
}
