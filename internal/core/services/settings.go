package services

import (
	"fmt"

	"github.com/custodia-labs/chapter-bundler/internal/core/domain"
	"github.com/custodia-labs/chapter-bundler/internal/core/ports/driven"
	"github.com/custodia-labs/chapter-bundler/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyInputDir          = "input.dir"
	keyInputPrefix       = "input.prefix"
	keyInputIndexFile    = "input.index_file"
	keyOutputDir         = "output.dir"
	keyOutputDatasetFile = "output.dataset_file"
	keyOutputIndexFile   = "output.index_file"
	keyOutputCompress    = "output.compress"
	keyOutputSQLite      = "output.sqlite"
)

// SettingsService resolves run settings from a config store.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
// A nil config store yields the defaults.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get returns the configured settings with defaults applied.
func (s *SettingsService) Get() (*domain.Settings, error) {
	defaults := domain.DefaultSettings()

	settings := &domain.Settings{
		Input: domain.InputSettings{
			Dir:       s.getString(keyInputDir, defaults.Input.Dir),
			Prefix:    s.getString(keyInputPrefix, defaults.Input.Prefix),
			IndexFile: s.getString(keyInputIndexFile, defaults.Input.IndexFile),
		},
		Output: domain.OutputSettings{
			Dir:         s.getString(keyOutputDir, defaults.Output.Dir),
			DatasetFile: s.getString(keyOutputDatasetFile, defaults.Output.DatasetFile),
			IndexFile:   s.getString(keyOutputIndexFile, defaults.Output.IndexFile),
			Compress:    s.getBool(keyOutputCompress, defaults.Output.Compress),
			SQLitePath:  s.getString(keyOutputSQLite, defaults.Output.SQLitePath),
		},
	}

	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

// Save writes settings to the config store and persists them.
func (s *SettingsService) Save(settings *domain.Settings) error {
	if s.configStore == nil {
		return domain.ErrNotImplemented
	}
	if err := settings.Validate(); err != nil {
		return err
	}

	values := []struct {
		key   string
		value any
	}{
		{keyInputDir, settings.Input.Dir},
		{keyInputPrefix, settings.Input.Prefix},
		{keyInputIndexFile, settings.Input.IndexFile},
		{keyOutputDir, settings.Output.Dir},
		{keyOutputDatasetFile, settings.Output.DatasetFile},
		{keyOutputIndexFile, settings.Output.IndexFile},
		{keyOutputCompress, settings.Output.Compress},
		{keyOutputSQLite, settings.Output.SQLitePath},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	return s.configStore.Save()
}

// GetDefaults returns the settings used with no configuration.
func (s *SettingsService) GetDefaults() domain.Settings {
	return domain.DefaultSettings()
}

func (s *SettingsService) getString(key, defaultVal string) string {
	if s.configStore == nil {
		return defaultVal
	}
	if val := s.configStore.GetString(key); val != "" {
		return val
	}
	return defaultVal
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if s.configStore == nil {
		return defaultVal
	}
	if _, ok := s.configStore.Get(key); !ok {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}
