package driving

import "github.com/custodia-labs/chapter-bundler/internal/core/domain"

// SettingsService resolves the effective run settings.
type SettingsService interface {
	// Get returns the configured settings with defaults applied.
	Get() (*domain.Settings, error)

	// Save writes settings back to the configuration store.
	Save(settings *domain.Settings) error

	// GetDefaults returns the settings used with no configuration.
	GetDefaults() domain.Settings
}
