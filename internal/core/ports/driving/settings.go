package driving

import "github.com/custodia-labs/foodtrend/internal/core/domain"

// SettingsService resolves application settings from configuration.
type SettingsService interface {
	// Get returns the current settings, defaults filled in.
	Get() domain.AppSettings

	// Set validates and stores a single configuration key.
	Set(key, value string) error

	// Keys lists the supported configuration keys.
	Keys() []string
	// Value returns the effective value of a key, defaults applied.
	Value(key string) (string, error)

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
