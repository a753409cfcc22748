package driving

import "github.com/custodia-labs/sercha-its/internal/core/domain"

// SettingsService manages the label mapping configuration.
type SettingsService interface {
	// MappingOptions returns the configured dictionary and mapping flags.
	MappingOptions() (domain.MappingOptions, error)

	// SetMappingEnabled toggles dictionary mapping for one field.
	SetMappingEnabled(field domain.MappedField, enabled bool) error

	// SetLabelMapping replaces the labels of a category, appending the
	// category to the dictionary if it is new.
	SetLabelMapping(category string, labels []string) error

	// RemoveLabelMapping deletes a category from the dictionary.
	RemoveLabelMapping(category string) error

	// Workers returns how many items are mapped concurrently.
	Workers() int

	// SetWorkers updates the concurrent item mapping limit.
	SetWorkers(n int) error
}
