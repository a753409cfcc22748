package services

import (
	"fmt"
	"slices"

	"github.com/custodia-labs/sercha-its/internal/core/domain"
	"github.com/custodia-labs/sercha-its/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-its/internal/core/ports/driving"
	"github.com/custodia-labs/sercha-its/internal/logger"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyMappingPriority   = "mapping.priority"
	keyMappingType       = "mapping.type"
	keyMappingResolution = "mapping.resolution"
	keyLabelMapping      = "label_mapping"
	keyImportWorkers     = "import.workers"
)

// DefaultWorkers is the item mapping limit when none is configured.
const DefaultWorkers = 1

var mappingKeys = map[domain.MappedField]string{
	domain.MappedPriority:   keyMappingPriority,
	domain.MappedType:       keyMappingType,
	domain.MappedResolution: keyMappingResolution,
}

// SettingsService manages the label mapping configuration.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// MappingOptions builds mapping options from the stored configuration.
// Dictionary order follows the order of [[label_mapping]] tables.
func (s *SettingsService) MappingOptions() (domain.MappingOptions, error) {
	entries, err := s.entries()
	if err != nil {
		return domain.MappingOptions{}, err
	}

	return domain.MappingOptions{
		Mapping:           domain.NewLabelMapping(entries...),
		PriorityEnabled:   s.configStore.GetBool(keyMappingPriority),
		TypeEnabled:       s.configStore.GetBool(keyMappingType),
		ResolutionEnabled: s.configStore.GetBool(keyMappingResolution),
	}, nil
}

// SetMappingEnabled toggles dictionary mapping for one field.
func (s *SettingsService) SetMappingEnabled(field domain.MappedField, enabled bool) error {
	key, ok := mappingKeys[field]
	if !ok {
		return fmt.Errorf("%w: unknown mapped field %q", domain.ErrInvalidArgument, field)
	}
	if err := s.configStore.Set(key, enabled); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	logger.Debug("mapping %s enabled=%t", field, enabled)
	return nil
}

// SetLabelMapping replaces the labels of a category. New categories are
// appended so existing lookup order is kept.
func (s *SettingsService) SetLabelMapping(category string, labels []string) error {
	if category == "" {
		return fmt.Errorf("%w: category is required", domain.ErrInvalidArgument)
	}
	if len(labels) == 0 {
		return fmt.Errorf("%w: at least one label is required", domain.ErrInvalidArgument)
	}

	entries, err := s.entries()
	if err != nil {
		return err
	}

	idx := slices.IndexFunc(entries, func(e domain.MappingEntry) bool { return e.Category == category })
	entry := domain.MappingEntry{Category: category, Labels: slices.Clone(labels)}
	if idx >= 0 {
		entries[idx] = entry
	} else {
		entries = append(entries, entry)
	}

	return s.saveEntries(entries)
}

// RemoveLabelMapping deletes a category from the dictionary.
func (s *SettingsService) RemoveLabelMapping(category string) error {
	entries, err := s.entries()
	if err != nil {
		return err
	}

	idx := slices.IndexFunc(entries, func(e domain.MappingEntry) bool { return e.Category == category })
	if idx < 0 {
		return fmt.Errorf("category %q: %w", category, domain.ErrNotFound)
	}

	return s.saveEntries(slices.Delete(entries, idx, idx+1))
}

// Workers returns the configured item mapping limit.
func (s *SettingsService) Workers() int {
	if n := s.configStore.GetInt(keyImportWorkers); n > 0 {
		return n
	}
	return DefaultWorkers
}

// SetWorkers updates the item mapping limit.
func (s *SettingsService) SetWorkers(n int) error {
	if n < 1 {
		return fmt.Errorf("%w: workers must be at least 1, got %d", domain.ErrInvalidArgument, n)
	}
	if err := s.configStore.Set(keyImportWorkers, n); err != nil {
		return fmt.Errorf("save %s: %w", keyImportWorkers, err)
	}
	return nil
}

// entries reads [[label_mapping]] tables in file order.
func (s *SettingsService) entries() ([]domain.MappingEntry, error) {
	tables := s.configStore.GetTables(keyLabelMapping)
	entries := make([]domain.MappingEntry, 0, len(tables))

	for i, table := range tables {
		category, ok := table["category"].(string)
		if !ok || category == "" {
			return nil, fmt.Errorf("%w: %s entry %d has no category", domain.ErrInvalidInput, keyLabelMapping, i+1)
		}
		labels, ok := stringList(table["labels"])
		if !ok {
			return nil, fmt.Errorf("%w: %s entry %d (%s) labels must be a list of strings",
				domain.ErrInvalidInput, keyLabelMapping, i+1, category)
		}
		entries = append(entries, domain.MappingEntry{Category: category, Labels: labels})
	}

	return entries, nil
}

func (s *SettingsService) saveEntries(entries []domain.MappingEntry) error {
	if len(entries) == 0 {
		if err := s.configStore.Delete(keyLabelMapping); err != nil {
			return fmt.Errorf("save %s: %w", keyLabelMapping, err)
		}
		return nil
	}

	tables := make([]map[string]any, len(entries))
	for i, e := range entries {
		tables[i] = map[string]any{"category": e.Category, "labels": e.Labels}
	}
	if err := s.configStore.Set(keyLabelMapping, tables); err != nil {
		return fmt.Errorf("save %s: %w", keyLabelMapping, err)
	}
	logger.Debug("label mapping saved with %d categories", len(entries))
	return nil
}

// stringList accepts both decoded TOML arrays and native string slices.
func stringList(v any) ([]string, bool) {
	switch list := v.(type) {
	case nil:
		return nil, true
	case []string:
		return slices.Clone(list), true
	case []any:
		result := make([]string, 0, len(list))
		for _, item := range list {
			str, ok := item.(string)
			if !ok {
				return nil, false
			}
			result = append(result, str)
		}
		return result, true
	default:
		return nil, false
	}
}
