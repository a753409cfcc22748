package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-its/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/sercha-its/internal/core/domain"
)

func TestNewSettingsService(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())
	require.NotNil(t, service)
}

func TestSettingsService_MappingOptions_Defaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	opts, err := service.MappingOptions()

	require.NoError(t, err)
	assert.False(t, opts.PriorityEnabled)
	assert.False(t, opts.TypeEnabled)
	assert.False(t, opts.ResolutionEnabled)
	assert.Equal(t, 0, opts.Mapping.Len())
	assert.Equal(t, DefaultWorkers, service.Workers())
}

func TestSettingsService_MappingOptions_FromStore(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("mapping.priority", true)
	_ = store.Set("mapping.resolution", true)
	// Decoded TOML arrays of tables arrive as []any
	_ = store.Set("label_mapping", []any{
		map[string]any{"category": "HIGH", "labels": []any{"Critical", "Blocker"}},
		map[string]any{"category": "LOW", "labels": []any{"Minor"}},
	})

	opts, err := NewSettingsService(store).MappingOptions()

	require.NoError(t, err)
	assert.True(t, opts.PriorityEnabled)
	assert.False(t, opts.TypeEnabled)
	assert.True(t, opts.ResolutionEnabled)
	assert.Equal(t, []string{"HIGH", "LOW"}, opts.Mapping.Categories())
	assert.Equal(t, []string{"Critical", "Blocker"}, opts.Mapping.Labels("HIGH"))
}

func TestSettingsService_MappingOptions_InvalidTables(t *testing.T) {
	tests := []struct {
		name  string
		table map[string]any
	}{
		{"missing category", map[string]any{"labels": []any{"Critical"}}},
		{"empty category", map[string]any{"category": "", "labels": []any{"Critical"}}},
		{"labels not a list", map[string]any{"category": "HIGH", "labels": "Critical"}},
		{"non-string label", map[string]any{"category": "HIGH", "labels": []any{"Critical", int64(3)}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := memory.NewConfigStore()
			_ = store.Set("label_mapping", []any{tt.table})

			_, err := NewSettingsService(store).MappingOptions()
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestSettingsService_SetMappingEnabled(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	require.NoError(t, service.SetMappingEnabled(domain.MappedType, true))
	assert.True(t, store.GetBool("mapping.type"))

	opts, err := service.MappingOptions()
	require.NoError(t, err)
	assert.True(t, opts.TypeEnabled)
	assert.False(t, opts.PriorityEnabled)

	require.NoError(t, service.SetMappingEnabled(domain.MappedType, false))
	assert.False(t, store.GetBool("mapping.type"))
}

func TestSettingsService_SetMappingEnabled_UnknownField(t *testing.T) {
	err := NewSettingsService(memory.NewConfigStore()).SetMappingEnabled(domain.MappedField("status"), true)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestSettingsService_SetLabelMapping(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	require.NoError(t, service.SetLabelMapping("HIGH", []string{"Critical"}))
	require.NoError(t, service.SetLabelMapping("LOW", []string{"Minor"}))
	require.NoError(t, service.SetLabelMapping("HIGH", []string{"Critical", "Blocker"}))

	opts, err := service.MappingOptions()
	require.NoError(t, err)
	assert.Equal(t, []string{"HIGH", "LOW"}, opts.Mapping.Categories(), "replaced category keeps its position")
	assert.Equal(t, []string{"Critical", "Blocker"}, opts.Mapping.Labels("HIGH"))
}

func TestSettingsService_SetLabelMapping_Invalid(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	assert.ErrorIs(t, service.SetLabelMapping("", []string{"Critical"}), domain.ErrInvalidArgument)
	assert.ErrorIs(t, service.SetLabelMapping("HIGH", nil), domain.ErrInvalidArgument)
}

func TestSettingsService_RemoveLabelMapping(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)
	require.NoError(t, service.SetLabelMapping("HIGH", []string{"Critical"}))
	require.NoError(t, service.SetLabelMapping("LOW", []string{"Minor"}))

	require.NoError(t, service.RemoveLabelMapping("HIGH"))

	opts, err := service.MappingOptions()
	require.NoError(t, err)
	assert.Equal(t, []string{"LOW"}, opts.Mapping.Categories())

	require.NoError(t, service.RemoveLabelMapping("LOW"))
	_, ok := store.Get("label_mapping")
	assert.False(t, ok, "empty dictionary removes the key")

	assert.ErrorIs(t, service.RemoveLabelMapping("LOW"), domain.ErrNotFound)
}

func TestSettingsService_Workers(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	require.NoError(t, service.SetWorkers(6))
	assert.Equal(t, 6, service.Workers())

	assert.ErrorIs(t, service.SetWorkers(0), domain.ErrInvalidArgument)
	assert.Equal(t, 6, service.Workers())

	_ = store.Set("import.workers", -2)
	assert.Equal(t, DefaultWorkers, service.Workers())
}
