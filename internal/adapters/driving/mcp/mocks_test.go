package mcp

import (
	"context"

	"github.com/custodia-labs/sercha-its/internal/core/domain"
	"github.com/custodia-labs/sercha-its/internal/core/ports/driving"
)

// mockImportService is a mock implementation of driving.ImportService.
type mockImportService struct {
	issues        []domain.Issue
	issue         *domain.Issue
	imports       []domain.Import
	result        *driving.ImportResult
	err           error
	lastPath      string
	lastOverrides driving.MappingOverrides
	lastImportID  string
}

func (m *mockImportService) Preview(
	_ context.Context,
	path string,
	overrides driving.MappingOverrides,
) ([]domain.Issue, error) {
	m.lastPath = path
	m.lastOverrides = overrides
	return m.issues, m.err
}

func (m *mockImportService) Import(
	_ context.Context,
	path string,
	overrides driving.MappingOverrides,
) (*driving.ImportResult, error) {
	m.lastPath = path
	m.lastOverrides = overrides
	return m.result, m.err
}

func (m *mockImportService) Imports(_ context.Context) ([]domain.Import, error) {
	return m.imports, m.err
}

func (m *mockImportService) GetImport(_ context.Context, id string) (*domain.Import, error) {
	m.lastImportID = id
	if m.err != nil {
		return nil, m.err
	}
	if len(m.imports) == 0 {
		return nil, domain.ErrNotFound
	}
	return &m.imports[0], nil
}

func (m *mockImportService) Issues(_ context.Context, importID string) ([]domain.Issue, error) {
	m.lastImportID = importID
	return m.issues, m.err
}

func (m *mockImportService) Issue(_ context.Context, importID, _ string) (*domain.Issue, error) {
	m.lastImportID = importID
	return m.issue, m.err
}

func (m *mockImportService) Delete(_ context.Context, _ string) error {
	return m.err
}

// mockSettingsService is a mock implementation of driving.SettingsService.
type mockSettingsService struct {
	opts    domain.MappingOptions
	workers int
	err     error
}

func (m *mockSettingsService) MappingOptions() (domain.MappingOptions, error) {
	return m.opts, m.err
}

func (m *mockSettingsService) SetMappingEnabled(_ domain.MappedField, _ bool) error {
	return m.err
}

func (m *mockSettingsService) SetLabelMapping(_ string, _ []string) error {
	return m.err
}

func (m *mockSettingsService) RemoveLabelMapping(_ string) error {
	return m.err
}

func (m *mockSettingsService) Workers() int {
	return m.workers
}

func (m *mockSettingsService) SetWorkers(_ int) error {
	return m.err
}
