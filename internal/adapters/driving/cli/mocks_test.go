package cli

import (
	"bytes"
	"context"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/custodia-labs/sercha-its/internal/core/domain"
	"github.com/custodia-labs/sercha-its/internal/core/ports/driving"
)

func strPtr(s string) *string { return &s }

func testIssues() []domain.Issue {
	created := time.Date(2004, time.February, 16, 0, 29, 19, 0, time.UTC)
	return []domain.Issue{
		{
			IssueID:    "PROJ-1",
			Summary:    strPtr("Crash on startup"),
			Created:    &created,
			Status:     domain.StatusOpen,
			Priority:   domain.PriorityCritical,
			Type:       domain.TypeBug,
			Resolution: domain.ResolutionUnresolved,
			Reporter:   "bob",
			Assignees:  domain.NewStringSet("alice"),
		},
		{
			IssueID:    "PROJ-2",
			Summary:    strPtr("Add dark mode"),
			Created:    &created,
			Status:     domain.StatusResolved,
			Priority:   domain.PriorityMinor,
			Type:       domain.TypeImprovement,
			Resolution: domain.ResolutionFixed,
			Reporter:   "carol",
		},
	}
}

// mockImportService is a mock implementation of driving.ImportService.
type mockImportService struct {
	issues  []domain.Issue
	imports []domain.Import
	err     error

	paths         []string
	lastOverrides driving.MappingOverrides
	deleted       []string
}

func (m *mockImportService) Preview(
	_ context.Context,
	path string,
	overrides driving.MappingOverrides,
) ([]domain.Issue, error) {
	m.paths = append(m.paths, path)
	m.lastOverrides = overrides
	if m.err != nil {
		return nil, m.err
	}
	return m.issues, nil
}

func (m *mockImportService) Import(
	ctx context.Context,
	path string,
	overrides driving.MappingOverrides,
) (*driving.ImportResult, error) {
	issues, err := m.Preview(ctx, path, overrides)
	if err != nil {
		return nil, err
	}
	return &driving.ImportResult{
		Import: domain.Import{
			ID:         "imp-1",
			Path:       path,
			IssueCount: len(issues),
			CreatedAt:  time.Date(2024, time.March, 1, 10, 0, 0, 0, time.UTC),
		},
		Summary: domain.Summarise(issues),
	}, nil
}

func (m *mockImportService) Imports(_ context.Context) ([]domain.Import, error) {
	return m.imports, m.err
}

func (m *mockImportService) GetImport(_ context.Context, id string) (*domain.Import, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.imports {
		if m.imports[i].ID == id {
			return &m.imports[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockImportService) Issues(_ context.Context, _ string) ([]domain.Issue, error) {
	return m.issues, m.err
}

func (m *mockImportService) Issue(_ context.Context, _, issueID string) (*domain.Issue, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.issues {
		if m.issues[i].IssueID == issueID {
			return &m.issues[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockImportService) Delete(_ context.Context, id string) error {
	if m.err != nil {
		return m.err
	}
	m.deleted = append(m.deleted, id)
	return nil
}

// mockSettingsService is an in-memory implementation of driving.SettingsService.
type mockSettingsService struct {
	opts    domain.MappingOptions
	entries []domain.MappingEntry
	workers int
	err     error
}

func (m *mockSettingsService) MappingOptions() (domain.MappingOptions, error) {
	opts := m.opts
	opts.Mapping = domain.NewLabelMapping(m.entries...)
	return opts, m.err
}

func (m *mockSettingsService) SetMappingEnabled(field domain.MappedField, enabled bool) error {
	if m.err != nil {
		return m.err
	}
	switch field {
	case domain.MappedPriority:
		m.opts.PriorityEnabled = enabled
	case domain.MappedType:
		m.opts.TypeEnabled = enabled
	case domain.MappedResolution:
		m.opts.ResolutionEnabled = enabled
	}
	return nil
}

func (m *mockSettingsService) SetLabelMapping(category string, labels []string) error {
	if m.err != nil {
		return m.err
	}
	m.entries = append(m.entries, domain.MappingEntry{Category: category, Labels: labels})
	return nil
}

func (m *mockSettingsService) RemoveLabelMapping(category string) error {
	if m.err != nil {
		return m.err
	}
	for i := range m.entries {
		if m.entries[i].Category == category {
			m.entries = append(m.entries[:i], m.entries[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *mockSettingsService) Workers() int {
	if m.workers == 0 {
		return 1
	}
	return m.workers
}

func (m *mockSettingsService) SetWorkers(n int) error {
	if n < 1 {
		return domain.ErrInvalidArgument
	}
	m.workers = n
	return nil
}

// setupTestServices installs mock services and returns a cleanup function.
func setupTestServices() func() {
	return setupServices(
		&mockImportService{issues: testIssues(), imports: []domain.Import{
			{ID: "imp-1", Path: "/exports/a.xml", IssueCount: 2,
				CreatedAt: time.Date(2024, time.March, 1, 10, 0, 0, 0, time.UTC)},
		}},
		&mockSettingsService{},
	)
}

// setupServices installs the given services and returns a cleanup function.
func setupServices(imp *mockImportService, settings *mockSettingsService) func() {
	origImport := importService
	origSettings := settingsService

	importService = imp
	settingsService = settings
	if settings == nil {
		settingsService = nil
	}
	if imp == nil {
		importService = nil
	}

	return func() {
		importService = origImport
		settingsService = origSettings
	}
}

// execute runs the root command with args and returns its combined output.
// Flags are reset first since cobra keeps parsed values between runs.
func execute(args ...string) (string, error) {
	resetFlags(rootCmd)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}

// executeSplit runs the root command like execute but keeps stdout and
// stderr apart.
func executeSplit(args ...string) (stdout, stderr string, err error) {
	resetFlags(rootCmd)

	out, errOut := new(bytes.Buffer), new(bytes.Buffer)
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err = rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}
