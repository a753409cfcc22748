package services

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/sercha-its/internal/core/domain"
	"github.com/custodia-labs/sercha-its/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-its/internal/core/ports/driving"
	"github.com/custodia-labs/sercha-its/internal/logger"
)

// Ensure ImportService implements the interface.
var _ driving.ImportService = (*ImportService)(nil)

// ImportService reads exports through the parser and records them in the store.
type ImportService struct {
	parser   driven.ExportParser
	store    driven.IssueStore
	settings driving.SettingsService
	now      func() time.Time
}

// NewImportService creates a new import service.
// Mapping options are read from settings on every call.
func NewImportService(
	parser driven.ExportParser,
	store driven.IssueStore,
	settings driving.SettingsService,
) *ImportService {
	return &ImportService{
		parser:   parser,
		store:    store,
		settings: settings,
		now:      time.Now,
	}
}

// Preview parses an export without persisting anything.
func (s *ImportService) Preview(
	ctx context.Context,
	path string,
	overrides driving.MappingOverrides,
) ([]domain.Issue, error) {
	opts, err := s.mappingOptions(overrides)
	if err != nil {
		return nil, err
	}
	return s.parser.ParseFile(ctx, path, opts)
}

// Import parses an export and persists the resulting issues under a new ID.
// Nothing is stored when any item fails to map.
func (s *ImportService) Import(
	ctx context.Context,
	path string,
	overrides driving.MappingOverrides,
) (*driving.ImportResult, error) {
	issues, err := s.Preview(ctx, path, overrides)
	if err != nil {
		return nil, err
	}

	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}

	imp := domain.Import{
		ID:         uuid.NewString(),
		Path:       path,
		IssueCount: len(issues),
		CreatedAt:  s.now().UTC(),
	}
	if err := s.store.SaveImport(ctx, imp, issues); err != nil {
		return nil, fmt.Errorf("save import: %w", err)
	}

	logger.Info("Imported %d issues from %s as %s", len(issues), path, imp.ID)
	return &driving.ImportResult{
		Import:  imp,
		Summary: domain.Summarise(issues),
	}, nil
}

// Imports returns all recorded imports, newest first.
func (s *ImportService) Imports(ctx context.Context) ([]domain.Import, error) {
	return s.store.ListImports(ctx)
}

// GetImport retrieves an import by ID.
func (s *ImportService) GetImport(ctx context.Context, id string) (*domain.Import, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: import id is required", domain.ErrInvalidArgument)
	}
	return s.store.GetImport(ctx, id)
}

// Issues returns the issues of an import in export order.
func (s *ImportService) Issues(ctx context.Context, importID string) ([]domain.Issue, error) {
	if importID == "" {
		return nil, fmt.Errorf("%w: import id is required", domain.ErrInvalidArgument)
	}
	return s.store.ListIssues(ctx, importID)
}

// Issue retrieves a single issue of an import by key.
func (s *ImportService) Issue(ctx context.Context, importID, issueID string) (*domain.Issue, error) {
	if importID == "" || issueID == "" {
		return nil, fmt.Errorf("%w: import id and issue key are required", domain.ErrInvalidArgument)
	}
	return s.store.GetIssue(ctx, importID, issueID)
}

// Delete removes an import and its issues.
func (s *ImportService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: import id is required", domain.ErrInvalidArgument)
	}
	if err := s.store.DeleteImport(ctx, id); err != nil {
		return fmt.Errorf("delete import %s: %w", id, err)
	}
	logger.Debug("Deleted import %s", id)
	return nil
}

// mappingOptions applies per-call overrides on top of the configured options.
func (s *ImportService) mappingOptions(overrides driving.MappingOverrides) (domain.MappingOptions, error) {
	var opts domain.MappingOptions
	if s.settings != nil {
		var err error
		if opts, err = s.settings.MappingOptions(); err != nil {
			return domain.MappingOptions{}, fmt.Errorf("load mapping options: %w", err)
		}
	}

	if overrides.Priority != nil {
		opts.PriorityEnabled = *overrides.Priority
	}
	if overrides.Type != nil {
		opts.TypeEnabled = *overrides.Type
	}
	if overrides.Resolution != nil {
		opts.ResolutionEnabled = *overrides.Resolution
	}
	return opts, nil
}
