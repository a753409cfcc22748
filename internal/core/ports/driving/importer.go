package driving

import (
	"context"

	"github.com/custodia-labs/sercha-its/internal/core/domain"
)

// MappingOverrides replaces configured mapping flags for a single call.
// Nil fields keep the configured value.
type MappingOverrides struct {
	Priority   *bool
	Type       *bool
	Resolution *bool
}

// ImportResult describes a completed import.
type ImportResult struct {
	// Import is the persisted import record.
	Import domain.Import

	// Summary tallies the normalised values of the imported issues.
	Summary domain.ImportSummary
}

// ImportService reads tracker exports and manages persisted imports.
type ImportService interface {
	// Preview parses an export without persisting anything.
	Preview(ctx context.Context, path string, overrides MappingOverrides) ([]domain.Issue, error)

	// Import parses an export and persists the resulting issues.
	Import(ctx context.Context, path string, overrides MappingOverrides) (*ImportResult, error)

	// Imports returns all recorded imports, newest first.
	Imports(ctx context.Context) ([]domain.Import, error)

	// GetImport retrieves an import by ID.
	GetImport(ctx context.Context, id string) (*domain.Import, error)

	// Issues returns the issues of an import in export order.
	Issues(ctx context.Context, importID string) ([]domain.Issue, error)

	// Issue retrieves a single issue of an import by key.
	Issue(ctx context.Context, importID, issueID string) (*domain.Issue, error)

	// Delete removes an import and its issues.
	Delete(ctx context.Context, id string) error
}
