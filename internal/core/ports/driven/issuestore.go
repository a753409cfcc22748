package driven

import (
	"context"

	"github.com/custodia-labs/sercha-its/internal/core/domain"
)

// IssueStore persists imports and the issues read in each of them.
type IssueStore interface {
	// SaveImport stores an import and its issues atomically.
	SaveImport(ctx context.Context, imp domain.Import, issues []domain.Issue) error

	// GetImport retrieves an import by ID.
	// Returns domain.ErrNotFound if the import does not exist.
	GetImport(ctx context.Context, id string) (*domain.Import, error)

	// ListImports returns all imports, newest first.
	ListImports(ctx context.Context) ([]domain.Import, error)

	// ListIssues returns the issues of an import in export order.
	ListIssues(ctx context.Context, importID string) ([]domain.Issue, error)

	// GetIssue retrieves one issue of an import by its key.
	// Returns domain.ErrNotFound if no such issue exists.
	GetIssue(ctx context.Context, importID, issueID string) (*domain.Issue, error)

	// DeleteImport removes an import and its issues.
	// Returns domain.ErrNotFound if the import does not exist.
	DeleteImport(ctx context.Context, id string) error
}
