package driven

import (
	"context"

	"github.com/custodia-labs/sercha-its/internal/core/domain"
)

// ExportParser turns a tracker export file into normalised issues.
type ExportParser interface {
	// ParseFile loads the export at path and maps every issue item in
	// document order. One malformed item fails the whole call.
	ParseFile(ctx context.Context, path string, opts domain.MappingOptions) ([]domain.Issue, error)
}
