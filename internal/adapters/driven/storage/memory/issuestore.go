package memory

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/custodia-labs/sercha-its/internal/core/domain"
	"github.com/custodia-labs/sercha-its/internal/core/ports/driven"
)

// Ensure IssueStore implements the interface.
var _ driven.IssueStore = (*IssueStore)(nil)

// IssueStore is an in-memory implementation of driven.IssueStore.
type IssueStore struct {
	mu      sync.RWMutex
	imports map[string]domain.Import
	issues  map[string][]domain.Issue
}

// NewIssueStore creates a new in-memory issue store.
func NewIssueStore() *IssueStore {
	return &IssueStore{
		imports: make(map[string]domain.Import),
		issues:  make(map[string][]domain.Issue),
	}
}

// SaveImport stores an import and its issues, replacing any previous
// import with the same ID.
func (s *IssueStore) SaveImport(_ context.Context, imp domain.Import, issues []domain.Issue) error {
	if imp.ID == "" {
		return domain.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	imp.IssueCount = len(issues)
	s.imports[imp.ID] = imp
	s.issues[imp.ID] = slices.Clone(issues)
	return nil
}

// GetImport retrieves an import by ID.
func (s *IssueStore) GetImport(_ context.Context, id string) (*domain.Import, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	imp, ok := s.imports[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &imp, nil
}

// ListImports returns all imports, newest first.
func (s *IssueStore) ListImports(_ context.Context) ([]domain.Import, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.Import, 0, len(s.imports))
	for _, imp := range s.imports {
		result = append(result, imp)
	}
	slices.SortFunc(result, func(a, b domain.Import) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return result, nil
}

// ListIssues returns the issues of an import in export order.
func (s *IssueStore) ListIssues(_ context.Context, importID string) ([]domain.Issue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	issues, ok := s.issues[importID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return slices.Clone(issues), nil
}

// GetIssue retrieves one issue of an import by its key.
func (s *IssueStore) GetIssue(_ context.Context, importID, issueID string) (*domain.Issue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, issue := range s.issues[importID] {
		if issue.IssueID == issueID {
			return &issue, nil
		}
	}
	return nil, domain.ErrNotFound
}

// DeleteImport removes an import and its issues.
func (s *IssueStore) DeleteImport(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.imports[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.imports, id)
	delete(s.issues, id)
	return nil
}
