package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/sercha-its/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/sercha-its/internal/core/domain"
	"github.com/custodia-labs/sercha-its/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-its/internal/logger"
)

// Store is a SQLite-based storage for imports and their issues.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.sercha-its/data/issues.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".sercha-its", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "issues.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// IssueStore returns an IssueStore interface backed by this store.
func (s *Store) IssueStore() driven.IssueStore {
	return &issueStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys fs.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if err := s.applyMigration(version, string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		logger.Debug("Applied migration %s", name)
	}

	return nil
}

func (s *Store) applyMigration(version int, content string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(content); err != nil {
		return err
	}
	if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
		return err
	}
	return tx.Commit()
}

// ==================== Issue Store ====================

// issueStore implements driven.IssueStore.
type issueStore struct {
	store *Store
}

var _ driven.IssueStore = (*issueStore)(nil)

// SaveImport stores an import and its issues in one transaction.
// Saving an existing import ID replaces its issues.
func (s *issueStore) SaveImport(ctx context.Context, imp domain.Import, issues []domain.Issue) error {
	if imp.ID == "" {
		return fmt.Errorf("%w: import id is required", domain.ErrInvalidInput)
	}

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO imports (id, path, issue_count, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			path = excluded.path,
			issue_count = excluded.issue_count,
			created_at = excluded.created_at
	`, imp.ID, imp.Path, len(issues), imp.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("saving import: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM issues WHERE import_id = ?", imp.ID); err != nil {
		return fmt.Errorf("clearing issues: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO issues (import_id, position, issue_id, status, priority, type, resolution, reporter, data)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing issue insert: %w", err)
	}
	defer stmt.Close()

	for i := range issues {
		data, err := json.Marshal(issues[i])
		if err != nil {
			return fmt.Errorf("marshalling issue %s: %w", issues[i].IssueID, err)
		}
		_, err = stmt.ExecContext(ctx, imp.ID, i, issues[i].IssueID,
			string(issues[i].Status), string(issues[i].Priority), string(issues[i].Type),
			string(issues[i].Resolution), issues[i].Reporter, string(data))
		if err != nil {
			return fmt.Errorf("saving issue %s: %w", issues[i].IssueID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing import: %w", err)
	}
	return nil
}

// GetImport retrieves an import by ID.
func (s *issueStore) GetImport(ctx context.Context, id string) (*domain.Import, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, path, issue_count, created_at FROM imports WHERE id = ?
	`, id)

	imp, err := scanImport(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return imp, nil
}

// ListImports returns all imports, newest first.
func (s *issueStore) ListImports(ctx context.Context) ([]domain.Import, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, path, issue_count, created_at FROM imports
		ORDER BY created_at DESC, id
	`)
	if err != nil {
		return nil, fmt.Errorf("querying imports: %w", err)
	}
	defer rows.Close()

	imports := make([]domain.Import, 0)
	for rows.Next() {
		imp, err := scanImport(rows)
		if err != nil {
			return nil, err
		}
		imports = append(imports, *imp)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating imports: %w", err)
	}
	return imports, nil
}

// ListIssues returns the issues of an import in export order.
func (s *issueStore) ListIssues(ctx context.Context, importID string) ([]domain.Issue, error) {
	if _, err := s.GetImport(ctx, importID); err != nil {
		return nil, err
	}

	rows, err := s.store.db.QueryContext(ctx, `
		SELECT data FROM issues WHERE import_id = ? ORDER BY position
	`, importID)
	if err != nil {
		return nil, fmt.Errorf("querying issues: %w", err)
	}
	defer rows.Close()

	issues := make([]domain.Issue, 0)
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("scanning issue: %w", err)
		}
		var issue domain.Issue
		if err := json.Unmarshal([]byte(data), &issue); err != nil {
			return nil, fmt.Errorf("unmarshaling issue: %w", err)
		}
		issues = append(issues, issue)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating issues: %w", err)
	}
	return issues, nil
}

// GetIssue retrieves one issue of an import by its key.
// The first issue in export order wins when a key repeats.
func (s *issueStore) GetIssue(ctx context.Context, importID, issueID string) (*domain.Issue, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT data FROM issues WHERE import_id = ? AND issue_id = ?
		ORDER BY position LIMIT 1
	`, importID, issueID)

	var data string
	if err := row.Scan(&data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning issue: %w", err)
	}

	var issue domain.Issue
	if err := json.Unmarshal([]byte(data), &issue); err != nil {
		return nil, fmt.Errorf("unmarshaling issue: %w", err)
	}
	return &issue, nil
}

// DeleteImport removes an import. Its issues are removed by cascade.
func (s *issueStore) DeleteImport(ctx context.Context, id string) error {
	result, err := s.store.db.ExecContext(ctx, "DELETE FROM imports WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting import: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting import: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanImport(row rowScanner) (*domain.Import, error) {
	var imp domain.Import
	var createdAt sql.NullTime
	if err := row.Scan(&imp.ID, &imp.Path, &imp.IssueCount, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning import: %w", err)
	}
	if createdAt.Valid {
		imp.CreatedAt = createdAt.Time.UTC()
	}
	return &imp, nil
}
