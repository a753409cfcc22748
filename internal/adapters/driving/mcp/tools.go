package mcp

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/sercha-its/internal/core/domain"
	"github.com/custodia-labs/sercha-its/internal/core/ports/driving"
)

// defaultLimit caps issue lists when the caller gives no limit.
const defaultLimit = 50

// ParseExportInput is the input schema for the parse_export tool.
type ParseExportInput struct {
	Path          string `json:"path" jsonschema:"path of the XML export file on the local machine"`
	Limit         int    `json:"limit,omitempty" jsonschema:"maximum number of issues to return (default 50)"`
	MapPriority   *bool  `json:"map_priority,omitempty" jsonschema:"map priority labels through the configured dictionary"`
	MapType       *bool  `json:"map_type,omitempty" jsonschema:"map issue type labels through the configured dictionary"`
	MapResolution *bool  `json:"map_resolution,omitempty" jsonschema:"map resolution labels through the configured dictionary"`
}

// ImportExportInput is the input schema for the import_export tool.
type ImportExportInput struct {
	Path          string `json:"path" jsonschema:"path of the XML export file on the local machine"`
	MapPriority   *bool  `json:"map_priority,omitempty" jsonschema:"map priority labels through the configured dictionary"`
	MapType       *bool  `json:"map_type,omitempty" jsonschema:"map issue type labels through the configured dictionary"`
	MapResolution *bool  `json:"map_resolution,omitempty" jsonschema:"map resolution labels through the configured dictionary"`
}

// ListImportsInput is the input schema for the list_imports tool.
type ListImportsInput struct{}

// ListIssuesInput is the input schema for the list_issues tool.
type ListIssuesInput struct {
	ImportID string `json:"import_id" jsonschema:"ID of the import to list"`
	Status   string `json:"status,omitempty" jsonschema:"only return issues with this status key, e.g. OPEN"`
	Limit    int    `json:"limit,omitempty" jsonschema:"maximum number of issues to return (default 50)"`
}

// GetIssueInput is the input schema for the get_issue tool.
type GetIssueInput struct {
	ImportID string `json:"import_id" jsonschema:"ID of the import holding the issue"`
	IssueKey string `json:"issue_key" jsonschema:"issue key, e.g. PROJ-1"`
}

// IssuesOutput is the output schema for tools returning issue lists.
type IssuesOutput struct {
	Issues    []IssueOutput `json:"issues"`
	Count     int           `json:"count"`
	Total     int           `json:"total"`
	Truncated bool          `json:"truncated"`
}

// IssueOutput is one normalised issue.
type IssueOutput struct {
	IssueID        string   `json:"issue_id"`
	Summary        string   `json:"summary,omitempty"`
	Description    string   `json:"description,omitempty"`
	Link           string   `json:"link,omitempty"`
	Created        string   `json:"created,omitempty"`
	Updated        string   `json:"updated,omitempty"`
	Resolved       string   `json:"resolved,omitempty"`
	Status         string   `json:"status"`
	Priority       string   `json:"priority"`
	Type           string   `json:"type"`
	Resolution     string   `json:"resolution"`
	Version        []string `json:"version,omitempty"`
	FixVersion     []string `json:"fix_version,omitempty"`
	Comments       []string `json:"comments,omitempty"`
	Reporter       string   `json:"reporter"`
	Assignees      []string `json:"assignees"`
	CommentAuthors []string `json:"comment_authors"`
}

// ImportOutput is one persisted import.
type ImportOutput struct {
	ID         string `json:"id"`
	Path       string `json:"path"`
	IssueCount int    `json:"issue_count"`
	CreatedAt  string `json:"created_at"`
}

// ImportsOutput is the output schema for the list_imports tool.
type ImportsOutput struct {
	Imports []ImportOutput `json:"imports"`
	Count   int            `json:"count"`
}

// ImportResultOutput is the output schema for the import_export tool.
type ImportResultOutput struct {
	Import     ImportOutput   `json:"import"`
	Statuses   map[string]int `json:"statuses"`
	Priorities map[string]int `json:"priorities"`
	Types      map[string]int `json:"types"`
	Unassigned int            `json:"unassigned"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "parse_export",
		Description: "Parse a Jira XML export and return its normalised issues without storing them",
	}, s.handleParseExport)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "import_export",
		Description: "Parse a Jira XML export and store its issues as a new import",
	}, s.handleImportExport)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_imports",
		Description: "List stored imports, newest first",
	}, s.handleListImports)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_issues",
		Description: "List the issues of a stored import in export order",
	}, s.handleListIssues)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_issue",
		Description: "Get one issue of a stored import by key",
	}, s.handleGetIssue)
}

// handleParseExport handles the parse_export tool invocation.
func (s *Server) handleParseExport(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ParseExportInput,
) (*mcp.CallToolResult, IssuesOutput, error) {
	overrides := mappingOverrides(input.MapPriority, input.MapType, input.MapResolution)
	issues, err := s.ports.Import.Preview(ctx, input.Path, overrides)
	if err != nil {
		return nil, IssuesOutput{}, err
	}
	return nil, issuesOutput(issues, input.Limit), nil
}

// handleImportExport handles the import_export tool invocation.
func (s *Server) handleImportExport(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ImportExportInput,
) (*mcp.CallToolResult, ImportResultOutput, error) {
	overrides := mappingOverrides(input.MapPriority, input.MapType, input.MapResolution)
	result, err := s.ports.Import.Import(ctx, input.Path, overrides)
	if err != nil {
		return nil, ImportResultOutput{}, err
	}

	return nil, ImportResultOutput{
		Import:     importOutput(result.Import),
		Statuses:   keyCounts(result.Summary.Statuses),
		Priorities: keyCounts(result.Summary.Priorities),
		Types:      keyCounts(result.Summary.Types),
		Unassigned: result.Summary.Unassigned,
	}, nil
}

// handleListImports handles the list_imports tool invocation.
func (s *Server) handleListImports(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ListImportsInput,
) (*mcp.CallToolResult, ImportsOutput, error) {
	imports, err := s.ports.Import.Imports(ctx)
	if err != nil {
		return nil, ImportsOutput{}, err
	}

	output := ImportsOutput{
		Imports: make([]ImportOutput, len(imports)),
		Count:   len(imports),
	}
	for i := range imports {
		output.Imports[i] = importOutput(imports[i])
	}
	return nil, output, nil
}

// handleListIssues handles the list_issues tool invocation.
func (s *Server) handleListIssues(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListIssuesInput,
) (*mcp.CallToolResult, IssuesOutput, error) {
	issues, err := s.ports.Import.Issues(ctx, input.ImportID)
	if err != nil {
		return nil, IssuesOutput{}, err
	}

	if input.Status != "" {
		filtered := issues[:0:0]
		for i := range issues {
			if string(issues[i].Status) == input.Status {
				filtered = append(filtered, issues[i])
			}
		}
		issues = filtered
	}

	return nil, issuesOutput(issues, input.Limit), nil
}

// handleGetIssue handles the get_issue tool invocation.
func (s *Server) handleGetIssue(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetIssueInput,
) (*mcp.CallToolResult, IssueOutput, error) {
	issue, err := s.ports.Import.Issue(ctx, input.ImportID, input.IssueKey)
	if err != nil {
		return nil, IssueOutput{}, err
	}
	return nil, issueOutput(issue), nil
}

func mappingOverrides(priority, issueType, resolution *bool) driving.MappingOverrides {
	return driving.MappingOverrides{
		Priority:   priority,
		Type:       issueType,
		Resolution: resolution,
	}
}

func issuesOutput(issues []domain.Issue, limit int) IssuesOutput {
	if limit <= 0 {
		limit = defaultLimit
	}

	n := min(len(issues), limit)
	output := IssuesOutput{
		Issues:    make([]IssueOutput, n),
		Count:     n,
		Total:     len(issues),
		Truncated: n < len(issues),
	}
	for i := 0; i < n; i++ {
		output.Issues[i] = issueOutput(&issues[i])
	}
	return output
}

func issueOutput(issue *domain.Issue) IssueOutput {
	return IssueOutput{
		IssueID:        issue.IssueID,
		Summary:        deref(issue.Summary),
		Description:    deref(issue.Description),
		Link:           deref(issue.Link),
		Created:        formatTime(issue.Created),
		Updated:        formatTime(issue.Updated),
		Resolved:       formatTime(issue.Resolved),
		Status:         string(issue.Status),
		Priority:       string(issue.Priority),
		Type:           string(issue.Type),
		Resolution:     string(issue.Resolution),
		Version:        issue.Version,
		FixVersion:     issue.FixVersion,
		Comments:       issue.Comments,
		Reporter:       issue.Reporter,
		Assignees:      nonNil(issue.Assignees),
		CommentAuthors: nonNil(issue.CommentAuthors),
	}
}

func importOutput(imp domain.Import) ImportOutput {
	return ImportOutput{
		ID:         imp.ID,
		Path:       imp.Path,
		IssueCount: imp.IssueCount,
		CreatedAt:  imp.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func keyCounts[K ~string](m map[K]int) map[string]int {
	out := make(map[string]int, len(m))
	for k, n := range m {
		out[string(k)] = n
	}
	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func nonNil(set domain.StringSet) []string {
	if set == nil {
		return []string{}
	}
	return set
}
