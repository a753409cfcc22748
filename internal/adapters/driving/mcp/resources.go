package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/sercha-its/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for sercha-its resources.
	uriScheme = "sercha-its://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for listing imports.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "imports",
		Name:        "imports",
		Description: "Stored imports, newest first",
		MIMEType:    "application/json",
	}, s.handleImportsResource)

	// Static resource for the label mapping configuration.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "config/mapping",
		Name:        "label-mapping",
		Description: "Label mapping dictionary and the fields it applies to",
		MIMEType:    "application/json",
	}, s.handleMappingResource)

	// Template for the issues of one import.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "imports/{importId}/issues",
		Name:        "import-issues",
		Description: "Normalised issues of a stored import in export order",
		MIMEType:    "application/json",
	}, s.handleIssuesResource)
}

// handleImportsResource returns all stored imports.
func (s *Server) handleImportsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	imports, err := s.ports.Import.Imports(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing imports: %w", err)
	}

	infos := make([]ImportOutput, len(imports))
	for i := range imports {
		infos[i] = importOutput(imports[i])
	}

	return jsonResource(req.Params.URI, infos)
}

// handleMappingResource returns the configured label mapping.
func (s *Server) handleMappingResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Settings == nil {
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     "{}",
			}},
		}, nil
	}

	opts, err := s.ports.Settings.MappingOptions()
	if err != nil {
		return nil, fmt.Errorf("loading mapping options: %w", err)
	}

	type mappingInfo struct {
		Priority   bool                  `json:"priority"`
		Type       bool                  `json:"type"`
		Resolution bool                  `json:"resolution"`
		Entries    []domain.MappingEntry `json:"label_mapping"`
		Workers    int                   `json:"workers"`
		Note       string                `json:"note,omitempty"`
	}

	info := mappingInfo{
		Priority:   opts.PriorityEnabled,
		Type:       opts.TypeEnabled,
		Resolution: opts.ResolutionEnabled,
		Entries:    opts.Mapping.Entries(),
		Workers:    s.ports.Settings.Workers(),
	}
	if opts.Mapping.Len() == 0 {
		info.Note = "no label mapping configured"
	}

	return jsonResource(req.Params.URI, info)
}

// handleIssuesResource returns the issues of one import.
func (s *Server) handleIssuesResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	// Extract importId from URI: sercha-its://imports/{importId}/issues
	importID := extractImportID(req.Params.URI)
	if importID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	issues, err := s.ports.Import.Issues(ctx, importID)
	if err != nil {
		return nil, fmt.Errorf("listing issues: %w", err)
	}

	infos := make([]IssueOutput, len(issues))
	for i := range issues {
		infos[i] = issueOutput(&issues[i])
	}

	return jsonResource(req.Params.URI, infos)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling resource: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractImportID extracts the import ID from a URI like sercha-its://imports/{importId}/issues.
func extractImportID(uri string) string {
	const prefix = uriScheme + "imports/"
	const suffix = "/issues"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	uri = strings.TrimPrefix(uri, prefix)
	if !strings.HasSuffix(uri, suffix) {
		return ""
	}

	return strings.TrimSuffix(uri, suffix)
}
