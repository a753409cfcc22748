// Package mcp provides an MCP (Model Context Protocol) server adapter for sercha-its.
// It lets AI assistants parse tracker exports and browse imported issues.
package mcp

import "errors"

// ErrMissingImportService is returned when the import service is not provided.
var ErrMissingImportService = errors.New("mcp: import service is required")
