package mcp

import (
	"github.com/custodia-labs/sercha-its/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Import parses exports and serves persisted imports.
	Import driving.ImportService

	// Settings exposes the label mapping configuration. Optional.
	Settings driving.SettingsService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Import == nil {
		return ErrMissingImportService
	}
	return nil
}
