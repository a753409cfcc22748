// Package domain defines the core business entities for sercha-its.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Issue: A normalised issue record read from a tracker export
//   - Status, Priority, IssueType, Resolution: The internal vocabulary
//   - LabelMapping: An ordered vendor-label to category dictionary
//   - Import: A persisted ingestion of one export file
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
