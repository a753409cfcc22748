// Package sqlite provides a SQLite-based implementation of driven.IssueStore.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
// Imports live in the imports table. Each issue row keeps its export position,
// a few indexed columns and the full record as JSON.
//
// # Data Location
//
// By default, the database is stored at ~/.sercha-its/data/issues.db
package sqlite
