// Package jira normalises issue-tracker XML exports (Jira RSS "item" feeds)
// into domain.Issue records.
//
// Every item element, at any depth, becomes one issue. Fields are read with
// descendant search, free-text priority, type and resolution labels are
// mapped onto the internal vocabulary either through a caller-supplied
// domain.LabelMapping or through the canonical labels, and dates are parsed
// with the fixed export format (see DateFormat).
//
// The parser keeps no state between calls; mapping options are passed per
// call and items may be mapped concurrently without changing the output.
package jira
