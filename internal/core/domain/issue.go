package domain

import (
	"slices"
	"time"
)

// Issue is the normalised record produced for one exported issue item.
// It is fully populated in a single pass and treated as immutable afterwards.
type Issue struct {
	// IssueID is the tracker key, e.g. "PROJ-123".
	IssueID string `json:"issue_id"`

	Summary     *string `json:"summary,omitempty"`
	Description *string `json:"description,omitempty"`
	Link        *string `json:"link,omitempty"`

	// Timestamps are in UTC; nil when absent from the export.
	Created  *time.Time `json:"created,omitempty"`
	Updated  *time.Time `json:"updated,omitempty"`
	Resolved *time.Time `json:"resolved,omitempty"`

	Status     Status     `json:"status"`
	Priority   Priority   `json:"priority"`
	Type       IssueType  `json:"type"`
	Resolution Resolution `json:"resolution"`

	// Version and FixVersion keep document order.
	Version    []string `json:"version"`
	FixVersion []string `json:"fix_version"`

	// Comments holds raw comment bodies in document order.
	Comments []string `json:"comments"`

	// Reporter is the reporter's username, verbatim.
	Reporter string `json:"reporter"`

	// Assignees is empty for unassigned issues, otherwise a single username.
	Assignees StringSet `json:"assignees"`

	// CommentAuthors holds every distinct comment author.
	CommentAuthors StringSet `json:"comment_authors"`
}

// StringSet is a sorted, duplicate-free list of strings.
type StringSet []string

// NewStringSet builds a set from values, collapsing duplicates.
func NewStringSet(values ...string) StringSet {
	set := make(StringSet, len(values))
	copy(set, values)
	slices.Sort(set)
	return slices.Compact(set)
}

// Contains reports whether v is a member of the set.
func (s StringSet) Contains(v string) bool {
	_, found := slices.BinarySearch(s, v)
	return found
}

// Len returns the number of members.
func (s StringSet) Len() int {
	return len(s)
}

// Import describes one persisted ingestion of an export file.
type Import struct {
	// ID is a UUID assigned when the import is recorded.
	ID string `json:"id"`

	// Path is the export file the issues were read from.
	Path string `json:"path"`

	// IssueCount is the number of records stored.
	IssueCount int `json:"issue_count"`

	// CreatedAt is when the import was recorded.
	CreatedAt time.Time `json:"created_at"`
}

// ImportSummary tallies normalised values across a set of issues.
type ImportSummary struct {
	Total       int                `json:"total"`
	Statuses    map[Status]int     `json:"statuses"`
	Priorities  map[Priority]int   `json:"priorities"`
	Types       map[IssueType]int  `json:"types"`
	Resolutions map[Resolution]int `json:"resolutions"`
	Unassigned  int                `json:"unassigned"`
}

// Summarise counts status, priority, type and resolution values in issues.
func Summarise(issues []Issue) ImportSummary {
	sum := ImportSummary{
		Total:       len(issues),
		Statuses:    make(map[Status]int),
		Priorities:  make(map[Priority]int),
		Types:       make(map[IssueType]int),
		Resolutions: make(map[Resolution]int),
	}
	for i := range issues {
		sum.Statuses[issues[i].Status]++
		sum.Priorities[issues[i].Priority]++
		sum.Types[issues[i].Type]++
		sum.Resolutions[issues[i].Resolution]++
		if issues[i].Assignees.Len() == 0 {
			sum.Unassigned++
		}
	}
	return sum
}
