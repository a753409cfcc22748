package jira

import (
	"fmt"

	"github.com/beevik/etree"

	"github.com/custodia-labs/sercha-its/internal/core/domain"
)

// unassignedUsername is the assignee username exports use for "nobody".
const unassignedUsername = "-1"

// category describes one label-mapped enumeration.
type category[T ~string] struct {
	tag       string
	unknown   T
	parseKey  func(string) (T, bool)
	fromLabel func(string) (T, bool)
}

var (
	priorityCategory = category[domain.Priority]{
		tag:       "priority",
		unknown:   domain.PriorityUnknown,
		parseKey:  domain.ParsePriority,
		fromLabel: domain.PriorityFromLabel,
	}
	typeCategory = category[domain.IssueType]{
		tag:       "type",
		unknown:   domain.TypeUnknown,
		parseKey:  domain.ParseType,
		fromLabel: domain.TypeFromLabel,
	}
	resolutionCategory = category[domain.Resolution]{
		tag:       "resolution",
		unknown:   domain.ResolutionUnknown,
		parseKey:  domain.ParseResolution,
		fromLabel: domain.ResolutionFromLabel,
	}
)

// resolve maps the raw label found under c.tag onto the enumeration.
//
// With mapping enabled the dictionary decides: the first category, in
// dictionary order, listing the raw label wins. Categories that are not
// values of this enumeration are skipped so one dictionary can carry
// priorities, types and resolutions together. With mapping disabled the
// raw label must equal one of the enumeration's canonical labels.
func (c category[T]) resolve(item *etree.Element, enabled bool, mapping domain.LabelMapping) T {
	raw, ok := extractSingle(item, c.tag)
	if !ok {
		return c.unknown
	}

	if !enabled {
		if v, ok := c.fromLabel(raw); ok {
			return v
		}
		return c.unknown
	}

	key, ok := mapping.Lookup(raw, func(key string) bool {
		_, known := c.parseKey(key)
		return known
	})
	if !ok {
		return c.unknown
	}
	v, _ := c.parseKey(key)
	return v
}

// mapIssue builds one issue record from an item element.
func mapIssue(item *etree.Element, opts domain.MappingOptions) (domain.Issue, error) {
	issue := domain.Issue{
		Summary:     optional(item, "summary"),
		Description: optional(item, "description"),
		Link:        optional(item, "link"),
		Status:      mapStatus(item),
		Priority:    priorityCategory.resolve(item, opts.PriorityEnabled, opts.Mapping),
		Type:        typeCategory.resolve(item, opts.TypeEnabled, opts.Mapping),
		Resolution:  resolutionCategory.resolve(item, opts.ResolutionEnabled, opts.Mapping),
		Version:     extractMany(item, "version"),
		FixVersion:  extractMany(item, "fixVersion"),
		Comments:    extractMany(item, "comment"),
	}
	issue.IssueID, _ = extractSingle(item, "key")

	var err error
	if issue.Created, err = extractTimestamp(item, "created"); err != nil {
		return domain.Issue{}, fmt.Errorf("created: %w", err)
	}
	if issue.Updated, err = extractTimestamp(item, "updated"); err != nil {
		return domain.Issue{}, fmt.Errorf("updated: %w", err)
	}
	if issue.Resolved, err = extractTimestamp(item, "resolved"); err != nil {
		return domain.Issue{}, fmt.Errorf("resolved: %w", err)
	}

	if issue.Reporter, err = singleUsername(item, "reporter"); err != nil {
		return domain.Issue{}, err
	}

	assignee, err := singleUsername(item, "assignee")
	if err != nil {
		return domain.Issue{}, err
	}
	if assignee == unassignedUsername {
		issue.Assignees = domain.NewStringSet()
	} else {
		issue.Assignees = domain.NewStringSet(assignee)
	}

	if issue.CommentAuthors, err = commentAuthors(item); err != nil {
		return domain.Issue{}, err
	}

	return issue, nil
}

// mapStatus maps the status label with a fixed, exact-match table.
func mapStatus(item *etree.Element) domain.Status {
	raw, ok := extractSingle(item, "status")
	if !ok {
		return domain.StatusUnknown
	}
	return domain.StatusFromLabel(raw)
}

// singleUsername returns the username attribute of the only descendant named tag.
func singleUsername(item *etree.Element, tag string) (string, error) {
	elems := descendants(item, tag)
	if len(elems) != 1 {
		return "", fmt.Errorf("%s must be set: found %d %s elements: %w", tag, len(elems), tag, domain.ErrValidation)
	}
	attr := elems[0].SelectAttr("username")
	if attr == nil {
		return "", fmt.Errorf("%s must be set: missing username attribute: %w", tag, domain.ErrValidation)
	}
	return attr.Value, nil
}

// commentAuthors collects the author attribute of every comment.
func commentAuthors(item *etree.Element) (domain.StringSet, error) {
	comments := descendants(item, "comment")
	authors := make([]string, 0, len(comments))
	for i, comment := range comments {
		attr := comment.SelectAttr("author")
		if attr == nil {
			return nil, fmt.Errorf("comment %d has no author: %w", i+1, domain.ErrNullAttribute)
		}
		authors = append(authors, attr.Value)
	}
	return domain.NewStringSet(authors...), nil
}

func optional(item *etree.Element, tag string) *string {
	value, ok := extractSingle(item, tag)
	if !ok {
		return nil
	}
	return &value
}
