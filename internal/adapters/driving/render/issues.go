package render

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/custodia-labs/sercha-its/internal/core/domain"
	"github.com/custodia-labs/sercha-its/internal/normalisers/html"
)

// summaryWidth caps the summary column of issue tables.
const summaryWidth = 60

const timeLayout = "2006-01-02 15:04:05"

// IssueTable renders issues as a bordered table in the given order.
func IssueTable(s *Styles, issues []domain.Issue) string {
	rows := make([][]string, len(issues))
	for i := range issues {
		rows[i] = []string{
			issues[i].IssueID,
			issues[i].Type.Label(),
			issues[i].Priority.Label(),
			issues[i].Status.Label(),
			issues[i].Resolution.Label(),
			assignee(issues[i].Assignees),
			truncate(deref(issues[i].Summary), summaryWidth),
		}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(s.Border).
		Headers("KEY", "TYPE", "PRIORITY", "STATUS", "RESOLUTION", "ASSIGNEE", "SUMMARY").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return s.Header
			}
			return s.Cell
		})

	return t.String()
}

// IssueDetail renders every field of one issue.
func IssueDetail(s *Styles, issue *domain.Issue) string {
	var b strings.Builder

	b.WriteString(s.Title.Render(issue.IssueID))
	if issue.Summary != nil {
		b.WriteString("  " + s.Normal.Render(*issue.Summary))
	}
	b.WriteString("\n\n")

	field := func(name, value string) {
		if value == "" {
			return
		}
		fmt.Fprintf(&b, "  %s %s\n", s.Muted.Render(fmt.Sprintf("%-12s", name+":")), value)
	}

	field("Type", issue.Type.Label())
	field("Priority", issue.Priority.Label())
	field("Status", issue.Status.Label())
	field("Resolution", issue.Resolution.Label())
	field("Reporter", issue.Reporter)
	field("Assignee", assignee(issue.Assignees))
	field("Created", formatTime(issue.Created))
	field("Updated", formatTime(issue.Updated))
	field("Resolved", formatTime(issue.Resolved))
	field("Versions", strings.Join(issue.Version, ", "))
	field("Fix versions", strings.Join(issue.FixVersion, ", "))
	field("Link", deref(issue.Link))

	if issue.Description != nil {
		b.WriteString("\n" + s.Subtitle.Render("Description") + "\n")
		b.WriteString(indent(html.Text(*issue.Description), "  ") + "\n")
	}

	if len(issue.Comments) > 0 {
		b.WriteString("\n" + s.Subtitle.Render(fmt.Sprintf("Comments (%d)", len(issue.Comments))) + "\n")
		for _, c := range issue.Comments {
			b.WriteString("  - " + strings.ReplaceAll(html.Text(c), "\n", "\n    ") + "\n")
		}
		field("Authors", strings.Join(issue.CommentAuthors, ", "))
	}

	return b.String()
}

// Summary renders value counts of an import, most frequent first.
func Summary(s *Styles, sum domain.ImportSummary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %d\n", s.Subtitle.Render("Issues:"), sum.Total)
	section(&b, s, "Status", tally(sum.Statuses, domain.Status.Label))
	section(&b, s, "Priority", tally(sum.Priorities, domain.Priority.Label))
	section(&b, s, "Type", tally(sum.Types, domain.IssueType.Label))
	section(&b, s, "Resolution", tally(sum.Resolutions, domain.Resolution.Label))
	fmt.Fprintf(&b, "  %s %d\n", s.Muted.Render(fmt.Sprintf("%-11s", "Unassigned:")), sum.Unassigned)

	return b.String()
}

// ImportList renders imports one per line.
func ImportList(s *Styles, imports []domain.Import) string {
	var b strings.Builder
	for _, imp := range imports {
		fmt.Fprintf(&b, "  %s  %s  %s  %s\n",
			s.Title.Render(imp.ID),
			s.Muted.Render(imp.CreatedAt.Format(timeLayout)),
			fmt.Sprintf("%5d issues", imp.IssueCount),
			imp.Path)
	}
	return b.String()
}

// ImportDetail renders one import record.
func ImportDetail(s *Styles, imp *domain.Import) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", s.Title.Render("Import "+imp.ID))
	fmt.Fprintf(&b, "  %s %s\n", s.Muted.Render("Path:    "), imp.Path)
	fmt.Fprintf(&b, "  %s %d\n", s.Muted.Render("Issues:  "), imp.IssueCount)
	fmt.Fprintf(&b, "  %s %s\n", s.Muted.Render("Created: "), imp.CreatedAt.Format(timeLayout))
	return b.String()
}

type count struct {
	label string
	n     int
}

func tally[K comparable](m map[K]int, label func(K) string) []count {
	counts := make([]count, 0, len(m))
	for k, n := range m {
		counts = append(counts, count{label: label(k), n: n})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].n != counts[j].n {
			return counts[i].n > counts[j].n
		}
		return counts[i].label < counts[j].label
	})
	return counts
}

func section(b *strings.Builder, s *Styles, name string, counts []count) {
	parts := make([]string, len(counts))
	for i, c := range counts {
		parts[i] = fmt.Sprintf("%s %d", c.label, c.n)
	}
	fmt.Fprintf(b, "  %s %s\n", s.Muted.Render(fmt.Sprintf("%-11s", name+":")), strings.Join(parts, ", "))
}

func assignee(set domain.StringSet) string {
	if set.Len() == 0 {
		return "Unassigned"
	}
	return strings.Join(set, ", ")
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
	return t.UTC().Format(timeLayout)
}

// truncate shortens s to at most n runes, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}

// indent prefixes every line of s.
func indent(s, prefix string) string {
	return prefix + strings.ReplaceAll(s, "\n", "\n"+prefix)
}
