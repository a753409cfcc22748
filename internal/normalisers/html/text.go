package html

import (
	"html"
	"regexp"
	"strings"
)

// Pre-compiled regular expressions for fragment conversion.
var (
	dropTags      = regexp.MustCompile(`(?is)<(script|style|noscript|svg)[^>]*>.*?</(script|style|noscript|svg)>`)
	comments      = regexp.MustCompile(`(?s)<!--.*?-->`)
	openBlocks    = regexp.MustCompile(`(?i)<(p|div|h[1-6]|tr|blockquote|pre|table|ul|ol)[^>]*>`)
	closeBlocks   = regexp.MustCompile(`(?i)</(p|div|h[1-6]|li|tr|blockquote|pre|table|ul|ol)>`)
	listItems     = regexp.MustCompile(`(?i)<li[^>]*>`)
	lineBreaks    = regexp.MustCompile(`(?i)<(br|hr)\s*/?>`)
	anyTag        = regexp.MustCompile(`<[^>]+>`)
	multiSpaces   = regexp.MustCompile(`[ \t\x{00a0}]+`)
	multiNewlines = regexp.MustCompile(`\n{3,}`)
)

// Text strips markup from an HTML fragment, keeping block structure as line
// breaks and list items as "- " lines. Entities are decoded.
func Text(fragment string) string {
	if !strings.Contains(fragment, "<") && !strings.Contains(fragment, "&") {
		return strings.TrimSpace(fragment)
	}

	s := dropTags.ReplaceAllString(fragment, "")
	s = comments.ReplaceAllString(s, "")
	s = listItems.ReplaceAllString(s, "\n- ")
	s = openBlocks.ReplaceAllString(s, "\n")
	s = closeBlocks.ReplaceAllString(s, "\n")
	s = lineBreaks.ReplaceAllString(s, "\n")
	s = anyTag.ReplaceAllString(s, "")
	s = html.UnescapeString(s)
	s = multiSpaces.ReplaceAllString(s, " ")
	s = multiNewlines.ReplaceAllString(s, "\n\n")

	lines := strings.Split(s, "\n")
	out := lines[:0]
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}
