package jira

import (
	"strings"
	"time"

	"github.com/beevik/etree"
)

// Every lookup searches all descendants of the node, not the node itself,
// in document order.

// extractSingle returns the trimmed text of the first descendant named tag.
// It reports false when no such element exists or the element has no text.
func extractSingle(node *etree.Element, tag string) (string, bool) {
	elem := firstDescendant(node, tag)
	if elem == nil {
		return "", false
	}
	text := strings.TrimSpace(elem.Text())
	if text == "" {
		return "", false
	}
	return text, true
}

// extractMany returns the trimmed text of every descendant named tag.
// Elements without text contribute an empty string.
func extractMany(node *etree.Element, tag string) []string {
	elems := descendants(node, tag)
	values := make([]string, 0, len(elems))
	for _, elem := range elems {
		values = append(values, strings.TrimSpace(elem.Text()))
	}
	return values
}

// extractTimestamp parses the first descendant named tag with the export
// date format. An absent value yields nil without error.
func extractTimestamp(node *etree.Element, tag string) (*time.Time, error) {
	value, ok := extractSingle(node, tag)
	if !ok {
		return nil, nil
	}
	ts, err := ParseDate(value)
	if err != nil {
		return nil, err
	}
	return &ts, nil
}

// descendants collects every descendant element named tag, depth first.
func descendants(node *etree.Element, tag string) []*etree.Element {
	var found []*etree.Element
	walk(node, func(e *etree.Element) bool {
		if e.FullTag() == tag {
			found = append(found, e)
		}
		return true
	})
	return found
}

// firstDescendant returns the first descendant named tag in document order.
func firstDescendant(node *etree.Element, tag string) *etree.Element {
	var found *etree.Element
	walk(node, func(e *etree.Element) bool {
		if e.FullTag() == tag {
			found = e
			return false
		}
		return true
	})
	return found
}

// walk visits the descendants of node in pre-order until visit returns false.
func walk(node *etree.Element, visit func(*etree.Element) bool) bool {
	for _, child := range node.ChildElements() {
		if !visit(child) || !walk(child, visit) {
			return false
		}
	}
	return true
}
