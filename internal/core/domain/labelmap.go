package domain

import "slices"

// MappingEntry associates one internal category key with the vendor labels
// that should be normalised onto it.
type MappingEntry struct {
	// Category is an enumeration key ("HIGH") or canonical label ("High").
	Category string `json:"category" toml:"category"`

	// Labels are the vendor-specific labels mapped onto Category.
	Labels []string `json:"labels" toml:"labels"`
}

// LabelMapping is an ordered, read-only label-to-category dictionary.
//
// Categories iterate in insertion order, and labels within a category in
// insertion order. A label listed under several categories therefore
// resolves to the earliest category.
type LabelMapping struct {
	entries []MappingEntry
}

// NewLabelMapping builds a dictionary from entries. Entries repeating a
// category are merged into the first occurrence; duplicate labels within a
// category are dropped. Entries with an empty category are ignored.
func NewLabelMapping(entries ...MappingEntry) LabelMapping {
	var m LabelMapping
	index := make(map[string]int)
	for _, e := range entries {
		if e.Category == "" {
			continue
		}
		i, ok := index[e.Category]
		if !ok {
			i = len(m.entries)
			index[e.Category] = i
			m.entries = append(m.entries, MappingEntry{Category: e.Category})
		}
		for _, label := range e.Labels {
			if !slices.Contains(m.entries[i].Labels, label) {
				m.entries[i].Labels = append(m.entries[i].Labels, label)
			}
		}
	}
	return m
}

// Len returns the number of categories.
func (m LabelMapping) Len() int {
	return len(m.entries)
}

// Categories returns the category keys in iteration order.
func (m LabelMapping) Categories() []string {
	out := make([]string, len(m.entries))
	for i, e := range m.entries {
		out[i] = e.Category
	}
	return out
}

// Labels returns a copy of the labels registered for category.
func (m LabelMapping) Labels(category string) []string {
	for _, e := range m.entries {
		if e.Category == category {
			return append([]string(nil), e.Labels...)
		}
	}
	return nil
}

// Entries returns a deep copy of the dictionary contents.
func (m LabelMapping) Entries() []MappingEntry {
	out := make([]MappingEntry, len(m.entries))
	for i, e := range m.entries {
		out[i] = MappingEntry{Category: e.Category, Labels: append([]string(nil), e.Labels...)}
	}
	return out
}

// Lookup returns the first category, in iteration order, that lists label
// and is accepted by accept. A nil accept admits every category.
func (m LabelMapping) Lookup(label string, accept func(category string) bool) (string, bool) {
	for _, e := range m.entries {
		if accept != nil && !accept(e.Category) {
			continue
		}
		if slices.Contains(e.Labels, label) {
			return e.Category, true
		}
	}
	return "", false
}

// MappingOptions is the per-call configuration of the category mapping.
type MappingOptions struct {
	// Mapping is the label dictionary shared by the enabled categories.
	Mapping LabelMapping

	// PriorityEnabled maps priorities through Mapping instead of canonical labels.
	PriorityEnabled bool

	// TypeEnabled maps issue types through Mapping instead of canonical labels.
	TypeEnabled bool

	// ResolutionEnabled maps resolutions through Mapping instead of canonical labels.
	ResolutionEnabled bool
}

// MappedField names an enumeration that can be mapped through the dictionary.
type MappedField string

// Fields with a mapping flag.
const (
	MappedPriority   MappedField = "priority"
	MappedType       MappedField = "type"
	MappedResolution MappedField = "resolution"
)

// IsValid returns true if the field is recognised.
func (f MappedField) IsValid() bool {
	switch f {
	case MappedPriority, MappedType, MappedResolution:
		return true
	default:
		return false
	}
}

// Enabled reports whether dictionary mapping is on for field.
func (o MappingOptions) Enabled(field MappedField) bool {
	switch field {
	case MappedPriority:
		return o.PriorityEnabled
	case MappedType:
		return o.TypeEnabled
	case MappedResolution:
		return o.ResolutionEnabled
	default:
		return false
	}
}
