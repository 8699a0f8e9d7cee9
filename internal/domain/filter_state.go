package domain

import (
	"slices"
	"strings"
)

// AllIndustries is the industry sentinel meaning "no industry filter".
const AllIndustries = "all"

// FilterState parameterizes which employers are shown.
type FilterState struct {
	SearchQuery      string   `json:"searchQuery"`
	SelectedIndustry string   `json:"selectedIndustry"`
	ActiveTags       []string `json:"activeTags"`
}

// DefaultFilterState returns the state a new session starts with.
func DefaultFilterState() FilterState {
	return FilterState{
		SearchQuery:      "",
		SelectedIndustry: AllIndustries,
		ActiveTags:       []string{},
	}
}

// Clone returns a deep copy so callers cannot alias ActiveTags.
func (s FilterState) Clone() FilterState {
	out := s
	out.ActiveTags = make([]string, len(s.ActiveTags))
	copy(out.ActiveTags, s.ActiveTags)
	return out
}

// Normalize fills zero values with defaults. A state decoded from an empty
// request or store entry has an empty industry and nil tags.
func (s FilterState) Normalize() FilterState {
	out := s.Clone()
	if out.SelectedIndustry == "" {
		out.SelectedIndustry = AllIndustries
	}
	return out
}

// HasActiveFilters reports whether an industry or any tag narrows the view.
// The search query does not count; it has its own clear control.
func (s FilterState) HasActiveFilters() bool {
	return s.SelectedIndustry != AllIndustries || len(s.ActiveTags) > 0
}

// HasTag reports whether tag is active (exact, case-sensitive).
func (s FilterState) HasTag(tag string) bool {
	return slices.Contains(s.ActiveTags, tag)
}

// Key returns a canonical string for use as a cache key.
// Fields are separated by control characters that cannot appear in form input.
func (s FilterState) Key() string {
	var b strings.Builder
	b.WriteString(s.SearchQuery)
	b.WriteByte(0x1e)
	b.WriteString(s.SelectedIndustry)
	for _, t := range s.ActiveTags {
		b.WriteByte(0x1f)
		b.WriteString(t)
	}
	return b.String()
}
