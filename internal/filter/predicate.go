// Package filter evaluates filter state against the employer dataset and owns
// the state transitions driven by user interaction.
package filter

import (
	"strings"

	"github.com/Odelf18/career-maps/internal/domain"
)

// Apply returns the employers that pass every filter axis, in dataset order.
// The result is a new slice and never nil.
func Apply(employers []domain.Employer, state domain.FilterState) []domain.Employer {
	query := normalizeQuery(state.SearchQuery)

	out := make([]domain.Employer, 0, len(employers))
	for i := range employers {
		e := &employers[i]
		if !MatchIndustry(e, state.SelectedIndustry) {
			continue
		}
		if !MatchTags(e, state.ActiveTags) {
			continue
		}
		if !matchNormalizedQuery(e, query) {
			continue
		}
		out = append(out, *e)
	}
	return out
}

// MatchIndustry passes when industry is the "all" sentinel or equals the
// employer's industry exactly.
func MatchIndustry(e *domain.Employer, industry string) bool {
	return industry == domain.AllIndustries || e.Industry == industry
}

// MatchTags passes when every active tag is carried by at least one posting.
// Different tags may be satisfied by different postings.
func MatchTags(e *domain.Employer, activeTags []string) bool {
	for _, want := range activeTags {
		if !hasTag(e, want) {
			return false
		}
	}
	return true
}

// MatchSearch passes when the trimmed query is empty or is a case-insensitive
// substring of the name, industry, address, a posting title or a posting tag.
func MatchSearch(e *domain.Employer, query string) bool {
	return matchNormalizedQuery(e, normalizeQuery(query))
}

func hasTag(e *domain.Employer, want string) bool {
	for _, p := range e.JobPostings {
		for _, tag := range p.Tags {
			if strings.EqualFold(tag, want) {
				return true
			}
		}
	}
	return false
}

func normalizeQuery(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

func matchNormalizedQuery(e *domain.Employer, q string) bool {
	if q == "" {
		return true
	}
	if containsFold(e.Name, q) || containsFold(e.Industry, q) || containsFold(e.Address, q) {
		return true
	}
	for _, p := range e.JobPostings {
		if containsFold(p.Title, q) {
			return true
		}
		for _, tag := range p.Tags {
			if containsFold(tag, q) {
				return true
			}
		}
	}
	return false
}

// containsFold expects q already lower-cased.
func containsFold(field, q string) bool {
	return strings.Contains(strings.ToLower(field), q)
}
