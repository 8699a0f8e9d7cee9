// Package facets derives selector options from the employer dataset.
package facets

import (
	"slices"

	"github.com/Odelf18/career-maps/internal/domain"
)

// AllIndustriesLabel is the display label of the "all" selector entry.
const AllIndustriesLabel = "All Industries"

// Option is one entry of the industry selector.
type Option struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
}

// Industries returns the distinct industries in ascending byte order.
// The "all" sentinel is never included.
func Industries(employers []domain.Employer) []string {
	seen := make(map[string]struct{}, len(employers))
	out := make([]string, 0)
	for i := range employers {
		ind := employers[i].Industry
		if _, ok := seen[ind]; ok {
			continue
		}
		seen[ind] = struct{}{}
		out = append(out, ind)
	}
	slices.Sort(out)
	return out
}

// IndustryOptions prepends the "all" entry to industries and marks the
// selected one.
func IndustryOptions(industries []string, selected string) []Option {
	opts := make([]Option, 0, len(industries)+1)
	opts = append(opts, Option{
		Value:    domain.AllIndustries,
		Label:    AllIndustriesLabel,
		Selected: selected == domain.AllIndustries,
	})
	for _, ind := range industries {
		opts = append(opts, Option{Value: ind, Label: ind, Selected: ind == selected})
	}
	return opts
}
