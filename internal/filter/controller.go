package filter

import (
	"slices"

	"github.com/Odelf18/career-maps/internal/domain"
)

// Operation names a state transition, used for metrics and logging.
type Operation string

// Controller operations.
const (
	OpSetSearchQuery Operation = "set_search_query"
	OpSetIndustry    Operation = "set_industry"
	OpToggleTag      Operation = "toggle_tag"
	OpRemoveTag      Operation = "remove_tag"
	OpClearAll       Operation = "clear_all"
)

// Controller owns one session's FilterState. It is not safe for concurrent
// use; each request builds its own from the stored state.
type Controller struct {
	state domain.FilterState
}

// NewController returns a controller holding the default state.
func NewController() *Controller {
	return &Controller{state: domain.DefaultFilterState()}
}

// NewControllerFrom resumes a previously stored state.
func NewControllerFrom(state domain.FilterState) *Controller {
	return &Controller{state: state.Normalize()}
}

// State returns a copy of the current state.
func (c *Controller) State() domain.FilterState {
	return c.state.Clone()
}

// SetSearchQuery stores text verbatim. Trimming happens only when matching.
func (c *Controller) SetSearchQuery(text string) {
	c.state.SearchQuery = text
}

// SetIndustry replaces the selected industry.
func (c *Controller) SetIndustry(industry string) {
	c.state.SelectedIndustry = industry
}

// ToggleTag removes tag if present (exact match), otherwise appends it.
// "Remote" and "remote" are distinct entries here even though both match
// the same employers.
func (c *Controller) ToggleTag(tag string) {
	if c.state.HasTag(tag) {
		c.RemoveTag(tag)
		return
	}
	c.state.ActiveTags = append(c.state.ActiveTags, tag)
}

// RemoveTag removes tag (exact match). Absent tags are a no-op.
func (c *Controller) RemoveTag(tag string) {
	c.state.ActiveTags = slices.DeleteFunc(slices.Clone(c.state.ActiveTags), func(t string) bool {
		return t == tag
	})
}

// ClearAll resets every axis to its default together.
func (c *Controller) ClearAll() {
	c.state = domain.DefaultFilterState()
}

// Dispatch applies a named operation. arg is ignored by OpClearAll.
// It returns false for an unknown operation.
func (c *Controller) Dispatch(op Operation, arg string) bool {
	switch op {
	case OpSetSearchQuery:
		c.SetSearchQuery(arg)
	case OpSetIndustry:
		c.SetIndustry(arg)
	case OpToggleTag:
		c.ToggleTag(arg)
	case OpRemoveTag:
		c.RemoveTag(arg)
	case OpClearAll:
		c.ClearAll()
	default:
		return false
	}
	return true
}
