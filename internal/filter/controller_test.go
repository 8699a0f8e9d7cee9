package filter_test

import (
	"testing"

	"github.com/Odelf18/career-maps/internal/domain"
	"github.com/Odelf18/career-maps/internal/filter"
	"github.com/stretchr/testify/assert"
)

func TestController_StartsAtDefaults(t *testing.T) {
	t.Parallel()

	c := filter.NewController()
	assert.Equal(t, domain.DefaultFilterState(), c.State())
}

func TestController_SetSearchQueryStoresVerbatim(t *testing.T) {
	t.Parallel()

	c := filter.NewController()
	c.SetSearchQuery("  Nurse ")
	assert.Equal(t, "  Nurse ", c.State().SearchQuery)
}

func TestController_SetIndustry(t *testing.T) {
	t.Parallel()

	c := filter.NewController()
	c.SetIndustry("Healthcare")
	assert.Equal(t, "Healthcare", c.State().SelectedIndustry)
}

func TestController_ToggleTagAppendsThenRemoves(t *testing.T) {
	t.Parallel()

	c := filter.NewController()
	c.ToggleTag("Remote")
	c.ToggleTag("Senior")
	assert.Equal(t, []string{"Remote", "Senior"}, c.State().ActiveTags)

	c.ToggleTag("Remote")
	assert.Equal(t, []string{"Senior"}, c.State().ActiveTags)
}

func TestController_ToggleTwiceRestoresSequence(t *testing.T) {
	t.Parallel()

	c := filter.NewControllerFrom(domain.FilterState{
		SelectedIndustry: domain.AllIndustries,
		ActiveTags:       []string{"Remote", "Senior"},
	})
	before := c.State().ActiveTags

	c.ToggleTag("Entry")
	c.ToggleTag("Entry")
	assert.Equal(t, before, c.State().ActiveTags)
}

func TestController_ToggleTwiceOnPresentTagKeepsSet(t *testing.T) {
	t.Parallel()

	c := filter.NewControllerFrom(domain.FilterState{
		SelectedIndustry: domain.AllIndustries,
		ActiveTags:       []string{"Remote", "Senior"},
	})

	c.ToggleTag("Remote")
	c.ToggleTag("Remote")
	// Re-added tags go to the end.
	assert.Equal(t, []string{"Senior", "Remote"}, c.State().ActiveTags)
	assert.ElementsMatch(t, []string{"Remote", "Senior"}, c.State().ActiveTags)
}

func TestController_ToggleTagIsCaseSensitive(t *testing.T) {
	t.Parallel()

	c := filter.NewController()
	c.ToggleTag("Remote")
	c.ToggleTag("remote")
	assert.Equal(t, []string{"Remote", "remote"}, c.State().ActiveTags)

	c.RemoveTag("REMOTE")
	assert.Equal(t, []string{"Remote", "remote"}, c.State().ActiveTags)
}

func TestController_RemoveTag(t *testing.T) {
	t.Parallel()

	c := filter.NewController()
	c.ToggleTag("Remote")
	c.RemoveTag("Hybrid")
	assert.Equal(t, []string{"Remote"}, c.State().ActiveTags)

	c.RemoveTag("Remote")
	assert.NotNil(t, c.State().ActiveTags)
	assert.Empty(t, c.State().ActiveTags)
}

func TestController_ClearAllResetsEverything(t *testing.T) {
	t.Parallel()

	c := filter.NewController()
	c.SetSearchQuery("bank")
	c.SetIndustry("Finance")
	c.ToggleTag("Remote")
	c.ToggleTag("Senior")

	c.ClearAll()
	assert.Equal(t, domain.FilterState{
		SearchQuery:      "",
		SelectedIndustry: domain.AllIndustries,
		ActiveTags:       []string{},
	}, c.State())
}

func TestController_StateIsACopy(t *testing.T) {
	t.Parallel()

	c := filter.NewController()
	c.ToggleTag("Remote")

	s := c.State()
	s.ActiveTags[0] = "mutated"
	assert.Equal(t, []string{"Remote"}, c.State().ActiveTags)
}

func TestController_Dispatch(t *testing.T) {
	t.Parallel()

	c := filter.NewController()
	assert.True(t, c.Dispatch(filter.OpSetSearchQuery, "acme"))
	assert.True(t, c.Dispatch(filter.OpSetIndustry, "Technology"))
	assert.True(t, c.Dispatch(filter.OpToggleTag, "Remote"))
	assert.True(t, c.Dispatch(filter.OpRemoveTag, "Remote"))
	assert.False(t, c.Dispatch(filter.Operation("bogus"), "x"))

	assert.Equal(t, "acme", c.State().SearchQuery)
	assert.Equal(t, "Technology", c.State().SelectedIndustry)
	assert.Empty(t, c.State().ActiveTags)

	assert.True(t, c.Dispatch(filter.OpClearAll, ""))
	assert.Equal(t, domain.DefaultFilterState(), c.State())
}
