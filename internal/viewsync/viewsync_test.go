package viewsync_test

import (
	"math"
	"strings"
	"sync"
	"testing"
	"unicode/utf8"

	"github.com/Odelf18/career-maps/internal/domain"
	"github.com/Odelf18/career-maps/internal/viewsync"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func employersAt(coords ...[2]float64) []domain.Employer {
	out := make([]domain.Employer, 0, len(coords))
	for i, c := range coords {
		out = append(out, domain.Employer{ID: string(rune('a' + i)), Name: "E", Lat: c[0], Lng: c[1]})
	}
	return out
}

func TestFitBounds_CoversAllPoints(t *testing.T) {
	t.Parallel()

	d := employersAt([2]float64{37.5, -77.5}, [2]float64{37.6, -77.3}, [2]float64{37.4, -77.4})
	req, ok := viewsync.FitBounds(d, viewsync.DefaultFitPadding)
	require.True(t, ok)

	assert.Equal(t, domain.Bounds{South: 37.4, West: -77.5, North: 37.6, East: -77.3}, req.Bounds)
	assert.Equal(t, [2]int{50, 50}, req.Padding.Pair())
	assert.Len(t, req.Points, 3)
}

func TestFitBounds_SkipsInvalidCoordinates(t *testing.T) {
	t.Parallel()

	d := employersAt([2]float64{37.5, -77.5}, [2]float64{math.NaN(), 0}, [2]float64{120, 10})
	req, ok := viewsync.FitBounds(d, viewsync.DefaultFitPadding)
	require.True(t, ok)
	assert.Equal(t, domain.PointBounds(domain.LatLng{Lat: 37.5, Lng: -77.5}), req.Bounds)
	assert.Len(t, req.Points, 1)
}

func TestFitBounds_NothingToFrame(t *testing.T) {
	t.Parallel()

	_, ok := viewsync.FitBounds(nil, viewsync.DefaultFitPadding)
	assert.False(t, ok)

	_, ok = viewsync.FitBounds(employersAt([2]float64{math.Inf(1), 0}), viewsync.DefaultFitPadding)
	assert.False(t, ok)
}

func TestViewport_EmptyResultLeavesViewportUnchanged(t *testing.T) {
	t.Parallel()

	settings := viewsync.NewMapInit(viewsync.MapSettings{}).Settings()
	v := viewsync.InitialViewport(settings)

	fitted, refit := v.Sync(employersAt([2]float64{37.5, -77.5}, [2]float64{37.6, -77.3}))
	require.True(t, refit)
	require.NotNil(t, fitted.Bounds)

	after, refit := fitted.Sync(nil)
	assert.False(t, refit)
	assert.Equal(t, fitted, after)
}

func TestViewport_InitialUsesDefaults(t *testing.T) {
	t.Parallel()

	v := viewsync.InitialViewport(viewsync.NewMapInit(viewsync.MapSettings{}).Settings())
	assert.Equal(t, viewsync.DefaultCenter, v.Center)
	assert.Equal(t, viewsync.DefaultZoom, v.Zoom)
	assert.Nil(t, v.Bounds)
}

func TestMarkers_ExcludeInvalidCoordinates(t *testing.T) {
	t.Parallel()

	d := employersAt([2]float64{37.5, -77.5}, [2]float64{math.NaN(), 1}, [2]float64{37.6, -77.3})
	markers := viewsync.Markers(d)

	require.Len(t, markers, 2)
	assert.Equal(t, "a", markers[0].ID)
	assert.Equal(t, "c", markers[1].ID)
}

func TestNewPopupCard_CompactProjection(t *testing.T) {
	t.Parallel()

	e := domain.Employer{
		Name:      "Acme",
		Industry:  "Technology",
		Address:   "1 Main St",
		CareerURL: "https://acme.example/careers",
		JobPostings: []domain.JobPosting{
			{Title: "Engineer", Tags: []string{"Remote"}},
			{Title: "Designer", Tags: []string{"Hybrid"}},
			{Title: "Manager", Tags: []string{"Senior"}},
			{Title: "Intern", Tags: []string{"Entry"}},
		},
	}

	card := viewsync.NewPopupCard(&e)
	assert.Equal(t, []string{"Engineer", "Designer"}, card.Titles)
	assert.Equal(t, "+2 more", card.MoreLabel)
	assert.Equal(t, "4 open positions", card.PositionLabel)
	assert.Equal(t, viewsync.PopupLinkLabel, card.LinkLabel)
	assert.Equal(t, e.CareerURL, card.CareerURL)
}

func TestNewPopupCard_SinglePosting(t *testing.T) {
	t.Parallel()

	e := domain.Employer{Name: "Solo", JobPostings: []domain.JobPosting{{Title: "Clerk"}}}
	card := viewsync.NewPopupCard(&e)

	assert.Equal(t, "1 open position", card.PositionLabel)
	assert.Empty(t, card.MoreLabel)
	assert.Equal(t, []string{"Clerk"}, card.Titles)
}

func TestNewPopupCard_TruncatesAddress(t *testing.T) {
	t.Parallel()

	e := domain.Employer{Name: "Long", Address: strings.Repeat("é", 200)}
	card := viewsync.NewPopupCard(&e)

	assert.LessOrEqual(t, utf8.RuneCountInString(card.Address), viewsync.MaxPopupAddressRunes)
	assert.True(t, strings.HasSuffix(card.Address, "…"))
}

func TestNewListCard_TagsToggleableAndActive(t *testing.T) {
	t.Parallel()

	e := domain.Employer{
		ID:   "1",
		Name: "Acme",
		Lat:  37.5, Lng: -77.4,
		JobPostings: []domain.JobPosting{{Title: "Engineer", Tags: []string{"Remote", "Senior"}}},
	}
	state := domain.FilterState{SelectedIndustry: domain.AllIndustries, ActiveTags: []string{"Remote", "senior"}}

	card := viewsync.NewListCard(&e, state)
	require.Len(t, card.Postings, 1)
	tags := card.Postings[0].Tags
	require.Len(t, tags, 2)

	assert.True(t, tags[0].Toggleable)
	assert.True(t, tags[0].Active)
	assert.Equal(t, viewsync.ToneRemote, tags[0].Tone)
	// "senior" in state does not exactly equal "Senior".
	assert.False(t, tags[1].Active)
	assert.Equal(t, viewsync.ToneSenior, tags[1].Tone)
	assert.Equal(t, "Open Positions (1)", card.PositionsLabel)
	assert.True(t, card.OnMap)
}

func TestNewListCard_KeepsEmployerWithoutCoordinates(t *testing.T) {
	t.Parallel()

	e := domain.Employer{ID: "x", Name: "Nowhere", Lat: math.NaN()}
	card := viewsync.NewListCard(&e, domain.DefaultFilterState())
	assert.False(t, card.OnMap)
	assert.NotNil(t, card.Postings)
}

func TestTagTone(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"Entry Level": viewsync.ToneEntry,
		"Mid-Level":   viewsync.ToneMid,
		"Senior":      viewsync.ToneSenior,
		"Remote":      viewsync.ToneRemote,
		"HYBRID":      viewsync.ToneHybrid,
		"On-site":     viewsync.ToneOnSite,
		"Full-time":   viewsync.ToneDefault,
		"Remote-ish":  viewsync.ToneDefault,
	}
	for tag, want := range tests {
		assert.Equal(t, want, viewsync.TagTone(tag), tag)
	}
}

func TestLabels(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "1 company found", viewsync.CountLabel(1))
	assert.Equal(t, "0 companies found", viewsync.CountLabel(0))
	assert.Equal(t, "3 companies found", viewsync.CountLabel(3))
	assert.Equal(t, "0 open positions", viewsync.PositionLabel(0))
}

func TestMapInit_ResolvesOnce(t *testing.T) {
	t.Parallel()

	m := viewsync.NewMapInit(viewsync.MapSettings{Zoom: 10})

	var wg sync.WaitGroup
	results := make([]viewsync.MapSettings, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = m.Settings()
		}(i)
	}
	wg.Wait()

	for _, r := range results {
		assert.Equal(t, results[0], r)
	}
	assert.Equal(t, 10, results[0].Zoom)
	assert.Equal(t, viewsync.DefaultTileURL, results[0].TileURL)
	assert.Equal(t, viewsync.DefaultIconRetinaURL, results[0].Icon.IconRetinaURL)
	assert.Equal(t, viewsync.DefaultFitPadding, results[0].FitPadding)
}
