// Package service derives the directory view (list, map markers, facets
// and viewport) from the dataset and a filter state, and applies filter
// operations to stored sessions.
package service

import (
	"errors"
	"sync"

	"github.com/Odelf18/career-maps/infrastructure/logger"
	"github.com/Odelf18/career-maps/internal/dataset"
	"github.com/Odelf18/career-maps/internal/domain"
	"github.com/Odelf18/career-maps/internal/facets"
	"github.com/Odelf18/career-maps/internal/filter"
	"github.com/Odelf18/career-maps/internal/telemetry"
	"github.com/Odelf18/career-maps/internal/viewsync"
)

// DefaultMemoSize is used when Options.MemoSize is zero.
const DefaultMemoSize = 256

// Empty-state copy.
const (
	EmptyTitle = "No companies found"
	EmptyHint  = "Try adjusting your filters or search query"
)

// ErrUnknownOperation is returned by Apply for an operation the controller
// does not know.
var ErrUnknownOperation = errors.New("unknown filter operation")

// DirectoryView is everything a page or API response needs for one state.
type DirectoryView struct {
	DatasetVersion   uint64                  `json:"datasetVersion"`
	State            domain.FilterState      `json:"state"`
	Count            int                     `json:"count"`
	Total            int                     `json:"total"`
	CountLabel       string                  `json:"countLabel"`
	HasActiveFilters bool                    `json:"hasActiveFilters"`
	Employers        []viewsync.ListCard     `json:"employers"`
	Markers          []viewsync.Marker       `json:"markers"`
	Industries       []string                `json:"industries"`
	IndustryOptions  []facets.Option         `json:"industryOptions"`
	Viewport         viewsync.Viewport       `json:"viewport"`
	Refit            bool                    `json:"refit"`
	Fit              *viewsync.BoundsRequest `json:"fit,omitempty"`
}

// Empty reports whether nothing matched.
func (v *DirectoryView) Empty() bool { return v.Count == 0 }

// derived is the state-dependent part of a view, shared between requests
// with the same dataset version and filter state.
type derived struct {
	count   int
	cards   []viewsync.ListCard
	markers []viewsync.Marker
	fit     *viewsync.BoundsRequest
}

type facetCache struct {
	mu         sync.Mutex
	version    uint64
	industries []string
}

// Options configures a Directory.
type Options struct {
	MemoSize int
	Metrics  *telemetry.Metrics
	Logger   logger.Logger
}

// Directory evaluates filter states against the current dataset snapshot.
type Directory struct {
	store   *dataset.Store
	mapInit *viewsync.MapInit
	metrics *telemetry.Metrics
	log     logger.Logger
	memo    *memo
	facets  facetCache
}

// NewDirectory returns a Directory over store.
func NewDirectory(store *dataset.Store, mapInit *viewsync.MapInit, opts Options) *Directory {
	if opts.MemoSize == 0 {
		opts.MemoSize = DefaultMemoSize
	}
	if opts.Logger == nil {
		opts.Logger = logger.NewNop()
	}
	return &Directory{
		store:   store,
		mapInit: mapInit,
		metrics: opts.Metrics,
		log:     opts.Logger,
		memo:    newMemo(opts.MemoSize),
	}
}

// MapSettings returns the once-resolved map widget settings.
func (d *Directory) MapSettings() viewsync.MapSettings {
	return d.mapInit.Settings()
}

// InitialViewport is the viewport a new session starts with.
func (d *Directory) InitialViewport() viewsync.Viewport {
	return viewsync.InitialViewport(d.MapSettings())
}

// Industries returns the industry facet of the current snapshot.
func (d *Directory) Industries() ([]string, error) {
	snap := d.store.Current()
	if snap == nil {
		return nil, dataset.ErrNotLoaded
	}
	return d.industries(snap), nil
}

func (d *Directory) industries(snap *dataset.Snapshot) []string {
	d.facets.mu.Lock()
	defer d.facets.mu.Unlock()

	if d.facets.industries == nil || d.facets.version != snap.Version {
		d.facets.industries = facets.Industries(snap.Employers)
		d.facets.version = snap.Version
	}
	return d.facets.industries
}

// View derives the directory for state. prev is the viewport last shown to
// the caller; it is re-fitted to the result, or kept as is when nothing
// can be placed on the map.
func (d *Directory) View(state domain.FilterState, prev viewsync.Viewport) (*DirectoryView, error) {
	snap := d.store.Current()
	if snap == nil {
		return nil, dataset.ErrNotLoaded
	}
	state = state.Normalize()

	key := memoKey{version: snap.Version, state: state.Key()}
	res, cached := d.memo.get(key)
	if !cached {
		res = derive(snap.Employers, state, d.MapSettings().FitPadding)
		d.memo.put(key, res)
	}
	if d.metrics != nil {
		d.metrics.ObserveEvaluation(cached, res.count)
	}

	viewport, refit := prev, false
	if res.fit != nil {
		viewport, refit = prev.Fit(*res.fit), true
	}

	industries := d.industries(snap)
	return &DirectoryView{
		DatasetVersion:   snap.Version,
		State:            state,
		Count:            res.count,
		Total:            snap.Len(),
		CountLabel:       viewsync.CountLabel(res.count),
		HasActiveFilters: state.HasActiveFilters(),
		Employers:        res.cards,
		Markers:          res.markers,
		Industries:       industries,
		IndustryOptions:  facets.IndustryOptions(industries, state.SelectedIndustry),
		Viewport:         viewport,
		Refit:            refit,
		Fit:              res.fit,
	}, nil
}

func derive(employers []domain.Employer, state domain.FilterState, padding viewsync.Padding) *derived {
	matched := filter.Apply(employers, state)
	res := &derived{
		count:   len(matched),
		cards:   viewsync.ListCards(matched, state),
		markers: viewsync.Markers(matched),
	}
	if req, ok := viewsync.FitBounds(matched, padding); ok {
		res.fit = &req
	}
	return res
}
