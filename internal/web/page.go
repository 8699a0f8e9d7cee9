package web

import (
	"github.com/Odelf18/career-maps/internal/service"
	"github.com/Odelf18/career-maps/internal/viewsync"
)

// mapData is the JSON handed to the map script.
type mapData struct {
	Settings viewsync.MapSettings    `json:"settings"`
	Markers  []viewsync.Marker       `json:"markers"`
	Viewport viewsync.Viewport       `json:"viewport"`
	Refit    bool                    `json:"refit"`
	Fit      *viewsync.BoundsRequest `json:"fit,omitempty"`
}

type pageData struct {
	View       *service.DirectoryView
	Map        mapData
	EmptyTitle string
	EmptyHint  string
	EventsPath string
}

func newPageData(view *service.DirectoryView, settings viewsync.MapSettings, events string) pageData {
	return pageData{
		View: view,
		Map: mapData{
			Settings: settings,
			Markers:  view.Markers,
			Viewport: view.Viewport,
			Refit:    view.Refit,
			Fit:      view.Fit,
		},
		EmptyTitle: service.EmptyTitle,
		EmptyHint:  service.EmptyHint,
		EventsPath: events,
	}
}
