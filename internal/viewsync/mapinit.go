package viewsync

import (
	"sync"

	"github.com/Odelf18/career-maps/internal/domain"
)

// Map widget defaults.
const (
	DefaultTileURL       = "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png"
	DefaultAttribution   = `&copy; <a href="https://www.openstreetmap.org/copyright">OpenStreetMap</a> contributors`
	DefaultZoom          = 12
	DefaultPopupMinWidth = 280
	DefaultPopupMaxWidth = 300

	leafletImages        = "https://cdnjs.cloudflare.com/ajax/libs/leaflet/1.7.1/images/"
	DefaultIconURL       = leafletImages + "marker-icon.png"
	DefaultIconRetinaURL = leafletImages + "marker-icon-2x.png"
	DefaultShadowURL     = leafletImages + "marker-shadow.png"
)

// DefaultCenter is downtown Richmond, VA.
var DefaultCenter = domain.LatLng{Lat: 37.5407, Lng: -77.4360}

// MarkerIcon holds the default marker image URLs.
type MarkerIcon struct {
	IconURL       string `json:"iconUrl"`
	IconRetinaURL string `json:"iconRetinaUrl"`
	ShadowURL     string `json:"shadowUrl"`
}

// MapSettings configures the map widget.
type MapSettings struct {
	TileURL       string        `json:"tileUrl"`
	Attribution   string        `json:"attribution"`
	Center        domain.LatLng `json:"center"`
	Zoom          int           `json:"zoom"`
	FitPadding    Padding       `json:"fitPadding"`
	PopupMinWidth int           `json:"popupMinWidth"`
	PopupMaxWidth int           `json:"popupMaxWidth"`
	Icon          MarkerIcon    `json:"icon"`
}

func (s MapSettings) withDefaults() MapSettings {
	if s.TileURL == "" {
		s.TileURL = DefaultTileURL
	}
	if s.Attribution == "" {
		s.Attribution = DefaultAttribution
	}
	if s.Center == (domain.LatLng{}) {
		s.Center = DefaultCenter
	}
	if s.Zoom == 0 {
		s.Zoom = DefaultZoom
	}
	if s.FitPadding == (Padding{}) {
		s.FitPadding = DefaultFitPadding
	}
	if s.PopupMinWidth == 0 {
		s.PopupMinWidth = DefaultPopupMinWidth
	}
	if s.PopupMaxWidth == 0 {
		s.PopupMaxWidth = DefaultPopupMaxWidth
	}
	if s.Icon.IconURL == "" {
		s.Icon.IconURL = DefaultIconURL
	}
	if s.Icon.IconRetinaURL == "" {
		s.Icon.IconRetinaURL = DefaultIconRetinaURL
	}
	if s.Icon.ShadowURL == "" {
		s.Icon.ShadowURL = DefaultShadowURL
	}
	return s
}

// MapInit resolves map settings exactly once, before the first render.
// Later changes to the input are not observed.
type MapInit struct {
	once     sync.Once
	input    MapSettings
	settings MapSettings
}

// NewMapInit returns an initializer for the given overrides.
func NewMapInit(overrides MapSettings) *MapInit {
	return &MapInit{input: overrides}
}

// Settings returns the resolved settings, resolving them on first use.
func (m *MapInit) Settings() MapSettings {
	m.once.Do(func() {
		m.settings = m.input.withDefaults()
	})
	return m.settings
}

// DefaultMapSettings returns the settings used when nothing is overridden.
func DefaultMapSettings() MapSettings {
	return MapSettings{}.withDefaults()
}
