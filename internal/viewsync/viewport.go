package viewsync

import "github.com/Odelf18/career-maps/internal/domain"

// Viewport is the framing last shown for a session. Bounds is nil until the
// first non-empty result has been fitted; until then Center and Zoom apply.
type Viewport struct {
	Center  domain.LatLng  `json:"center"`
	Zoom    int            `json:"zoom"`
	Bounds  *domain.Bounds `json:"bounds,omitempty"`
	Padding Padding        `json:"padding"`
}

// InitialViewport returns the framing used before any result is fitted.
func InitialViewport(s MapSettings) Viewport {
	return Viewport{Center: s.Center, Zoom: s.Zoom, Padding: s.FitPadding}
}

// Sync re-fits the viewport to employers. When no employer can be placed on
// the map the viewport is returned unchanged and refit is false, so an empty
// result never jumps the map.
func (v Viewport) Sync(employers []domain.Employer) (next Viewport, refit bool) {
	req, ok := FitBounds(employers, v.Padding)
	if !ok {
		return v, false
	}
	return v.Fit(req), true
}

// Fit frames req's bounds.
func (v Viewport) Fit(req BoundsRequest) Viewport {
	b := req.Bounds
	v.Bounds = &b
	v.Center = b.Center()
	return v
}
