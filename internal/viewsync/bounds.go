// Package viewsync keeps the map in step with the filtered employer list and
// builds the card projections shown in popups and list rows.
package viewsync

import "github.com/Odelf18/career-maps/internal/domain"

// DefaultFitPadding is the pixel padding applied around fitted bounds.
var DefaultFitPadding = Padding{X: 50, Y: 50}

// Padding is the [x, y] pixel padding of a bounds-fit.
type Padding struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Pair returns the padding in the [x, y] array form the map widget expects.
func (p Padding) Pair() [2]int {
	return [2]int{p.X, p.Y}
}

// BoundsRequest asks the map widget to frame Points with Padding.
type BoundsRequest struct {
	Bounds  domain.Bounds   `json:"bounds"`
	Points  []domain.LatLng `json:"points"`
	Padding Padding         `json:"padding"`
}

// FitBounds computes the minimal bounds covering every employer with valid
// coordinates. It returns false when there is nothing to frame.
func FitBounds(employers []domain.Employer, padding Padding) (BoundsRequest, bool) {
	points := make([]domain.LatLng, 0, len(employers))
	for i := range employers {
		if !employers[i].HasValidCoordinates() {
			continue
		}
		points = append(points, domain.LatLng{Lat: employers[i].Lat, Lng: employers[i].Lng})
	}
	if len(points) == 0 {
		return BoundsRequest{}, false
	}

	b := domain.PointBounds(points[0])
	for _, p := range points[1:] {
		b = b.Extend(p)
	}
	return BoundsRequest{Bounds: b, Points: points, Padding: padding}, true
}
