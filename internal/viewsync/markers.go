package viewsync

import "github.com/Odelf18/career-maps/internal/domain"

// Marker is a point handed to the map widget.
type Marker struct {
	ID    string    `json:"id"`
	Lat   float64   `json:"lat"`
	Lng   float64   `json:"lng"`
	Popup PopupCard `json:"popup"`
}

// Markers returns one marker per employer with valid coordinates, in order.
// Employers that cannot be placed are skipped here but stay in the list.
func Markers(employers []domain.Employer) []Marker {
	out := make([]Marker, 0, len(employers))
	for i := range employers {
		e := &employers[i]
		if !e.HasValidCoordinates() {
			continue
		}
		out = append(out, Marker{ID: e.ID, Lat: e.Lat, Lng: e.Lng, Popup: NewPopupCard(e)})
	}
	return out
}
