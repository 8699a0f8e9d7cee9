package domain

// LatLng is a WGS84 coordinate pair.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Bounds is an axis-aligned geographic box.
type Bounds struct {
	South float64 `json:"south"`
	West  float64 `json:"west"`
	North float64 `json:"north"`
	East  float64 `json:"east"`
}

// Extend grows the bounds to include p.
func (b Bounds) Extend(p LatLng) Bounds {
	if p.Lat < b.South {
		b.South = p.Lat
	}
	if p.Lat > b.North {
		b.North = p.Lat
	}
	if p.Lng < b.West {
		b.West = p.Lng
	}
	if p.Lng > b.East {
		b.East = p.Lng
	}
	return b
}

// Center returns the midpoint of the bounds.
func (b Bounds) Center() LatLng {
	return LatLng{Lat: (b.South + b.North) / 2, Lng: (b.West + b.East) / 2}
}

// PointBounds returns a degenerate bounds containing only p.
func PointBounds(p LatLng) Bounds {
	return Bounds{South: p.Lat, West: p.Lng, North: p.Lat, East: p.Lng}
}
