package feature

import (
	"lintang/mapview/pkg/geo"
)

// Marker is a named point of interest rendered on the map.
type Marker struct {
	ID   int64      `json:"id"`
	Name string     `json:"name"`
	Tags []string   `json:"tags,omitempty"`
	Loc  geo.LatLng `json:"loc"`
}

// Bounds returns the degenerate rectangle at the marker location, so a
// marker can go through the same culling path as extended features.
func (m *Marker) Bounds() *geo.LatLngBounds {
	return geo.NewBounds(&m.Loc, &m.Loc)
}
