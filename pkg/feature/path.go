package feature

import (
	"github.com/golang/geo/s2"
	"github.com/twpayne/go-polyline"

	"lintang/mapview/pkg/geo"
)

// Path is an ordered run of geographic points, a polyline overlay.
type Path struct {
	ID     int64        `json:"id"`
	Name   string       `json:"name,omitempty"`
	Points []geo.LatLng `json:"points"`
}

// Bounds returns the bounding box of all path points, empty for an empty
// path.
func (p *Path) Bounds() *geo.LatLngBounds {
	return geo.NewBoundsFromPoints(p.Points)
}

// EncodePolyline encodes the points with the google polyline codec, the
// compact wire form map frontends draw routes from.
func (p *Path) EncodePolyline() string {
	coords := make([][]float64, 0, len(p.Points))
	for _, pt := range p.Points {
		coords = append(coords, []float64{pt.Lat, pt.Lng})
	}
	return string(polyline.EncodeCoords(coords))
}

// DecodePolyline builds a path back from its polyline encoding.
func DecodePolyline(encoded string) (*Path, error) {
	coords, _, err := polyline.DecodeCoords([]byte(encoded))
	if err != nil {
		return nil, err
	}
	points := make([]geo.LatLng, 0, len(coords))
	for _, c := range coords {
		points = append(points, geo.LatLng{Lat: c[0], Lng: c[1]})
	}
	return &Path{Points: points}, nil
}

// ClosestPoint snaps ll onto the path: the s2 projection of the point
// onto each segment, keeping the candidate with the smallest great-circle
// distance. Returns nil for a path with no points.
func (p *Path) ClosestPoint(ll *geo.LatLng) *geo.LatLng {
	if len(p.Points) == 0 {
		return nil
	}
	if len(p.Points) == 1 {
		return p.Points[0].Clone()
	}

	target := s2.PointFromLatLng(s2.LatLngFromDegrees(ll.Lat, ll.Lng))

	var best *geo.LatLng
	bestDist := -1.0
	for i := 0; i+1 < len(p.Points); i++ {
		segStart := s2.PointFromLatLng(s2.LatLngFromDegrees(p.Points[i].Lat, p.Points[i].Lng))
		segEnd := s2.PointFromLatLng(s2.LatLngFromDegrees(p.Points[i+1].Lat, p.Points[i+1].Lng))

		projected := s2.Project(target, segStart, segEnd)
		projectedLatLng := s2.LatLngFromPoint(projected)
		candidate := &geo.LatLng{
			Lat: projectedLatLng.Lat.Degrees(),
			Lng: projectedLatLng.Lng.Degrees(),
		}

		dist := target.Distance(projected).Radians()
		if best == nil || dist < bestDist {
			best = candidate
			bestDist = dist
		}
	}
	return best
}
