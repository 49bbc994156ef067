package service

import (
	"context"

	"lintang/mapview/pkg/crs"
	"lintang/mapview/pkg/feature"
	"lintang/mapview/pkg/geo"
	"lintang/mapview/pkg/geom"
	"lintang/mapview/pkg/index"
	"lintang/mapview/pkg/tile"
	"lintang/mapview/pkg/view"
)

type MarkerDB interface {
	MarkersInBounds(b *geo.LatLngBounds) ([]feature.Marker, error)
}

// MapService answers the geodata queries of the map client: distances,
// fit-to-bounds, viewport culling and tile selection. The CRS is injected
// so the whole service can run on a different earth model.
type MapService struct {
	crs crs.CRS
	db  MarkerDB
	idx *index.MarkerIndex
}

func NewMapService(c crs.CRS, db MarkerDB) *MapService {
	return &MapService{
		crs: c,
		db:  db,
		idx: index.NewMarkerIndex(),
	}
}

// IndexMarkers loads markers into the in-memory viewport index. Called
// once at boot with the store content.
func (s *MapService) IndexMarkers(markers []feature.Marker) {
	for i := range markers {
		s.idx.Insert(&markers[i])
	}
}

// Distance returns the distance between two points in meters under the
// service CRS (great-circle for the earth ones).
func (s *MapService) Distance(ctx context.Context, from, to *geo.LatLng) float64 {
	return from.DistanceTo(to, s.crs)
}

// FitBounds returns the center and zoom that fit the rectangle into a
// width x height pixel viewport with padding pixels free on each edge.
func (s *MapService) FitBounds(ctx context.Context, b *geo.LatLngBounds,
	width, height int, padding float64) (*geo.LatLng, int) {

	size := geom.Point{X: float64(width), Y: float64(height)}
	return view.FitBounds(s.crs, b, size, padding)
}

// Viewport resolves a center+zoom+size view into its geographic bounds,
// the tiles covering it, and the markers visible in it.
func (s *MapService) Viewport(ctx context.Context, center *geo.LatLng, zoom,
	width, height int) (*geo.LatLngBounds, []tile.Coord, []*feature.Marker) {

	size := geom.Point{X: float64(width), Y: float64(height)}
	bounds := view.ViewportBounds(s.crs, s.crs.WrapLatLng(center), zoom, size)
	tiles := tile.Covering(s.crs, bounds, zoom)
	markers := s.idx.Search(bounds)

	return bounds, tiles, markers
}

// MarkersInBBox reads the persistent store for markers inside the
// rectangle.
func (s *MapService) MarkersInBBox(ctx context.Context, b *geo.LatLngBounds) ([]feature.Marker, error) {
	return s.db.MarkersInBounds(b)
}

// EncodePath returns the polyline encoding and bounding box of a point
// run.
func (s *MapService) EncodePath(ctx context.Context, points []geo.LatLng) (string, *geo.LatLngBounds) {
	p := &feature.Path{Points: points}
	return p.EncodePolyline(), p.Bounds()
}

// SnapToPath projects the point onto the path and returns the closest
// point on it.
func (s *MapService) SnapToPath(ctx context.Context, points []geo.LatLng, ll *geo.LatLng) *geo.LatLng {
	p := &feature.Path{Points: points}
	return p.ClosestPoint(ll)
}
