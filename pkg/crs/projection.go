package crs

import (
	"math"

	"lintang/mapview/pkg/geo"
	"lintang/mapview/pkg/geom"
)

// Projection maps geographic coordinates onto a flat plane and back. The
// output is in projection units (meters for spherical mercator, plain
// degrees for lonlat), not pixels.
type Projection interface {
	Project(ll *geo.LatLng) geom.Point
	Unproject(p geom.Point) *geo.LatLng
	Bounds() *geom.Bounds
}

const (
	// equatorial radius of the WGS84 spheroid
	earthRadiusMajor = 6378137.0

	// MaxMercatorLatitude is where the spherical mercator plane gets cut
	// off; latitudes beyond it are clamped before projecting.
	MaxMercatorLatitude = 85.0511287798066
)

// SphericalMercator is the projection of web tile maps (EPSG:3857).
type SphericalMercator struct{}

func (SphericalMercator) Project(ll *geo.LatLng) geom.Point {
	d := math.Pi / 180
	lat := math.Max(math.Min(MaxMercatorLatitude, ll.Lat), -MaxMercatorLatitude)
	sin := math.Sin(lat * d)

	return geom.Point{
		X: earthRadiusMajor * ll.Lng * d,
		Y: earthRadiusMajor * math.Log((1+sin)/(1-sin)) / 2,
	}
}

func (SphericalMercator) Unproject(p geom.Point) *geo.LatLng {
	d := 180 / math.Pi
	return &geo.LatLng{
		Lat: (2*math.Atan(math.Exp(p.Y/earthRadiusMajor)) - math.Pi/2) * d,
		Lng: p.X * d / earthRadiusMajor,
	}
}

func (SphericalMercator) Bounds() *geom.Bounds {
	d := earthRadiusMajor * math.Pi
	return geom.NewBounds(geom.Point{X: -d, Y: -d}, geom.Point{X: d, Y: d})
}

// LonLat is the identity projection: longitude becomes x, latitude
// becomes y. Used by the equirectangular EPSG:4326 CRS and by flat image
// maps.
type LonLat struct{}

func (LonLat) Project(ll *geo.LatLng) geom.Point {
	return geom.Point{X: ll.Lng, Y: ll.Lat}
}

func (LonLat) Unproject(p geom.Point) *geo.LatLng {
	return &geo.LatLng{Lat: p.Y, Lng: p.X}
}

func (LonLat) Bounds() *geom.Bounds {
	return geom.NewBounds(geom.Point{X: -180, Y: -90}, geom.Point{X: 180, Y: 90})
}
