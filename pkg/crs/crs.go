package crs

import (
	"math"

	"lintang/mapview/pkg/geo"
	"lintang/mapview/pkg/geom"
)

// CRS ties a projection to the pixel grid of a tile pyramid and supplies
// the distance and longitude-wrap policy the geo value types consume. It
// is passed around explicitly so a map can run on a different earth model
// without the geo package knowing.
type CRS interface {
	geo.CRS

	Code() string
	Project(ll *geo.LatLng) geom.Point
	Unproject(p geom.Point) *geo.LatLng
	LatLngToPoint(ll *geo.LatLng, zoom float64) geom.Point
	PointToLatLng(p geom.Point, zoom float64) *geo.LatLng
	Scale(zoom float64) float64
	Zoom(scale float64) float64
	ProjectedBounds() *geom.Bounds
	WrapLatLngBounds(b *geo.LatLngBounds) *geo.LatLngBounds
}

var (
	// EPSG3857 is the spherical ("web") mercator CRS, the default of
	// every tiled map on the internet.
	EPSG3857 CRS = &tileCRS{
		code:           "EPSG:3857",
		projection:     SphericalMercator{},
		transformation: mercatorTransformation(),
		distance:       HaversineDistance,
		wrapLng:        true,
	}

	// EPSG4326 is the equirectangular lat/lng CRS used by WMS services.
	EPSG4326 CRS = &tileCRS{
		code:           "EPSG:4326",
		projection:     LonLat{},
		transformation: geom.NewTransformation(1.0/180, 1, -1.0/180, 0.5),
		distance:       HaversineDistance,
		wrapLng:        true,
	}

	// Simple is a flat CRS for image maps: one projection unit per degree,
	// cartesian distance, no longitude wrapping.
	Simple CRS = &tileCRS{
		code:           "Simple",
		projection:     LonLat{},
		transformation: geom.NewTransformation(1, 0, -1, 0),
		distance:       FlatDistance,
		wrapLng:        false,
	}
)

func mercatorTransformation() geom.Transformation {
	scale := 0.5 / (math.Pi * earthRadiusMajor)
	return geom.NewTransformation(scale, 0.5, -scale, 0.5)
}

type tileCRS struct {
	code           string
	projection     Projection
	transformation geom.Transformation
	distance       func(a, b *geo.LatLng) float64
	wrapLng        bool
}

func (c *tileCRS) Code() string {
	return c.code
}

func (c *tileCRS) Project(ll *geo.LatLng) geom.Point {
	return c.projection.Project(ll)
}

func (c *tileCRS) Unproject(p geom.Point) *geo.LatLng {
	return c.projection.Unproject(p)
}

// LatLngToPoint projects a geographic point into absolute pixel
// coordinates at the given zoom.
func (c *tileCRS) LatLngToPoint(ll *geo.LatLng, zoom float64) geom.Point {
	projected := c.projection.Project(ll)
	return c.transformation.Transform(projected, c.Scale(zoom))
}

// PointToLatLng reverses LatLngToPoint.
func (c *tileCRS) PointToLatLng(p geom.Point, zoom float64) *geo.LatLng {
	untransformed := c.transformation.Untransform(p, c.Scale(zoom))
	return c.projection.Unproject(untransformed)
}

// Scale is the pixel width of the world at the given zoom, 256 * 2^zoom
// for the standard 256px tile grid.
func (c *tileCRS) Scale(zoom float64) float64 {
	return 256 * math.Pow(2, zoom)
}

// Zoom is the inverse of Scale.
func (c *tileCRS) Zoom(scale float64) float64 {
	return math.Log(scale/256) / math.Ln2
}

func (c *tileCRS) ProjectedBounds() *geom.Bounds {
	return c.projection.Bounds()
}

func (c *tileCRS) Distance(a, b *geo.LatLng) float64 {
	return c.distance(a, b)
}

// WrapLatLng normalizes the longitude into (-180, 180] for the
// geographic CRSs and leaves points of the flat CRS alone.
func (c *tileCRS) WrapLatLng(ll *geo.LatLng) *geo.LatLng {
	if !c.wrapLng {
		return ll.Clone()
	}
	return ll.Wrap()
}

// WrapLatLngBounds wraps the center of the box and shifts both corners by
// the same delta, so the box keeps its width even when it crosses the
// antimeridian.
func (c *tileCRS) WrapLatLngBounds(b *geo.LatLngBounds) *geo.LatLngBounds {
	if !b.IsValid() {
		return b
	}
	center := b.Center()
	newCenter := c.WrapLatLng(center)
	latShift := center.Lat - newCenter.Lat
	lngShift := center.Lng - newCenter.Lng

	if latShift == 0 && lngShift == 0 {
		return b
	}

	sw := b.SouthWest()
	ne := b.NorthEast()
	return geo.NewBounds(
		&geo.LatLng{Lat: sw.Lat - latShift, Lng: sw.Lng - lngShift},
		&geo.LatLng{Lat: ne.Lat - latShift, Lng: ne.Lng - lngShift})
}
