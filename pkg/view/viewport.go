package view

import (
	"math"

	"lintang/mapview/pkg/crs"
	"lintang/mapview/pkg/geo"
	"lintang/mapview/pkg/geom"
)

// MaxZoom caps the zoom FitBounds hands back so a degenerate rectangle
// (a single point) cannot produce an unbounded zoom.
const MaxZoom = 19

// FitBounds returns the center and the highest integer zoom at which the
// rectangle fits a viewport of the given pixel size with padding pixels
// kept free on every edge.
func FitBounds(c crs.CRS, b *geo.LatLngBounds, size geom.Point, padding float64) (*geo.LatLng, int) {
	innerSize := size.Subtract(geom.Point{X: 2 * padding, Y: 2 * padding})
	// padding can eat the whole viewport; a zero inner size makes the
	// scale zero and the zoom clamp below settles on 0
	if innerSize.X < 0 {
		innerSize.X = 0
	}
	if innerSize.Y < 0 {
		innerSize.Y = 0
	}

	nw := c.LatLngToPoint(b.NorthWest(), 0)
	se := c.LatLngToPoint(b.SouthEast(), 0)
	boundsSize := se.Subtract(nw)

	scaleX := math.Inf(1)
	scaleY := math.Inf(1)
	if boundsSize.X > 0 {
		scaleX = innerSize.X / boundsSize.X
	}
	if boundsSize.Y > 0 {
		scaleY = innerSize.Y / boundsSize.Y
	}
	scale := math.Min(scaleX, scaleY)

	zoom := math.Floor(c.Zoom(c.Scale(0) * scale))
	if zoom > MaxZoom {
		zoom = MaxZoom
	}
	if zoom < 0 {
		zoom = 0
	}

	// center on the projected midpoint, not the geographic one, so the
	// rectangle is centered on screen under non-linear projections
	centerPixel := nw.Add(se).DivideBy(2)
	center := c.PointToLatLng(centerPixel, 0)

	return center, int(zoom)
}

// ViewportBounds returns the geographic rectangle a viewport of the given
// pixel size shows when centered on center at the given zoom. This is the
// culling input for the marker index.
func ViewportBounds(c crs.CRS, center *geo.LatLng, zoom int, size geom.Point) *geo.LatLngBounds {
	centerPixel := c.LatLngToPoint(center, float64(zoom))
	half := size.DivideBy(2)

	b := &geo.LatLngBounds{}
	b.Extend(c.PointToLatLng(centerPixel.Subtract(half), float64(zoom)))
	b.Extend(c.PointToLatLng(centerPixel.Add(half), float64(zoom)))
	return b
}
