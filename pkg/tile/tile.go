package tile

import (
	"fmt"
	"math"

	"lintang/mapview/pkg/crs"
	"lintang/mapview/pkg/geo"
	"lintang/mapview/pkg/geom"
)

// TileSize is the pixel edge length of one map tile.
const TileSize = 256

// Coord addresses one tile in the pyramid: zoom level, column (west to
// east) and row (north to south).
type Coord struct {
	Z int
	X int
	Y int
}

func (t Coord) String() string {
	return fmt.Sprintf("%d/%d/%d", t.Z, t.X, t.Y)
}

// FromLatLng returns the tile containing the point at the given zoom.
func FromLatLng(c crs.CRS, ll *geo.LatLng, zoom int) Coord {
	pixel := c.LatLngToPoint(ll, float64(zoom)).DivideBy(TileSize).Floor()
	return Coord{Z: zoom, X: int(pixel.X), Y: int(pixel.Y)}
}

// Bounds returns the geographic rectangle the tile covers.
func (t Coord) Bounds(c crs.CRS) *geo.LatLngBounds {
	nwPixel := geom.Point{X: float64(t.X) * TileSize, Y: float64(t.Y) * TileSize}
	sePixel := nwPixel.Add(geom.Point{X: TileSize, Y: TileSize})

	b := &geo.LatLngBounds{}
	b.Extend(c.PointToLatLng(nwPixel, float64(t.Z)))
	b.Extend(c.PointToLatLng(sePixel, float64(t.Z)))
	return b
}

// Covering returns the tiles a viewport needs at the given zoom, row by
// row from the north-west corner. Columns are wrapped modulo the pyramid
// width, so bounds reaching across the antimeridian select the tiles on
// the far side instead of out-of-range ones; rows are clamped to the
// pyramid.
func Covering(c crs.CRS, b *geo.LatLngBounds, zoom int) []Coord {
	if !b.IsValid() {
		return nil
	}

	z := float64(zoom)
	nwPixel := c.LatLngToPoint(b.NorthWest(), z).DivideBy(TileSize).Floor()
	sePixel := c.LatLngToPoint(b.SouthEast(), z).DivideBy(TileSize).Floor()

	worldTiles := int(math.Pow(2, z))

	minY := clamp(int(nwPixel.Y), 0, worldTiles-1)
	maxY := clamp(int(sePixel.Y), 0, worldTiles-1)

	coords := []Coord{}
	for y := minY; y <= maxY; y++ {
		for x := int(nwPixel.X); x <= int(sePixel.X); x++ {
			coords = append(coords, Coord{Z: zoom, X: wrapColumn(x, worldTiles), Y: y})
		}
	}
	return coords
}

func wrapColumn(x, worldTiles int) int {
	x = x % worldTiles
	if x < 0 {
		x += worldTiles
	}
	return x
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
