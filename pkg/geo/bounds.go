package geo

import (
	"fmt"
	"math"
)

// LatLngBounds is an axis-aligned rectangle in latitude/longitude space
// held as its south-west and north-east corners. The zero value is an
// empty rectangle; the first Extend defines it and later extends only ever
// widen it. Corners may sit outside the canonical longitude range for
// boxes crossing the antimeridian.
type LatLngBounds struct {
	sw *LatLng
	ne *LatLng
}

// NewBounds builds bounds from two diagonal corner points. The corners are
// copied, and sorted per axis, so the arguments do not have to be the
// actual south-west and north-east ones.
func NewBounds(corner1, corner2 *LatLng) *LatLngBounds {
	b := &LatLngBounds{}
	b.Extend(corner1)
	b.Extend(corner2)
	return b
}

// NewBoundsFromPoints builds the bounding box of all given points. With no
// points the result is empty and invalid.
func NewBoundsFromPoints(points []LatLng) *LatLngBounds {
	b := &LatLngBounds{}
	for i := range points {
		b.Extend(&points[i])
	}
	return b
}

// Extend widens the bounds in place to include the point and returns the
// receiver for chaining. A nil point is a no-op. The first extension deep
// copies the point into both corners, so the caller keeps ownership of
// its argument.
func (b *LatLngBounds) Extend(ll *LatLng) *LatLngBounds {
	if ll == nil {
		return b
	}
	if b.sw == nil && b.ne == nil {
		b.sw = ll.Clone()
		b.ne = ll.Clone()
		return b
	}
	b.sw.Lat = math.Min(ll.Lat, b.sw.Lat)
	b.sw.Lng = math.Min(ll.Lng, b.sw.Lng)
	b.ne.Lat = math.Max(ll.Lat, b.ne.Lat)
	b.ne.Lng = math.Max(ll.Lng, b.ne.Lng)
	return b
}

// ExtendBounds widens the bounds in place to include other. Nil or invalid
// other is a no-op.
func (b *LatLngBounds) ExtendBounds(other *LatLngBounds) *LatLngBounds {
	if other == nil || !other.IsValid() {
		return b
	}
	b.Extend(other.sw)
	b.Extend(other.ne)
	return b
}

// Pad returns new bounds grown (or shrunk, for a negative ratio) by the
// given fraction of the current extent on each side. The receiver is not
// touched. Padding empty bounds yields empty bounds.
func (b *LatLngBounds) Pad(bufferRatio float64) *LatLngBounds {
	if !b.IsValid() {
		return &LatLngBounds{}
	}
	heightBuffer := math.Abs(b.sw.Lat-b.ne.Lat) * bufferRatio
	widthBuffer := math.Abs(b.sw.Lng-b.ne.Lng) * bufferRatio

	return NewBounds(
		&LatLng{Lat: b.sw.Lat - heightBuffer, Lng: b.sw.Lng - widthBuffer},
		&LatLng{Lat: b.ne.Lat + heightBuffer, Lng: b.ne.Lng + widthBuffer})
}

// Center returns the midpoint of the rectangle, nil for empty bounds.
func (b *LatLngBounds) Center() *LatLng {
	if !b.IsValid() {
		return nil
	}
	return &LatLng{
		Lat: (b.sw.Lat + b.ne.Lat) / 2,
		Lng: (b.sw.Lng + b.ne.Lng) / 2,
	}
}

func (b *LatLngBounds) SouthWest() *LatLng {
	return b.sw
}

func (b *LatLngBounds) NorthEast() *LatLng {
	return b.ne
}

func (b *LatLngBounds) NorthWest() *LatLng {
	return &LatLng{Lat: b.North(), Lng: b.West()}
}

func (b *LatLngBounds) SouthEast() *LatLng {
	return &LatLng{Lat: b.South(), Lng: b.East()}
}

func (b *LatLngBounds) West() float64 {
	return b.sw.Lng
}

func (b *LatLngBounds) South() float64 {
	return b.sw.Lat
}

func (b *LatLngBounds) East() float64 {
	return b.ne.Lng
}

func (b *LatLngBounds) North() float64 {
	return b.ne.Lat
}

// Contains reports whether the point lies within or on the edges of the
// rectangle.
func (b *LatLngBounds) Contains(ll *LatLng) bool {
	if ll == nil || !b.IsValid() {
		return false
	}
	return ll.Lat >= b.sw.Lat && ll.Lat <= b.ne.Lat &&
		ll.Lng >= b.sw.Lng && ll.Lng <= b.ne.Lng
}

// ContainsBounds reports whether other lies entirely within or on the
// edges of the rectangle.
func (b *LatLngBounds) ContainsBounds(other *LatLngBounds) bool {
	if other == nil || !other.IsValid() || !b.IsValid() {
		return false
	}
	return other.sw.Lat >= b.sw.Lat && other.ne.Lat <= b.ne.Lat &&
		other.sw.Lng >= b.sw.Lng && other.ne.Lng <= b.ne.Lng
}

// Intersects reports whether the rectangles share at least one point.
// Touching edges count.
func (b *LatLngBounds) Intersects(other *LatLngBounds) bool {
	if other == nil || !other.IsValid() || !b.IsValid() {
		return false
	}
	latIntersects := other.ne.Lat >= b.sw.Lat && other.sw.Lat <= b.ne.Lat
	lngIntersects := other.ne.Lng >= b.sw.Lng && other.sw.Lng <= b.ne.Lng

	return latIntersects && lngIntersects
}

// Overlaps reports whether the intersection with other has positive area,
// so rectangles sharing only an edge or a corner do not overlap.
func (b *LatLngBounds) Overlaps(other *LatLngBounds) bool {
	if other == nil || !other.IsValid() || !b.IsValid() {
		return false
	}
	latOverlaps := other.ne.Lat > b.sw.Lat && other.sw.Lat < b.ne.Lat
	lngOverlaps := other.ne.Lng > b.sw.Lng && other.sw.Lng < b.ne.Lng

	return latOverlaps && lngOverlaps
}

// Equals reports whether both corners match pairwise within maxMargin
// degrees (see LatLng.EqualsWithMargin). A nil other is never equal.
func (b *LatLngBounds) Equals(other *LatLngBounds) bool {
	return b.EqualsWithMargin(other, 1.0e-9)
}

func (b *LatLngBounds) EqualsWithMargin(other *LatLngBounds, maxMargin float64) bool {
	if other == nil || !other.IsValid() || !b.IsValid() {
		return false
	}
	return b.sw.EqualsWithMargin(other.sw, maxMargin) &&
		b.ne.EqualsWithMargin(other.ne, maxMargin)
}

// IsValid reports whether both corners have been set.
func (b *LatLngBounds) IsValid() bool {
	return b.sw != nil && b.ne != nil
}

// ToBBoxString formats the bounds as "west,south,east,north", the bbox
// parameter order geodata web services expect.
func (b *LatLngBounds) ToBBoxString() string {
	return fmt.Sprintf("%v,%v,%v,%v", b.West(), b.South(), b.East(), b.North())
}
