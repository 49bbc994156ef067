package geo

import (
	"fmt"
	"math"

	"lintang/mapview/pkg/util"
)

// EarthCircumference is the earth circumference in meters, used by the
// degrees-per-meter approximation in ToBounds.
const EarthCircumference = 40075017

// CRS is the subset of a coordinate reference system consumed by the geo
// value types. The concrete implementations live in pkg/crs and are passed
// in explicitly, LatLng does not own a projection.
type CRS interface {
	Distance(a, b *LatLng) float64
	WrapLatLng(ll *LatLng) *LatLng
}

// InvalidLatLngError is returned when coordinate input cannot be coerced
// into a LatLng.
type InvalidLatLngError struct {
	Lat interface{}
	Lng interface{}
}

func (e *InvalidLatLngError) Error() string {
	return fmt.Sprintf("invalid LatLng object: (%v, %v)", e.Lat, e.Lng)
}

// LatLng is a geographical point with a latitude and longitude in degrees
// and an optional altitude in meters. Alt stays nil when the altitude was
// never given.
type LatLng struct {
	Lat float64
	Lng float64
	Alt *float64
}

// New builds a LatLng from latitude and longitude degrees. Both must be
// finite.
func New(lat, lng float64) (*LatLng, error) {
	if !isFinite(lat) || !isFinite(lng) {
		return nil, &InvalidLatLngError{Lat: lat, Lng: lng}
	}
	return &LatLng{Lat: lat, Lng: lng}, nil
}

// NewAlt is New with an altitude in meters.
func NewAlt(lat, lng, alt float64) (*LatLng, error) {
	ll, err := New(lat, lng)
	if err != nil {
		return nil, err
	}
	ll.Alt = &alt
	return ll, nil
}

// Equals reports whether other is within 1e-9 degrees on both axes.
// A nil other is never equal.
func (ll *LatLng) Equals(other *LatLng) bool {
	return ll.EqualsWithMargin(other, 1.0e-9)
}

// EqualsWithMargin reports whether the max of the absolute per-axis
// differences is within maxMargin.
func (ll *LatLng) EqualsWithMargin(other *LatLng, maxMargin float64) bool {
	if other == nil {
		return false
	}
	margin := math.Max(math.Abs(ll.Lat-other.Lat), math.Abs(ll.Lng-other.Lng))
	return margin <= maxMargin
}

// DistanceTo returns the distance to other in meters under the given CRS
// (great-circle meters for the spherical earth CRS).
func (ll *LatLng) DistanceTo(other *LatLng, c CRS) float64 {
	return c.Distance(ll, other)
}

// Wrap returns a copy of the point with the longitude normalized into
// (-180, 180]. Latitude is left alone. Wrapping an already wrapped point
// is a no-op.
func (ll *LatLng) Wrap() *LatLng {
	wrapped := ll.Clone()
	wrapped.Lng = WrapLng(ll.Lng)
	return wrapped
}

// WrapLng normalizes a longitude in degrees into (-180, 180].
func WrapLng(lng float64) float64 {
	lng = math.Mod(lng, 360)
	if lng > 180 {
		lng -= 360
	} else if lng <= -180 {
		lng += 360
	}
	return lng
}

// ToBounds returns bounds centered on the point spanning sizeMeters on the
// diagonal, using a flat degrees-per-meter approximation. The longitude
// span blows up near the poles where cos(lat) goes to zero; callers that
// feed polar coordinates get degenerate bounds.
func (ll *LatLng) ToBounds(sizeMeters float64) *LatLngBounds {
	latAccuracy := 180 * sizeMeters / EarthCircumference
	lngAccuracy := latAccuracy / math.Cos((math.Pi/180)*ll.Lat)

	return NewBounds(
		&LatLng{Lat: ll.Lat - latAccuracy, Lng: ll.Lng - lngAccuracy},
		&LatLng{Lat: ll.Lat + latAccuracy, Lng: ll.Lng + lngAccuracy})
}

// Clone returns an independent copy, preserving an absent altitude.
func (ll *LatLng) Clone() *LatLng {
	out := &LatLng{Lat: ll.Lat, Lng: ll.Lng}
	if ll.Alt != nil {
		alt := *ll.Alt
		out.Alt = &alt
	}
	return out
}

func (ll *LatLng) String() string {
	return fmt.Sprintf("LatLng(%v, %v)", ll.Lat, ll.Lng)
}

// StringPrec is String with both coordinates rounded to precision decimal
// places.
func (ll *LatLng) StringPrec(precision uint) string {
	return fmt.Sprintf("LatLng(%v, %v)",
		util.RoundFloat(ll.Lat, precision), util.RoundFloat(ll.Lng, precision))
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
