package crs

import (
	"math"

	"lintang/mapview/pkg/geo"
)

// mean earth radius in meters
const EarthRadius = 6371000.0

// HaversineDistance returns the great-circle distance between two points
// in meters on the mean-radius sphere.
// https://www.movable-type.co.uk/scripts/latlong.html
func HaversineDistance(a, b *geo.LatLng) float64 {
	rad := math.Pi / 180
	lat1 := a.Lat * rad
	lat2 := b.Lat * rad
	sinDLat := math.Sin((b.Lat - a.Lat) * rad / 2)
	sinDLon := math.Sin((b.Lng - a.Lng) * rad / 2)

	h := sinDLat*sinDLat + math.Cos(lat1)*math.Cos(lat2)*sinDLon*sinDLon

	return 2 * EarthRadius * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// FlatDistance is the cartesian distance in degree units, the metric of
// the flat Simple CRS used for image maps.
func FlatDistance(a, b *geo.LatLng) float64 {
	dLat := b.Lat - a.Lat
	dLng := b.Lng - a.Lng
	return math.Sqrt(dLat*dLat + dLng*dLng)
}
