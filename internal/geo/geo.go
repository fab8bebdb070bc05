// Greenside - Real-Time Golf Position Tracking and On-Course Context
// Copyright 2026 Fairway Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fairwaylabs/greenside

// Package geo provides pure geodesic math over geographic coordinates:
// great-circle distance, initial bearing, unit conversions, and polygon
// containment tests. All functions are stateless and safe for concurrent use.
package geo

import "math"

// earthRadiusMeters is the mean Earth radius used by the haversine formula.
const earthRadiusMeters = 6371000.0

// Unit conversion factors.
const (
	metersPerYard = 0.9144
	feetPerMeter  = 3.28084
)

// CoordinateEpsilon is the threshold for considering two coordinates equal.
// DETERMINISM: 1e-7 degrees is about 1.1cm at the equator, well below GPS
// accuracy, while avoiding direct float equality comparison.
const CoordinateEpsilon = 1e-7

// Point is a geographic coordinate in decimal degrees.
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Equal reports whether two points are the same coordinate within
// CoordinateEpsilon.
func (p Point) Equal(other Point) bool {
	return math.Abs(p.Lat-other.Lat) < CoordinateEpsilon &&
		math.Abs(p.Lon-other.Lon) < CoordinateEpsilon
}

// Distance returns the great-circle distance between two points in meters
// using the haversine formula over the mean Earth radius.
func Distance(a, b Point) float64 {
	lat1 := a.Lat * math.Pi / 180.0
	lon1 := a.Lon * math.Pi / 180.0
	lat2 := b.Lat * math.Pi / 180.0
	lon2 := b.Lon * math.Pi / 180.0

	dLat := lat2 - lat1
	dLon := lon2 - lon1

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusMeters * c
}

// Bearing returns the initial bearing from a to b in degrees clockwise from
// north, normalized to [0, 360).
func Bearing(a, b Point) float64 {
	lat1 := a.Lat * math.Pi / 180.0
	lat2 := b.Lat * math.Pi / 180.0
	dLon := (b.Lon - a.Lon) * math.Pi / 180.0

	y := math.Sin(dLon) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLon)

	deg := math.Atan2(y, x) * 180.0 / math.Pi
	return math.Mod(deg+360.0, 360.0)
}

// MetersToYards converts meters to yards.
func MetersToYards(m float64) float64 {
	return m / metersPerYard
}

// YardsToMeters converts yards to meters.
func YardsToMeters(yd float64) float64 {
	return yd * metersPerYard
}

// MetersToFeet converts meters to feet.
func MetersToFeet(m float64) float64 {
	return m * feetPerMeter
}
