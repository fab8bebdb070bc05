// Greenside - Real-Time Golf Position Tracking and On-Course Context
// Copyright 2026 Fairway Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fairwaylabs/greenside

package geo

// Polygon is an ordered list of vertices describing a closed region.
// The closing edge from the last vertex back to the first is implicit.
// A polygon with fewer than three vertices contains nothing.
type Polygon []Point

// Valid reports whether the polygon has enough vertices to enclose area.
func (pg Polygon) Valid() bool {
	return len(pg) >= 3
}

// Contains reports whether p lies inside the polygon using the ray-casting
// (even-odd) rule. Points exactly on an edge may fall on either side; course
// geometry is far coarser than GPS accuracy so this is acceptable.
//
// Lat/lon are treated as planar coordinates, which is accurate at golf-course
// scale (a few kilometers).
func (pg Polygon) Contains(p Point) bool {
	if !pg.Valid() {
		return false
	}

	inside := false
	j := len(pg) - 1
	for i := 0; i < len(pg); i++ {
		vi, vj := pg[i], pg[j]
		if (vi.Lat > p.Lat) != (vj.Lat > p.Lat) {
			intersectLon := vi.Lon + (p.Lat-vi.Lat)/(vj.Lat-vi.Lat)*(vj.Lon-vi.Lon)
			if p.Lon < intersectLon {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}

// Centroid returns the arithmetic mean of the polygon's vertices.
// This is the vertex centroid, not the area centroid; it is only used as the
// anchor for the radius-from-centroid containment heuristic, where the
// difference is irrelevant.
func (pg Polygon) Centroid() Point {
	if len(pg) == 0 {
		return Point{}
	}

	var lat, lon float64
	for _, v := range pg {
		lat += v.Lat
		lon += v.Lon
	}
	n := float64(len(pg))
	return Point{Lat: lat / n, Lon: lon / n}
}
