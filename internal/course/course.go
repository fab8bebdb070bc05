// Greenside - Real-Time Golf Position Tracking and On-Course Context
// Copyright 2026 Fairway Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fairwaylabs/greenside

// Package course models the read-only course reference geometry the engine
// classifies against: boundary polygon, per-hole tee/pin points, fairway
// corridors, and hazard polygons. It also provides the Fetcher that retrieves
// geometry once per session, bounded by a timeout and a circuit breaker, and
// caches it for the session's lifetime so no network call ever sits on the
// per-fix hot path.
package course

import (
	"context"

	"github.com/fairwaylabs/greenside/internal/geo"
)

// Hole holds per-hole reference geometry. Tee and Pin are required for
// distance context; Fairway and Hazards are optional refinements.
type Hole struct {
	Number  int           `json:"number" koanf:"number"`
	Par     int           `json:"par,omitempty" koanf:"par"`
	Tee     geo.Point     `json:"tee" koanf:"tee"`
	Pin     geo.Point     `json:"pin" koanf:"pin"`
	Fairway geo.Polygon   `json:"fairway,omitempty" koanf:"fairway"`
	Hazards []geo.Polygon `json:"hazards,omitempty" koanf:"hazards"`
}

// Course is the reference geometry for one golf course.
type Course struct {
	ID   int64  `json:"id" koanf:"id"`
	Name string `json:"name,omitempty" koanf:"name"`

	// Boundary is the course outline. When absent, boundary containment
	// degrades to a radius-from-centroid heuristic.
	Boundary geo.Polygon `json:"boundary,omitempty" koanf:"boundary"`

	// MaxRadiusMeters bounds the centroid heuristic when Boundary is
	// missing. Zero means use the classifier's configured default.
	MaxRadiusMeters float64 `json:"max_radius_meters,omitempty" koanf:"max_radius_meters"`

	Holes []Hole `json:"holes" koanf:"holes"`
}

// HoleByNumber returns the hole with the given number, or nil.
func (c *Course) HoleByNumber(n int) *Hole {
	for i := range c.Holes {
		if c.Holes[i].Number == n {
			return &c.Holes[i]
		}
	}
	return nil
}

// Centroid returns the anchor point for the radius heuristic: the boundary
// centroid when a boundary exists, otherwise the mean of all tee and pin
// points.
func (c *Course) Centroid() geo.Point {
	if c.Boundary.Valid() {
		return c.Boundary.Centroid()
	}

	var pts geo.Polygon
	for _, h := range c.Holes {
		pts = append(pts, h.Tee, h.Pin)
	}
	return pts.Centroid()
}

// Provider retrieves course geometry from an external course-data
// collaborator. Implementations may hit the network; the Fetcher bounds them
// with a timeout and circuit breaker.
type Provider interface {
	GetCourse(ctx context.Context, courseID int64) (*Course, error)
}
