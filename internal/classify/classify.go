// Greenside - Real-Time Golf Position Tracking and On-Course Context
// Copyright 2026 Fairway Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fairwaylabs/greenside

// Package classify turns an accepted fix plus course geometry into on-course
// position context: boundary containment, current-hole detection with
// hysteresis, and on-hole position classification. Malformed or missing
// geometry never halts the session; the classifier degrades to heuristics
// and flags the result instead.
package classify

import (
	"math"

	"github.com/fairwaylabs/greenside/internal/course"
	"github.com/fairwaylabs/greenside/internal/geo"
	"github.com/fairwaylabs/greenside/internal/logging"
	"github.com/fairwaylabs/greenside/internal/track"
)

// Config configures the classifier.
type Config struct {
	// TeeRadiusMeters classifies a fix within this distance of the tee
	// point as Tee. Default: 30.
	TeeRadiusMeters float64 `json:"tee_radius_meters"`

	// GreenRadiusMeters classifies a fix within this distance of the pin
	// as Green. Default: 20.
	GreenRadiusMeters float64 `json:"green_radius_meters"`

	// HysteresisMargin is the fraction by which a candidate hole must be
	// closer than the current hole before a switch is considered.
	// Default: 0.20.
	HysteresisMargin float64 `json:"hysteresis_margin"`

	// HysteresisFixCount is the number of consecutive accepted fixes the
	// margin must hold before the hole switches. Default: 3.
	HysteresisFixCount int `json:"hysteresis_fix_count"`

	// MaxCourseRadiusMeters bounds the centroid containment heuristic when
	// the course has no boundary polygon. Default: 2500.
	MaxCourseRadiusMeters float64 `json:"max_course_radius_meters"`
}

// DefaultConfig returns the spec defaults.
func DefaultConfig() Config {
	return Config{
		TeeRadiusMeters:       30,
		GreenRadiusMeters:     20,
		HysteresisMargin:      0.20,
		HysteresisFixCount:    3,
		MaxCourseRadiusMeters: 2500,
	}
}

// Classifier holds the hysteresis state for one session. It is not safe for
// concurrent use; the owning session serializes calls on its ingest path.
type Classifier struct {
	config Config
	course *course.Course

	currentHole     int
	candidateHole   int
	candidateStreak int

	lastGood *track.PositionContext
}

// New creates a classifier over the given course geometry. A nil course is
// tolerated; every classification then degrades.
func New(config Config, c *course.Course) *Classifier {
	if config.HysteresisFixCount <= 0 {
		config.HysteresisFixCount = 3
	}
	if config.MaxCourseRadiusMeters <= 0 {
		config.MaxCourseRadiusMeters = 2500
	}
	return &Classifier{config: config, course: c}
}

// CurrentHole returns the hole the classifier currently believes the player
// is on, or 0 before the first classification.
func (c *Classifier) CurrentHole() int {
	return c.currentHole
}

// Classify computes the position context for an accepted fix. It never
// panics outward: a calculation failure on malformed geometry is caught and
// the last-known-good context (flagged degraded) is returned instead.
func (c *Classifier) Classify(fix track.LocationFix) (ctx track.PositionContext) {
	defer func() {
		if r := recover(); r != nil {
			logging.Error().
				Interface("panic", r).
				Float64("lat", fix.Latitude).
				Float64("lon", fix.Longitude).
				Msg("classification failed on malformed geometry")
			ctx = c.lastGoodDegraded()
		}
	}()

	if c.course == nil || len(c.course.Holes) == 0 {
		ctx = track.PositionContext{
			PositionOnHole: track.PositionUnknown,
			Degraded:       true,
		}
		return ctx
	}

	p := fix.Point()
	within, boundaryDegraded := c.withinBoundary(p)
	hole := c.detectHole(p)

	ctx = track.PositionContext{
		CurrentHole:    hole.Number,
		WithinBoundary: within,
		Degraded:       boundaryDegraded,
	}

	ctx.DistanceToPinYards = geo.MetersToYards(geo.Distance(p, hole.Pin))
	ctx.DistanceToTeeYards = geo.MetersToYards(geo.Distance(p, hole.Tee))

	pos, posDegraded := c.classifyPosition(p, hole)
	ctx.PositionOnHole = pos
	ctx.Degraded = ctx.Degraded || posDegraded

	good := ctx
	c.lastGood = &good
	return ctx
}

// lastGoodDegraded returns the last successful context flagged degraded, or
// a fully degraded unknown context when none exists yet.
func (c *Classifier) lastGoodDegraded() track.PositionContext {
	if c.lastGood != nil {
		ctx := *c.lastGood
		ctx.Degraded = true
		return ctx
	}
	return track.PositionContext{
		PositionOnHole: track.PositionUnknown,
		Degraded:       true,
	}
}

// withinBoundary tests course containment. Without a boundary polygon it
// falls back to a radius-from-centroid heuristic and reports degraded.
func (c *Classifier) withinBoundary(p geo.Point) (within, degraded bool) {
	if c.course.Boundary.Valid() {
		return c.course.Boundary.Contains(p), false
	}

	maxRadius := c.course.MaxRadiusMeters
	if maxRadius <= 0 {
		maxRadius = c.config.MaxCourseRadiusMeters
	}
	return geo.Distance(p, c.course.Centroid()) <= maxRadius, true
}

// detectHole picks the nearest hole by distance to its tee/pin cluster,
// with hysteresis: the previous hole is retained unless a candidate is
// closer by the configured margin for the configured number of consecutive
// fixes. This prevents flapping between adjacent holes.
func (c *Classifier) detectHole(p geo.Point) *course.Hole {
	nearest, nearestDist := c.nearestHole(p)

	// First classification adopts the nearest hole outright.
	if c.currentHole == 0 {
		c.currentHole = nearest.Number
		c.candidateHole = 0
		c.candidateStreak = 0
		return nearest
	}

	current := c.course.HoleByNumber(c.currentHole)
	if current == nil {
		// Geometry changed under us; re-adopt nearest.
		c.currentHole = nearest.Number
		return nearest
	}

	if nearest.Number == c.currentHole {
		c.candidateHole = 0
		c.candidateStreak = 0
		return current
	}

	currentDist := holeDistance(p, current)
	if nearestDist >= currentDist*(1-c.config.HysteresisMargin) {
		// Candidate not convincingly closer: retain the current hole and
		// reset any streak.
		c.candidateHole = 0
		c.candidateStreak = 0
		return current
	}

	if nearest.Number == c.candidateHole {
		c.candidateStreak++
	} else {
		c.candidateHole = nearest.Number
		c.candidateStreak = 1
	}

	if c.candidateStreak >= c.config.HysteresisFixCount {
		logging.Debug().
			Int("from_hole", c.currentHole).
			Int("to_hole", nearest.Number).
			Msg("hole transition")
		c.currentHole = nearest.Number
		c.candidateHole = 0
		c.candidateStreak = 0
		return nearest
	}

	return current
}

// nearestHole returns the hole whose tee/pin cluster is closest to p.
func (c *Classifier) nearestHole(p geo.Point) (*course.Hole, float64) {
	var nearest *course.Hole
	nearestDist := math.MaxFloat64

	for i := range c.course.Holes {
		h := &c.course.Holes[i]
		if d := holeDistance(p, h); d < nearestDist {
			nearest = h
			nearestDist = d
		}
	}
	return nearest, nearestDist
}

// holeDistance is the distance from p to the hole's tee/pin cluster.
func holeDistance(p geo.Point, h *course.Hole) float64 {
	return math.Min(geo.Distance(p, h.Tee), geo.Distance(p, h.Pin))
}

// classifyPosition labels the fix on the hole. Fixed tie-break order:
// hazard containment first (safety-relevant labels must not be masked by
// proximity to the green), then green radius, tee radius, fairway corridor,
// else rough. Missing fairway geometry degrades to Rough.
func (c *Classifier) classifyPosition(p geo.Point, h *course.Hole) (track.PositionOnHole, bool) {
	for _, hz := range h.Hazards {
		if hz.Contains(p) {
			return track.PositionHazard, false
		}
	}

	if geo.Distance(p, h.Pin) <= c.config.GreenRadiusMeters {
		return track.PositionGreen, false
	}
	if geo.Distance(p, h.Tee) <= c.config.TeeRadiusMeters {
		return track.PositionTee, false
	}

	if h.Fairway.Valid() {
		if h.Fairway.Contains(p) {
			return track.PositionFairway, false
		}
		return track.PositionRough, false
	}

	// No fairway corridor defined: everything between tee and green is
	// indistinguishable from rough.
	return track.PositionRough, true
}
