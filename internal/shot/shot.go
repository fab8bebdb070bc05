// Greenside - Real-Time Golf Position Tracking and On-Course Context
// Copyright 2026 Fairway Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fairwaylabs/greenside

// Package shot infers discrete golf shots from the accepted fix stream. A
// shot is a large, fast displacement bracketed by periods of relative
// stillness (dwell): the player addresses the ball, strikes it, walks to it,
// and stands over it again. Continuous walking and GPS jitter produce no
// dwell brackets and are discarded.
package shot

import (
	"github.com/fairwaylabs/greenside/internal/geo"
	"github.com/fairwaylabs/greenside/internal/logging"
	"github.com/fairwaylabs/greenside/internal/track"
)

// Config configures the shot detector.
type Config struct {
	// MinDistanceYards is the minimum displacement between dwell points to
	// count as a shot. Default: 15.
	MinDistanceYards float64 `json:"min_distance_yards"`

	// MaxElapsedSeconds is the maximum time between the origin fix and the
	// arrival fix. Default: 15.
	MaxElapsedSeconds float64 `json:"max_elapsed_seconds"`

	// DwellWindowSeconds is how long the player must stay within the dwell
	// movement bound for a position to count as a dwell. Default: 8.
	DwellWindowSeconds float64 `json:"dwell_window_seconds"`

	// DwellMaxMovementMeters is the movement bound within a dwell cluster.
	// Default: 3.
	DwellMaxMovementMeters float64 `json:"dwell_max_movement_meters"`
}

// DefaultConfig returns the spec defaults.
func DefaultConfig() Config {
	return Config{
		MinDistanceYards:       15,
		MaxElapsedSeconds:      15,
		DwellWindowSeconds:     8,
		DwellMaxMovementMeters: 3,
	}
}

// Detector holds per-session shot inference state. Not safe for concurrent
// use; the owning session serializes calls on its ingest path. Only fixes
// that are not flagged low-confidence may be fed to Observe.
type Detector struct {
	config Config
	seq    int

	// anchor is the most recent fix of the last confirmed dwell: the
	// candidate shot origin. While the player keeps dwelling it tracks the
	// latest still fix, so the origin is where the ball was actually
	// struck, not where the player first stopped.
	anchor *track.LocationFix

	// dwellStart is the first fix of the current dwell cluster.
	dwellStart     *track.LocationFix
	dwellConfirmed bool
}

// New creates a shot detector.
func New(config Config) *Detector {
	if config.MinDistanceYards <= 0 {
		config.MinDistanceYards = 15
	}
	if config.MaxElapsedSeconds <= 0 {
		config.MaxElapsedSeconds = 15
	}
	if config.DwellWindowSeconds <= 0 {
		config.DwellWindowSeconds = 8
	}
	if config.DwellMaxMovementMeters <= 0 {
		config.DwellMaxMovementMeters = 3
	}
	return &Detector{config: config}
}

// SequenceNumber returns the last emitted sequence number.
func (d *Detector) SequenceNumber() int {
	return d.seq
}

// Observe feeds the next accepted fix and returns a ShotDetected event when
// a dwell-bracketed displacement completes, or nil.
func (d *Detector) Observe(fix track.LocationFix) *track.ShotDetected {
	if d.dwellStart == nil {
		d.dwellStart = &fix
		return nil
	}

	if geo.Distance(fix.Point(), d.dwellStart.Point()) > d.config.DwellMaxMovementMeters {
		// Moving: the current cluster breaks and a new one starts here.
		// The anchor from the last confirmed dwell is retained as the
		// potential shot origin.
		d.dwellStart = &fix
		d.dwellConfirmed = false
		return nil
	}

	// Still within the dwell bound of the cluster start.
	if d.dwellConfirmed {
		d.anchor = &fix
		return nil
	}

	elapsed := fix.Time().Sub(d.dwellStart.Time()).Seconds()
	if elapsed < d.config.DwellWindowSeconds {
		return nil
	}

	// Cluster held still long enough: this is a confirmed dwell.
	d.dwellConfirmed = true
	event := d.maybeEmit()
	d.anchor = &fix
	return event
}

// maybeEmit checks the displacement from the previous confirmed dwell to the
// newly confirmed one against the shot thresholds.
func (d *Detector) maybeEmit() *track.ShotDetected {
	if d.anchor == nil {
		return nil
	}

	from := *d.anchor
	to := *d.dwellStart

	distanceYards := geo.MetersToYards(geo.Distance(from.Point(), to.Point()))
	if distanceYards < d.config.MinDistanceYards {
		// Jitter or a short shuffle, not a shot.
		return nil
	}

	elapsed := to.Time().Sub(from.Time()).Seconds()
	if elapsed < 0 || elapsed > d.config.MaxElapsedSeconds {
		// Too slow to be ball flight: the player walked here.
		return nil
	}

	d.seq++
	event := &track.ShotDetected{
		FromFix:        from,
		ToFix:          to,
		DistanceYards:  distanceYards,
		EstimatedClub:  EstimateClub(distanceYards),
		SequenceNumber: d.seq,
		Timestamp:      to.Time(),
	}

	logging.Info().
		Int("sequence", event.SequenceNumber).
		Float64("distance_yd", distanceYards).
		Str("club", event.EstimatedClub).
		Msg("shot detected")

	return event
}
