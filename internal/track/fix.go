// Greenside - Real-Time Golf Position Tracking and On-Course Context
// Copyright 2026 Fairway Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fairwaylabs/greenside

// Package track defines the domain types shared by the tracking pipeline:
// GPS fixes, derived position context, emitted events, and the error
// taxonomy. Types here are plain data; all behavior lives in the pipeline
// packages (debounce, classify, shot, dispatch, session).
package track

import (
	"fmt"
	"math"
	"time"

	"github.com/fairwaylabs/greenside/internal/geo"
)

// LocationFix is a single GPS sample. Immutable once created; the pipeline
// copies fixes by value and never mutates them.
type LocationFix struct {
	Latitude       float64  `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude      float64  `json:"longitude" validate:"gte=-180,lte=180"`
	AccuracyMeters float64  `json:"accuracy_meters" validate:"gte=0"`
	Altitude       *float64 `json:"altitude,omitempty"`
	HeadingDegrees *float64 `json:"heading_degrees,omitempty" validate:"omitempty,gte=0,lt=360"`
	SpeedMps       *float64 `json:"speed_mps,omitempty" validate:"omitempty,gte=0"`
	TimestampMs    int64    `json:"timestamp_ms"`
}

// Point returns the fix coordinate.
func (f LocationFix) Point() geo.Point {
	return geo.Point{Lat: f.Latitude, Lon: f.Longitude}
}

// Time returns the fix timestamp as a time.Time.
func (f LocationFix) Time() time.Time {
	return time.UnixMilli(f.TimestampMs)
}

// Validate checks the fix invariants. A violation returns
// ErrInvalidCoordinate wrapped with the offending field; the fix must be
// dropped and never enter session history.
func (f LocationFix) Validate() error {
	if math.IsNaN(f.Latitude) || math.Abs(f.Latitude) > 90 {
		return fmt.Errorf("%w: latitude %v out of range [-90, 90]", ErrInvalidCoordinate, f.Latitude)
	}
	if math.IsNaN(f.Longitude) || math.Abs(f.Longitude) > 180 {
		return fmt.Errorf("%w: longitude %v out of range [-180, 180]", ErrInvalidCoordinate, f.Longitude)
	}
	if math.IsNaN(f.AccuracyMeters) || f.AccuracyMeters < 0 {
		return fmt.Errorf("%w: accuracy %v must be non-negative", ErrInvalidCoordinate, f.AccuracyMeters)
	}
	return nil
}

// AcceptedFix is a fix that survived validation and debouncing, annotated
// with the debouncer's confidence verdict. Low-confidence fixes update
// position context but are excluded from shot detection.
type AcceptedFix struct {
	Fix           LocationFix `json:"fix"`
	LowConfidence bool        `json:"low_confidence"`
}
