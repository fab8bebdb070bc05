// Greenside - Real-Time Golf Position Tracking and On-Course Context
// Copyright 2026 Fairway Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fairwaylabs/greenside

package api

import (
	"github.com/fairwaylabs/greenside/internal/track"
)

// StartSessionRequest begins tracking for a round.
type StartSessionRequest struct {
	CourseID int64 `json:"course_id" validate:"required,gt=0"`
	UserID   int64 `json:"user_id" validate:"required,gt=0"`

	// DebounceWindowMs optionally overrides the debounce window for this
	// session. Zero means use the server default; explicit -1 disables
	// debouncing (test harnesses and replay tools).
	DebounceWindowMs *int `json:"debounce_window_ms,omitempty" validate:"omitempty,gte=-1,lte=60000"`
}

// IngestFixRequest submits one GPS fix to a session. The coordinate bounds
// are validated again deeper in the pipeline; validating here gives clients a
// structured VALIDATION_ERROR instead of a pipeline rejection.
type IngestFixRequest struct {
	Latitude       float64  `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude      float64  `json:"longitude" validate:"gte=-180,lte=180"`
	AccuracyMeters float64  `json:"accuracy_meters" validate:"gte=0"`
	Altitude       *float64 `json:"altitude,omitempty"`
	HeadingDegrees *float64 `json:"heading_degrees,omitempty" validate:"omitempty,gte=0,lt=360"`
	SpeedMps       *float64 `json:"speed_mps,omitempty" validate:"omitempty,gte=0"`
	TimestampMs    int64    `json:"timestamp_ms" validate:"required,gt=0"`
}

// Fix converts the request into the pipeline's fix type.
func (r *IngestFixRequest) Fix() track.LocationFix {
	return track.LocationFix{
		Latitude:       r.Latitude,
		Longitude:      r.Longitude,
		AccuracyMeters: r.AccuracyMeters,
		Altitude:       r.Altitude,
		HeadingDegrees: r.HeadingDegrees,
		SpeedMps:       r.SpeedMps,
		TimestampMs:    r.TimestampMs,
	}
}

// SessionResponse is the snapshot returned for session reads and lifecycle
// operations.
type SessionResponse struct {
	SessionID string `json:"session_id"`
	RoundID   int64  `json:"round_id"`
	CourseID  int64  `json:"course_id"`
	UserID    int64  `json:"user_id"`
	Status    string `json:"status"`
	StartedAt string `json:"started_at"`
	EndedAt   string `json:"ended_at,omitempty"`

	Context   *track.PositionContext `json:"context,omitempty"`
	ShotCount int                    `json:"shot_count"`
}
