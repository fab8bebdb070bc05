// Greenside - Real-Time Golf Position Tracking and On-Course Context
// Copyright 2026 Fairway Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fairwaylabs/greenside

package track

import "time"

// EventType identifies the kind of event delivered to subscribers.
type EventType string

const (
	// EventTypeLocation is emitted once per accepted fix.
	EventTypeLocation EventType = "location_update"

	// EventTypeContext is emitted with the recomputed position context for
	// every accepted fix.
	EventTypeContext EventType = "context_update"

	// EventTypeShot is emitted when a discrete shot is inferred.
	EventTypeShot EventType = "shot_detected"
)

// AllEventTypes lists every event type a subscriber can register for.
func AllEventTypes() []EventType {
	return []EventType{EventTypeLocation, EventTypeContext, EventTypeShot}
}

// Event is implemented by every payload the dispatcher can deliver.
type Event interface {
	Type() EventType
}

// PositionOnHole classifies where on the current hole a fix lies.
type PositionOnHole string

const (
	PositionTee     PositionOnHole = "tee"
	PositionFairway PositionOnHole = "fairway"
	PositionRough   PositionOnHole = "rough"
	PositionGreen   PositionOnHole = "green"
	PositionHazard  PositionOnHole = "hazard"
	PositionUnknown PositionOnHole = "unknown"
)

// PositionContext is the derived on-course context for one accepted fix.
// It is recomputed per fix and never persisted by the engine.
type PositionContext struct {
	CurrentHole        int            `json:"current_hole"`
	DistanceToPinYards float64        `json:"distance_to_pin_yards"`
	DistanceToTeeYards float64        `json:"distance_to_tee_yards"`
	PositionOnHole     PositionOnHole `json:"position_on_hole"`
	WithinBoundary     bool           `json:"within_boundary"`

	// Degraded is set when the classifier fell back to heuristics because
	// course geometry was missing or malformed. Consumers decide how to
	// present the uncertainty; it is not an error.
	Degraded bool `json:"degraded"`
}

// LocationUpdate notifies subscribers of an accepted fix.
type LocationUpdate struct {
	Fix           LocationFix `json:"fix"`
	LowConfidence bool        `json:"low_confidence"`
}

// Type implements Event.
func (LocationUpdate) Type() EventType { return EventTypeLocation }

// ContextUpdate notifies subscribers of recomputed position context.
type ContextUpdate struct {
	Context PositionContext `json:"context"`
}

// Type implements Event.
func (ContextUpdate) Type() EventType { return EventTypeContext }

// ShotDetected notifies subscribers of an inferred shot. Append-only per
// session; SequenceNumber is strictly increasing within a session. The club
// estimate may later be corrected by a collaborator, but that correction is
// external to this engine.
type ShotDetected struct {
	FromFix        LocationFix `json:"from_fix"`
	ToFix          LocationFix `json:"to_fix"`
	DistanceYards  float64     `json:"distance_yards"`
	EstimatedClub  string      `json:"estimated_club"`
	SequenceNumber int         `json:"sequence_number"`
	Timestamp      time.Time   `json:"timestamp"`
}

// Type implements Event.
func (ShotDetected) Type() EventType { return EventTypeShot }
