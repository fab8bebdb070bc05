// Greenside - Real-Time Golf Position Tracking and On-Course Context
// Copyright 2026 Fairway Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fairwaylabs/greenside

package track

import "errors"

// Sentinel errors for the tracking pipeline. Callers match with errors.Is;
// wrapping sites add field-level detail with %w.
var (
	// ErrInvalidCoordinate marks a malformed fix. The fix is dropped and
	// logged; the session is otherwise unaffected.
	ErrInvalidCoordinate = errors.New("invalid coordinate")

	// ErrSessionAlreadyActive is returned by Start when a session for the
	// round is already Active or Paused. The existing session is untouched.
	ErrSessionAlreadyActive = errors.New("session already active for round")

	// ErrSessionClosed is returned by Ingest or Subscribe after Stop.
	// The operation is a no-op and delivers no events.
	ErrSessionClosed = errors.New("session closed")

	// ErrBoundaryUndefined means the course has no boundary polygon; the
	// classifier falls back to the centroid-radius heuristic.
	ErrBoundaryUndefined = errors.New("course boundary undefined")

	// ErrGeometryMissing means per-hole geometry is absent; classification
	// degrades rather than halting the session.
	ErrGeometryMissing = errors.New("course geometry missing")

	// ErrCalculationError marks malformed geometry input to the classifier.
	// Non-fatal: the last-known-good context is retained.
	ErrCalculationError = errors.New("classification calculation error")
)
