// Greenside - Real-Time Golf Position Tracking and On-Course Context
// Copyright 2026 Fairway Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fairwaylabs/greenside

// Package debounce validates raw GPS fixes and coalesces bursts. Within a
// debounce window only the most accurate fix is forwarded, unless real
// movement cuts the window short. Fixes worse than the accuracy threshold
// are forwarded flagged low-confidence rather than dropped.
package debounce

import (
	"sync"
	"time"

	"github.com/fairwaylabs/greenside/internal/geo"
	"github.com/fairwaylabs/greenside/internal/logging"
	"github.com/fairwaylabs/greenside/internal/track"
)

// Config configures the validator/debouncer.
type Config struct {
	// WindowMs is the debounce window length in milliseconds. Zero or
	// negative disables debouncing: every valid fix is forwarded
	// immediately. Default: 4000.
	WindowMs int `json:"window_ms"`

	// MinMovementMeters is the displacement from the last forwarded fix
	// that cuts the window short. Default: 2.
	MinMovementMeters float64 `json:"min_movement_meters"`

	// AccuracyThresholdMeters is the accuracy beyond which a fix is
	// forwarded flagged low-confidence. Default: 50.
	AccuracyThresholdMeters float64 `json:"accuracy_threshold_meters"`
}

// DefaultConfig returns the spec defaults.
func DefaultConfig() Config {
	return Config{
		WindowMs:                4000,
		MinMovementMeters:       2,
		AccuracyThresholdMeters: 50,
	}
}

// Debouncer coalesces a raw fix stream into accepted fixes. The forward
// callback is invoked in acceptance order, either synchronously from Offer
// (movement cutoff, disabled window) or from the window timer goroutine.
// Both paths hold the internal mutex while forwarding, so deliveries never
// interleave or reorder.
type Debouncer struct {
	config Config
	out    func(track.AcceptedFix)

	mu      sync.Mutex
	timer   *time.Timer
	pending *track.LocationFix
	last    *track.LocationFix
	stopped bool
}

// New creates a Debouncer that forwards accepted fixes to out.
func New(config Config, out func(track.AcceptedFix)) *Debouncer {
	return &Debouncer{config: config, out: out}
}

// Offer submits a raw fix. Malformed fixes are rejected with
// ErrInvalidCoordinate and never forwarded; the caller's session is
// unaffected. After Stop, Offer returns ErrSessionClosed.
func (d *Debouncer) Offer(fix track.LocationFix) error {
	if err := fix.Validate(); err != nil {
		logging.Warn().Err(err).Msg("rejected malformed fix")
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return track.ErrSessionClosed
	}

	if d.config.WindowMs <= 0 {
		d.forwardLocked(fix)
		return nil
	}

	// Real movement cuts the window short: the pending near-duplicate of
	// the last forwarded fix is superseded and dropped.
	if d.last == nil || geo.Distance(fix.Point(), d.last.Point()) >= d.config.MinMovementMeters {
		d.cancelTimerLocked()
		d.pending = nil
		d.forwardLocked(fix)
		return nil
	}

	// Stationary: keep the best-accuracy fix for the open window.
	if d.pending == nil {
		f := fix
		d.pending = &f
		d.timer = time.AfterFunc(time.Duration(d.config.WindowMs)*time.Millisecond, d.flush)
	} else if fix.AccuracyMeters < d.pending.AccuracyMeters {
		f := fix
		d.pending = &f
	}
	return nil
}

// flush forwards the best fix of the expired window.
func (d *Debouncer) flush() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped || d.pending == nil {
		return
	}
	fix := *d.pending
	d.pending = nil
	d.timer = nil
	d.forwardLocked(fix)
}

// forwardLocked delivers a fix downstream. Must be called with d.mu held.
func (d *Debouncer) forwardLocked(fix track.LocationFix) {
	f := fix
	d.last = &f

	accepted := track.AcceptedFix{
		Fix:           fix,
		LowConfidence: d.config.AccuracyThresholdMeters > 0 && fix.AccuracyMeters > d.config.AccuracyThresholdMeters,
	}
	if accepted.LowConfidence {
		logging.Debug().
			Float64("accuracy_m", fix.AccuracyMeters).
			Float64("threshold_m", d.config.AccuracyThresholdMeters).
			Msg("forwarding low-confidence fix")
	}
	d.out(accepted)
}

// cancelTimerLocked stops any pending window timer. Must be called with
// d.mu held.
func (d *Debouncer) cancelTimerLocked() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Stop cancels any pending window and discards the held fix. No forward
// happens after Stop returns; flush and Offer both check the stopped flag
// under the same mutex.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	d.cancelTimerLocked()
	d.pending = nil
}
