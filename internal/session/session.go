// Greenside - Real-Time Golf Position Tracking and On-Course Context
// Copyright 2026 Fairway Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fairwaylabs/greenside

package session

import (
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/fairwaylabs/greenside/internal/classify"
	"github.com/fairwaylabs/greenside/internal/debounce"
	"github.com/fairwaylabs/greenside/internal/dispatch"
	"github.com/fairwaylabs/greenside/internal/metrics"
	"github.com/fairwaylabs/greenside/internal/shot"
	"github.com/fairwaylabs/greenside/internal/track"
)

// Status is the session lifecycle state.
type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusActive     Status = "active"
	StatusPaused     Status = "paused"
	StatusEnded      Status = "ended" // terminal
)

// Session is the live tracking context for one in-progress round. It owns
// the full per-fix pipeline: debouncer, classifier, shot detector, bounded
// fix history, and the subscriber dispatcher.
//
// Concurrency: the post-debounce pipeline is serialized by pipeMu (single
// writer per session); status transitions are guarded by stateMu. Fixes are
// processed, and events delivered, in the order they were accepted after
// debouncing.
type Session struct {
	ID       string
	RoundID  int64
	CourseID int64
	UserID   int64

	stateMu   sync.RWMutex
	status    Status
	startedAt time.Time
	endedAt   time.Time

	pipeMu      sync.Mutex
	history     *fixRing
	classifier  *classify.Classifier
	shots       *shot.Detector
	shotLog     []track.ShotDetected
	lastContext track.PositionContext
	hasContext  bool

	debouncer  *debounce.Debouncer
	dispatcher *dispatch.Dispatcher

	logger zerolog.Logger

	// onStop lets the owning engine release the round slot.
	onStop func()
}

// Status returns the current lifecycle state.
func (s *Session) Status() Status {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.status
}

// StartedAt returns when the session became Active.
func (s *Session) StartedAt() time.Time {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.startedAt
}

// EndedAt returns when the session ended, or the zero time.
func (s *Session) EndedAt() time.Time {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.endedAt
}

// Context returns the most recent position context and whether one has been
// computed yet.
func (s *Session) Context() (track.PositionContext, bool) {
	s.pipeMu.Lock()
	defer s.pipeMu.Unlock()
	return s.lastContext, s.hasContext
}

// History returns a copy of the bounded fix history, oldest first.
func (s *Session) History() []track.AcceptedFix {
	s.pipeMu.Lock()
	defer s.pipeMu.Unlock()
	return s.history.snapshot()
}

// Shots returns a copy of the append-only shot log.
func (s *Session) Shots() []track.ShotDetected {
	s.pipeMu.Lock()
	defer s.pipeMu.Unlock()
	out := make([]track.ShotDetected, len(s.shotLog))
	copy(out, s.shotLog)
	return out
}

// Subscribe registers a callback for the given event types (all when empty)
// and returns an opaque, independently revocable subscription ID. After
// Stop it returns ErrSessionClosed.
func (s *Session) Subscribe(eventTypes []track.EventType, cb dispatch.Callback) (string, error) {
	s.stateMu.RLock()
	ended := s.status == StatusEnded
	s.stateMu.RUnlock()
	if ended {
		return "", track.ErrSessionClosed
	}
	return s.dispatcher.Subscribe(eventTypes, cb)
}

// Unsubscribe removes a subscription. Idempotent and safe to call during
// dispatch of an in-flight event.
func (s *Session) Unsubscribe(id string) {
	s.dispatcher.Unsubscribe(id)
}

// Ingest submits a raw fix to the pipeline. Malformed fixes return
// ErrInvalidCoordinate and are dropped without affecting the session.
// Ingest on an Ended session returns ErrSessionClosed and delivers no
// events. Fixes arriving while Paused are discarded silently.
func (s *Session) Ingest(fix track.LocationFix) error {
	metrics.FixesIngested.Inc()

	s.stateMu.RLock()
	status := s.status
	s.stateMu.RUnlock()

	switch status {
	case StatusEnded:
		return track.ErrSessionClosed
	case StatusPaused:
		s.logger.Debug().Msg("fix discarded while paused")
		return nil
	}

	if err := s.debouncer.Offer(fix); err != nil {
		if errors.Is(err, track.ErrInvalidCoordinate) {
			metrics.FixesRejected.Inc()
		}
		return err
	}
	return nil
}

// process runs the post-debounce pipeline for one accepted fix. Invoked by
// the debouncer, either synchronously from Ingest or from the window timer.
// Never lets a failure escape: classification degrades internally and
// subscriber panics are isolated by the dispatcher; anything else is caught
// here and the pipeline continues with the next fix.
func (s *Session) process(accepted track.AcceptedFix) {
	s.pipeMu.Lock()
	defer s.pipeMu.Unlock()

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error().Interface("panic", r).Msg("pipeline failure, fix skipped")
		}
	}()

	s.stateMu.RLock()
	status := s.status
	s.stateMu.RUnlock()
	if status != StatusActive {
		// Stop or Pause raced an in-flight fix: discard, never deliver.
		return
	}

	start := time.Now()
	metrics.RecordAcceptedFix(accepted.LowConfidence)

	s.history.push(accepted)
	s.dispatch(track.LocationUpdate{Fix: accepted.Fix, LowConfidence: accepted.LowConfidence})

	ctx := s.classifier.Classify(accepted.Fix)
	s.lastContext = ctx
	s.hasContext = true
	s.dispatch(track.ContextUpdate{Context: ctx})

	if !accepted.LowConfidence {
		if ev := s.shots.Observe(accepted.Fix); ev != nil {
			s.shotLog = append(s.shotLog, *ev)
			metrics.ShotsDetected.Inc()
			s.dispatch(*ev)
		}
	}

	metrics.IngestDuration.Observe(time.Since(start).Seconds())
}

// dispatch delivers one event and records it.
func (s *Session) dispatch(event track.Event) {
	s.dispatcher.Dispatch(event)
	metrics.EventsDispatched.WithLabelValues(string(event.Type())).Inc()
}

// Pause suspends fix processing without losing history or subscriptions.
func (s *Session) Pause() error {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()

	if s.status == StatusEnded {
		return track.ErrSessionClosed
	}
	s.status = StatusPaused
	s.logger.Info().Msg("session paused")
	return nil
}

// Resume reactivates a paused session.
func (s *Session) Resume() error {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()

	if s.status == StatusEnded {
		return track.ErrSessionClosed
	}
	s.status = StatusActive
	s.logger.Info().Msg("session resumed")
	return nil
}

// Stop ends the session: the pending debounce window is cancelled, state
// becomes Ended, the fix history is cleared, and all subscriptions are
// removed. No event is delivered after Stop returns; a fix mid-pipeline
// when Stop is called is discarded. Idempotent. A subsequent Start for the
// same round begins from a clean slate.
func (s *Session) Stop() error {
	s.stateMu.Lock()
	if s.status == StatusEnded {
		s.stateMu.Unlock()
		return nil
	}
	s.status = StatusEnded
	s.endedAt = time.Now()
	s.stateMu.Unlock()

	// Cancel the debounce timer, then wait out any in-flight pipeline run
	// before clearing state. A run that started before the status flip
	// sees Ended and discards its fix.
	s.debouncer.Stop()

	s.pipeMu.Lock()
	s.history.clear()
	s.pipeMu.Unlock()

	s.dispatcher.Close()
	metrics.ActiveSessions.Dec()

	if s.onStop != nil {
		s.onStop()
	}

	s.logger.Info().Msg("session stopped")
	return nil
}
