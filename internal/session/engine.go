// Greenside - Real-Time Golf Position Tracking and On-Course Context
// Copyright 2026 Fairway Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fairwaylabs/greenside

// Package session owns the tracking session lifecycle: at most one live
// session per round, the NotStarted -> Active <-> Paused -> Ended state
// machine, and the per-session fix pipeline wiring.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fairwaylabs/greenside/internal/classify"
	"github.com/fairwaylabs/greenside/internal/config"
	"github.com/fairwaylabs/greenside/internal/course"
	"github.com/fairwaylabs/greenside/internal/debounce"
	"github.com/fairwaylabs/greenside/internal/dispatch"
	"github.com/fairwaylabs/greenside/internal/logging"
	"github.com/fairwaylabs/greenside/internal/metrics"
	"github.com/fairwaylabs/greenside/internal/shot"
	"github.com/fairwaylabs/greenside/internal/track"
)

// Engine manages the live sessions. At most one non-Ended session exists per
// round at any time; a second Start for the same round is rejected and the
// existing session is untouched.
type Engine struct {
	tracking config.TrackingConfig
	fetcher  *course.Fetcher

	mu      sync.RWMutex
	byRound map[int64]*Session
	byID    map[string]*Session
}

// Option overrides a tracking threshold for one Start call.
type Option func(*config.TrackingConfig)

// WithDebounceWindowMs overrides the debounce window for one session. Zero
// disables debouncing.
func WithDebounceWindowMs(ms int) Option {
	return func(c *config.TrackingConfig) { c.DebounceWindowMs = ms }
}

// WithFixHistorySize overrides the bounded history size for one session.
func WithFixHistorySize(n int) Option {
	return func(c *config.TrackingConfig) { c.FixHistorySize = n }
}

// NewEngine creates an engine with the given thresholds and course fetcher.
func NewEngine(tracking config.TrackingConfig, fetcher *course.Fetcher) *Engine {
	return &Engine{
		tracking: tracking,
		fetcher:  fetcher,
		byRound:  make(map[int64]*Session),
		byID:     make(map[string]*Session),
	}
}

// Start begins tracking for a round. Course geometry is fetched up front so
// the per-fix path never touches the provider; a fetch failure fails the
// Start and leaves no session behind. If the round already has a live
// session, ErrSessionAlreadyActive is returned and the live session is
// untouched.
func (e *Engine) Start(ctx context.Context, roundID, courseID, userID int64, opts ...Option) (*Session, error) {
	e.mu.Lock()
	if existing, ok := e.byRound[roundID]; ok {
		// A nil entry is a reservation held by a concurrent Start whose
		// geometry fetch is still in flight; it counts as live.
		if existing == nil || existing.Status() != StatusEnded {
			e.mu.Unlock()
			metrics.SessionsRejected.Inc()
			return nil, fmt.Errorf("round %d: %w", roundID, track.ErrSessionAlreadyActive)
		}
		delete(e.byRound, roundID)
	}
	// Reserve the round slot before releasing the lock so concurrent Starts
	// for the same round lose cleanly while the geometry fetch is in flight.
	e.byRound[roundID] = nil
	e.mu.Unlock()

	crs, err := e.fetcher.Fetch(ctx, courseID)
	if err != nil {
		e.mu.Lock()
		delete(e.byRound, roundID)
		e.mu.Unlock()
		return nil, err
	}

	tracking := e.tracking
	for _, opt := range opts {
		opt(&tracking)
	}

	s := &Session{
		ID:        uuid.NewString(),
		RoundID:   roundID,
		CourseID:  courseID,
		UserID:    userID,
		status:    StatusActive,
		startedAt: time.Now(),
		history:   newFixRing(tracking.FixHistorySize),
		classifier: classify.New(classify.Config{
			TeeRadiusMeters:       tracking.TeeRadiusMeters,
			GreenRadiusMeters:     tracking.GreenRadiusMeters,
			HysteresisMargin:      tracking.HoleHysteresisMargin,
			HysteresisFixCount:    tracking.HoleHysteresisFixCount,
			MaxCourseRadiusMeters: tracking.MaxCourseRadiusMeters,
		}, crs),
		shots: shot.New(shot.Config{
			MinDistanceYards:       tracking.ShotMinDistanceYards,
			MaxElapsedSeconds:      tracking.ShotMaxElapsedSeconds,
			DwellWindowSeconds:     tracking.DwellWindowSeconds,
			DwellMaxMovementMeters: tracking.DwellMaxMovementMeters,
		}),
		dispatcher: dispatch.New(),
	}
	s.debouncer = debounce.New(debounce.Config{
		WindowMs:                tracking.DebounceWindowMs,
		MinMovementMeters:       tracking.MinMovementMeters,
		AccuracyThresholdMeters: tracking.AccuracyThresholdMeters,
	}, s.process)
	s.logger = logging.With().
		Str("session_id", s.ID).
		Int64("round_id", roundID).
		Int64("course_id", courseID).
		Logger()
	s.onStop = func() { e.remove(s) }

	e.mu.Lock()
	e.byRound[roundID] = s
	e.byID[s.ID] = s
	e.mu.Unlock()

	metrics.SessionsStarted.Inc()
	metrics.ActiveSessions.Inc()
	s.logger.Info().Int64("user_id", userID).Msg("session started")
	return s, nil
}

// Session returns the session with the given ID, or nil.
func (e *Engine) Session(id string) *Session {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.byID[id]
}

// SessionForRound returns the live session for a round, or nil.
func (e *Engine) SessionForRound(roundID int64) *Session {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.byRound[roundID]
}

// Count returns the number of live sessions.
func (e *Engine) Count() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.byID)
}

// StopAll ends every live session. Used at shutdown.
func (e *Engine) StopAll() {
	e.mu.RLock()
	sessions := make([]*Session, 0, len(e.byID))
	for _, s := range e.byID {
		sessions = append(sessions, s)
	}
	e.mu.RUnlock()

	for _, s := range sessions {
		_ = s.Stop()
	}
}

// remove releases a stopped session's round slot.
func (e *Engine) remove(s *Session) {
	e.mu.Lock()
	if e.byRound[s.RoundID] == s {
		delete(e.byRound, s.RoundID)
	}
	delete(e.byID, s.ID)
	e.mu.Unlock()
}
