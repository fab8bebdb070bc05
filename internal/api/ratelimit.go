// Greenside - Real-Time Golf Position Tracking and On-Course Context
// Copyright 2026 Fairway Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fairwaylabs/greenside

package api

import (
	"sync"

	"golang.org/x/time/rate"
)

// fixLimiter bounds fix ingestion per session. GPS sources emit roughly one
// fix every few seconds; a client flooding faster gets 429s while other
// sessions are unaffected.
type fixLimiter struct {
	perSecond rate.Limit
	burst     int

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

func newFixLimiter(perSecond float64, burst int) *fixLimiter {
	if perSecond <= 0 {
		perSecond = 2
	}
	if burst <= 0 {
		burst = 10
	}
	return &fixLimiter{
		perSecond: rate.Limit(perSecond),
		burst:     burst,
		limiters:  make(map[string]*rate.Limiter),
	}
}

// allow reports whether the session may ingest another fix now.
func (l *fixLimiter) allow(sessionID string) bool {
	l.mu.Lock()
	limiter, ok := l.limiters[sessionID]
	if !ok {
		limiter = rate.NewLimiter(l.perSecond, l.burst)
		l.limiters[sessionID] = limiter
	}
	l.mu.Unlock()

	return limiter.Allow()
}

// forget drops a session's limiter once the session ends.
func (l *fixLimiter) forget(sessionID string) {
	l.mu.Lock()
	delete(l.limiters, sessionID)
	l.mu.Unlock()
}
