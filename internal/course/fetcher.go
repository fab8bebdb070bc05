// Greenside - Real-Time Golf Position Tracking and On-Course Context
// Copyright 2026 Fairway Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fairwaylabs/greenside

package course

import (
	"context"
	"fmt"
	"sync"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/fairwaylabs/greenside/internal/logging"
)

// FetcherConfig configures the geometry fetcher.
type FetcherConfig struct {
	// Timeout bounds a single GetCourse call. Default: 30s.
	Timeout time.Duration

	// FailureThreshold is the number of consecutive provider failures
	// before the circuit opens. Default: 3.
	FailureThreshold uint32

	// BreakerTimeout is how long the circuit stays open before allowing a
	// probe. Default: 60s.
	BreakerTimeout time.Duration
}

// DefaultFetcherConfig returns sensible defaults.
func DefaultFetcherConfig() FetcherConfig {
	return FetcherConfig{
		Timeout:          30 * time.Second,
		FailureThreshold: 3,
		BreakerTimeout:   60 * time.Second,
	}
}

// Fetcher wraps a Provider with a fetch timeout, a circuit breaker, and a
// cache. Geometry is fetched once at session start and served from cache for
// the rest of the session, keeping the per-fix path free of network calls.
type Fetcher struct {
	provider Provider
	config   FetcherConfig
	breaker  *gobreaker.CircuitBreaker[*Course]

	mu    sync.RWMutex
	cache map[int64]*Course
}

// NewFetcher creates a Fetcher around the given provider.
func NewFetcher(provider Provider, config FetcherConfig) *Fetcher {
	if config.Timeout <= 0 {
		config.Timeout = 30 * time.Second
	}
	if config.FailureThreshold == 0 {
		config.FailureThreshold = 3
	}
	if config.BreakerTimeout <= 0 {
		config.BreakerTimeout = 60 * time.Second
	}

	settings := gobreaker.Settings{
		Name:    "course-provider",
		Timeout: config.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= config.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("course provider circuit state changed")
		},
	}

	return &Fetcher{
		provider: provider,
		config:   config,
		breaker:  gobreaker.NewCircuitBreaker[*Course](settings),
		cache:    make(map[int64]*Course),
	}
}

// Fetch returns the geometry for courseID, from cache when available. A cold
// fetch is bounded by the configured timeout and the caller's ctx; canceling
// ctx (session Stop) aborts the fetch without tripping the breaker open by
// itself.
func (f *Fetcher) Fetch(ctx context.Context, courseID int64) (*Course, error) {
	f.mu.RLock()
	if c, ok := f.cache[courseID]; ok {
		f.mu.RUnlock()
		return c, nil
	}
	f.mu.RUnlock()

	fetchCtx, cancel := context.WithTimeout(ctx, f.config.Timeout)
	defer cancel()

	c, err := f.breaker.Execute(func() (*Course, error) {
		return f.provider.GetCourse(fetchCtx, courseID)
	})
	if err != nil {
		return nil, fmt.Errorf("fetch course %d: %w", courseID, err)
	}
	if c == nil {
		return nil, fmt.Errorf("fetch course %d: provider returned no course", courseID)
	}

	f.mu.Lock()
	f.cache[courseID] = c
	f.mu.Unlock()

	logging.Debug().Int64("course_id", courseID).Int("holes", len(c.Holes)).Msg("course geometry cached")
	return c, nil
}

// Invalidate drops a cached course, forcing the next Fetch to hit the
// provider.
func (f *Fetcher) Invalidate(courseID int64) {
	f.mu.Lock()
	delete(f.cache, courseID)
	f.mu.Unlock()
}

// BreakerState returns the current circuit state for monitoring.
func (f *Fetcher) BreakerState() string {
	return f.breaker.State().String()
}
