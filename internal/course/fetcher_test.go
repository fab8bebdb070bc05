// Greenside - Real-Time Golf Position Tracking and On-Course Context
// Copyright 2026 Fairway Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fairwaylabs/greenside

package course

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fairwaylabs/greenside/internal/geo"
)

// fakeProvider counts calls and fails on demand.
type fakeProvider struct {
	calls  int
	course *Course
	err    error
}

func (p *fakeProvider) GetCourse(_ context.Context, courseID int64) (*Course, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	if p.course != nil && p.course.ID == courseID {
		return p.course, nil
	}
	return nil, errors.New("course not found")
}

func sampleCourse() *Course {
	return &Course{
		ID:   7,
		Name: "Test Links",
		Holes: []Hole{
			{Number: 1, Par: 4, Tee: geo.Point{Lat: 54, Lon: -8}, Pin: geo.Point{Lat: 54.003, Lon: -8}},
		},
	}
}

func TestFetchCaches(t *testing.T) {
	p := &fakeProvider{course: sampleCourse()}
	f := NewFetcher(p, DefaultFetcherConfig())

	c1, err := f.Fetch(context.Background(), 7)
	if err != nil {
		t.Fatalf("Fetch() = %v", err)
	}
	c2, err := f.Fetch(context.Background(), 7)
	if err != nil {
		t.Fatalf("second Fetch() = %v", err)
	}

	if c1 != c2 {
		t.Error("cache returned a different course value")
	}
	if p.calls != 1 {
		t.Errorf("provider called %d times, want 1 (cache hit)", p.calls)
	}
}

func TestFetchPropagatesProviderError(t *testing.T) {
	p := &fakeProvider{err: errors.New("upstream down")}
	f := NewFetcher(p, DefaultFetcherConfig())

	if _, err := f.Fetch(context.Background(), 7); err == nil {
		t.Fatal("Fetch() succeeded against a failing provider")
	}
}

func TestInvalidate(t *testing.T) {
	p := &fakeProvider{course: sampleCourse()}
	f := NewFetcher(p, DefaultFetcherConfig())

	if _, err := f.Fetch(context.Background(), 7); err != nil {
		t.Fatalf("Fetch() = %v", err)
	}
	f.Invalidate(7)
	if _, err := f.Fetch(context.Background(), 7); err != nil {
		t.Fatalf("Fetch() after Invalidate = %v", err)
	}

	if p.calls != 2 {
		t.Errorf("provider called %d times, want 2 after Invalidate", p.calls)
	}
}

func TestBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	p := &fakeProvider{err: errors.New("upstream down")}
	cfg := FetcherConfig{
		Timeout:          time.Second,
		FailureThreshold: 3,
		BreakerTimeout:   time.Minute,
	}
	f := NewFetcher(p, cfg)

	if f.BreakerState() != "closed" {
		t.Fatalf("BreakerState() = %q before any call, want closed", f.BreakerState())
	}

	for i := 0; i < 3; i++ {
		if _, err := f.Fetch(context.Background(), 7); err == nil {
			t.Fatalf("Fetch %d succeeded, want failure", i)
		}
	}

	if f.BreakerState() != "open" {
		t.Fatalf("BreakerState() = %q after 3 consecutive failures, want open", f.BreakerState())
	}

	// While open, calls fail fast without touching the provider.
	before := p.calls
	if _, err := f.Fetch(context.Background(), 7); err == nil {
		t.Fatal("Fetch() succeeded while breaker open")
	}
	if p.calls != before {
		t.Error("open breaker still reached the provider")
	}
}

func TestBreakerStaysClosedBelowThreshold(t *testing.T) {
	p := &fakeProvider{err: errors.New("flaky")}
	cfg := FetcherConfig{
		Timeout:          time.Second,
		FailureThreshold: 3,
		BreakerTimeout:   time.Minute,
	}
	f := NewFetcher(p, cfg)

	// Two failures, then a success resets the consecutive count.
	_, _ = f.Fetch(context.Background(), 7)
	_, _ = f.Fetch(context.Background(), 7)
	p.err = nil
	p.course = sampleCourse()
	if _, err := f.Fetch(context.Background(), 7); err != nil {
		t.Fatalf("Fetch() after recovery = %v", err)
	}

	if f.BreakerState() != "closed" {
		t.Errorf("BreakerState() = %q, want closed", f.BreakerState())
	}
}
