// Greenside - Real-Time Golf Position Tracking and On-Course Context
// Copyright 2026 Fairway Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fairwaylabs/greenside

package dispatch

import (
	"errors"
	"testing"

	"github.com/fairwaylabs/greenside/internal/track"
)

func TestSubscribeReceivesAllTypesByDefault(t *testing.T) {
	d := New()

	var got []track.EventType
	_, err := d.Subscribe(nil, func(ev track.Event) {
		got = append(got, ev.Type())
	})
	if err != nil {
		t.Fatalf("Subscribe() = %v", err)
	}

	d.Dispatch(track.LocationUpdate{})
	d.Dispatch(track.ContextUpdate{})
	d.Dispatch(track.ShotDetected{})

	if len(got) != 3 {
		t.Fatalf("received %d events, want 3", len(got))
	}
}

func TestSubscribeFiltersEventTypes(t *testing.T) {
	d := New()

	var got []track.EventType
	_, err := d.Subscribe([]track.EventType{track.EventTypeShot}, func(ev track.Event) {
		got = append(got, ev.Type())
	})
	if err != nil {
		t.Fatalf("Subscribe() = %v", err)
	}

	d.Dispatch(track.LocationUpdate{})
	d.Dispatch(track.ShotDetected{})
	d.Dispatch(track.ContextUpdate{})

	if len(got) != 1 || got[0] != track.EventTypeShot {
		t.Fatalf("received %v, want only shot_detected", got)
	}
}

func TestSameCallbackTwiceDeliversTwice(t *testing.T) {
	d := New()

	count := 0
	cb := func(track.Event) { count++ }

	id1, _ := d.Subscribe(nil, cb)
	id2, _ := d.Subscribe(nil, cb)
	if id1 == id2 {
		t.Fatal("duplicate registrations should yield distinct IDs")
	}

	d.Dispatch(track.LocationUpdate{})
	if count != 2 {
		t.Errorf("callback invoked %d times, want 2 (one per subscription)", count)
	}

	// Removing one leaves the other live.
	d.Unsubscribe(id1)
	d.Dispatch(track.LocationUpdate{})
	if count != 3 {
		t.Errorf("callback invoked %d times, want 3", count)
	}
}

func TestUnsubscribeIsIdempotent(t *testing.T) {
	d := New()

	id, _ := d.Subscribe(nil, func(track.Event) {})
	d.Unsubscribe(id)
	d.Unsubscribe(id)
	d.Unsubscribe("not-a-subscription")

	if d.Count() != 0 {
		t.Errorf("Count() = %d, want 0", d.Count())
	}
}

func TestDispatchOrderFollowsRegistration(t *testing.T) {
	d := New()

	var order []int
	for i := 0; i < 5; i++ {
		n := i
		if _, err := d.Subscribe(nil, func(track.Event) {
			order = append(order, n)
		}); err != nil {
			t.Fatalf("Subscribe() = %v", err)
		}
	}

	d.Dispatch(track.LocationUpdate{})

	for i, n := range order {
		if n != i {
			t.Fatalf("delivery order %v, want registration order", order)
		}
	}
}

func TestUnsubscribeDuringDispatch(t *testing.T) {
	d := New()

	var secondCalled bool
	var secondID string

	// First subscriber removes the second mid-event; the second must not be
	// invoked for this event.
	_, _ = d.Subscribe(nil, func(track.Event) {
		d.Unsubscribe(secondID)
	})
	secondID, _ = d.Subscribe(nil, func(track.Event) {
		secondCalled = true
	})

	d.Dispatch(track.LocationUpdate{})

	if secondCalled {
		t.Error("subscription removed mid-dispatch still received the event")
	}
}

func TestPanickingSubscriberIsIsolated(t *testing.T) {
	d := New()

	var delivered bool
	_, _ = d.Subscribe(nil, func(track.Event) {
		panic("subscriber bug")
	})
	_, _ = d.Subscribe(nil, func(track.Event) {
		delivered = true
	})

	d.Dispatch(track.LocationUpdate{})

	if !delivered {
		t.Error("panic in one subscriber blocked delivery to another")
	}
}

func TestClose(t *testing.T) {
	d := New()

	var called bool
	_, _ = d.Subscribe(nil, func(track.Event) { called = true })

	d.Close()
	d.Dispatch(track.LocationUpdate{})
	if called {
		t.Error("event delivered after Close")
	}

	_, err := d.Subscribe(nil, func(track.Event) {})
	if !errors.Is(err, track.ErrSessionClosed) {
		t.Errorf("Subscribe() after Close = %v, want ErrSessionClosed", err)
	}

	if d.Count() != 0 {
		t.Errorf("Count() = %d after Close, want 0", d.Count())
	}
}

func TestClear(t *testing.T) {
	d := New()

	_, _ = d.Subscribe(nil, func(track.Event) {})
	_, _ = d.Subscribe(nil, func(track.Event) {})
	d.Clear()

	if d.Count() != 0 {
		t.Errorf("Count() = %d after Clear, want 0", d.Count())
	}

	// Unlike Close, Clear leaves the dispatcher usable.
	if _, err := d.Subscribe(nil, func(track.Event) {}); err != nil {
		t.Errorf("Subscribe() after Clear = %v, want nil", err)
	}
}
