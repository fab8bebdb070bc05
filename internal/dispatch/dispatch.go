// Greenside - Real-Time Golf Position Tracking and On-Course Context
// Copyright 2026 Fairway Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fairwaylabs/greenside

// Package dispatch fans derived tracking events out to subscribers. The
// registry is keyed by opaque subscription IDs, never by callback identity:
// registering the same function twice yields two independently revocable
// subscriptions, each delivered exactly once per event. Unsubscribe is
// idempotent and safe to call during dispatch.
package dispatch

import (
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/fairwaylabs/greenside/internal/logging"
	"github.com/fairwaylabs/greenside/internal/track"
)

// Callback receives events matching a subscription. Callbacks run on the
// ingestion path and must return quickly; slow consumers should queue
// internally. A panicking callback is recovered, logged, and skipped for
// that event only.
type Callback func(track.Event)

// subscription is one registered callback with its event-type filter.
type subscription struct {
	id string

	// seq orders dispatch deterministically by registration order.
	seq   uint64
	types map[track.EventType]struct{}
	cb    Callback
}

func (s *subscription) wants(t track.EventType) bool {
	if len(s.types) == 0 {
		return true
	}
	_, ok := s.types[t]
	return ok
}

// Dispatcher is the per-session subscriber registry. Safe for concurrent
// use; dispatch iterates over a snapshot so subscribers may unsubscribe
// themselves or others mid-event.
type Dispatcher struct {
	mu      sync.RWMutex
	subs    map[string]*subscription
	nextSeq uint64
	closed  bool
}

// New creates an empty dispatcher.
func New() *Dispatcher {
	return &Dispatcher{subs: make(map[string]*subscription)}
}

// Subscribe registers a callback for the given event types (all types when
// empty) and returns an opaque subscription ID. After Close it returns
// ErrSessionClosed.
func (d *Dispatcher) Subscribe(eventTypes []track.EventType, cb Callback) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return "", track.ErrSessionClosed
	}

	sub := &subscription{
		id:  uuid.NewString(),
		seq: d.nextSeq,
		cb:  cb,
	}
	d.nextSeq++

	if len(eventTypes) > 0 {
		sub.types = make(map[track.EventType]struct{}, len(eventTypes))
		for _, t := range eventTypes {
			sub.types[t] = struct{}{}
		}
	}

	d.subs[sub.id] = sub
	return sub.id, nil
}

// Unsubscribe removes a subscription. Idempotent: unknown or already
// removed IDs are ignored.
func (d *Dispatcher) Unsubscribe(id string) {
	d.mu.Lock()
	delete(d.subs, id)
	d.mu.Unlock()
}

// Dispatch delivers an event to every matching subscription, in
// registration order for determinism. The registry is snapshotted first;
// membership is re-checked per callback so a subscription removed mid-event
// receives nothing further.
func (d *Dispatcher) Dispatch(event track.Event) {
	d.mu.RLock()
	if d.closed {
		d.mu.RUnlock()
		return
	}
	snapshot := make([]*subscription, 0, len(d.subs))
	for _, sub := range d.subs {
		if sub.wants(event.Type()) {
			snapshot = append(snapshot, sub)
		}
	}
	d.mu.RUnlock()

	sort.Slice(snapshot, func(i, j int) bool {
		return snapshot[i].seq < snapshot[j].seq
	})

	for _, sub := range snapshot {
		d.mu.RLock()
		_, live := d.subs[sub.id]
		closed := d.closed
		d.mu.RUnlock()
		if !live || closed {
			continue
		}
		d.deliver(sub, event)
	}
}

// deliver invokes one callback with panic isolation so a throwing
// subscriber cannot break the ingestion pipeline.
func (d *Dispatcher) deliver(sub *subscription, event track.Event) {
	defer func() {
		if r := recover(); r != nil {
			logging.Error().
				Interface("panic", r).
				Str("subscription_id", sub.id).
				Str("event_type", string(event.Type())).
				Msg("subscriber panicked, skipping for this event")
		}
	}()
	sub.cb(event)
}

// Count returns the number of live subscriptions.
func (d *Dispatcher) Count() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.subs)
}

// Clear removes all subscriptions without closing the dispatcher.
func (d *Dispatcher) Clear() {
	d.mu.Lock()
	d.subs = make(map[string]*subscription)
	d.mu.Unlock()
}

// Close clears the registry and rejects further subscriptions. No event is
// delivered after Close returns.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	d.closed = true
	d.subs = make(map[string]*subscription)
	d.mu.Unlock()
}
