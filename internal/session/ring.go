// Greenside - Real-Time Golf Position Tracking and On-Course Context
// Copyright 2026 Fairway Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fairwaylabs/greenside

package session

import "github.com/fairwaylabs/greenside/internal/track"

// fixRing is a bounded ring buffer of accepted fixes. Oldest entries are
// overwritten once the buffer is full. Not safe for concurrent use; the
// owning session serializes access on its pipeline path.
type fixRing struct {
	buf  []track.AcceptedFix
	head int // index of the next write
	n    int // number of live entries
}

func newFixRing(size int) *fixRing {
	if size < 1 {
		size = 1
	}
	return &fixRing{buf: make([]track.AcceptedFix, size)}
}

func (r *fixRing) push(f track.AcceptedFix) {
	r.buf[r.head] = f
	r.head = (r.head + 1) % len(r.buf)
	if r.n < len(r.buf) {
		r.n++
	}
}

func (r *fixRing) len() int {
	return r.n
}

// snapshot returns the live entries oldest first.
func (r *fixRing) snapshot() []track.AcceptedFix {
	out := make([]track.AcceptedFix, 0, r.n)
	start := (r.head - r.n + len(r.buf)) % len(r.buf)
	for i := 0; i < r.n; i++ {
		out = append(out, r.buf[(start+i)%len(r.buf)])
	}
	return out
}

func (r *fixRing) clear() {
	r.head = 0
	r.n = 0
	for i := range r.buf {
		r.buf[i] = track.AcceptedFix{}
	}
}
