// Greenside - Real-Time Golf Position Tracking and On-Course Context
// Copyright 2026 Fairway Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fairwaylabs/greenside

package track

import (
	"errors"
	"math"
	"testing"
	"time"
)

func validFix() LocationFix {
	return LocationFix{
		Latitude:       54.0,
		Longitude:      -8.0,
		AccuracyMeters: 5,
		TimestampMs:    1700000000000,
	}
}

func TestLocationFixValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*LocationFix)
		wantErr bool
	}{
		{"valid", func(f *LocationFix) {}, false},
		{"latitude at north pole", func(f *LocationFix) { f.Latitude = 90 }, false},
		{"longitude at antimeridian", func(f *LocationFix) { f.Longitude = -180 }, false},
		{"zero accuracy", func(f *LocationFix) { f.AccuracyMeters = 0 }, false},
		{"latitude above range", func(f *LocationFix) { f.Latitude = 90.0001 }, true},
		{"latitude below range", func(f *LocationFix) { f.Latitude = -91 }, true},
		{"latitude NaN", func(f *LocationFix) { f.Latitude = math.NaN() }, true},
		{"longitude above range", func(f *LocationFix) { f.Longitude = 180.5 }, true},
		{"longitude below range", func(f *LocationFix) { f.Longitude = -180.5 }, true},
		{"longitude NaN", func(f *LocationFix) { f.Longitude = math.NaN() }, true},
		{"negative accuracy", func(f *LocationFix) { f.AccuracyMeters = -1 }, true},
		{"accuracy NaN", func(f *LocationFix) { f.AccuracyMeters = math.NaN() }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fix := validFix()
			tt.mutate(&fix)

			err := fix.Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatal("Validate() = nil, want error")
				}
				if !errors.Is(err, ErrInvalidCoordinate) {
					t.Errorf("Validate() error = %v, want ErrInvalidCoordinate", err)
				}
			} else if err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
		})
	}
}

func TestLocationFixTime(t *testing.T) {
	fix := validFix()
	want := time.UnixMilli(1700000000000)
	if got := fix.Time(); !got.Equal(want) {
		t.Errorf("Time() = %v, want %v", got, want)
	}
}

func TestLocationFixPoint(t *testing.T) {
	fix := validFix()
	p := fix.Point()
	if p.Lat != 54.0 || p.Lon != -8.0 {
		t.Errorf("Point() = %v, want (54.0, -8.0)", p)
	}
}
