// Greenside - Real-Time Golf Position Tracking and On-Course Context
// Copyright 2026 Fairway Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fairwaylabs/greenside

package course

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestStaticProviderGetCourse(t *testing.T) {
	p := NewStaticProvider(sampleCourse())

	c, err := p.GetCourse(context.Background(), 7)
	if err != nil {
		t.Fatalf("GetCourse(7) = %v", err)
	}
	if c.Name != "Test Links" {
		t.Errorf("Name = %q, want Test Links", c.Name)
	}

	if _, err := p.GetCourse(context.Background(), 99); err == nil {
		t.Error("GetCourse(99) succeeded for unknown course")
	}
}

func TestLoadStaticProvider(t *testing.T) {
	const doc = `
courses:
  - id: 7
    name: Ballyliffin Old Links
    boundary:
      - {lat: 55.27, lon: -7.41}
      - {lat: 55.27, lon: -7.39}
      - {lat: 55.29, lon: -7.39}
      - {lat: 55.29, lon: -7.41}
    holes:
      - number: 1
        par: 4
        tee: {lat: 55.275, lon: -7.405}
        pin: {lat: 55.278, lon: -7.405}
        fairway:
          - {lat: 55.2755, lon: -7.4055}
          - {lat: 55.2755, lon: -7.4045}
          - {lat: 55.2778, lon: -7.4045}
          - {lat: 55.2778, lon: -7.4055}
      - number: 2
        par: 3
        tee: {lat: 55.279, lon: -7.404}
        pin: {lat: 55.280, lon: -7.402}
`
	path := filepath.Join(t.TempDir(), "courses.yaml")
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatal(err)
	}

	p, err := LoadStaticProvider(path)
	if err != nil {
		t.Fatalf("LoadStaticProvider() = %v", err)
	}

	c, err := p.GetCourse(context.Background(), 7)
	if err != nil {
		t.Fatalf("GetCourse(7) = %v", err)
	}

	if c.Name != "Ballyliffin Old Links" {
		t.Errorf("Name = %q", c.Name)
	}
	if len(c.Boundary) != 4 {
		t.Errorf("boundary has %d points, want 4", len(c.Boundary))
	}
	if len(c.Holes) != 2 {
		t.Fatalf("parsed %d holes, want 2", len(c.Holes))
	}

	h1 := c.HoleByNumber(1)
	if h1 == nil {
		t.Fatal("HoleByNumber(1) = nil")
	}
	if h1.Par != 4 {
		t.Errorf("hole 1 par = %d, want 4", h1.Par)
	}
	if len(h1.Fairway) != 4 {
		t.Errorf("hole 1 fairway has %d points, want 4", len(h1.Fairway))
	}
	if h1.Tee.Lat != 55.275 {
		t.Errorf("hole 1 tee lat = %v", h1.Tee.Lat)
	}

	h2 := c.HoleByNumber(2)
	if h2 == nil || len(h2.Fairway) != 0 {
		t.Error("hole 2 should parse without a fairway")
	}
}

func TestLoadStaticProviderMissingFile(t *testing.T) {
	if _, err := LoadStaticProvider(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("LoadStaticProvider() succeeded for a missing file")
	}
}

func TestCourseCentroidFallsBackToHolePoints(t *testing.T) {
	c := sampleCourse()
	c.Boundary = nil

	got := c.Centroid()
	wantLat := (54.0 + 54.003) / 2
	if diff := got.Lat - wantLat; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("Centroid().Lat = %v, want %v", got.Lat, wantLat)
	}
}
