// Greenside - Real-Time Golf Position Tracking and On-Course Context
// Copyright 2026 Fairway Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fairwaylabs/greenside

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
}

func TestLoadWithoutFile(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") = %v", err)
	}

	if cfg.Server.Port != 8443 {
		t.Errorf("Server.Port = %d, want 8443", cfg.Server.Port)
	}
	if cfg.Tracking.DebounceWindowMs != 4000 {
		t.Errorf("Tracking.DebounceWindowMs = %d, want 4000", cfg.Tracking.DebounceWindowMs)
	}
	if cfg.Tracking.CourseFetchTimeout != 30*time.Second {
		t.Errorf("Tracking.CourseFetchTimeout = %v, want 30s", cfg.Tracking.CourseFetchTimeout)
	}
}

func TestLoadFromFile(t *testing.T) {
	const doc = `
server:
  port: 9090
logging:
  level: debug
tracking:
  debounce_window_ms: 2000
  fix_history_size: 30
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.Tracking.DebounceWindowMs != 2000 {
		t.Errorf("Tracking.DebounceWindowMs = %d, want 2000", cfg.Tracking.DebounceWindowMs)
	}
	if cfg.Tracking.FixHistorySize != 30 {
		t.Errorf("Tracking.FixHistorySize = %d, want 30", cfg.Tracking.FixHistorySize)
	}

	// File values layer over defaults, not replace them.
	if cfg.Tracking.TeeRadiusMeters != 30 {
		t.Errorf("Tracking.TeeRadiusMeters = %v, want default 30", cfg.Tracking.TeeRadiusMeters)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Load() succeeded for a missing explicit file")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("GREENSIDE_SERVER_PORT", "7001")
	t.Setenv("GREENSIDE_LOGGING_LEVEL", "warn")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}

	if cfg.Server.Port != 7001 {
		t.Errorf("Server.Port = %d, want env override 7001", cfg.Server.Port)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q, want env override warn", cfg.Logging.Level)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			"port too low",
			func(c *Config) { c.Server.Port = 0 },
			"server.port",
		},
		{
			"port too high",
			func(c *Config) { c.Server.Port = 70000 },
			"server.port",
		},
		{
			"negative debounce window",
			func(c *Config) { c.Tracking.DebounceWindowMs = -1 },
			"debounce_window_ms",
		},
		{
			"debounce window over a minute",
			func(c *Config) { c.Tracking.DebounceWindowMs = 60001 },
			"debounce_window_ms",
		},
		{
			"history too small",
			func(c *Config) { c.Tracking.FixHistorySize = 9 },
			"fix_history_size",
		},
		{
			"history too large",
			func(c *Config) { c.Tracking.FixHistorySize = 51 },
			"fix_history_size",
		},
		{
			"hysteresis margin at one",
			func(c *Config) { c.Tracking.HoleHysteresisMargin = 1.0 },
			"hole_hysteresis_margin",
		},
		{
			"hysteresis count zero",
			func(c *Config) { c.Tracking.HoleHysteresisFixCount = 0 },
			"hole_hysteresis_fix_count",
		},
		{
			"accuracy threshold zero",
			func(c *Config) { c.Tracking.AccuracyThresholdMeters = 0 },
			"accuracy_threshold_meters",
		},
		{
			"negative movement threshold",
			func(c *Config) { c.Tracking.MinMovementMeters = -1 },
			"min_movement_meters",
		},
		{
			"zero fetch timeout",
			func(c *Config) { c.Tracking.CourseFetchTimeout = 0 },
			"course_fetch_timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidateBoundaryValues(t *testing.T) {
	// The extremes of every documented range are legal.
	cfg := Default()
	cfg.Tracking.DebounceWindowMs = 0
	cfg.Tracking.FixHistorySize = 10
	cfg.Tracking.HoleHysteresisMargin = 0
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() at low bounds = %v", err)
	}

	cfg = Default()
	cfg.Tracking.DebounceWindowMs = 60000
	cfg.Tracking.FixHistorySize = 50
	cfg.Tracking.HoleHysteresisMargin = 0.99
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() at high bounds = %v", err)
	}
}
