// Greenside - Real-Time Golf Position Tracking and On-Course Context
// Copyright 2026 Fairway Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fairwaylabs/greenside

// Package config loads and validates configuration for the tracking engine
// host. Precedence, lowest to highest: built-in defaults, YAML config file,
// GREENSIDE_-prefixed environment variables.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix for environment variable overrides, e.g.
// GREENSIDE_SERVER_PORT=8080 sets server.port.
const EnvPrefix = "GREENSIDE_"

// Config is the root configuration.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Logging  LoggingConfig  `koanf:"logging"`
	Tracking TrackingConfig `koanf:"tracking"`
	Courses  CoursesConfig  `koanf:"courses"`
}

// ServerConfig configures the HTTP host.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`

	// RateLimitPerMinute bounds requests per client IP.
	RateLimitPerMinute int `koanf:"rate_limit_per_minute"`

	// FixRatePerSecond bounds fix ingestion per session. GPS sources emit
	// roughly one fix per few seconds; anything much faster is a
	// misbehaving client.
	FixRatePerSecond float64 `koanf:"fix_rate_per_second"`
	FixRateBurst     int     `koanf:"fix_rate_burst"`
}

// LoggingConfig configures the zerolog logger.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// TrackingConfig holds the tunable pipeline thresholds. All values were
// reconstructed from ad hoc field constants and are deliberately
// configuration, not contracts.
type TrackingConfig struct {
	AccuracyThresholdMeters float64 `koanf:"accuracy_threshold_meters"`
	DebounceWindowMs        int     `koanf:"debounce_window_ms"`
	MinMovementMeters       float64 `koanf:"min_movement_meters"`

	ShotMinDistanceYards   float64 `koanf:"shot_min_distance_yards"`
	ShotMaxElapsedSeconds  float64 `koanf:"shot_max_elapsed_seconds"`
	DwellWindowSeconds     float64 `koanf:"dwell_window_seconds"`
	DwellMaxMovementMeters float64 `koanf:"dwell_max_movement_meters"`

	TeeRadiusMeters        float64 `koanf:"tee_radius_meters"`
	GreenRadiusMeters      float64 `koanf:"green_radius_meters"`
	HoleHysteresisMargin   float64 `koanf:"hole_hysteresis_margin"`
	HoleHysteresisFixCount int     `koanf:"hole_hysteresis_fix_count"`
	MaxCourseRadiusMeters  float64 `koanf:"max_course_radius_meters"`

	FixHistorySize     int           `koanf:"fix_history_size"`
	CourseFetchTimeout time.Duration `koanf:"course_fetch_timeout"`
}

// CoursesConfig locates course reference data for the static provider.
type CoursesConfig struct {
	File string `koanf:"file"`
}

// Default returns the built-in defaults, matching the engine's documented
// threshold defaults.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:               "0.0.0.0",
			Port:               8443,
			ShutdownTimeout:    10 * time.Second,
			RateLimitPerMinute: 300,
			FixRatePerSecond:   2,
			FixRateBurst:       10,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Tracking: TrackingConfig{
			AccuracyThresholdMeters: 50,
			DebounceWindowMs:        4000,
			MinMovementMeters:       2,
			ShotMinDistanceYards:    15,
			ShotMaxElapsedSeconds:   15,
			DwellWindowSeconds:      8,
			DwellMaxMovementMeters:  3,
			TeeRadiusMeters:         30,
			GreenRadiusMeters:       20,
			HoleHysteresisMargin:    0.20,
			HoleHysteresisFixCount:  3,
			MaxCourseRadiusMeters:   2500,
			FixHistorySize:          20,
			CourseFetchTimeout:      30 * time.Second,
		},
		Courses: CoursesConfig{
			File: "courses.yaml",
		},
	}
}

// Load builds the configuration from defaults, an optional YAML file, and
// environment overrides, then validates it. An empty path skips the file
// layer; a missing file at an explicit path is an error.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks cross-field invariants and threshold ranges.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range [1, 65535]", c.Server.Port)
	}

	t := &c.Tracking
	if t.DebounceWindowMs < 0 || t.DebounceWindowMs > 60000 {
		return fmt.Errorf("tracking.debounce_window_ms %d out of range [0, 60000]", t.DebounceWindowMs)
	}
	if t.FixHistorySize < 10 || t.FixHistorySize > 50 {
		return fmt.Errorf("tracking.fix_history_size %d out of range [10, 50]", t.FixHistorySize)
	}
	if t.HoleHysteresisMargin < 0 || t.HoleHysteresisMargin >= 1 {
		return fmt.Errorf("tracking.hole_hysteresis_margin %v out of range [0, 1)", t.HoleHysteresisMargin)
	}
	if t.HoleHysteresisFixCount < 1 {
		return fmt.Errorf("tracking.hole_hysteresis_fix_count must be at least 1")
	}
	if t.AccuracyThresholdMeters <= 0 {
		return fmt.Errorf("tracking.accuracy_threshold_meters must be positive")
	}
	if t.MinMovementMeters < 0 {
		return fmt.Errorf("tracking.min_movement_meters cannot be negative")
	}
	if t.ShotMinDistanceYards <= 0 || t.ShotMaxElapsedSeconds <= 0 {
		return fmt.Errorf("tracking shot thresholds must be positive")
	}
	if t.CourseFetchTimeout <= 0 {
		return fmt.Errorf("tracking.course_fetch_timeout must be positive")
	}
	return nil
}
