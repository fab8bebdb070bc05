// Greenside - Real-Time Golf Position Tracking and On-Course Context
// Copyright 2026 Fairway Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fairwaylabs/greenside

// Package metrics provides Prometheus instrumentation for the tracking
// engine and its HTTP host: fix throughput, shot detection, session
// lifecycle, dispatch health, and API latency.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Fix pipeline metrics
	FixesIngested = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tracking_fixes_ingested_total",
			Help: "Total number of raw fixes offered to the pipeline",
		},
	)

	FixesRejected = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tracking_fixes_rejected_total",
			Help: "Total number of fixes rejected as malformed",
		},
	)

	FixesAccepted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tracking_fixes_accepted_total",
			Help: "Total number of fixes forwarded past the debouncer",
		},
		[]string{"low_confidence"}, // "true" / "false"
	)

	IngestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "tracking_ingest_duration_seconds",
			Help:    "Duration of the per-fix pipeline (classify + shot + dispatch)",
			Buckets: prometheus.DefBuckets,
		},
	)

	// Shot detection metrics
	ShotsDetected = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tracking_shots_detected_total",
			Help: "Total number of shot events emitted",
		},
	)

	// Session lifecycle metrics
	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "tracking_active_sessions",
			Help: "Current number of live (Active or Paused) sessions",
		},
	)

	SessionsStarted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tracking_sessions_started_total",
			Help: "Total number of sessions started",
		},
	)

	SessionsRejected = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tracking_sessions_rejected_total",
			Help: "Total number of Start calls rejected (round already active)",
		},
	)

	// Dispatch metrics
	EventsDispatched = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tracking_events_dispatched_total",
			Help: "Total number of events delivered to subscribers",
		},
		[]string{"event_type"},
	)

	// API metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"endpoint", "method", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method"},
	)

	// WebSocket metrics
	WebSocketConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "websocket_connections",
			Help: "Current number of connected WebSocket clients",
		},
	)
)

// RecordAPIRequest records one API request with its latency.
func RecordAPIRequest(endpoint, method string, status int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(endpoint, method, strconv.Itoa(status)).Inc()
	APIRequestDuration.WithLabelValues(endpoint, method).Observe(duration.Seconds())
}

// RecordAcceptedFix records a fix forwarded past the debouncer.
func RecordAcceptedFix(lowConfidence bool) {
	FixesAccepted.WithLabelValues(strconv.FormatBool(lowConfidence)).Inc()
}
