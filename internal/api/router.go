// Greenside - Real-Time Golf Position Tracking and On-Course Context
// Copyright 2026 Fairway Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fairwaylabs/greenside

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fairwaylabs/greenside/internal/config"
	"github.com/fairwaylabs/greenside/internal/metrics"
)

// NewRouter assembles the HTTP routes for the tracking API.
func NewRouter(handler *Handler, cfg config.ServerConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied to all routes in order.
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Health and metrics sit outside the API rate limit so monitoring is
	// never throttled away during an incident.
	r.Get("/health", handler.Health)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(httprate.LimitByIP(cfg.RateLimitPerMinute, time.Minute))
		r.Use(prometheusMetrics)

		r.Route("/rounds/{roundID}/session", func(r chi.Router) {
			r.Post("/", handler.StartSession)
			r.Delete("/", handler.StopSession)
			r.Post("/pause", handler.PauseSession)
			r.Post("/resume", handler.ResumeSession)
		})

		r.Route("/sessions/{sessionID}", func(r chi.Router) {
			r.Get("/", handler.GetSession)
			r.Post("/fixes", handler.IngestFix)
			r.Get("/shots", handler.GetShots)
			r.Get("/history", handler.GetHistory)
		})

		r.Get("/ws", handler.WebSocket)
	})

	return r
}

// prometheusMetrics records request counts and latency per route pattern.
func prometheusMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		endpoint := chi.RouteContext(r.Context()).RoutePattern()
		if endpoint == "" {
			endpoint = r.URL.Path
		}
		metrics.RecordAPIRequest(endpoint, r.Method, ww.Status(), time.Since(start))
	})
}
