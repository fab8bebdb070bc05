// Greenside - Real-Time Golf Position Tracking and On-Course Context
// Copyright 2026 Fairway Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fairwaylabs/greenside

// Package main is the entry point for the Greenside tracking server.
//
// Greenside ingests raw GPS fixes from golfers' devices during a round and
// turns them into on-course context: current hole, distance to the pin,
// position classification, and inferred shots. Derived events stream to
// clients over WebSocket.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: defaults, YAML config file, GREENSIDE_ env vars (Koanf v2)
//  2. Logging: zerolog structured logging
//  3. Course provider: static YAML geometry behind a circuit-broken fetcher
//  4. Session engine: per-round tracking pipelines
//  5. WebSocket hub: real-time event fan-out
//  6. HTTP server: REST API for session lifecycle and fix ingestion
//
// Long-running components run under a suture supervision tree; the hub and
// the HTTP server restart independently on failure.
//
// # Signal Handling
//
// The server shuts down gracefully on SIGINT and SIGTERM: it stops accepting
// connections, drains in-flight requests within the shutdown timeout, and
// ends all live sessions.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/fairwaylabs/greenside/internal/api"
	"github.com/fairwaylabs/greenside/internal/config"
	"github.com/fairwaylabs/greenside/internal/course"
	"github.com/fairwaylabs/greenside/internal/logging"
	"github.com/fairwaylabs/greenside/internal/session"
	"github.com/fairwaylabs/greenside/internal/supervisor"
	"github.com/fairwaylabs/greenside/internal/supervisor/services"
	"github.com/fairwaylabs/greenside/internal/websocket"
)

func main() {
	if err := run(); err != nil {
		logging.Fatal().Err(err).Msg("server exited with error")
	}
}

func run() error {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})
	logging.Info().
		Str("host", cfg.Server.Host).
		Int("port", cfg.Server.Port).
		Msg("starting greenside")

	provider, err := course.LoadStaticProvider(cfg.Courses.File)
	if err != nil {
		return fmt.Errorf("load courses: %w", err)
	}
	fetcher := course.NewFetcher(provider, course.FetcherConfig{
		Timeout: cfg.Tracking.CourseFetchTimeout,
	})

	engine := session.NewEngine(cfg.Tracking, fetcher)
	hub := websocket.NewHub()

	handler := api.NewHandler(engine, hub, cfg.Server)
	router := api.NewRouter(handler, cfg.Server)

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		return fmt.Errorf("build supervisor tree: %w", err)
	}
	tree.AddMessagingService(services.NewWebSocketHubService(hub))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("shutdown signal received")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("supervisor: %w", err)
		}
	}

	// End live sessions before the process exits so every subscriber sees a
	// clean stop instead of a dropped connection.
	engine.StopAll()

	if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("supervisor: %w", err)
	}

	if report, rerr := tree.UnstoppedServiceReport(); rerr == nil && len(report) > 0 {
		for _, svc := range report {
			logging.Warn().Str("service", svc.Name).Msg("service did not stop in time")
		}
	}

	logging.Info().Msg("greenside stopped")
	return nil
}
