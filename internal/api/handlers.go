// Greenside - Real-Time Golf Position Tracking and On-Course Context
// Copyright 2026 Fairway Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fairwaylabs/greenside

package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	gorillaws "github.com/gorilla/websocket"

	"github.com/fairwaylabs/greenside/internal/config"
	"github.com/fairwaylabs/greenside/internal/logging"
	"github.com/fairwaylabs/greenside/internal/session"
	"github.com/fairwaylabs/greenside/internal/track"
	"github.com/fairwaylabs/greenside/internal/validation"
	"github.com/fairwaylabs/greenside/internal/websocket"
)

// Handler serves the tracking API. It bridges HTTP requests to the session
// engine and wires each started session's event stream into the WebSocket
// hub.
type Handler struct {
	engine  *session.Engine
	hub     *websocket.Hub
	limiter *fixLimiter

	upgrader gorillaws.Upgrader
}

// NewHandler creates the API handler.
func NewHandler(engine *session.Engine, hub *websocket.Hub, cfg config.ServerConfig) *Handler {
	return &Handler{
		engine:  engine,
		hub:     hub,
		limiter: newFixLimiter(cfg.FixRatePerSecond, cfg.FixRateBurst),
		upgrader: gorillaws.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// StartSession handles POST /api/v1/rounds/{roundID}/session.
func (h *Handler) StartSession(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w)

	roundID, ok := parseRoundID(rw, r)
	if !ok {
		return
	}

	var req StartSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rw.BadRequest("invalid request body")
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		apiErr := verr.ToAPIError()
		rw.ValidationError(apiErr.Message, apiErr.Details)
		return
	}

	var opts []session.Option
	if req.DebounceWindowMs != nil {
		ms := *req.DebounceWindowMs
		if ms < 0 {
			ms = 0
		}
		opts = append(opts, session.WithDebounceWindowMs(ms))
	}

	s, err := h.engine.Start(r.Context(), roundID, req.CourseID, req.UserID, opts...)
	if err != nil {
		switch {
		case errors.Is(err, track.ErrSessionAlreadyActive):
			rw.Conflict(ErrCodeSessionActive, "round already has an active session")
		default:
			logging.Error().Err(err).Int64("round_id", roundID).Msg("session start failed")
			rw.Error(http.StatusBadGateway, ErrCodeCourseUnavailable, "course geometry unavailable")
		}
		return
	}

	// Mirror the session's event stream onto the hub so socket watchers see
	// the same ordered stream as in-process subscribers.
	sessionID := s.ID
	if _, err := s.Subscribe(nil, func(ev track.Event) {
		h.hub.BroadcastEvent(sessionID, ev)
	}); err != nil {
		logging.Warn().Err(err).Str("session_id", sessionID).Msg("hub bridge subscription failed")
	}

	rw.Created(sessionSnapshot(s))
}

// StopSession handles DELETE /api/v1/rounds/{roundID}/session.
func (h *Handler) StopSession(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w)

	roundID, ok := parseRoundID(rw, r)
	if !ok {
		return
	}

	s := h.engine.SessionForRound(roundID)
	if s == nil {
		rw.NotFound("no active session for round")
		return
	}

	_ = s.Stop()
	h.limiter.forget(s.ID)
	h.hub.BroadcastSessionEnded(s.ID)
	rw.NoContent()
}

// PauseSession handles POST /api/v1/rounds/{roundID}/session/pause.
func (h *Handler) PauseSession(w http.ResponseWriter, r *http.Request) {
	h.lifecycle(w, r, func(s *session.Session) error { return s.Pause() })
}

// ResumeSession handles POST /api/v1/rounds/{roundID}/session/resume.
func (h *Handler) ResumeSession(w http.ResponseWriter, r *http.Request) {
	h.lifecycle(w, r, func(s *session.Session) error { return s.Resume() })
}

func (h *Handler) lifecycle(w http.ResponseWriter, r *http.Request, op func(*session.Session) error) {
	rw := NewResponseWriter(w)

	roundID, ok := parseRoundID(rw, r)
	if !ok {
		return
	}

	s := h.engine.SessionForRound(roundID)
	if s == nil {
		rw.NotFound("no active session for round")
		return
	}

	if err := op(s); err != nil {
		if errors.Is(err, track.ErrSessionClosed) {
			rw.Gone(ErrCodeSessionClosed, "session has ended")
			return
		}
		rw.InternalError("lifecycle operation failed")
		return
	}

	rw.Success(sessionSnapshot(s))
}

// IngestFix handles POST /api/v1/sessions/{sessionID}/fixes.
func (h *Handler) IngestFix(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w)

	sessionID := chi.URLParam(r, "sessionID")
	s := h.engine.Session(sessionID)
	if s == nil {
		rw.NotFound("session not found")
		return
	}

	if !h.limiter.allow(sessionID) {
		rw.TooManyRequests("fix rate limit exceeded for session")
		return
	}

	var req IngestFixRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rw.BadRequest("invalid request body")
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		apiErr := verr.ToAPIError()
		rw.ValidationError(apiErr.Message, apiErr.Details)
		return
	}

	if err := s.Ingest(req.Fix()); err != nil {
		switch {
		case errors.Is(err, track.ErrInvalidCoordinate):
			rw.Error(http.StatusBadRequest, ErrCodeInvalidCoordinate, err.Error())
		case errors.Is(err, track.ErrSessionClosed):
			rw.Gone(ErrCodeSessionClosed, "session has ended")
		default:
			rw.InternalError("fix ingestion failed")
		}
		return
	}

	rw.Success(map[string]string{"status": "accepted"})
}

// GetSession handles GET /api/v1/sessions/{sessionID}.
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w)

	s := h.engine.Session(chi.URLParam(r, "sessionID"))
	if s == nil {
		rw.NotFound("session not found")
		return
	}

	rw.Success(sessionSnapshot(s))
}

// GetShots handles GET /api/v1/sessions/{sessionID}/shots.
func (h *Handler) GetShots(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w)

	s := h.engine.Session(chi.URLParam(r, "sessionID"))
	if s == nil {
		rw.NotFound("session not found")
		return
	}

	shots := s.Shots()
	rw.Success(map[string]interface{}{
		"session_id": s.ID,
		"count":      len(shots),
		"shots":      shots,
	})
}

// GetHistory handles GET /api/v1/sessions/{sessionID}/history.
func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w)

	s := h.engine.Session(chi.URLParam(r, "sessionID"))
	if s == nil {
		rw.NotFound("session not found")
		return
	}

	history := s.History()
	rw.Success(map[string]interface{}{
		"session_id": s.ID,
		"count":      len(history),
		"fixes":      history,
	})
}

// Health handles GET /health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w).Success(map[string]interface{}{
		"status":            "ok",
		"active_sessions":   h.engine.Count(),
		"websocket_clients": h.hub.GetClientCount(),
		"timestamp":         time.Now().UTC().Format(time.RFC3339),
	})
}

// WebSocket handles GET /api/v1/ws?session_id=... by upgrading the
// connection and attaching the client to the hub.
func (h *Handler) WebSocket(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		NewResponseWriter(w).BadRequest("session_id query parameter is required")
		return
	}
	if h.engine.Session(sessionID) == nil {
		NewResponseWriter(w).NotFound("session not found")
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Error().Err(err).Msg("websocket upgrade failed")
		return
	}

	client := websocket.NewClient(h.hub, conn, sessionID)
	h.hub.Register <- client
	client.Start()
}

func parseRoundID(rw *ResponseWriter, r *http.Request) (int64, bool) {
	roundID, err := strconv.ParseInt(chi.URLParam(r, "roundID"), 10, 64)
	if err != nil || roundID <= 0 {
		rw.BadRequest("roundID must be a positive integer")
		return 0, false
	}
	return roundID, true
}

func sessionSnapshot(s *session.Session) SessionResponse {
	resp := SessionResponse{
		SessionID: s.ID,
		RoundID:   s.RoundID,
		CourseID:  s.CourseID,
		UserID:    s.UserID,
		Status:    string(s.Status()),
		StartedAt: s.StartedAt().UTC().Format(time.RFC3339),
		ShotCount: len(s.Shots()),
	}
	if ended := s.EndedAt(); !ended.IsZero() {
		resp.EndedAt = ended.UTC().Format(time.RFC3339)
	}
	if ctx, ok := s.Context(); ok {
		resp.Context = &ctx
	}
	return resp
}
