// Waypoint - Delivery Network Simulation and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/tomtom215/waypoint/internal/config"
	"github.com/tomtom215/waypoint/internal/generator"
	"github.com/tomtom215/waypoint/internal/logging"
	"github.com/tomtom215/waypoint/internal/mapview"
	"github.com/tomtom215/waypoint/internal/middleware"
	"github.com/tomtom215/waypoint/internal/models"
	ws "github.com/tomtom215/waypoint/internal/websocket"
)

// Handler contains dependencies for API handlers
//
// Handler methods are split across multiple files:
//   - handlers.go: Handler struct, constructor, snapshot wiring (this file)
//   - handlers_helpers.go: response and parameter helpers
//   - handlers_health.go: liveness and readiness probes
//   - handlers_deliveries.go: points, clusters, selection, zoom and cache
//   - handlers_regions.go: allocation plan, boundaries and statistics
//   - handlers_websocket.go: event stream upgrade and inbound events
type Handler struct {
	gen       *generator.Service
	view      *mapview.View
	wsHub     *ws.Hub
	config    *config.Config
	startTime time.Time
	perfMon   *middleware.PerformanceMonitor
}

var _ ws.Inbound = (*Handler)(nil)

// NewHandler creates a new API handler.
//
// wsHub may be nil, in which case /ws answers 503 and snapshot changes are
// not broadcast. Call OnSnapshot from the generator's listener list so the
// view cache and connected maps follow snapshot changes:
//
//	handler := api.NewHandler(gen, view, hub, cfg)
//	gen.OnSnapshot(handler.OnSnapshot)
//	view.Events().Subscribe(hub)
//	hub.SetInbound(handler)
func NewHandler(gen *generator.Service, view *mapview.View, wsHub *ws.Hub, cfg *config.Config) *Handler {
	return &Handler{
		gen:       gen,
		view:      view,
		wsHub:     wsHub,
		config:    cfg,
		startTime: time.Now(),
		perfMon:   middleware.NewPerformanceMonitor(1000), // Keep last 1000 requests
	}
}

// OnSnapshot runs after every snapshot change. It drops cached cluster
// views and tells connected maps to refetch. snap is nil after
// invalidation.
func (h *Handler) OnSnapshot(snap *models.Snapshot) {
	h.view.Reset()

	if h.wsHub != nil {
		h.wsHub.BroadcastSnapshot(snap)
	}

	if snap == nil {
		logging.Info().Msg("Snapshot cleared, view cache reset")
		return
	}
	logging.Info().
		Str("run_id", snap.RunID).
		Str("source", string(snap.Source)).
		Int("points", len(snap.Points)).
		Msg("Snapshot published, view cache reset")
}

// snapshot returns the current snapshot, resolving it on first use.
func (h *Handler) snapshot(ctx context.Context) (*models.Snapshot, error) {
	if snap, ok := h.gen.Snapshot(); ok {
		return snap, nil
	}
	return h.gen.Resolve(ctx)
}

// getUpgrader creates a WebSocket upgrader with origin checking and a
// handshake timeout.
func (h *Handler) getUpgrader() websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:   1024,
		WriteBufferSize:  1024,
		CheckOrigin:      h.checkWebSocketOrigin,
		HandshakeTimeout: 10 * time.Second,
	}
}

// checkWebSocketOrigin validates WebSocket connection origins
func (h *Handler) checkWebSocketOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")

	// Browsers always send Origin; an empty one would bypass CORS.
	if origin == "" {
		logging.Warn().Msg("WebSocket connection rejected: missing Origin header")
		return false
	}

	if h.config == nil {
		return true
	}

	for _, allowedOrigin := range h.config.Security.CORSOrigins {
		if allowedOrigin == "*" || allowedOrigin == origin {
			return true
		}
	}

	logging.Warn().Str("origin", sanitizeLogValue(origin)).Msg("WebSocket connection rejected from unauthorized origin")
	return false
}
