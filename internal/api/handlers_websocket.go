// Waypoint - Delivery Network Simulation and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package api

import (
	"context"
	"net/http"

	"github.com/tomtom215/waypoint/internal/logging"
	ws "github.com/tomtom215/waypoint/internal/websocket"
)

// WebSocket upgrades the connection and attaches it to the hub. Clients
// receive snapshot, select and zoom events and may send select and zoom.
func (h *Handler) WebSocket(w http.ResponseWriter, r *http.Request) {
	if h.wsHub == nil {
		logging.Warn().Msg("WebSocket connection rejected: hub not initialized")
		respondError(w, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "WebSocket service unavailable", nil)
		return
	}

	upgrader := h.getUpgrader()
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		logging.Ctx(r.Context()).Warn().Err(err).Msg("WebSocket upgrade error")
		return
	}

	client := ws.NewClient(h.wsHub, conn)
	h.wsHub.Register <- client
	client.Start()
}

// SelectPoint handles a select event sent over the WebSocket.
func (h *Handler) SelectPoint(ctx context.Context, pointID string) error {
	_, err := h.selectPoint(ctx, pointID)
	return err
}

// Zoom handles a zoom event sent over the WebSocket.
func (h *Handler) Zoom(ctx context.Context, zoom int) error {
	_, err := h.zoom(zoom)
	return err
}
