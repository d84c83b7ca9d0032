// Waypoint - Delivery Network Simulation and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/waypoint/internal/models"
)

// HealthLive handles liveness probe requests.
// Returns 200 OK if the process is alive, regardless of dependencies.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"alive":  true,
			"uptime": time.Since(h.startTime).Seconds(),
		},
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// HealthReady handles readiness probe requests.
// Returns 200 once a snapshot is published and 503 before that. It never
// triggers generation itself; the warmup service does.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.gen.Snapshot()
	if !ok {
		respondJSON(w, http.StatusServiceUnavailable, &models.APIResponse{
			Status: "error",
			Data:   map[string]interface{}{"ready": false},
			Metadata: models.Metadata{
				Timestamp: time.Now(),
			},
			Error: &models.APIError{
				Code:    "DATA_UNAVAILABLE",
				Message: "No delivery snapshot available yet",
			},
		})
		return
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"ready":        true,
			"run_id":       snap.RunID,
			"points":       len(snap.Points),
			"generated_at": snap.GeneratedAt,
		},
		Metadata: models.Metadata{
			Timestamp: time.Now(),
			Source:    snap.Source,
		},
	})
}
