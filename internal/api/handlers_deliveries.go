// Waypoint - Delivery Network Simulation and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/waypoint/internal/logging"
	"github.com/tomtom215/waypoint/internal/mapview"
	"github.com/tomtom215/waypoint/internal/models"
)

// DeliveriesResponse is the data of GET /deliveries.
type DeliveriesResponse struct {
	RunID  string           `json:"run_id"`
	Total  int              `json:"total"`
	Points []mapview.Marker `json:"points"`
}

// parseDeliveriesRequest reads and validates the shared filter parameters.
func parseDeliveriesRequest(r *http.Request) (DeliveriesRequest, *models.APIError) {
	q := r.URL.Query()
	req := DeliveriesRequest{
		BBox:   q.Get("bbox"),
		Q:      q.Get("q"),
		Region: q.Get("region"),
		Status: q.Get("status"),
	}
	return req, validateRequest(&req)
}

func (req DeliveriesRequest) filter() mapview.Filter {
	return mapview.Filter{
		BBox:   boundFromBBox(req.BBox),
		Query:  req.Q,
		Region: req.Region,
		Status: models.Status(req.Status),
	}
}

// Deliveries returns the filtered points of the current snapshot with their
// derived IDs.
func (h *Handler) Deliveries(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req, apiErr := parseDeliveriesRequest(r)
	if apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}

	snap, err := h.snapshot(r.Context())
	if err != nil {
		respondDomainError(w, err)
		return
	}

	markers := h.view.Markers(snap, req.filter())
	respondSuccess(w, start, DeliveriesResponse{
		RunID:  snap.RunID,
		Total:  len(snap.Points),
		Points: markers,
	}, models.Metadata{Source: snap.Source})
}

// DeliveryClusters returns clusters of normal points plus every priority
// point individually, for the given zoom.
func (h *Handler) DeliveryClusters(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	base, apiErr := parseDeliveriesRequest(r)
	if apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}
	zoom, ok := getIntParam(r, "zoom", 5)
	if !ok {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "zoom must be an integer", nil)
		return
	}
	req := ClustersRequest{DeliveriesRequest: base, Zoom: zoom}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}

	snap, err := h.snapshot(r.Context())
	if err != nil {
		respondDomainError(w, err)
		return
	}

	cv, cached := h.view.Clusters(snap, req.filter(), req.Zoom)
	respondSuccess(w, start, cv, models.Metadata{
		Source: snap.Source,
		Cached: cached,
	})
}

// Delivery looks a single point up by its derived ID.
func (h *Handler) Delivery(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id := chi.URLParam(r, "id")
	snap, err := h.snapshot(r.Context())
	if err != nil {
		respondDomainError(w, err)
		return
	}

	p, ok := h.view.Find(snap, id)
	if !ok {
		respondDomainError(w, ErrPointNotFound)
		return
	}
	respondSuccess(w, start, mapview.Marker{ID: p.ID(), DeliveryPoint: p}, models.Metadata{Source: snap.Source})
}

// SelectDelivery fires the selection callback for a point.
func (h *Handler) SelectDelivery(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req SelectRequest
	if err := decodeBody(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", nil)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}

	ev, err := h.selectPoint(r.Context(), req.PointID)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondSuccess(w, start, ev, models.Metadata{})
}

// MapZoom fires the zoom callback.
func (h *Handler) MapZoom(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req ZoomRequest
	if err := decodeBody(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", nil)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}

	ev, err := h.zoom(*req.Zoom)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondSuccess(w, start, ev, models.Metadata{})
}

// Regenerate builds and persists a fresh snapshot, replacing the current one.
func (h *Handler) Regenerate(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	snap, err := h.gen.Regenerate(r.Context())
	if err != nil {
		respondDomainError(w, err)
		return
	}

	logging.Ctx(r.Context()).Info().
		Str("run_id", snap.RunID).
		Int("points", len(snap.Points)).
		Msg("Regeneration requested via API")

	respondSuccess(w, start, map[string]interface{}{
		"run_id":       snap.RunID,
		"generated_at": snap.GeneratedAt,
		"points":       len(snap.Points),
		"skipped":      snap.Skipped,
	}, models.Metadata{Source: snap.Source})
}

// InvalidateCache backs up and clears the persisted points. The next read
// regenerates.
func (h *Handler) InvalidateCache(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	backup, err := h.gen.Invalidate(r.Context())
	if err != nil {
		respondDomainError(w, err)
		return
	}

	logging.Ctx(r.Context()).Info().Str("backup_key", backup).Msg("Point cache invalidated via API")
	respondSuccess(w, start, map[string]interface{}{
		"invalidated": true,
		"backup_key":  backup,
	}, models.Metadata{})
}

// CacheBackups lists the backup keys, oldest first.
func (h *Handler) CacheBackups(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	pc := h.gen.Cache()
	if pc == nil {
		respondSuccess(w, start, []string{}, models.Metadata{})
		return
	}

	keys, err := pc.Backups(r.Context())
	if err != nil {
		respondDomainError(w, fmt.Errorf("list backups: %w", err))
		return
	}
	if keys == nil {
		keys = []string{}
	}
	respondSuccess(w, start, keys, models.Metadata{})
}

// selectPoint resolves id against the current snapshot and dispatches the
// selection event.
func (h *Handler) selectPoint(ctx context.Context, id string) (mapview.SelectEvent, error) {
	snap, err := h.snapshot(ctx)
	if err != nil {
		return mapview.SelectEvent{}, err
	}
	p, ok := h.view.Find(snap, id)
	if !ok {
		return mapview.SelectEvent{}, fmt.Errorf("%w: %s", ErrPointNotFound, id)
	}
	return h.view.Events().Select(p), nil
}

func (h *Handler) zoom(z int) (mapview.ZoomEvent, error) {
	if z < 0 || z > mapview.MaxZoom {
		return mapview.ZoomEvent{}, ErrZoomOutOfRange
	}
	return h.view.Events().Zoom(z), nil
}
