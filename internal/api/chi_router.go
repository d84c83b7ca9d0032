// Waypoint - Delivery Network Simulation and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/waypoint/internal/middleware"
)

// Router wires handlers into a chi route tree.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a router. A nil mw uses DefaultChiMiddlewareConfig.
func NewRouter(handler *Handler, mw *ChiMiddleware) *Router {
	if mw == nil {
		mw = NewChiMiddleware(nil)
	}
	return &Router{handler: handler, chiMiddleware: mw}
}

// SetupChi configures all HTTP routes.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()
	h := router.handler

	// Applied to ALL routes in order
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS()) // must be global to answer OPTIONS preflight
	r.Use(middleware.PrometheusMetrics)
	r.Use(h.perfMon.Middleware)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "Route not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
	})

	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitHealth())
		r.Get("/live", h.HealthLive)
		r.Get("/ready", h.HealthReady)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())

		// The stream is long-lived and must not be gzipped.
		r.Get("/ws", h.WebSocket)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Compression)

			r.Get("/deliveries", h.Deliveries)
			r.Get("/deliveries/clusters", h.DeliveryClusters)
			r.Get("/deliveries/cache/backups", h.CacheBackups)
			r.Get("/deliveries/{id}", h.Delivery)
			r.Post("/deliveries/select", h.SelectDelivery)
			r.Post("/map/zoom", h.MapZoom)

			r.Get("/regions", h.Regions)
			r.Get("/regions/{name}", h.Region)
			r.Get("/boundaries", h.Boundaries)

			r.Get("/stats", h.Stats)
			r.Get("/stats/performance", h.PerformanceStats)
		})

		r.Group(func(r chi.Router) {
			r.Use(router.chiMiddleware.RateLimitMutations())
			r.Post("/deliveries/regenerate", h.Regenerate)
			r.Delete("/deliveries/cache", h.InvalidateCache)
		})
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}
