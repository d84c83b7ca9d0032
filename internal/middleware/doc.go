// Waypoint - Delivery Network Simulation and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

/*
Package middleware provides the HTTP middleware shared by the API router.

Components:

  - RequestID: accepts or generates X-Request-ID and seeds the logging context
  - PrometheusMetrics: request count and latency labeled by chi route pattern
  - Compression: gzip for clients that accept it, skipping WebSocket upgrades
  - PerformanceMonitor: sliding-window latency percentiles per route

All middleware has the chi signature func(http.Handler) http.Handler:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.PrometheusMetrics)
	r.Use(perf.Middleware)
	r.Use(middleware.Compression)

Wrapped response writers pass Hijack through, so the WebSocket endpoint can
sit behind the same stack.
*/
package middleware
