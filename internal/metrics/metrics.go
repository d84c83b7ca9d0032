// Waypoint - Delivery Network Simulation and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Boundary data
	BoundaryLoads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "waypoint_boundary_loads_total",
			Help: "Boundary dataset load attempts by outcome",
		},
		[]string{"source", "outcome"}, // outcome: success, error
	)

	BoundaryRegions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "waypoint_boundary_regions",
			Help: "Number of regions in the loaded boundary dataset",
		},
	)

	// Generation pipeline
	GenerationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "waypoint_generation_duration_seconds",
			Help:    "Duration of a full point generation run",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
	)

	GenerationRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "waypoint_generation_runs_total",
			Help: "Generation runs by outcome",
		},
		[]string{"outcome"}, // success, data_unavailable, canceled, error
	)

	SnapshotPoints = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "waypoint_snapshot_points",
			Help: "Points in the current snapshot by status",
		},
		[]string{"status"},
	)

	SnapshotResolutions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "waypoint_snapshot_resolutions_total",
			Help: "Snapshots resolved by provenance",
		},
		[]string{"source"}, // cache, generated
	)

	// Sampling
	SamplingAttempts = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "waypoint_sampling_attempts",
			Help:    "Rejection sampling attempts needed per accepted point",
			Buckets: []float64{1, 2, 4, 8, 16, 64, 256, 1024, 10000},
		},
	)

	SamplingExhausted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "waypoint_sampling_exhausted_total",
			Help: "Points skipped because rejection sampling hit its attempt cap",
		},
		[]string{"region"},
	)

	// Point cache
	PointCacheOps = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "waypoint_point_cache_operations_total",
			Help: "Point cache operations by kind and outcome",
		},
		[]string{"operation", "outcome"}, // operation: load, save, invalidate
	)

	PointCacheDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "waypoint_point_cache_dropped_entries_total",
			Help: "Cached entries dropped because they failed validation or match no known region",
		},
	)

	// Map view
	ViewCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "waypoint_view_cache_hits_total",
			Help: "Cluster view cache hits",
		},
	)

	ViewCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "waypoint_view_cache_misses_total",
			Help: "Cluster view cache misses",
		},
	)

	MapEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "waypoint_map_events_total",
			Help: "Map interaction events dispatched to listeners",
		},
		[]string{"type"}, // select, zoom
	)

	// API
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "waypoint_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "waypoint_api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// WebSocket
	WSConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "waypoint_websocket_connections",
			Help: "Current number of WebSocket clients",
		},
	)

	WSMessagesDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "waypoint_websocket_messages_dropped_total",
			Help: "WebSocket messages dropped by reason",
		},
		[]string{"reason"}, // broadcast_full, client_full, rate_limited
	)

	// Circuit breaker
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "waypoint_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "waypoint_circuit_breaker_requests_total",
			Help: "Requests through the circuit breaker by result",
		},
		[]string{"name", "result"}, // success, failure, rejected
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "waypoint_circuit_breaker_transitions_total",
			Help: "Circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)
)

// RecordAPIRequest records an API request metric.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordGeneration records the outcome of one generation run.
func RecordGeneration(outcome string, duration time.Duration) {
	GenerationRuns.WithLabelValues(outcome).Inc()
	GenerationDuration.Observe(duration.Seconds())
}

// RecordSnapshot publishes per-status counts for a newly swapped snapshot.
func RecordSnapshot(source string, byStatus map[string]int) {
	SnapshotResolutions.WithLabelValues(source).Inc()
	SnapshotPoints.Reset()
	for status, n := range byStatus {
		SnapshotPoints.WithLabelValues(status).Set(float64(n))
	}
}

// RecordPointCache records a point cache operation.
func RecordPointCache(operation, outcome string) {
	PointCacheOps.WithLabelValues(operation, outcome).Inc()
}
