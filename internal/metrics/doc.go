// Waypoint - Delivery Network Simulation and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

// Package metrics defines the Prometheus collectors exported on /metrics.
//
// Collectors are registered with promauto at package init and are safe
// for concurrent use. Components either update collectors directly or go
// through the Record* helpers when several collectors change together.
package metrics
