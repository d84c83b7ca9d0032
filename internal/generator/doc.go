// Waypoint - Delivery Network Simulation and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

// Package generator runs the delivery-point pipeline and owns the current
// snapshot.
//
// A run loads region boundaries, allocates the point budget by population,
// samples every region (optionally in parallel) and publishes the result as
// an immutable models.Snapshot. Service.Resolve prefers the persisted point
// cache and only generates on a miss; Regenerate always generates. A run
// whose context is canceled publishes nothing and writes nothing.
package generator
