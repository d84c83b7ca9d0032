// Waypoint - Delivery Network Simulation and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

// Package sampler places delivery points inside region boundaries.
//
// Each point is drawn uniformly from the region's bounding box and kept only
// if it falls inside one of the region's polygons (holes excluded). The
// number of candidates per point is capped; a point that exhausts the cap
// is skipped and reported instead of stalling the batch. Every accepted
// point is contained in its region by construction.
package sampler
