// Waypoint - Delivery Network Simulation and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

// Package pointcache persists the generated point set in a kvstore.Store.
//
// Loading validates every entry and keeps the valid ones, so a partially
// damaged cache still serves. Invalidation never discards data: the current
// value is copied to "<key>:backup:<timestamp>" before the primary key is
// removed.
package pointcache
