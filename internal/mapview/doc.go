// Waypoint - Delivery Network Simulation and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

// Package mapview is the read side of the delivery map: filtering,
// clustering, point lookup and interaction events.
//
// Only normal points are clustered. Warning and alert points are always
// returned as individual markers so they stay visible at every zoom.
// Clustering uses a fixed grid whose cell size halves with each zoom level.
//
// Selection and zoom events are delivered synchronously to every Listener
// registered on the view's Events dispatcher.
package mapview
