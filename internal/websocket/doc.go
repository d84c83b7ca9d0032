// Waypoint - Delivery Network Simulation and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

// Package websocket streams map events to connected browsers.
//
// The Hub fans out three kinds of server messages: snapshot changes
// ("snapshot", "snapshot_cleared") and map interactions ("select", "zoom").
// Clients may send "select" and "zoom" frames back; these are throttled per
// connection with a token bucket and handed to the Inbound handler, which
// raises the same events through the map view so every client sees them.
//
// Message format:
//
//	{"type": "select", "data": {"point_id": "36.7538,3.0588"}}
//	{"type": "zoom",   "data": {"zoom": 7}}
//	{"type": "ping"}
//
// Delivery is best effort. A client whose send buffer fills is
// disconnected rather than allowed to stall the hub.
package websocket
