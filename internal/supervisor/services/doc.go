// Waypoint - Delivery Network Simulation and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

/*
Package services provides suture.Service wrappers for Waypoint components.

Each wrapper translates a component's lifecycle into suture's context-aware
Serve pattern and names itself via fmt.Stringer for supervisor logs.

HTTP Server (HTTPServerService):
  - Wraps *http.Server; ListenAndServe runs until the context is canceled
  - Shutdown drains connections within the configured timeout

WebSocket Hub (WebSocketHubService):
  - Delegates to websocket.Hub.RunWithContext
  - The hub closes every client on shutdown

Snapshot Warmup (WarmupService):
  - Resolves the first delivery snapshot so the readiness probe turns green
    without waiting for a client request
  - Retries with exponential backoff while boundary data is unavailable
  - Returns suture.ErrDoNotRestart once a snapshot exists

The interfaces HTTPServer, ContextHub and SnapshotResolver keep this package
free of imports from the wrapped packages.
*/
package services
