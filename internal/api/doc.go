// Waypoint - Delivery Network Simulation and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

/*
Package api serves the Waypoint HTTP API under /api/v1.

Routes are built with chi (see Router.SetupChi) behind request ID, CORS,
Prometheus and latency middleware. Read endpoints resolve the current
delivery snapshot on first use; the readiness probe only reports whether
one exists.

Endpoints:

	GET    /api/v1/health/live
	GET    /api/v1/health/ready
	GET    /api/v1/deliveries?bbox=&q=&region=&status=
	GET    /api/v1/deliveries/clusters?bbox=&zoom=&q=&region=&status=
	GET    /api/v1/deliveries/{id}
	POST   /api/v1/deliveries/select     {"point_id": "36.7538,3.0588"}
	POST   /api/v1/map/zoom              {"zoom": 7}
	POST   /api/v1/deliveries/regenerate
	DELETE /api/v1/deliveries/cache
	GET    /api/v1/deliveries/cache/backups
	GET    /api/v1/regions
	GET    /api/v1/regions/{name}
	GET    /api/v1/boundaries
	GET    /api/v1/stats
	GET    /api/v1/stats/performance
	GET    /api/v1/ws
	GET    /metrics

JSON responses use the models.APIResponse envelope. Domain errors map to
status codes in respondDomainError: unavailable boundary data is 503
DATA_UNAVAILABLE, unknown points and regions are 404, validation failures
are 400 VALIDATION_ERROR.

Handler also implements websocket.Inbound, so select and zoom events sent
by map clients take the same path as the POST endpoints.
*/
package api
