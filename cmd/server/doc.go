// Waypoint - Delivery Network Simulation and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

/*
Package main is the entry point for the Waypoint server application.

Waypoint simulates a national delivery network over the 58 wilayas of
Algeria. It loads the region boundaries, splits a fixed budget of delivery
points across regions in proportion to population, samples each point
inside its region, and serves the result to a web map over REST and
WebSocket.

# Application Architecture

The server runs under a Suture v4 supervisor tree:

	RootSupervisor ("waypoint")
	├── DataSupervisor ("data-layer")
	│   └── Snapshot warmup (loads boundaries, resolves cached or fresh points)
	├── MessagingSupervisor ("messaging-layer")
	│   └── WebSocket Hub (map selection and zoom events)
	└── APISupervisor ("api-layer")
	    └── HTTP Server (Chi router, /api/v1 and /metrics)

Component initialization order:

 1. Configuration: Koanf v2 with .env, YAML file, and environment variables
 2. Logging: zerolog with JSON/console output modes
 3. Boundary loader: local GeoJSON file or HTTP source behind a circuit breaker
 4. Point store: memory, file, BadgerDB, or Redis key-value backend
 5. Generator: allocation, sampling, classification, and cache validation
 6. Map view: filters, grid clustering, and the LRU view cache
 7. WebSocket Hub: snapshot broadcasts and inbound map events
 8. Supervisor Tree: Suture v4 process supervision
 9. HTTP Server: Chi router with middleware stack

# Configuration

Configuration is loaded via Koanf v2 with layered sources (highest priority wins):

	Priority: Environment variables > Config file > Defaults

Core environment variables:

	# Server
	HTTP_PORT=3860
	LOG_LEVEL=info               # trace, debug, info, warn, error
	LOG_FORMAT=json              # json or console

	# Boundaries (URL wins over PATH)
	BOUNDARIES_PATH=data/algeria-wilayas.geojson
	BOUNDARIES_URL=https://example.org/wilayas.geojson

	# Generation
	GENERATION_TOTAL_BUDGET=300
	GENERATION_MIN_PER_REGION=3
	GENERATION_SEED=0            # 0 seeds from the clock

	# Point store
	STORE_BACKEND=badger         # memory, file, badger, redis
	STORE_PATH=/data/waypoint
	REDIS_ADDR=127.0.0.1:6379

# Signal Handling

The server handles graceful shutdown on SIGINT and SIGTERM:

 1. Stops accepting new HTTP connections
 2. Waits for in-flight requests (HTTP_SHUTDOWN_TIMEOUT)
 3. Stops the WebSocket hub and closes client connections
 4. Closes the point store
 5. Reports any services that failed to stop

# Usage Examples

Development with an in-memory store and a fixed seed:

	export STORE_BACKEND=memory GENERATION_SEED=42 LOG_FORMAT=console
	go run ./cmd/server

Docker with Redis:

	docker run -d \
	  -e STORE_BACKEND=redis \
	  -e REDIS_ADDR=redis:6379 \
	  -p 3860:3860 \
	  ghcr.io/tomtom215/waypoint

# See Also

  - internal/config: Configuration management
  - internal/generator: Snapshot generation and caching
  - internal/supervisor: Process supervision
  - internal/api: HTTP handlers and routing
*/
package main
