// Waypoint - Delivery Network Simulation and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

// Package config loads Waypoint configuration with Koanf v2.
//
// Sources are layered with increasing precedence: struct defaults, an
// optional YAML file, then environment variables. A .env file (or the file
// named by DOTENV_PATH) is read into the environment first via godotenv,
// so it behaves exactly like exported variables.
//
// # Example config.yaml
//
//	boundaries:
//	  url: https://example.org/algeria-wilayas.geojson
//	  fetch_timeout: 10s
//	generation:
//	  total_budget: 300
//	  min_per_region: 3
//	  concurrency: 4
//	store:
//	  backend: redis
//	  redis_addr: redis:6379
//
// # Environment
//
// Only variables listed in the mapping table are read, e.g. HTTP_PORT,
// BOUNDARIES_URL, GENERATION_SEED, STORE_BACKEND, REDIS_ADDR, LOG_LEVEL.
package config
