// Waypoint - Delivery Network Simulation and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package config

import "time"

// Config is the full application configuration.
type Config struct {
	Server     ServerConfig     `koanf:"server"`
	Boundaries BoundariesConfig `koanf:"boundaries"`
	Generation GenerationConfig `koanf:"generation"`
	Store      StoreConfig      `koanf:"store"`
	MapView    MapViewConfig    `koanf:"mapview"`
	Security   SecurityConfig   `koanf:"security"`
	WebSocket  WebSocketConfig  `koanf:"websocket"`
	Logging    LoggingConfig    `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// BoundariesConfig selects where the region boundary dataset comes from.
// Exactly one of Path or URL should be set; URL wins when both are.
type BoundariesConfig struct {
	// Path is a local GeoJSON FeatureCollection.
	Path string `koanf:"path"`

	// URL is fetched over HTTP(S) with FetchTimeout applied per attempt.
	URL string `koanf:"url"`

	FetchTimeout time.Duration `koanf:"fetch_timeout"`

	// BreakerMaxFailures is the number of consecutive fetch failures
	// that opens the circuit breaker.
	BreakerMaxFailures uint32 `koanf:"breaker_max_failures"`

	// BreakerTimeout is how long the breaker stays open before a probe.
	BreakerTimeout time.Duration `koanf:"breaker_timeout"`
}

// GenerationConfig controls the allocation and sampling pipeline.
type GenerationConfig struct {
	TotalBudget  int `koanf:"total_budget"`
	MinPerRegion int `koanf:"min_per_region"`

	// MaxAttempts caps rejection sampling per point.
	MaxAttempts int `koanf:"max_attempts"`

	// Concurrency is the number of regions sampled at once. 1 is sequential.
	Concurrency int `koanf:"concurrency"`

	// Seed fixes the random source; 0 seeds from the clock.
	Seed uint64 `koanf:"seed"`

	// DefaultPopulation is used for regions found in neither the dataset
	// properties nor the built-in census table.
	DefaultPopulation int `koanf:"default_population"`

	// WarmupRetry is the delay between warmup attempts while boundary data
	// is unavailable.
	WarmupRetry time.Duration `koanf:"warmup_retry"`
}

// StoreConfig selects the key-value backend for the point cache.
type StoreConfig struct {
	// Backend is one of memory, file, badger, redis.
	Backend string `koanf:"backend"`

	// Path is the directory for the file and badger backends.
	Path string `koanf:"path"`

	// Namespace prefixes every key written by Waypoint.
	Namespace string `koanf:"namespace"`

	// Key is the primary point-cache key within the namespace.
	Key string `koanf:"key"`

	RedisAddr     string `koanf:"redis_addr"`
	RedisPassword string `koanf:"redis_password"`
	RedisDB       int    `koanf:"redis_db"`
}

// MapViewConfig tunes the clustering view.
type MapViewConfig struct {
	// ClusterBaseKm is the grid cell size at zoom 0. Each zoom level halves it.
	ClusterBaseKm float64 `koanf:"cluster_base_km"`

	// ViewCacheSize bounds the number of cached cluster views.
	ViewCacheSize int `koanf:"view_cache_size"`
}

// SecurityConfig holds HTTP hardening settings.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// WebSocketConfig bounds inbound map events per client.
type WebSocketConfig struct {
	EventsPerSecond float64 `koanf:"events_per_second"`
	Burst           int     `koanf:"burst"`
}

// LoggingConfig mirrors logging.Config.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	Level string `koanf:"level"`

	// Format is json or console.
	Format string `koanf:"format"`

	// Caller adds file:line to each entry.
	Caller bool `koanf:"caller"`
}

// Addr returns host:port for http.Server.
func (s ServerConfig) Addr() string {
	return joinHostPort(s.Host, s.Port)
}
