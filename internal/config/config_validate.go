// Waypoint - Delivery Network Simulation and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateBoundaries(); err != nil {
		return err
	}
	if err := c.validateGeneration(); err != nil {
		return err
	}
	if err := c.validateStore(); err != nil {
		return err
	}
	if err := c.validateMapView(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	return nil
}

func (c *Config) validateBoundaries() error {
	b := c.Boundaries
	if b.URL == "" && b.Path == "" {
		return fmt.Errorf("one of BOUNDARIES_PATH or BOUNDARIES_URL is required")
	}
	if b.URL != "" {
		u, err := url.Parse(b.URL)
		if err != nil {
			return fmt.Errorf("BOUNDARIES_URL is invalid: %w", err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("BOUNDARIES_URL must use http or https, got %q", u.Scheme)
		}
		if u.Host == "" {
			return fmt.Errorf("BOUNDARIES_URL must include a host")
		}
	}
	if b.FetchTimeout <= 0 {
		return fmt.Errorf("BOUNDARIES_FETCH_TIMEOUT must be positive")
	}
	if b.BreakerMaxFailures == 0 {
		return fmt.Errorf("BOUNDARIES_BREAKER_MAX_FAILURES must be at least 1")
	}
	return nil
}

func (c *Config) validateGeneration() error {
	g := c.Generation
	if g.TotalBudget < 1 {
		return fmt.Errorf("GENERATION_TOTAL_BUDGET must be positive, got %d", g.TotalBudget)
	}
	if g.MinPerRegion < 0 {
		return fmt.Errorf("GENERATION_MIN_PER_REGION must not be negative, got %d", g.MinPerRegion)
	}
	if g.MaxAttempts < 1 {
		return fmt.Errorf("GENERATION_MAX_ATTEMPTS must be positive, got %d", g.MaxAttempts)
	}
	if g.Concurrency < 1 {
		return fmt.Errorf("GENERATION_CONCURRENCY must be at least 1, got %d", g.Concurrency)
	}
	if g.DefaultPopulation < 1 {
		return fmt.Errorf("GENERATION_DEFAULT_POPULATION must be positive, got %d", g.DefaultPopulation)
	}
	return nil
}

func (c *Config) validateStore() error {
	s := c.Store
	switch strings.ToLower(s.Backend) {
	case "memory":
	case "file", "badger":
		if s.Path == "" {
			return fmt.Errorf("STORE_PATH is required for the %s backend", s.Backend)
		}
	case "redis":
		if s.RedisAddr == "" {
			return fmt.Errorf("REDIS_ADDR is required for the redis backend")
		}
	default:
		return fmt.Errorf("STORE_BACKEND must be one of memory, file, badger, redis; got %q", s.Backend)
	}
	if s.Key == "" {
		return fmt.Errorf("STORE_KEY must not be empty")
	}
	return nil
}

func (c *Config) validateMapView() error {
	if c.MapView.ClusterBaseKm <= 0 {
		return fmt.Errorf("MAPVIEW_CLUSTER_BASE_KM must be positive")
	}
	if c.MapView.ViewCacheSize < 1 {
		return fmt.Errorf("MAPVIEW_VIEW_CACHE_SIZE must be at least 1")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "warning", "error", "disabled", "off":
	default:
		return fmt.Errorf("LOG_LEVEL %q is not a known level", c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "json", "console":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
	return nil
}
