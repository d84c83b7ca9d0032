// Waypoint - Delivery Network Simulation and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

// Package boundary loads the region boundary dataset.
//
// The dataset is a GeoJSON FeatureCollection of Polygon and MultiPolygon
// features named by properties.name (or NAME_1, shapeName, nom). It comes
// from a Source: a local file, an HTTP URL guarded by a circuit breaker, or
// bytes in memory. Parsing is all-or-nothing; any failure is reported as
// ErrDataUnavailable.
//
// A Loader caches the parsed Collection for its lifetime. The process-wide
// loader is managed with Init and Reset:
//
//	loader := boundary.Init(boundary.NewSourceFromConfig(cfg.Boundaries), boundary.Options{
//	    FetchTimeout: cfg.Boundaries.FetchTimeout,
//	})
//	coll, err := loader.Load(ctx)
//
// Region populations come from a "population" feature property, then the
// built-in 2008 census table, then ParseOptions.DefaultPopulation.
package boundary
