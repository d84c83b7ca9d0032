// Waypoint - Delivery Network Simulation and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package api

import "errors"

// Common API errors
var (
	// ErrPointNotFound means no point of the current snapshot has the ID.
	ErrPointNotFound = errors.New("delivery point not found")

	// ErrRegionNotFound means the boundary dataset has no such region.
	ErrRegionNotFound = errors.New("region not found")

	// ErrZoomOutOfRange rejects zoom levels outside 0..mapview.MaxZoom.
	ErrZoomOutOfRange = errors.New("zoom must be between 0 and 22")
)
