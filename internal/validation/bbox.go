// Waypoint - Delivery Network Simulation and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package validation

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ParseBBox parses "minLon,minLat,maxLon,maxLat". A degenerate box where
// min equals max is allowed.
func ParseBBox(s string) ([4]float64, error) {
	var out [4]float64
	parts := strings.Split(s, ",")
	if len(parts) != len(out) {
		return out, fmt.Errorf("bbox needs 4 values, got %d", len(parts))
	}
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return out, fmt.Errorf("bbox value %d: %w", i, err)
		}
		out[i] = v
	}

	minLon, minLat, maxLon, maxLat := out[0], out[1], out[2], out[3]
	if minLon < -180 || maxLon > 180 || minLat < -90 || maxLat > 90 {
		return out, errors.New("bbox out of range")
	}
	if minLon > maxLon || minLat > maxLat {
		return out, errors.New("bbox min exceeds max")
	}
	return out, nil
}
