// Waypoint - Delivery Network Simulation and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package mapview

import (
	"strings"

	"github.com/paulmach/orb"

	"github.com/tomtom215/waypoint/internal/classify"
	"github.com/tomtom215/waypoint/internal/models"
)

// Filter selects the visible subset of a snapshot. Zero fields match
// everything.
type Filter struct {
	// BBox restricts to a viewport. Edges are inclusive.
	BBox *orb.Bound

	// Query is matched case-insensitively against the derived point ID and
	// the region name.
	Query string

	// Region keeps a single region. Matching ignores case and diacritics.
	Region string

	Status models.Status
}

// Marker is a point as shown on the map.
type Marker struct {
	ID string `json:"id"`
	models.DeliveryPoint
}

func newMarker(p models.DeliveryPoint) Marker {
	return Marker{ID: p.ID(), DeliveryPoint: p}
}

// Match reports whether p passes the filter.
func (f Filter) Match(p models.DeliveryPoint) bool {
	if f.Status != "" && p.Status != f.Status {
		return false
	}
	if f.BBox != nil && !f.BBox.Contains(p.Position.Point()) {
		return false
	}
	if f.Region != "" && classify.NameKey(p.Region) != classify.NameKey(f.Region) {
		return false
	}
	if q := strings.TrimSpace(f.Query); q != "" {
		q = strings.ToLower(q)
		if !strings.Contains(p.ID(), q) && !strings.Contains(strings.ToLower(p.Region), q) {
			return false
		}
	}
	return true
}

// Apply returns the markers passing the filter, in snapshot order.
func (f Filter) Apply(points []models.DeliveryPoint) []Marker {
	out := make([]Marker, 0, len(points))
	for _, p := range points {
		if f.Match(p) {
			out = append(out, newMarker(p))
		}
	}
	return out
}

// key identifies the filter in the view cache.
func (f Filter) key() string {
	var b strings.Builder
	if f.BBox != nil {
		b.WriteString(boundKey(*f.BBox))
	}
	b.WriteByte('|')
	b.WriteString(strings.ToLower(strings.TrimSpace(f.Query)))
	b.WriteByte('|')
	b.WriteString(classify.NameKey(f.Region))
	b.WriteByte('|')
	b.WriteString(string(f.Status))
	return b.String()
}
