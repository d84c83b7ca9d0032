// Waypoint - Delivery Network Simulation and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package models

import (
	"fmt"
	"time"

	"github.com/paulmach/orb"
)

// Status is the operational state of a delivery point.
type Status string

const (
	StatusNormal  Status = "normal"
	StatusWarning Status = "warning"
	StatusAlert   Status = "alert"
)

// Statuses lists every status in display order.
var Statuses = []Status{StatusNormal, StatusWarning, StatusAlert}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusNormal, StatusWarning, StatusAlert:
		return true
	}
	return false
}

// Priority reports whether points with this status must never be
// aggregated into a cluster.
func (s Status) Priority() bool {
	return s == StatusWarning || s == StatusAlert
}

// Position is a WGS84 coordinate in degrees.
type Position struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Point converts to an orb.Point, which is ordered [lon, lat].
func (p Position) Point() orb.Point {
	return orb.Point{p.Lon, p.Lat}
}

// PositionFromPoint converts an orb.Point to a Position.
func PositionFromPoint(pt orb.Point) Position {
	return Position{Lat: pt.Lat(), Lon: pt.Lon()}
}

// DeliveryPoint is one generated delivery location. Points are immutable
// once generated; a regeneration replaces the whole set.
type DeliveryPoint struct {
	Position Position `json:"position"`
	Region   string   `json:"region"`
	Status   Status   `json:"status"`
	Color    string   `json:"color"`
}

// ID returns the derived identifier used for search and selection:
// latitude and longitude rounded to 4 decimals.
func (d DeliveryPoint) ID() string {
	return PointID(d.Position)
}

// PointID formats a position as "lat,lon" with 4 decimals.
func PointID(p Position) string {
	return fmt.Sprintf("%.4f,%.4f", p.Lat, p.Lon)
}

// Source records where a snapshot came from.
type Source string

const (
	SourceCache     Source = "cache"
	SourceGenerated Source = "generated"
)

// Snapshot is an immutable, fully generated point set plus provenance.
type Snapshot struct {
	RunID       string          `json:"run_id"`
	Source      Source          `json:"source"`
	GeneratedAt time.Time       `json:"generated_at"`
	Points      []DeliveryPoint `json:"points"`
	Skipped     int             `json:"skipped"` // points lost to sampling exhaustion
}

// CountByStatus tallies the snapshot's points per status.
func (s *Snapshot) CountByStatus() map[Status]int {
	counts := make(map[Status]int, len(Statuses))
	for _, st := range Statuses {
		counts[st] = 0
	}
	for i := range s.Points {
		counts[s.Points[i].Status]++
	}
	return counts
}
