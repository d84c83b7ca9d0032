// Waypoint - Delivery Network Simulation and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package models

import (
	"testing"

	"github.com/paulmach/orb"
)

func TestPointID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		pos  Position
		want string
	}{
		{Position{Lat: 36.75377, Lon: 3.05876}, "36.7538,3.0588"},
		{Position{Lat: 22.785, Lon: 5.5228}, "22.7850,5.5228"},
		{Position{Lat: -0.00001, Lon: 0}, "-0.0000,0.0000"},
	}
	for _, tt := range tests {
		if got := PointID(tt.pos); got != tt.want {
			t.Errorf("PointID(%+v) = %q, want %q", tt.pos, got, tt.want)
		}
	}

	p := DeliveryPoint{Position: Position{Lat: 35.69, Lon: -0.63}}
	if p.ID() != "35.6900,-0.6300" {
		t.Errorf("ID() = %q", p.ID())
	}
}

func TestStatus(t *testing.T) {
	t.Parallel()

	if !StatusNormal.Valid() || !StatusWarning.Valid() || !StatusAlert.Valid() {
		t.Error("known statuses should be valid")
	}
	if Status("offline").Valid() {
		t.Error("unknown status should be invalid")
	}
	if StatusNormal.Priority() {
		t.Error("normal points are clusterable")
	}
	if !StatusWarning.Priority() || !StatusAlert.Priority() {
		t.Error("warning and alert points are priority")
	}
}

func TestPositionPointRoundTrip(t *testing.T) {
	t.Parallel()

	pos := Position{Lat: 36.1, Lon: 2.5}
	pt := pos.Point()
	if pt != (orb.Point{2.5, 36.1}) {
		t.Errorf("Point() = %v, want lon-first order", pt)
	}
	if PositionFromPoint(pt) != pos {
		t.Errorf("PositionFromPoint mismatch")
	}
}

func TestCountByStatus(t *testing.T) {
	t.Parallel()

	s := &Snapshot{Points: []DeliveryPoint{
		{Status: StatusNormal}, {Status: StatusNormal}, {Status: StatusAlert},
	}}
	got := s.CountByStatus()
	if got[StatusNormal] != 2 || got[StatusAlert] != 1 || got[StatusWarning] != 0 {
		t.Errorf("CountByStatus() = %v", got)
	}
	if _, ok := got[StatusWarning]; !ok {
		t.Error("every status should be present even when zero")
	}
}
