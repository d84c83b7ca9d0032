// Waypoint - Delivery Network Simulation and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/deliveries", "200"))
	RecordAPIRequest("GET", "/api/v1/deliveries", "200", 12*time.Millisecond)
	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/deliveries", "200"))

	if after-before != 1 {
		t.Errorf("expected counter to increase by 1, got %v", after-before)
	}
}

func TestRecordGeneration(t *testing.T) {
	before := testutil.ToFloat64(GenerationRuns.WithLabelValues("success"))
	RecordGeneration("success", 40*time.Millisecond)
	if got := testutil.ToFloat64(GenerationRuns.WithLabelValues("success")) - before; got != 1 {
		t.Errorf("expected 1 new success run, got %v", got)
	}
}

func TestRecordSnapshotReplacesStatusGauges(t *testing.T) {
	RecordSnapshot("generated", map[string]int{"normal": 210, "warning": 60, "alert": 30})
	RecordSnapshot("cache", map[string]int{"normal": 5})

	if got := testutil.ToFloat64(SnapshotPoints.WithLabelValues("normal")); got != 5 {
		t.Errorf("normal gauge = %v, want 5", got)
	}
	if got := testutil.CollectAndCount(SnapshotPoints); got != 1 {
		t.Errorf("expected stale status series to be reset, got %d series", got)
	}
}

func TestRecordPointCache(t *testing.T) {
	before := testutil.ToFloat64(PointCacheOps.WithLabelValues("load", "miss"))
	RecordPointCache("load", "miss")
	if got := testutil.ToFloat64(PointCacheOps.WithLabelValues("load", "miss")) - before; got != 1 {
		t.Errorf("expected 1, got %v", got)
	}
}
