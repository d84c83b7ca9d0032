// Waypoint - Delivery Network Simulation and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package sampler

import (
	"context"
	"errors"
	"testing"

	"github.com/paulmach/orb"

	"github.com/tomtom215/waypoint/internal/boundary"
	"github.com/tomtom215/waypoint/internal/classify"
	"github.com/tomtom215/waypoint/internal/models"
)

func newRegion(name string, mp orb.MultiPolygon) *boundary.Region {
	return &boundary.Region{
		Name:       name,
		Population: 1,
		Zone:       classify.Classify(name),
		Geometry:   mp,
		Bound:      mp.Bound(),
	}
}

func square(minLon, minLat, size float64) orb.Polygon {
	return orb.Polygon{{
		{minLon, minLat}, {minLon + size, minLat}, {minLon + size, minLat + size},
		{minLon, minLat + size}, {minLon, minLat},
	}}
}

// ring with a large hole: only a thin frame is inside.
func frame() orb.MultiPolygon {
	outer := square(0, 0, 10)[0]
	hole := square(0.5, 0.5, 9)[0]
	return orb.MultiPolygon{{outer, hole}}
}

func TestSampleContainment(t *testing.T) {
	t.Parallel()

	regions := []*boundary.Region{
		newRegion("Alger", orb.MultiPolygon{square(2.8, 36.5, 0.5)}),
		newRegion("Tamanrasset", orb.MultiPolygon{square(4, 21, 2), square(8, 19, 1)}),
		newRegion("Oran", frame()),
		newRegion("Ghardaïa", orb.MultiPolygon{{{{3, 31}, {4.5, 31}, {3.75, 33}, {3, 31}}}}),
	}

	s := New(classify.NewRand(99, 0), 0)
	for _, r := range regions {
		pts, rep, err := s.Sample(context.Background(), r, 200)
		if err != nil {
			t.Fatalf("%s: Sample() error = %v", r.Name, err)
		}
		if rep.Generated != 200 || rep.Skipped != 0 || len(pts) != 200 {
			t.Fatalf("%s: report = %+v, len = %d", r.Name, rep, len(pts))
		}
		for _, p := range pts {
			if !r.Contains(p.Position.Point()) {
				t.Fatalf("%s: point %v is outside its region", r.Name, p.Position)
			}
			if p.Region != r.Name {
				t.Errorf("point region = %q, want %q", p.Region, r.Name)
			}
			if !p.Status.Valid() {
				t.Errorf("invalid status %q", p.Status)
			}
			shades := classify.Palette[r.Zone]
			if p.Color != shades.Dark && p.Color != shades.Light {
				t.Errorf("%s: color %q not in %s palette", r.Name, p.Color, r.Zone)
			}
		}
	}
}

func TestSampleUsesBothPolygons(t *testing.T) {
	t.Parallel()

	// Equal-area squares far apart: both must receive points.
	r := newRegion("Split", orb.MultiPolygon{square(0, 0, 1), square(10, 10, 1)})
	pts, _, err := New(classify.NewRand(5, 5), 0).Sample(context.Background(), r, 100)
	if err != nil {
		t.Fatal(err)
	}
	var low, high int
	for _, p := range pts {
		if p.Position.Lon < 5 {
			low++
		} else {
			high++
		}
	}
	if low == 0 || high == 0 {
		t.Errorf("expected points in both polygons, got %d/%d", low, high)
	}
}

func TestPointExhausted(t *testing.T) {
	t.Parallel()

	// A degenerate sliver has zero area, so no candidate can land inside.
	sliver := orb.MultiPolygon{{{{0, 0}, {1, 1}, {2, 2}, {0, 0}}}}
	r := newRegion("Sliver", sliver)

	s := New(classify.NewRand(1, 1), 50)
	_, attempts, err := s.Point(r)
	if !errors.Is(err, ErrSamplingExhausted) {
		t.Fatalf("err = %v, want ErrSamplingExhausted", err)
	}
	if attempts != 50 {
		t.Errorf("attempts = %d, want 50", attempts)
	}

	pts, rep, err := s.Sample(context.Background(), r, 4)
	if err != nil {
		t.Fatalf("exhaustion must not fail the batch: %v", err)
	}
	if len(pts) != 0 || rep.Skipped != 4 || rep.Attempts != 200 {
		t.Errorf("report = %+v, points = %d", rep, len(pts))
	}
}

func TestSampleDeterministic(t *testing.T) {
	t.Parallel()

	r := newRegion("Alger", orb.MultiPolygon{square(2.8, 36.5, 0.5)})
	a, _, _ := New(classify.NewRand(7, 3), 0).Sample(context.Background(), r, 25)
	b, _, _ := New(classify.NewRand(7, 3), 0).Sample(context.Background(), r, 25)

	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("point %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestSampleCanceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := newRegion("Alger", orb.MultiPolygon{square(2.8, 36.5, 0.5)})
	pts, _, err := New(classify.NewRand(1, 1), 0).Sample(ctx, r, 10)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if pts != nil {
		t.Error("canceled sample must not return partial points")
	}
}

func TestStatusDistributionOverSamples(t *testing.T) {
	t.Parallel()

	r := newRegion("Box", orb.MultiPolygon{square(0, 0, 1)})
	pts, _, err := New(classify.NewRand(11, 0), 0).Sample(context.Background(), r, 12000)
	if err != nil {
		t.Fatal(err)
	}
	counts := map[models.Status]int{}
	for _, p := range pts {
		counts[p.Status]++
	}
	n := float64(len(pts))
	if f := float64(counts[models.StatusAlert]) / n; f < 0.08 || f > 0.12 {
		t.Errorf("alert fraction %.3f", f)
	}
	if f := float64(counts[models.StatusWarning]) / n; f < 0.18 || f > 0.22 {
		t.Errorf("warning fraction %.3f", f)
	}
}
