// Waypoint - Delivery Network Simulation and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package sampler

import (
	"context"
	"errors"
	"fmt"

	"github.com/paulmach/orb"

	"github.com/tomtom215/waypoint/internal/boundary"
	"github.com/tomtom215/waypoint/internal/classify"
	"github.com/tomtom215/waypoint/internal/logging"
	"github.com/tomtom215/waypoint/internal/metrics"
	"github.com/tomtom215/waypoint/internal/models"
)

// DefaultMaxAttempts caps rejection sampling for a single point.
const DefaultMaxAttempts = 10000

// ErrSamplingExhausted means no candidate fell inside the region within the
// attempt cap.
var ErrSamplingExhausted = errors.New("sampling exhausted")

// Sampler places random points inside region boundaries by rejection
// sampling over the region's bounding box. A Sampler owns its random
// source and must not be shared between goroutines.
type Sampler struct {
	rng         classify.Rand
	maxAttempts int
}

// New creates a sampler. maxAttempts <= 0 selects DefaultMaxAttempts.
func New(rng classify.Rand, maxAttempts int) *Sampler {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &Sampler{rng: rng, maxAttempts: maxAttempts}
}

// Report summarizes one Sample call.
type Report struct {
	Region    string `json:"region"`
	Requested int    `json:"requested"`
	Generated int    `json:"generated"`
	Skipped   int    `json:"skipped"`
	Attempts  int    `json:"attempts"`
}

// Point draws one position inside region. It returns the number of
// candidates tried, and ErrSamplingExhausted when the cap is reached.
func (s *Sampler) Point(region *boundary.Region) (orb.Point, int, error) {
	b := region.Bound
	width := b.Max.Lon() - b.Min.Lon()
	height := b.Max.Lat() - b.Min.Lat()

	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		pt := orb.Point{
			b.Min.Lon() + s.rng.Float64()*width,
			b.Min.Lat() + s.rng.Float64()*height,
		}
		if region.Contains(pt) {
			return pt, attempt, nil
		}
	}
	return orb.Point{}, s.maxAttempts, fmt.Errorf("%w: %s after %d attempts", ErrSamplingExhausted, region.Name, s.maxAttempts)
}

// Sample generates count delivery points inside region, each with a drawn
// status and color. Points whose sampling is exhausted are skipped and
// counted in the report rather than failing the call. Only context
// cancellation returns an error.
func (s *Sampler) Sample(ctx context.Context, region *boundary.Region, count int) ([]models.DeliveryPoint, Report, error) {
	report := Report{Region: region.Name, Requested: count}
	points := make([]models.DeliveryPoint, 0, count)

	for i := 0; i < count; i++ {
		if err := ctx.Err(); err != nil {
			return nil, report, err
		}

		pt, attempts, err := s.Point(region)
		report.Attempts += attempts
		if err != nil {
			report.Skipped++
			metrics.SamplingExhausted.WithLabelValues(region.Name).Inc()
			continue
		}
		metrics.SamplingAttempts.Observe(float64(attempts))

		points = append(points, models.DeliveryPoint{
			Position: models.PositionFromPoint(pt),
			Region:   region.Name,
			Status:   classify.DrawStatus(s.rng),
			Color:    classify.ColorFor(region.Zone, s.rng),
		})
	}

	report.Generated = len(points)
	if report.Skipped > 0 {
		logging.Ctx(ctx).Warn().
			Str("region", region.Name).
			Int("skipped", report.Skipped).
			Int("requested", count).
			Int("max_attempts", s.maxAttempts).
			Msg("sampling exhausted for some points")
	}
	return points, report, nil
}
