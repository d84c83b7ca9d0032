// Waypoint - Delivery Network Simulation and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package generator

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/waypoint/internal/allocation"
	"github.com/tomtom215/waypoint/internal/boundary"
	"github.com/tomtom215/waypoint/internal/classify"
	"github.com/tomtom215/waypoint/internal/config"
	"github.com/tomtom215/waypoint/internal/models"
	"github.com/tomtom215/waypoint/internal/sampler"
)

// Options tunes a generation run.
type Options struct {
	TotalBudget  int
	MinPerRegion int
	MaxAttempts  int

	// Concurrency bounds how many regions are sampled at once.
	Concurrency int

	// Seed fixes the random streams. Zero picks a new seed per run.
	Seed uint64
}

// OptionsFromConfig maps the generation config section.
func OptionsFromConfig(cfg config.GenerationConfig) Options {
	return Options{
		TotalBudget:  cfg.TotalBudget,
		MinPerRegion: cfg.MinPerRegion,
		MaxAttempts:  cfg.MaxAttempts,
		Concurrency:  cfg.Concurrency,
		Seed:         cfg.Seed,
	}
}

// Result is the output of one pipeline run.
type Result struct {
	Plan    allocation.Plan
	Points  []models.DeliveryPoint
	Reports []sampler.Report
	Skipped int
	Seed    uint64
}

// Weights converts a boundary collection into allocation input.
func Weights(coll *boundary.Collection) []allocation.Weight {
	regions := coll.Regions()
	out := make([]allocation.Weight, len(regions))
	for i, r := range regions {
		out[i] = allocation.Weight{Name: r.Name, Population: r.Population}
	}
	return out
}

// Run allocates the budget across coll's regions and samples each region.
// Every region draws from its own random stream keyed by its index, so the
// output is identical for a given seed whatever the concurrency. Points are
// ordered by region name, then by draw order.
func Run(ctx context.Context, coll *boundary.Collection, opts Options) (*Result, error) {
	plan, err := allocation.Allocate(Weights(coll), opts.TotalBudget, opts.MinPerRegion)
	if err != nil {
		return nil, fmt.Errorf("allocate points: %w", err)
	}

	seed := opts.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	regions := coll.Regions()
	batches := make([][]models.DeliveryPoint, len(regions))
	reports := make([]sampler.Report, len(regions))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, opts.Concurrency))
	for i, region := range regions {
		g.Go(func() error {
			s := sampler.New(classify.NewRand(seed, uint64(i)), opts.MaxAttempts)
			pts, rep, err := s.Sample(gctx, region, plan[region.Name])
			if err != nil {
				return err
			}
			batches[i] = pts
			reports[i] = rep
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &Result{Plan: plan, Reports: reports, Seed: seed}
	res.Points = make([]models.DeliveryPoint, 0, opts.TotalBudget)
	for i := range batches {
		res.Points = append(res.Points, batches[i]...)
		res.Skipped += reports[i].Skipped
	}
	return res, nil
}
