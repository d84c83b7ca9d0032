// Waypoint - Delivery Network Simulation and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package allocation

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

var (
	// ErrBudgetTooSmall means the budget cannot give every region its floor.
	ErrBudgetTooSmall = errors.New("allocation: budget smaller than regions times floor")

	// ErrInvalidRegion means a region has an empty or duplicate name or a
	// non-positive population.
	ErrInvalidRegion = errors.New("allocation: invalid region")
)

// Weight is the allocation input for one region.
type Weight struct {
	Name       string
	Population int
}

// Plan maps a region name to its point count.
type Plan map[string]int

// Total returns the sum of all counts.
func (p Plan) Total() int {
	sum := 0
	for _, n := range p {
		sum += n
	}
	return sum
}

// Allocate splits totalBudget points across regions in proportion to
// population, with at least minPerRegion points per region and an exact
// total.
//
// Each region first gets max(minPerRegion, round(budget*pop/totalPop)).
// The difference to the budget is then corrected one unit at a time,
// round-robin over the regions ordered by population descending and name
// ascending. Removals never take a region below minPerRegion.
func Allocate(regions []Weight, totalBudget, minPerRegion int) (Plan, error) {
	if len(regions) == 0 {
		return Plan{}, nil
	}
	if minPerRegion < 0 {
		minPerRegion = 0
	}
	if totalBudget < len(regions)*minPerRegion {
		return nil, fmt.Errorf("%w: %d regions x %d > %d", ErrBudgetTooSmall, len(regions), minPerRegion, totalBudget)
	}

	var totalPop int64
	seen := make(map[string]struct{}, len(regions))
	for _, r := range regions {
		if r.Name == "" {
			return nil, fmt.Errorf("%w: empty name", ErrInvalidRegion)
		}
		if r.Population <= 0 {
			return nil, fmt.Errorf("%w: %q has population %d", ErrInvalidRegion, r.Name, r.Population)
		}
		if _, dup := seen[r.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate %q", ErrInvalidRegion, r.Name)
		}
		seen[r.Name] = struct{}{}
		totalPop += int64(r.Population)
	}

	plan := make(Plan, len(regions))
	sum := 0
	for _, r := range regions {
		share := int(math.Round(float64(totalBudget) * float64(r.Population) / float64(totalPop)))
		n := max(minPerRegion, share)
		plan[r.Name] = n
		sum += n
	}

	order := make([]Weight, len(regions))
	copy(order, regions)
	sort.Slice(order, func(i, j int) bool {
		if order[i].Population != order[j].Population {
			return order[i].Population > order[j].Population
		}
		return order[i].Name < order[j].Name
	})

	diff := totalBudget - sum
	for diff != 0 {
		changed := false
		for _, r := range order {
			if diff == 0 {
				break
			}
			switch {
			case diff > 0:
				plan[r.Name]++
				diff--
				changed = true
			case plan[r.Name] > minPerRegion:
				plan[r.Name]--
				diff++
				changed = true
			}
		}
		if !changed {
			// Unreachable given the budget check above.
			return nil, fmt.Errorf("%w: cannot remove %d more points", ErrBudgetTooSmall, -diff)
		}
	}
	return plan, nil
}
