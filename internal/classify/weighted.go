// Waypoint - Delivery Network Simulation and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package classify

import (
	"math/rand/v2"

	"github.com/tomtom215/waypoint/internal/models"
)

// Rand is the random source consumed by every draw. *rand.Rand from
// math/rand/v2 satisfies it. Implementations need not be safe for
// concurrent use; callers give each goroutine its own.
type Rand interface {
	Float64() float64
}

// NewRand returns a PCG-backed source. Distinct streams with the same seed
// produce independent sequences, which lets concurrent samplers stay
// reproducible.
func NewRand(seed, stream uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, stream))
}

// Weighted pairs a value with a non-negative weight.
type Weighted[T any] struct {
	Value  T
	Weight float64
}

// WeightedChoice draws one value with probability proportional to its
// weight. Choices are scanned in order, so a source returning 0 always
// yields the first positively weighted choice. It panics on an empty slice.
func WeightedChoice[T any](rng Rand, choices []Weighted[T]) T {
	var total float64
	for _, c := range choices {
		if c.Weight > 0 {
			total += c.Weight
		}
	}

	r := rng.Float64() * total
	var cum float64
	for _, c := range choices {
		if c.Weight <= 0 {
			continue
		}
		cum += c.Weight
		if r < cum {
			return c.Value
		}
	}
	// Float rounding can leave r == total.
	return choices[len(choices)-1].Value
}

// StatusWeights is the status distribution of generated points.
var StatusWeights = []Weighted[models.Status]{
	{Value: models.StatusNormal, Weight: 0.70},
	{Value: models.StatusWarning, Weight: 0.20},
	{Value: models.StatusAlert, Weight: 0.10},
}

// DrawStatus draws a point status from StatusWeights.
func DrawStatus(rng Rand) models.Status {
	return WeightedChoice(rng, StatusWeights)
}
