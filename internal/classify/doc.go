// Waypoint - Delivery Network Simulation and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

// Package classify derives the display attributes of delivery points: the
// coarse zone of a region, the per-point color, and the per-point status.
//
// Every random draw goes through WeightedChoice with a caller-supplied Rand,
// so tests can pin outcomes with a fixed source:
//
//	rng := classify.NewRand(42, 0)
//	z := classify.Classify("Tizi Ouzou")     // ZoneNorth
//	c := classify.ColorFor(z, rng)           // dark 90% of the time
//	s := classify.DrawStatus(rng)            // 70/20/10
//
// Region names are compared through NameKey, which ignores case,
// diacritics and punctuation so "Béjaïa", "BEJAIA" and "Bejaia" match.
package classify
