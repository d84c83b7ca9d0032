// Waypoint - Delivery Network Simulation and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

// Package allocation computes how many delivery points each region gets.
//
// The plan is population-weighted, guarantees a per-region floor, and
// always sums to the budget exactly. Remainder correction visits regions by
// population descending, then name ascending, so the result is fully
// deterministic for a given input set regardless of input order.
package allocation
