// Waypoint - Delivery Network Simulation and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

// Package kvstore provides the string-keyed persistence port used by the
// point cache, with memory, file, BadgerDB and Redis backends.
//
// All backends share the same contract: Get reports ErrNotFound for an
// absent key, Remove of an absent key is not an error, and Keys returns a
// sorted prefix listing. Open selects a backend from config.StoreConfig.
package kvstore
