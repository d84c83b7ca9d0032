// Waypoint - Delivery Network Simulation and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

// Package logging provides the process-wide zerolog logger used by every
// Waypoint component.
//
// # Quick Start
//
//	logging.Init(logging.Config{Level: "info", Format: "json", Timestamp: true})
//
//	logging.Info().Str("source", "generated").Int("points", 300).Msg("snapshot ready")
//	logging.Ctx(ctx).Warn().Str("region", "Tamanrasset").Msg("sampling exhausted")
//
// # Context
//
// HTTP handlers receive a request ID from middleware, and generation runs
// attach a correlation ID with ContextWithNewCorrelationID. Ctx decorates the
// global logger with both when present.
//
// # slog
//
// SlogHandler adapts zerolog to log/slog for the supervisor tree, which logs
// through sutureslog.
//
// Always terminate event chains with Msg or Send; an unterminated chain is
// never written.
package logging
