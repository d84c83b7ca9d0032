// Waypoint - Delivery Network Simulation and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package services

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/waypoint/internal/logging"
	"github.com/tomtom215/waypoint/internal/models"
)

// SnapshotResolver matches *generator.Service.
type SnapshotResolver interface {
	Resolve(ctx context.Context) (*models.Snapshot, error)
}

const (
	defaultWarmupRetry = 5 * time.Second
	maxWarmupRetry     = 5 * time.Minute

	// warmupAttemptTimeout bounds one resolution, which may fetch the
	// boundary dataset and sample every region.
	warmupAttemptTimeout = 2 * time.Minute
)

// WarmupService resolves the first delivery snapshot in the background.
//
// Failed attempts are retried after retry, doubling up to 5 minutes. Once
// a snapshot exists the service returns suture.ErrDoNotRestart.
type WarmupService struct {
	resolver SnapshotResolver
	retry    time.Duration
	logger   zerolog.Logger
	name     string

	// after is swapped in tests.
	after func(time.Duration) <-chan time.Time
}

// NewWarmupService creates a warmup service. A non-positive retry means 5s.
func NewWarmupService(resolver SnapshotResolver, retry time.Duration) *WarmupService {
	if retry <= 0 {
		retry = defaultWarmupRetry
	}
	return &WarmupService{
		resolver: resolver,
		retry:    retry,
		logger:   logging.WithComponent("warmup"),
		name:     "snapshot-warmup",
		after:    time.After,
	}
}

// Serve implements suture.Service.
func (s *WarmupService) Serve(ctx context.Context) error {
	delay := s.retry
	for attempt := 1; ; attempt++ {
		start := time.Now()
		snap, err := s.resolve(ctx)
		if err == nil {
			s.logger.Info().
				Str("run_id", snap.RunID).
				Str("source", string(snap.Source)).
				Int("points", len(snap.Points)).
				Int("attempts", attempt).
				Dur("duration", time.Since(start)).
				Msg("delivery snapshot ready")
			return suture.ErrDoNotRestart
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		s.logger.Warn().
			Err(err).
			Int("attempt", attempt).
			Dur("retry_in", delay).
			Msg("snapshot warmup failed")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.after(delay):
		}
		delay = min(delay*2, maxWarmupRetry)
	}
}

func (s *WarmupService) resolve(ctx context.Context) (*models.Snapshot, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, warmupAttemptTimeout)
	defer cancel()

	snap, err := s.resolver.Resolve(attemptCtx)
	if err == nil && snap == nil {
		err = errors.New("resolver returned no snapshot")
	}
	return snap, err
}

// String implements fmt.Stringer for supervisor logs.
func (s *WarmupService) String() string {
	return s.name
}
