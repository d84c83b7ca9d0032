// Waypoint - Delivery Network Simulation and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package generator

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/waypoint/internal/allocation"
	"github.com/tomtom215/waypoint/internal/boundary"
	"github.com/tomtom215/waypoint/internal/logging"
	"github.com/tomtom215/waypoint/internal/metrics"
	"github.com/tomtom215/waypoint/internal/models"
	"github.com/tomtom215/waypoint/internal/pointcache"
)

// BoundaryLoader supplies the region collection.
type BoundaryLoader interface {
	Load(ctx context.Context) (*boundary.Collection, error)
}

// SnapshotListener is called after a new snapshot is published.
type SnapshotListener func(*models.Snapshot)

// Service owns the current snapshot. Readers always see a complete
// snapshot; a new one replaces the old only after it is fully built.
type Service struct {
	loader BoundaryLoader
	cache  *pointcache.Cache
	opts   Options

	current atomic.Pointer[models.Snapshot]

	runsMu sync.Mutex
	runs   map[string]*run

	mu        sync.RWMutex
	listeners []SnapshotListener
}

// NewService creates a generator service. cache may be nil.
func NewService(loader BoundaryLoader, cache *pointcache.Cache, opts Options) *Service {
	return &Service{loader: loader, cache: cache, opts: opts, runs: make(map[string]*run)}
}

// OnSnapshot registers fn for snapshot changes. A nil snapshot means the
// current one was dropped.
func (s *Service) OnSnapshot(fn SnapshotListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Snapshot returns the current snapshot without triggering work.
func (s *Service) Snapshot() (*models.Snapshot, bool) {
	snap := s.current.Load()
	return snap, snap != nil
}

// Options returns the generation options.
func (s *Service) Options() Options {
	return s.opts
}

// Cache returns the point cache, or nil.
func (s *Service) Cache() *pointcache.Cache {
	return s.cache
}

// Resolve returns the current snapshot, loading it from the point cache or
// generating it on first use. Concurrent callers share one resolution.
func (s *Service) Resolve(ctx context.Context) (*models.Snapshot, error) {
	if snap := s.current.Load(); snap != nil {
		return snap, nil
	}

	return s.share(ctx, "resolve", func(ctx context.Context) (*models.Snapshot, error) {
		if snap := s.current.Load(); snap != nil {
			return snap, nil
		}
		if snap := s.loadCached(ctx); snap != nil {
			s.publish(snap)
			return snap, nil
		}
		return s.generate(ctx)
	})
}

// Regenerate builds a fresh snapshot regardless of the cache and persists it.
func (s *Service) Regenerate(ctx context.Context) (*models.Snapshot, error) {
	return s.generate(ctx)
}

// Invalidate backs up and clears the persisted points and drops the current
// snapshot. It returns the backup key, or "" if nothing was persisted.
func (s *Service) Invalidate(ctx context.Context) (string, error) {
	var backup string
	if s.cache != nil {
		var err error
		if backup, err = s.cache.Invalidate(ctx); err != nil {
			return "", err
		}
	}
	if s.current.Swap(nil) != nil {
		s.notify(nil)
	}
	return backup, nil
}

// Reset drops the in-memory snapshot without touching storage.
func (s *Service) Reset() {
	if s.current.Swap(nil) != nil {
		s.notify(nil)
	}
}

// Plan loads the boundaries and returns the allocation they produce.
func (s *Service) Plan(ctx context.Context) (allocation.Plan, *boundary.Collection, error) {
	coll, err := s.loader.Load(ctx)
	if err != nil {
		return nil, nil, err
	}
	plan, err := allocation.Allocate(Weights(coll), s.opts.TotalBudget, s.opts.MinPerRegion)
	if err != nil {
		return nil, nil, err
	}
	return plan, coll, nil
}

func (s *Service) generate(ctx context.Context) (*models.Snapshot, error) {
	return s.share(ctx, "generate", s.runGeneration)
}

func (s *Service) runGeneration(ctx context.Context) (*models.Snapshot, error) {
	start := time.Now()
	log := logging.Ctx(ctx)

	coll, err := s.loader.Load(ctx)
	if err != nil {
		metrics.RecordGeneration(outcome(err), time.Since(start))
		return nil, err
	}

	res, err := Run(ctx, coll, s.opts)
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		metrics.RecordGeneration(outcome(err), time.Since(start))
		if ctx.Err() != nil {
			log.Info().Err(err).Msg("generation abandoned")
		}
		return nil, err
	}

	snap := &models.Snapshot{
		RunID:       uuid.NewString(),
		Source:      models.SourceGenerated,
		GeneratedAt: time.Now().UTC(),
		Points:      res.Points,
		Skipped:     res.Skipped,
	}

	if s.cache != nil {
		rec := &pointcache.Record{RunID: snap.RunID, GeneratedAt: snap.GeneratedAt, Points: snap.Points}
		if err := s.cache.Save(ctx, rec); err != nil {
			log.Warn().Err(err).Msg("point cache write failed, serving in-memory snapshot")
		}
	}

	s.publish(snap)
	metrics.RecordGeneration("ok", time.Since(start))
	log.Info().
		Str("run_id", snap.RunID).
		Int("regions", coll.Len()).
		Int("points", len(snap.Points)).
		Int("skipped", snap.Skipped).
		Uint64("seed", res.Seed).
		Dur("duration", time.Since(start)).
		Msg("delivery points generated")
	return snap, nil
}

func (s *Service) loadCached(ctx context.Context) *models.Snapshot {
	if s.cache == nil {
		return nil
	}
	rec, err := s.cache.Load(ctx)
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Msg("point cache unusable, regenerating")
		return nil
	}
	if rec == nil {
		return nil
	}

	points := rec.Points
	coll, err := s.loader.Load(ctx)
	if err != nil {
		// Boundaries are down; the cache is still the best answer.
		logging.Ctx(ctx).Warn().Err(err).Msg("serving point cache without region check")
	} else if points = resolvable(coll, points); len(points) == 0 {
		logging.Ctx(ctx).Warn().
			Int("dropped", len(rec.Points)).
			Msg("no cached point matches a known region, regenerating")
		return nil
	}
	if dropped := len(rec.Points) - len(points); dropped > 0 {
		metrics.PointCacheDropped.Add(float64(dropped))
		logging.Ctx(ctx).Warn().
			Int("dropped", dropped).
			Int("kept", len(points)).
			Msg("dropped cached points of unknown regions")
	}

	return &models.Snapshot{
		RunID:       rec.RunID,
		Source:      models.SourceCache,
		GeneratedAt: rec.GeneratedAt,
		Points:      points,
	}
}

// resolvable keeps the points whose region is in coll.
func resolvable(coll *boundary.Collection, points []models.DeliveryPoint) []models.DeliveryPoint {
	out := make([]models.DeliveryPoint, 0, len(points))
	for _, p := range points {
		if _, ok := coll.Region(p.Region); ok {
			out = append(out, p)
		}
	}
	return out
}

func (s *Service) publish(snap *models.Snapshot) {
	s.current.Store(snap)

	counts := snap.CountByStatus()
	byStatus := make(map[string]int, len(counts))
	for st, n := range counts {
		byStatus[string(st)] = n
	}
	metrics.RecordSnapshot(string(snap.Source), byStatus)

	s.notify(snap)
}

func (s *Service) notify(snap *models.Snapshot) {
	s.mu.RLock()
	listeners := append([]SnapshotListener(nil), s.listeners...)
	s.mu.RUnlock()
	for _, fn := range listeners {
		fn(snap)
	}
}

func outcome(err error) string {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	case errors.Is(err, boundary.ErrDataUnavailable):
		return "unavailable"
	default:
		return "error"
	}
}
