// Waypoint - Delivery Network Simulation and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package generator

import (
	"context"
	"time"

	"github.com/tomtom215/waypoint/internal/models"
)

// sharedRunTimeout bounds a shared run once it is detached from its callers.
const sharedRunTimeout = 5 * time.Minute

// run is one in-flight resolution or generation and the callers waiting on it.
type run struct {
	done    chan struct{}
	snap    *models.Snapshot
	err     error
	waiters int
	cancel  context.CancelFunc
}

// share runs fn once per key for every concurrent caller. fn gets a context
// carrying the first caller's values but none of its cancellation. A caller
// whose ctx ends stops waiting on its own; the run is canceled only when no
// caller is left waiting, so a canceled run never publishes or persists.
func (s *Service) share(ctx context.Context, key string, fn func(context.Context) (*models.Snapshot, error)) (*models.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.runsMu.Lock()
	r, ok := s.runs[key]
	if !ok {
		runCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sharedRunTimeout)
		r = &run{done: make(chan struct{}), cancel: cancel}
		s.runs[key] = r
		go s.execute(runCtx, key, r, fn)
	}
	r.waiters++
	s.runsMu.Unlock()

	select {
	case <-r.done:
		return r.snap, r.err
	case <-ctx.Done():
		s.runsMu.Lock()
		r.waiters--
		last := r.waiters == 0
		if last && s.runs[key] == r {
			// Later callers start over instead of joining a canceled run.
			delete(s.runs, key)
		}
		s.runsMu.Unlock()
		if last {
			r.cancel()
		}
		return nil, ctx.Err()
	}
}

func (s *Service) execute(ctx context.Context, key string, r *run, fn func(context.Context) (*models.Snapshot, error)) {
	defer r.cancel()
	snap, err := fn(ctx)

	s.runsMu.Lock()
	if s.runs[key] == r {
		delete(s.runs, key)
	}
	r.snap, r.err = snap, err
	s.runsMu.Unlock()
	close(r.done)
}
