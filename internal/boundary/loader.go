// Waypoint - Delivery Network Simulation and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package boundary

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/tomtom215/waypoint/internal/logging"
	"github.com/tomtom215/waypoint/internal/metrics"
)

// Options configures a Loader.
type Options struct {
	// FetchTimeout bounds a single fetch. Zero means no timeout.
	FetchTimeout time.Duration

	ParseOptions
}

// Loader fetches and parses the boundary dataset once and keeps the result
// for the lifetime of the loader. Concurrent first calls share one fetch.
// A failed load is not cached, so the next call retries.
type Loader struct {
	src   Source
	opts  Options
	group singleflight.Group

	mu   sync.RWMutex
	coll *Collection
}

// NewLoader creates a loader for src.
func NewLoader(src Source, opts Options) *Loader {
	return &Loader{src: src, opts: opts}
}

// Load returns the cached collection or fetches it. Errors wrap
// ErrDataUnavailable. Cancelling ctx abandons the wait but lets a shared
// fetch finish for other callers.
func (l *Loader) Load(ctx context.Context) (*Collection, error) {
	if c, ok := l.Cached(); ok {
		return c, nil
	}

	ch := l.group.DoChan("load", func() (interface{}, error) {
		if c, ok := l.Cached(); ok {
			return c, nil
		}
		fetchCtx := context.WithoutCancel(ctx)
		if l.opts.FetchTimeout > 0 {
			var cancel context.CancelFunc
			fetchCtx, cancel = context.WithTimeout(fetchCtx, l.opts.FetchTimeout)
			defer cancel()
		}
		return l.fetch(fetchCtx)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*Collection), nil
	}
}

func (l *Loader) fetch(ctx context.Context) (*Collection, error) {
	start := time.Now()
	name := l.src.Name()

	data, err := l.src.Fetch(ctx)
	if err != nil {
		metrics.BoundaryLoads.WithLabelValues(name, "error").Inc()
		logging.Ctx(ctx).Error().Err(err).Str("source", name).Msg("boundary fetch failed")
		return nil, fmt.Errorf("%w: fetch from %s: %w", ErrDataUnavailable, name, err)
	}

	coll, err := Parse(data, l.opts.ParseOptions)
	if err != nil {
		metrics.BoundaryLoads.WithLabelValues(name, "error").Inc()
		logging.Ctx(ctx).Error().Err(err).Str("source", name).Msg("boundary parse failed")
		return nil, err
	}

	l.mu.Lock()
	l.coll = coll
	l.mu.Unlock()

	metrics.BoundaryLoads.WithLabelValues(name, "success").Inc()
	metrics.BoundaryRegions.Set(float64(coll.Len()))
	logging.Info().
		Str("source", name).
		Int("regions", coll.Len()).
		Int("bytes", len(data)).
		Dur("duration", time.Since(start)).
		Msg("boundary dataset loaded")
	return coll, nil
}

// Cached returns the loaded collection without fetching.
func (l *Loader) Cached() (*Collection, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.coll, l.coll != nil
}

// Reset drops the cached collection so the next Load fetches again.
func (l *Loader) Reset() {
	l.mu.Lock()
	l.coll = nil
	l.mu.Unlock()
}

var defaultLoader atomic.Pointer[Loader]

// Init installs the process-wide loader and returns it. Calling Init again
// replaces the loader and discards anything it had cached.
func Init(src Source, opts Options) *Loader {
	l := NewLoader(src, opts)
	defaultLoader.Store(l)
	return l
}

// Reset removes the process-wide loader. Tests call it between runs.
func Reset() {
	defaultLoader.Store(nil)
}

// Default returns the process-wide loader installed by Init.
func Default() (*Loader, bool) {
	l := defaultLoader.Load()
	return l, l != nil
}

// Load loads through the process-wide loader.
func Load(ctx context.Context) (*Collection, error) {
	l, ok := Default()
	if !ok {
		return nil, fmt.Errorf("%w: loader not initialized", ErrDataUnavailable)
	}
	return l.Load(ctx)
}
