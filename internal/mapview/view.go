// Waypoint - Delivery Network Simulation and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package mapview

import (
	"strconv"

	"github.com/tomtom215/waypoint/internal/config"
	"github.com/tomtom215/waypoint/internal/metrics"
	"github.com/tomtom215/waypoint/internal/models"
)

// View derives markers and clusters from snapshots and caches cluster
// results per snapshot, filter and zoom.
type View struct {
	baseKm float64
	cache  *lruCache[*ClusterView]
	events *Events
}

// New creates a view. Zero config values fall back to 400km cells and a
// 256-entry cache.
func New(cfg config.MapViewConfig) *View {
	base := cfg.ClusterBaseKm
	if base <= 0 {
		base = 400
	}
	return &View{
		baseKm: base,
		cache:  newLRUCache[*ClusterView](cfg.ViewCacheSize),
		events: NewEvents(),
	}
}

// Events returns the interaction dispatcher.
func (v *View) Events() *Events { return v.events }

// Markers returns the filtered points of snap.
func (v *View) Markers(snap *models.Snapshot, f Filter) []Marker {
	return f.Apply(snap.Points)
}

// Clusters returns the clustered view of snap at zoom and whether it came
// from the cache. Results are cached until Reset.
func (v *View) Clusters(snap *models.Snapshot, f Filter, zoom int) (*ClusterView, bool) {
	key := snap.RunID + "|" + strconv.Itoa(zoom) + "|" + f.key()
	if cv, ok := v.cache.Get(key); ok {
		metrics.ViewCacheHits.Inc()
		return cv, true
	}
	metrics.ViewCacheMisses.Inc()

	cv := BuildClusters(f.Apply(snap.Points), zoom, v.baseKm)
	v.cache.Add(key, cv)
	return cv, false
}

// Find looks a point up by its derived ID.
func (v *View) Find(snap *models.Snapshot, id string) (models.DeliveryPoint, bool) {
	for _, p := range snap.Points {
		if p.ID() == id {
			return p, true
		}
	}
	return models.DeliveryPoint{}, false
}

// Reset drops cached views. It is wired to snapshot changes.
func (v *View) Reset() {
	v.cache.Clear()
}

// CacheStats reports view cache hits, misses and size.
func (v *View) CacheStats() (hits, misses int64, size int) {
	return v.cache.Stats()
}
