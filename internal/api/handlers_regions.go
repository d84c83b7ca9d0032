// Waypoint - Delivery Network Simulation and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package api

import (
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/waypoint/internal/allocation"
	"github.com/tomtom215/waypoint/internal/boundary"
	"github.com/tomtom215/waypoint/internal/classify"
	"github.com/tomtom215/waypoint/internal/models"
)

// RegionSummary is one row of GET /regions.
type RegionSummary struct {
	Name       string        `json:"name"`
	Zone       classify.Zone `json:"zone"`
	Population int           `json:"population"`
	Allocated  int           `json:"allocated"`
	Generated  int           `json:"generated"`
	BBox       [4]float64    `json:"bbox"`
}

// RegionsResponse is the data of GET /regions.
type RegionsResponse struct {
	TotalBudget int             `json:"total_budget"`
	Allocated   int             `json:"allocated"`
	Regions     []RegionSummary `json:"regions"`
}

// StatsResponse is the data of GET /stats.
type StatsResponse struct {
	RunID       string                `json:"run_id"`
	Source      models.Source         `json:"source"`
	GeneratedAt time.Time             `json:"generated_at"`
	Total       int                   `json:"total"`
	Skipped     int                   `json:"skipped"`
	ByStatus    map[models.Status]int `json:"by_status"`
	ByZone      map[classify.Zone]int `json:"by_zone"`
	ViewCache   ViewCacheStats        `json:"view_cache"`
	WSClients   int                   `json:"ws_clients"`
}

// ViewCacheStats reports cluster view cache effectiveness.
type ViewCacheStats struct {
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
	Size   int   `json:"size"`
}

func summarize(r *boundary.Region, plan allocation.Plan, generated map[string]int) RegionSummary {
	return RegionSummary{
		Name:       r.Name,
		Zone:       r.Zone,
		Population: r.Population,
		Allocated:  plan[r.Name],
		Generated:  generated[r.Name],
		BBox:       [4]float64{r.Bound.Min.Lon(), r.Bound.Min.Lat(), r.Bound.Max.Lon(), r.Bound.Max.Lat()},
	}
}

// generatedByRegion counts points per region in the current snapshot, if
// any. It does not trigger generation.
func (h *Handler) generatedByRegion() map[string]int {
	counts := make(map[string]int)
	if snap, ok := h.gen.Snapshot(); ok {
		for i := range snap.Points {
			counts[snap.Points[i].Region]++
		}
	}
	return counts
}

// Regions returns the allocation plan with zones and populations, largest
// allocation first.
func (h *Handler) Regions(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	plan, coll, err := h.gen.Plan(r.Context())
	if err != nil {
		respondDomainError(w, err)
		return
	}

	generated := h.generatedByRegion()
	rows := make([]RegionSummary, 0, coll.Len())
	for _, region := range coll.Regions() {
		rows = append(rows, summarize(region, plan, generated))
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Allocated != rows[j].Allocated {
			return rows[i].Allocated > rows[j].Allocated
		}
		return rows[i].Name < rows[j].Name
	})

	respondSuccess(w, start, RegionsResponse{
		TotalBudget: h.gen.Options().TotalBudget,
		Allocated:   plan.Total(),
		Regions:     rows,
	}, models.Metadata{})
}

// Region returns one region's allocation. The name matches ignoring case
// and diacritics.
func (h *Handler) Region(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	name := chi.URLParam(r, "name")
	plan, coll, err := h.gen.Plan(r.Context())
	if err != nil {
		respondDomainError(w, err)
		return
	}

	region, ok := coll.Region(name)
	if !ok {
		respondDomainError(w, ErrRegionNotFound)
		return
	}
	respondSuccess(w, start, summarize(region, plan, h.generatedByRegion()), models.Metadata{})
}

// Boundaries streams the raw GeoJSON dataset unchanged.
func (h *Handler) Boundaries(w http.ResponseWriter, r *http.Request) {
	_, coll, err := h.gen.Plan(r.Context())
	if err != nil {
		respondDomainError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/geo+json")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Header().Set("Last-Modified", coll.LoadedAt().UTC().Format(http.TimeFormat))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(coll.Raw()) // client disconnects are not actionable
}

// Stats returns counts by status and zone for the current snapshot.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	snap, err := h.snapshot(r.Context())
	if err != nil {
		respondDomainError(w, err)
		return
	}

	byZone := make(map[classify.Zone]int, len(classify.Zones))
	for _, z := range classify.Zones {
		byZone[z] = 0
	}
	for i := range snap.Points {
		byZone[classify.Classify(snap.Points[i].Region)]++
	}

	hits, misses, size := h.view.CacheStats()
	clients := 0
	if h.wsHub != nil {
		clients = h.wsHub.GetClientCount()
	}

	respondSuccess(w, start, StatsResponse{
		RunID:       snap.RunID,
		Source:      snap.Source,
		GeneratedAt: snap.GeneratedAt,
		Total:       len(snap.Points),
		Skipped:     snap.Skipped,
		ByStatus:    snap.CountByStatus(),
		ByZone:      byZone,
		ViewCache:   ViewCacheStats{Hits: hits, Misses: misses, Size: size},
		WSClients:   clients,
	}, models.Metadata{Source: snap.Source})
}

// PerformanceStats returns per-route latency percentiles.
func (h *Handler) PerformanceStats(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	respondSuccess(w, start, map[string]interface{}{
		"endpoints": h.perfMon.GetStats(),
		"recent":    h.perfMon.GetRecentMetrics(20),
	}, models.Metadata{})
}
