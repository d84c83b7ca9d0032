// Waypoint - Delivery Network Simulation and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package mapview

import (
	"fmt"
	"math"
	"sort"

	"github.com/paulmach/orb"

	"github.com/tomtom215/waypoint/internal/models"
)

const (
	// MaxZoom is the deepest supported zoom level.
	MaxZoom = 22

	kmPerDegree = 111.0
)

// Cluster groups nearby normal points.
type Cluster struct {
	ID     string          `json:"id"`
	Center models.Position `json:"center"`
	Count  int             `json:"count"`
	Bound  [4]float64      `json:"bbox"` // minLon, minLat, maxLon, maxLat
}

// ClusterView is the clustered rendering of a filtered snapshot.
type ClusterView struct {
	Zoom     int       `json:"zoom"`
	Clusters []Cluster `json:"clusters"`

	// Points holds every warning and alert point plus normal points alone
	// in their cell.
	Points []Marker `json:"points"`
	Total  int      `json:"total"`
}

type cellKey struct {
	X, Y int
}

type cell struct {
	key     cellKey
	markers []Marker
	bound   orb.Bound
}

// cellSizeDeg converts the zoom level to a grid cell size in degrees. Each
// zoom level halves the cell.
func cellSizeDeg(baseKm float64, zoom int) float64 {
	return baseKm / math.Exp2(float64(zoom)) / kmPerDegree
}

func getCellKey(pos models.Position, size float64) cellKey {
	return cellKey{
		X: int(math.Floor(pos.Lon / size)),
		Y: int(math.Floor(pos.Lat / size)),
	}
}

// BuildClusters groups normal markers on a grid whose cell size depends on
// zoom. Warning and alert markers are never clustered.
func BuildClusters(markers []Marker, zoom int, baseKm float64) *ClusterView {
	zoom = min(max(zoom, 0), MaxZoom)
	size := cellSizeDeg(baseKm, zoom)

	view := &ClusterView{Zoom: zoom, Total: len(markers), Clusters: []Cluster{}, Points: []Marker{}}
	cells := make(map[cellKey]*cell)
	var order []*cell

	for _, m := range markers {
		if m.Status.Priority() {
			view.Points = append(view.Points, m)
			continue
		}
		k := getCellKey(m.Position, size)
		c, ok := cells[k]
		if !ok {
			c = &cell{key: k, bound: orb.Bound{Min: m.Position.Point(), Max: m.Position.Point()}}
			cells[k] = c
			order = append(order, c)
		}
		c.markers = append(c.markers, m)
		c.bound = c.bound.Extend(m.Position.Point())
	}

	for _, c := range order {
		if len(c.markers) == 1 {
			view.Points = append(view.Points, c.markers[0])
			continue
		}
		var sumLat, sumLon float64
		for _, m := range c.markers {
			sumLat += m.Position.Lat
			sumLon += m.Position.Lon
		}
		n := float64(len(c.markers))
		view.Clusters = append(view.Clusters, Cluster{
			ID:     fmt.Sprintf("c%d:%d:%d", zoom, c.key.X, c.key.Y),
			Center: models.Position{Lat: sumLat / n, Lon: sumLon / n},
			Count:  len(c.markers),
			Bound:  [4]float64{c.bound.Min.Lon(), c.bound.Min.Lat(), c.bound.Max.Lon(), c.bound.Max.Lat()},
		})
	}

	sort.SliceStable(view.Clusters, func(i, j int) bool { return view.Clusters[i].Count > view.Clusters[j].Count })
	return view
}

func boundKey(b orb.Bound) string {
	return fmt.Sprintf("%.5f,%.5f,%.5f,%.5f", b.Min.Lon(), b.Min.Lat(), b.Max.Lon(), b.Max.Lat())
}
