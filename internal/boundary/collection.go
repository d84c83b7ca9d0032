// Waypoint - Delivery Network Simulation and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package boundary

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"

	"github.com/tomtom215/waypoint/internal/classify"
)

// ErrDataUnavailable means the boundary dataset could not be fetched or
// parsed. Generation cannot proceed without it.
var ErrDataUnavailable = errors.New("boundary data unavailable")

// nameProperties are checked in order for a feature's region name.
var nameProperties = []string{"name", "NAME_1", "shapeName", "nom"}

// Region is one administrative unit with its boundary geometry.
type Region struct {
	Name       string
	Population int
	Zone       classify.Zone
	Geometry   orb.MultiPolygon
	Bound      orb.Bound
}

// Contains reports whether pt lies inside any polygon of the region,
// excluding holes.
func (r *Region) Contains(pt orb.Point) bool {
	if !r.Bound.Contains(pt) {
		return false
	}
	return planar.MultiPolygonContains(r.Geometry, pt)
}

// Collection is an immutable set of regions parsed from one dataset.
type Collection struct {
	regions  []*Region
	index    map[string]*Region
	raw      []byte
	loadedAt time.Time
}

// ParseOptions controls population resolution during Parse.
type ParseOptions struct {
	// DefaultPopulation applies to regions that have neither a population
	// property nor a census entry. Zero drops such regions instead.
	DefaultPopulation int
}

// Parse decodes a GeoJSON FeatureCollection. Every feature must have a
// name and a Polygon or MultiPolygon geometry; features sharing a name are
// merged into one region. Any malformed feature fails the whole parse.
func Parse(data []byte, opts ParseOptions) (*Collection, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("%w: decode feature collection: %w", ErrDataUnavailable, err)
	}
	if len(fc.Features) == 0 {
		return nil, fmt.Errorf("%w: feature collection is empty", ErrDataUnavailable)
	}

	c := &Collection{
		index:    make(map[string]*Region, len(fc.Features)),
		raw:      data,
		loadedAt: time.Now().UTC(),
	}

	for i, f := range fc.Features {
		name := featureName(f)
		if name == "" {
			return nil, fmt.Errorf("%w: feature %d has no name property", ErrDataUnavailable, i)
		}

		var mp orb.MultiPolygon
		switch g := f.Geometry.(type) {
		case orb.Polygon:
			mp = orb.MultiPolygon{g}
		case orb.MultiPolygon:
			mp = g
		default:
			return nil, fmt.Errorf("%w: feature %q has unsupported geometry %T", ErrDataUnavailable, name, f.Geometry)
		}
		if len(mp) == 0 {
			return nil, fmt.Errorf("%w: feature %q has empty geometry", ErrDataUnavailable, name)
		}

		key := classify.NameKey(name)
		if existing, ok := c.index[key]; ok {
			existing.Geometry = append(existing.Geometry, mp...)
			existing.Bound = existing.Geometry.Bound()
			continue
		}

		pop, ok := featurePopulation(f)
		if !ok {
			pop, ok = CensusPopulation(name)
		}
		if !ok {
			if opts.DefaultPopulation <= 0 {
				continue
			}
			pop = opts.DefaultPopulation
		}

		r := &Region{
			Name:       name,
			Population: pop,
			Zone:       classify.Classify(name),
			Geometry:   mp,
			Bound:      mp.Bound(),
		}
		c.index[key] = r
		c.regions = append(c.regions, r)
	}

	if len(c.regions) == 0 {
		return nil, fmt.Errorf("%w: no region has a known population", ErrDataUnavailable)
	}

	sort.Slice(c.regions, func(i, j int) bool { return c.regions[i].Name < c.regions[j].Name })
	return c, nil
}

func featureName(f *geojson.Feature) string {
	for _, key := range nameProperties {
		if s, ok := f.Properties[key].(string); ok {
			if s = strings.TrimSpace(s); s != "" {
				return s
			}
		}
	}
	return ""
}

func featurePopulation(f *geojson.Feature) (int, bool) {
	v, ok := f.Properties["population"].(float64)
	if !ok || v <= 0 || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false
	}
	return int(v), true
}

// Regions returns every region ordered by name. The slice must not be modified.
func (c *Collection) Regions() []*Region {
	return c.regions
}

// Region looks a region up by name, ignoring case and diacritics.
func (c *Collection) Region(name string) (*Region, bool) {
	r, ok := c.index[classify.NameKey(name)]
	return r, ok
}

// Len returns the number of regions.
func (c *Collection) Len() int {
	return len(c.regions)
}

// Raw returns the dataset bytes as loaded, for passthrough to map clients.
func (c *Collection) Raw() []byte {
	return c.raw
}

// LoadedAt is when the dataset was parsed.
func (c *Collection) LoadedAt() time.Time {
	return c.loadedAt
}

// Bound returns the bounding box of all regions.
func (c *Collection) Bound() orb.Bound {
	if len(c.regions) == 0 {
		return orb.Bound{}
	}
	b := c.regions[0].Bound
	for _, r := range c.regions[1:] {
		b = b.Union(r.Bound)
	}
	return b
}
