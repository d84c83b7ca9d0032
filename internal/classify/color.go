// Waypoint - Delivery Network Simulation and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package classify

// Shades holds the two display colors of a zone.
type Shades struct {
	Dark  string
	Light string

	// DarkProbability is the chance a point renders in the dark shade.
	DarkProbability float64
}

// Palette maps each zone to its shades. South is the inverse of north.
var Palette = map[Zone]Shades{
	ZoneNorth:  {Dark: "#1e3a8a", Light: "#93c5fd", DarkProbability: 0.9},
	ZoneCenter: {Dark: "#92400e", Light: "#fcd34d", DarkProbability: 0.5},
	ZoneSouth:  {Dark: "#7f1d1d", Light: "#fca5a5", DarkProbability: 0.1},
}

// ColorFor draws the display color of one point in zone. The draw is per
// point, so points of the same region may differ in shade. Unknown zones use
// the south shades.
func ColorFor(zone Zone, rng Rand) string {
	shades, ok := Palette[zone]
	if !ok {
		shades = Palette[ZoneSouth]
	}
	return WeightedChoice(rng, []Weighted[string]{
		{Value: shades.Dark, Weight: shades.DarkProbability},
		{Value: shades.Light, Weight: 1 - shades.DarkProbability},
	})
}

// IsDark reports whether color is the dark shade of any zone.
func IsDark(color string) bool {
	for _, s := range Palette {
		if s.Dark == color {
			return true
		}
	}
	return false
}
