// Waypoint - Delivery Network Simulation and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package classify

import (
	"testing"

	"github.com/tomtom215/waypoint/internal/models"
)

// fixedRand always returns the same draw.
type fixedRand float64

func (f fixedRand) Float64() float64 { return float64(f) }

func TestNameKey(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"Béjaïa":             "bejaia",
		"BEJAIA":             "bejaia",
		"Bougie":             "bejaia",
		"M'Sila":             "msila",
		"Bordj Bou Arréridj": "bordjbouarreridj",
		"Tizi-Ouzou":         "tiziouzou",
		"Algiers":            "alger",
		"  Naâma ":           "naama",
	}
	for in, want := range tests {
		if got := NameKey(in); got != want {
			t.Errorf("NameKey(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		want Zone
	}{
		{"Alger", ZoneNorth},
		{"Algiers", ZoneNorth},
		{"Tizi Ouzou", ZoneNorth},
		{"Ain Temouchent", ZoneNorth},
		{"Setif", ZoneCenter},
		{"M'Sila", ZoneCenter},
		{"Djelfa", ZoneCenter},
		{"Tamanrasset", ZoneSouth},
		{"Illizi", ZoneSouth},
		{"Nowhere", ZoneSouth},
		{"", ZoneSouth},
	}
	for _, tt := range tests {
		if got := Classify(tt.name); got != tt.want {
			t.Errorf("Classify(%q) = %s, want %s", tt.name, got, tt.want)
		}
	}
}

func TestWeightedChoice(t *testing.T) {
	t.Parallel()

	choices := []Weighted[string]{
		{Value: "a", Weight: 1},
		{Value: "skip", Weight: 0},
		{Value: "b", Weight: 3},
	}
	tests := []struct {
		draw float64
		want string
	}{
		{0, "a"},
		{0.249, "a"},
		{0.25, "b"},
		{0.9999, "b"},
	}
	for _, tt := range tests {
		if got := WeightedChoice(fixedRand(tt.draw), choices); got != tt.want {
			t.Errorf("draw %v: got %q, want %q", tt.draw, got, tt.want)
		}
	}
}

func TestDrawStatusThresholds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		draw float64
		want models.Status
	}{
		{0.0, models.StatusNormal},
		{0.69, models.StatusNormal},
		{0.71, models.StatusWarning},
		{0.89, models.StatusWarning},
		{0.91, models.StatusAlert},
	}
	for _, tt := range tests {
		if got := DrawStatus(fixedRand(tt.draw)); got != tt.want {
			t.Errorf("DrawStatus(%v) = %s, want %s", tt.draw, got, tt.want)
		}
	}
}

func TestDrawStatusDistribution(t *testing.T) {
	t.Parallel()

	rng := NewRand(2024, 1)
	const n = 20000
	counts := map[models.Status]int{}
	for i := 0; i < n; i++ {
		counts[DrawStatus(rng)]++
	}

	alert := float64(counts[models.StatusAlert]) / n
	warning := float64(counts[models.StatusWarning]) / n
	if alert < 0.08 || alert > 0.12 {
		t.Errorf("alert fraction %.3f outside [0.08, 0.12]", alert)
	}
	if warning < 0.18 || warning > 0.22 {
		t.Errorf("warning fraction %.3f outside [0.18, 0.22]", warning)
	}
}

func TestColorFor(t *testing.T) {
	t.Parallel()

	// 0.85 is below north's 0.9 threshold but above center's and south's.
	if got := ColorFor(ZoneNorth, fixedRand(0.85)); got != Palette[ZoneNorth].Dark {
		t.Errorf("north at 0.85 = %s, want dark", got)
	}
	if got := ColorFor(ZoneCenter, fixedRand(0.85)); got != Palette[ZoneCenter].Light {
		t.Errorf("center at 0.85 = %s, want light", got)
	}
	if got := ColorFor(ZoneSouth, fixedRand(0.05)); got != Palette[ZoneSouth].Dark {
		t.Errorf("south at 0.05 = %s, want dark", got)
	}
	if got := ColorFor(ZoneSouth, fixedRand(0.5)); got != Palette[ZoneSouth].Light {
		t.Errorf("south at 0.5 = %s, want light", got)
	}
	if got := ColorFor(Zone("east"), fixedRand(0.5)); got != Palette[ZoneSouth].Light {
		t.Errorf("unknown zone should fall back to south, got %s", got)
	}
}

func TestColorForDarkRates(t *testing.T) {
	t.Parallel()

	want := map[Zone]float64{ZoneNorth: 0.9, ZoneCenter: 0.5, ZoneSouth: 0.1}
	for zone, p := range want {
		rng := NewRand(7, uint64(len(zone)))
		const n = 10000
		dark := 0
		for i := 0; i < n; i++ {
			if IsDark(ColorFor(zone, rng)) {
				dark++
			}
		}
		got := float64(dark) / n
		if got < p-0.03 || got > p+0.03 {
			t.Errorf("%s dark rate %.3f, want about %.2f", zone, got, p)
		}
	}
}
