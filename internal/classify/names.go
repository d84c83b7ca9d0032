// Waypoint - Delivery Network Simulation and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package classify

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// aliases maps alternate spellings found in public boundary datasets to the
// key of the canonical wilaya name.
var aliases = map[string]string{
	"algiers":      "alger",
	"eldjazair":    "alger",
	"bougie":       "bejaia",
	"eltaref":      "eltarf",
	"tamanghasset": "tamanrasset",
	"tamenghest":   "tamanrasset",
	"wahran":       "oran",
}

// NameKey folds a region name to a comparison key: diacritics removed,
// lower-cased, and everything except letters and digits dropped.
func NameKey(name string) string {
	// transform.Chain keeps state, so each call builds its own.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, name)
	if err != nil {
		folded = name
	}

	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range strings.ToLower(folded) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	key := b.String()
	if canon, ok := aliases[key]; ok {
		return canon
	}
	return key
}
