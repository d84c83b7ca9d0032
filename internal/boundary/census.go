// Waypoint - Delivery Network Simulation and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package boundary

import "github.com/tomtom215/waypoint/internal/classify"

// census2008 holds the 2008 census population of the 48 historical wilayas.
// Datasets that carry a population property take precedence.
var census2008 = map[string]int{
	"Adrar":              402197,
	"Chlef":              1002088,
	"Laghouat":           455602,
	"Oum El Bouaghi":     621612,
	"Batna":              1119791,
	"Béjaïa":             912577,
	"Biskra":             721356,
	"Béchar":             270061,
	"Blida":              1002937,
	"Bouira":             695583,
	"Tamanrasset":        176637,
	"Tébessa":            648703,
	"Tlemcen":            949135,
	"Tiaret":             846823,
	"Tizi Ouzou":         1127607,
	"Alger":              2988145,
	"Djelfa":             1092184,
	"Jijel":              636948,
	"Sétif":              1489979,
	"Saïda":              330641,
	"Skikda":             898680,
	"Sidi Bel Abbès":     604744,
	"Annaba":             609499,
	"Guelma":             482430,
	"Constantine":        938475,
	"Médéa":              819932,
	"Mostaganem":         737118,
	"M'Sila":             990591,
	"Mascara":            784073,
	"Ouargla":            558558,
	"Oran":               1454078,
	"El Bayadh":          228624,
	"Illizi":             52333,
	"Bordj Bou Arréridj": 628475,
	"Boumerdès":          802083,
	"El Tarf":            408414,
	"Tindouf":            49149,
	"Tissemsilt":         294476,
	"El Oued":            647548,
	"Khenchela":          386683,
	"Souk Ahras":         438127,
	"Tipaza":             591010,
	"Mila":               766886,
	"Aïn Defla":          766013,
	"Naâma":              192891,
	"Aïn Témouchent":     371239,
	"Ghardaïa":           363598,
	"Relizane":           726180,
}

var censusIndex = func() map[string]int {
	idx := make(map[string]int, len(census2008))
	for name, pop := range census2008 {
		idx[classify.NameKey(name)] = pop
	}
	return idx
}()

// CensusPopulation returns the built-in population for a wilaya name.
func CensusPopulation(name string) (int, bool) {
	pop, ok := censusIndex[classify.NameKey(name)]
	return pop, ok
}
