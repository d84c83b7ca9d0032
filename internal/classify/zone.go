// Waypoint - Delivery Network Simulation and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package classify

// Zone is a coarse north/center/south classification of a region.
type Zone string

const (
	ZoneNorth  Zone = "north"
	ZoneCenter Zone = "center"
	ZoneSouth  Zone = "south"
)

// Zones lists every zone.
var Zones = []Zone{ZoneNorth, ZoneCenter, ZoneSouth}

// northRegions are the coastal and Tell wilayas.
var northRegions = []string{
	"Alger", "Blida", "Boumerdès", "Tipaza", "Tizi Ouzou", "Béjaïa", "Jijel",
	"Skikda", "Annaba", "El Tarf", "Constantine", "Oran", "Mostaganem",
	"Aïn Témouchent", "Tlemcen", "Chlef",
}

// centerRegions are the High Plateaux and inner Tell wilayas.
var centerRegions = []string{
	"Sétif", "Batna", "Bordj Bou Arréridj", "M'Sila", "Djelfa", "Laghouat",
	"Tiaret", "Saïda", "Médéa", "Bouira", "Mila", "Khenchela", "Oum El Bouaghi",
	"Tébessa", "Souk Ahras", "Guelma", "Sidi Bel Abbès", "Mascara", "Relizane",
	"Aïn Defla", "Tissemsilt", "El Bayadh", "Naâma",
}

var zoneIndex = buildZoneIndex()

func buildZoneIndex() map[string]Zone {
	idx := make(map[string]Zone, len(northRegions)+len(centerRegions))
	for _, n := range northRegions {
		idx[NameKey(n)] = ZoneNorth
	}
	for _, n := range centerRegions {
		idx[NameKey(n)] = ZoneCenter
	}
	return idx
}

// Classify returns the zone of a region. Names found in neither the north
// nor the center list are south.
func Classify(regionName string) Zone {
	if z, ok := zoneIndex[NameKey(regionName)]; ok {
		return z
	}
	return ZoneSouth
}
