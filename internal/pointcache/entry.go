// Waypoint - Delivery Network Simulation and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package pointcache

import (
	"github.com/goccy/go-json"

	"github.com/tomtom215/waypoint/internal/models"
	"github.com/tomtom215/waypoint/internal/validation"
)

// storedPoint uses pointers so absent fields are distinguishable from
// zero values.
type storedPoint struct {
	Position *storedPosition `json:"position" validate:"required"`
	Region   string          `json:"region" validate:"required"`
	Status   string          `json:"status" validate:"required,delivery_status"`
	Color    string          `json:"color" validate:"required,hexcolor"`
}

type storedPosition struct {
	Lat *float64 `json:"lat" validate:"required,latitude"`
	Lon *float64 `json:"lon" validate:"required,longitude"`
}

func parseEntry(raw json.RawMessage) (models.DeliveryPoint, bool) {
	var sp storedPoint
	if err := json.Unmarshal(raw, &sp); err != nil {
		return models.DeliveryPoint{}, false
	}
	if verr := validation.ValidateStruct(&sp); verr != nil {
		return models.DeliveryPoint{}, false
	}
	return models.DeliveryPoint{
		Position: models.Position{Lat: *sp.Position.Lat, Lon: *sp.Position.Lon},
		Region:   sp.Region,
		Status:   models.Status(sp.Status),
		Color:    sp.Color,
	}, true
}
