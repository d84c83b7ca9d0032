// Waypoint - Delivery Network Simulation and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

// Package validation provides struct validation using go-playground/validator v10.
//
// A single validator instance is shared process-wide; it caches struct
// metadata and carries the custom tags Waypoint needs:
//
//	delivery_status  value is one of normal, warning, alert
//	bbox             "minLon,minLat,maxLon,maxLat" with min <= max and valid ranges
//
// Failures come back as Errors, one FieldError per failed check, and
// convert to the API's VALIDATION_ERROR shape:
//
//	type zoomRequest struct {
//	    Zoom int `json:"zoom" validate:"min=0,max=22"`
//	}
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    respondAPIError(w, http.StatusBadRequest, verr.ToAPIError())
//	    return
//	}
package validation
