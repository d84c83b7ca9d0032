// Waypoint - Delivery Network Simulation and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package api

// DeliveriesRequest holds the query parameters of GET /deliveries.
//
// Fields:
//   - BBox: viewport "minLon,minLat,maxLon,maxLat"
//   - Q: substring of the point ID or region name
//   - Region: exact region name, ignoring case and diacritics
//   - Status: normal, warning or alert
type DeliveriesRequest struct {
	BBox   string `query:"bbox" validate:"omitempty,bbox"`
	Q      string `query:"q" validate:"max=64"`
	Region string `query:"region" validate:"max=64"`
	Status string `query:"status" validate:"omitempty,delivery_status"`
}

// ClustersRequest holds the query parameters of GET /deliveries/clusters.
type ClustersRequest struct {
	DeliveriesRequest
	Zoom int `query:"zoom" validate:"min=0,max=22"`
}

// SelectRequest is the body of POST /deliveries/select.
type SelectRequest struct {
	PointID string `json:"point_id" validate:"required,max=32"`
}

// ZoomRequest is the body of POST /map/zoom.
type ZoomRequest struct {
	Zoom *int `json:"zoom" validate:"required,min=0,max=22"`
}
