// Waypoint - Delivery Network Simulation and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package mapview

import (
	"sync"
	"time"

	"github.com/tomtom215/waypoint/internal/metrics"
	"github.com/tomtom215/waypoint/internal/models"
)

// SelectEvent is raised when a user selects a point.
type SelectEvent struct {
	PointID string        `json:"point_id"`
	Region  string        `json:"region"`
	Status  models.Status `json:"status"`
	At      time.Time     `json:"at"`
}

// ZoomEvent is raised when the map zoom changes.
type ZoomEvent struct {
	Zoom int       `json:"zoom"`
	At   time.Time `json:"at"`
}

// Listener receives map interaction events. Calls are synchronous and must
// not block.
type Listener interface {
	OnSelect(SelectEvent)
	OnZoom(ZoomEvent)
}

// ListenerFuncs adapts plain functions to Listener. Nil fields are skipped.
type ListenerFuncs struct {
	Select func(SelectEvent)
	Zoom   func(ZoomEvent)
}

func (l ListenerFuncs) OnSelect(e SelectEvent) {
	if l.Select != nil {
		l.Select(e)
	}
}

func (l ListenerFuncs) OnZoom(e ZoomEvent) {
	if l.Zoom != nil {
		l.Zoom(e)
	}
}

// Events fans interaction events out to registered listeners.
type Events struct {
	mu        sync.RWMutex
	listeners []Listener
	now       func() time.Time
}

// NewEvents creates an empty dispatcher.
func NewEvents() *Events {
	return &Events{now: time.Now}
}

// Subscribe registers l for all future events.
func (e *Events) Subscribe(l Listener) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.listeners = append(e.listeners, l)
}

func (e *Events) snapshot() []Listener {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return append([]Listener(nil), e.listeners...)
}

// Select raises a selection event for p.
func (e *Events) Select(p models.DeliveryPoint) SelectEvent {
	ev := SelectEvent{PointID: p.ID(), Region: p.Region, Status: p.Status, At: e.now().UTC()}
	metrics.MapEvents.WithLabelValues("select").Inc()
	for _, l := range e.snapshot() {
		l.OnSelect(ev)
	}
	return ev
}

// Zoom raises a zoom event. The level is clamped to [0, MaxZoom].
func (e *Events) Zoom(zoom int) ZoomEvent {
	ev := ZoomEvent{Zoom: min(max(zoom, 0), MaxZoom), At: e.now().UTC()}
	metrics.MapEvents.WithLabelValues("zoom").Inc()
	for _, l := range e.snapshot() {
		l.OnZoom(ev)
	}
	return ev
}
