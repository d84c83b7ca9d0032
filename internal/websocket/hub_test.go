// Waypoint - Delivery Network Simulation and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package websocket

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/tomtom215/waypoint/internal/config"
	"github.com/tomtom215/waypoint/internal/logging"
	"github.com/tomtom215/waypoint/internal/mapview"
	"github.com/tomtom215/waypoint/internal/models"
)

//nolint:gochecknoinits // consistent logging for tests
func init() {
	logging.Init(logging.Config{
		Level:  "info",
		Format: "console",
		Output: io.Discard,
	})
}

// setupHub starts a hub that stops when the test ends.
func setupHub(t *testing.T, cfg config.WebSocketConfig) *Hub {
	t.Helper()
	hub := NewHub(cfg)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = hub.RunWithContext(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return hub
}

func createTestClient(hub *Hub, buffer int) *Client {
	return &Client{id: clientIDCounter.Add(1), hub: hub, send: make(chan Message, buffer), limiter: hub.newLimiter()}
}

// waitForClients polls until the hub has n clients.
func waitForClients(t *testing.T, hub *Hub, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for hub.GetClientCount() != n {
		if time.Now().After(deadline) {
			t.Fatalf("client count = %d, want %d", hub.GetClientCount(), n)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func receive(t *testing.T, ch <-chan Message) Message {
	t.Helper()
	select {
	case m := <-ch:
		return m
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for message")
		return Message{}
	}
}

func TestNewHubDefaults(t *testing.T) {
	t.Parallel()
	hub := NewHub(config.WebSocketConfig{})
	if hub.clients == nil || hub.broadcast == nil || hub.Register == nil || hub.Unregister == nil {
		t.Fatal("hub not initialized")
	}
	l := hub.newLimiter()
	for i := 0; i < 100; i++ {
		if !l.Allow() {
			t.Fatal("zero rate must mean unlimited")
		}
	}
}

func TestHubRegistrationAndBroadcast(t *testing.T) {
	t.Parallel()
	hub := setupHub(t, config.WebSocketConfig{})

	a := createTestClient(hub, 8)
	b := createTestClient(hub, 8)
	hub.Register <- a
	hub.Register <- b
	waitForClients(t, hub, 2)

	hub.OnZoom(mapview.ZoomEvent{Zoom: 6})
	for _, c := range []*Client{a, b} {
		m := receive(t, c.send)
		if m.Type != MessageTypeZoom {
			t.Errorf("type = %q, want zoom", m.Type)
		}
		if ev, ok := m.Data.(mapview.ZoomEvent); !ok || ev.Zoom != 6 {
			t.Errorf("data = %#v", m.Data)
		}
	}

	hub.Unregister <- a
	waitForClients(t, hub, 1)
	if _, ok := <-a.send; ok {
		t.Error("unregistered client's channel must be closed")
	}
}

func TestHubBroadcastSnapshot(t *testing.T) {
	t.Parallel()
	hub := setupHub(t, config.WebSocketConfig{})
	c := createTestClient(hub, 8)
	hub.Register <- c
	waitForClients(t, hub, 1)

	hub.BroadcastSnapshot(&models.Snapshot{
		RunID:       "run-9",
		Source:      models.SourceCache,
		GeneratedAt: time.Date(2026, 10, 17, 8, 0, 0, 0, time.UTC),
		Points: []models.DeliveryPoint{
			{Status: models.StatusAlert}, {Status: models.StatusNormal}, {Status: models.StatusNormal},
		},
	})
	m := receive(t, c.send)
	data, ok := m.Data.(SnapshotData)
	if m.Type != MessageTypeSnapshot || !ok {
		t.Fatalf("message = %#v", m)
	}
	if data.RunID != "run-9" || data.Points != 3 || data.ByStatus["normal"] != 2 || data.ByStatus["warning"] != 0 {
		t.Errorf("data = %+v", data)
	}
	if data.GeneratedAt != "2026-10-17T08:00:00Z" {
		t.Errorf("generated_at = %q", data.GeneratedAt)
	}

	hub.BroadcastSnapshot(nil)
	if m := receive(t, c.send); m.Type != MessageTypeCleared {
		t.Errorf("type = %q, want %s", m.Type, MessageTypeCleared)
	}
}

func TestHubDropsSlowClient(t *testing.T) {
	t.Parallel()
	hub := setupHub(t, config.WebSocketConfig{})
	slow := createTestClient(hub, 1)
	hub.Register <- slow
	waitForClients(t, hub, 1)

	hub.BroadcastJSON("one", nil)
	hub.BroadcastJSON("two", nil)
	waitForClients(t, hub, 0)
}

func TestHubRunWithContextClosesClients(t *testing.T) {
	t.Parallel()
	hub := NewHub(config.WebSocketConfig{})
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- hub.RunWithContext(ctx) }()

	c := createTestClient(hub, 1)
	hub.Register <- c
	waitForClients(t, hub, 1)

	cancel()
	select {
	case err := <-errCh:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("RunWithContext() = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("hub did not stop")
	}
	if hub.GetClientCount() != 0 {
		t.Error("clients not closed on shutdown")
	}
	if _, ok := <-c.send; ok {
		t.Error("client channel must be closed")
	}
}

func TestGetShutdownReason(t *testing.T) {
	t.Parallel()

	canceled, cancel := context.WithCancel(context.Background())
	cancel()
	if got := getShutdownReason(canceled); got != ShutdownReasonContextCanceled {
		t.Errorf("canceled: %q", got)
	}

	expired, cancel2 := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel2()
	if got := getShutdownReason(expired); got != ShutdownReasonContextDeadline {
		t.Errorf("deadline: %q", got)
	}
}

func TestMarshalMessage(t *testing.T) {
	t.Parallel()
	data, err := MarshalMessage(Message{Type: MessageTypeSelect, Data: mapview.SelectEvent{PointID: "1.0000,2.0000", Region: "Alger", Status: models.StatusAlert}})
	if err != nil {
		t.Fatal(err)
	}
	want := `{"type":"select","data":{"point_id":"1.0000,2.0000","region":"Alger","status":"alert","at":"0001-01-01T00:00:00Z"}}`
	if string(data) != want {
		t.Errorf("MarshalMessage() = %s", data)
	}
}
