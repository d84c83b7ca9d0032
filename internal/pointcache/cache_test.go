// Waypoint - Delivery Network Simulation and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package pointcache

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/waypoint/internal/kvstore"
	"github.com/tomtom215/waypoint/internal/logging"
	"github.com/tomtom215/waypoint/internal/metrics"
	"github.com/tomtom215/waypoint/internal/models"
)

func samplePoints() []models.DeliveryPoint {
	return []models.DeliveryPoint{
		{Position: models.Position{Lat: 36.7538, Lon: 3.0588}, Region: "Alger", Status: models.StatusNormal, Color: "#1e3a8a"},
		{Position: models.Position{Lat: 35.6971, Lon: -0.6308}, Region: "Oran", Status: models.StatusWarning, Color: "#93c5fd"},
		{Position: models.Position{Lat: 22.785, Lon: 5.5228}, Region: "Tamanrasset", Status: models.StatusAlert, Color: "#7f1d1d"},
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	c := New(kvstore.NewMemory(), "waypoint", "points")

	if c.Key() != "waypoint:points" {
		t.Fatalf("Key() = %q", c.Key())
	}

	generated := time.Date(2026, 10, 17, 9, 30, 0, 0, time.UTC)
	in := &Record{RunID: "run-1", GeneratedAt: generated, Points: samplePoints()}
	if err := c.Save(ctx, in); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	out, err := c.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if out.RunID != "run-1" || !out.GeneratedAt.Equal(generated) {
		t.Errorf("metadata = %q %v", out.RunID, out.GeneratedAt)
	}
	if len(out.Points) != len(in.Points) {
		t.Fatalf("len = %d, want %d", len(out.Points), len(in.Points))
	}
	for i := range in.Points {
		if out.Points[i] != in.Points[i] {
			t.Errorf("point %d = %+v, want %+v", i, out.Points[i], in.Points[i])
		}
	}
}

func TestLoadAbsent(t *testing.T) {
	t.Parallel()
	rec, err := New(kvstore.NewMemory(), "", "points").Load(context.Background())
	if rec != nil || err != nil {
		t.Errorf("Load() = %v, %v; want nil, nil", rec, err)
	}
}

const oneMissingPosition = `{"run_id":"r","generated_at":"2026-10-17T00:00:00Z","points":[
 {"position":{"lat":36.7,"lon":3.05},"region":"Alger","status":"normal","color":"#1e3a8a"},
 {"region":"Oran","status":"alert","color":"#93c5fd"},
 {"position":{"lat":22.7,"lon":5.5},"region":"Tamanrasset","status":"warning","color":"#fca5a5"}
]}`

func TestLoadDropsInvalidEntries(t *testing.T) {
	// Not parallel: swaps the global logger.
	var buf bytes.Buffer
	prev := logging.Logger()
	logging.SetLogger(logging.NewTestLogger(&buf))
	t.Cleanup(func() { logging.SetLogger(prev) })

	ctx := context.Background()
	store := kvstore.NewMemory()
	_ = store.Set(ctx, "points", []byte(oneMissingPosition))

	before := testutil.ToFloat64(metrics.PointCacheDropped)
	rec, err := New(store, "", "points").Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(rec.Points) != 2 {
		t.Fatalf("kept %d points, want 2", len(rec.Points))
	}
	if rec.Points[1].Region != "Tamanrasset" {
		t.Errorf("order not preserved: %+v", rec.Points)
	}
	if got := testutil.ToFloat64(metrics.PointCacheDropped) - before; got != 1 {
		t.Errorf("dropped counter delta = %v, want 1", got)
	}
	if n := strings.Count(buf.String(), "dropped invalid point cache entries"); n != 1 {
		t.Errorf("warning logged %d times, want 1\n%s", n, buf.String())
	}
	if !strings.Contains(buf.String(), `"dropped":1`) {
		t.Errorf("log missing dropped count: %s", buf.String())
	}
}

func TestLoadEntryValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		entry string
	}{
		{"missing lat", `{"position":{"lon":3},"region":"Alger","status":"normal","color":"#1e3a8a"}`},
		{"lat out of range", `{"position":{"lat":95,"lon":3},"region":"Alger","status":"normal","color":"#1e3a8a"}`},
		{"missing region", `{"position":{"lat":36,"lon":3},"status":"normal","color":"#1e3a8a"}`},
		{"unknown status", `{"position":{"lat":36,"lon":3},"region":"Alger","status":"late","color":"#1e3a8a"}`},
		{"missing status", `{"position":{"lat":36,"lon":3},"region":"Alger","color":"#1e3a8a"}`},
		{"missing color", `{"position":{"lat":36,"lon":3},"region":"Alger","status":"normal"}`},
		{"wrong type", `{"position":"36,3","region":"Alger","status":"normal","color":"#1e3a8a"}`},
		{"not an object", `42`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, ok := parseEntry([]byte(tt.entry)); ok {
				t.Errorf("parseEntry(%s) accepted invalid entry", tt.entry)
			}
		})
	}

	if _, ok := parseEntry([]byte(`{"position":{"lat":0,"lon":0},"region":"X","status":"alert","color":"#000"}`)); !ok {
		t.Error("zero coordinates must be accepted")
	}
}

func TestLoadAllInvalid(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := kvstore.NewMemory()
	_ = store.Set(ctx, "points", []byte(`{"points":[{"region":"A"},{"status":"alert"}]}`))

	rec, err := New(store, "", "points").Load(ctx)
	if rec != nil {
		t.Errorf("Load() = %+v, want nil", rec)
	}
	if !errors.Is(err, ErrCacheCorrupt) {
		t.Errorf("err = %v, want ErrCacheCorrupt", err)
	}
}

func TestLoadUnparseable(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	for _, payload := range []string{`{not json`, `{"run_id":"x"}`, `"points"`} {
		store := kvstore.NewMemory()
		_ = store.Set(ctx, "points", []byte(payload))
		rec, err := New(store, "", "points").Load(ctx)
		if rec != nil || !errors.Is(err, ErrCacheCorrupt) {
			t.Errorf("payload %q: Load() = %v, %v", payload, rec, err)
		}
	}
}

func TestLoadBareArray(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := kvstore.NewMemory()
	_ = store.Set(ctx, "points", []byte(`[{"position":{"lat":36.7,"lon":3.05},"region":"Alger","status":"normal","color":"#1e3a8a"}]`))

	c := New(store, "", "points")
	loadedAt := time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return loadedAt }

	rec, err := c.Load(ctx)
	if err != nil || len(rec.Points) != 1 {
		t.Fatalf("Load() = %+v, %v", rec, err)
	}
	if rec.RunID == "" {
		t.Error("bare array must be stamped with a run id")
	}
	if !rec.GeneratedAt.Equal(loadedAt) {
		t.Errorf("GeneratedAt = %v, want load time %v", rec.GeneratedAt, loadedAt)
	}
}

func TestLoadKeepsStoredProvenance(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	c := New(kvstore.NewMemory(), "", "points")
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	if err := c.Save(ctx, &Record{RunID: "run-1", GeneratedAt: at, Points: samplePoints()}); err != nil {
		t.Fatal(err)
	}
	rec, err := c.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if rec.RunID != "run-1" || !rec.GeneratedAt.Equal(at) {
		t.Errorf("provenance = %q %v", rec.RunID, rec.GeneratedAt)
	}
}

func TestInvalidateWritesBackup(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := kvstore.NewMemory()
	c := New(store, "waypoint", "points")
	c.now = func() time.Time { return time.Date(2026, 10, 17, 14, 5, 9, 0, time.UTC) }

	if err := c.Save(ctx, &Record{Points: samplePoints()}); err != nil {
		t.Fatal(err)
	}
	original, _ := store.Get(ctx, c.Key())

	backup, err := c.Invalidate(ctx)
	if err != nil {
		t.Fatalf("Invalidate() error = %v", err)
	}
	if backup != "waypoint:points:backup:2026-10-17T14-05-09Z" {
		t.Errorf("backup key = %q", backup)
	}
	if strings.Count(strings.TrimPrefix(backup, c.BackupPrefix()), ":") != 0 {
		t.Errorf("backup timestamp contains ':' : %q", backup)
	}

	if _, err := store.Get(ctx, c.Key()); !errors.Is(err, kvstore.ErrNotFound) {
		t.Errorf("primary key still present: %v", err)
	}
	keys, _ := c.Backups(ctx)
	if len(keys) != 1 || keys[0] != backup {
		t.Errorf("Backups() = %v", keys)
	}
	saved, _ := store.Get(ctx, backup)
	if !bytes.Equal(saved, original) {
		t.Error("backup does not match the invalidated value")
	}

	rec, err := c.Load(ctx)
	if rec != nil || err != nil {
		t.Errorf("Load() after Invalidate = %v, %v", rec, err)
	}
}

func TestInvalidateSameSecondKeepsEveryBackup(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := kvstore.NewMemory()
	c := New(store, "waypoint", "points")
	c.now = func() time.Time { return time.Date(2026, 10, 17, 3, 48, 34, 0, time.UTC) }

	var payloads [][]byte
	var keys []string
	for i, region := range []string{"Alger", "Oran", "Béjaïa"} {
		pts := samplePoints()
		pts[0].Region = region
		if err := c.Save(ctx, &Record{RunID: region, Points: pts}); err != nil {
			t.Fatal(err)
		}
		data, _ := store.Get(ctx, c.Key())
		payloads = append(payloads, data)

		backup, err := c.Invalidate(ctx)
		if err != nil {
			t.Fatalf("Invalidate() #%d error = %v", i+1, err)
		}
		keys = append(keys, backup)
	}

	want := []string{
		"waypoint:points:backup:2026-10-17T03-48-34Z",
		"waypoint:points:backup:2026-10-17T03-48-34Z-001",
		"waypoint:points:backup:2026-10-17T03-48-34Z-002",
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("backup #%d = %q, want %q", i+1, keys[i], want[i])
		}
		saved, _ := store.Get(ctx, want[i])
		if !bytes.Equal(saved, payloads[i]) {
			t.Errorf("backup #%d does not hold the point set it replaced", i+1)
		}
	}

	listed, err := c.Backups(ctx)
	if err != nil {
		t.Fatalf("Backups() error = %v", err)
	}
	if len(listed) != len(want) {
		t.Fatalf("Backups() = %v, want %d entries", listed, len(want))
	}
	for i := range want {
		if listed[i] != want[i] {
			t.Errorf("Backups()[%d] = %q, want %q", i, listed[i], want[i])
		}
	}
}

func TestInvalidateEmpty(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := kvstore.NewMemory()
	c := New(store, "", "points")

	backup, err := c.Invalidate(ctx)
	if backup != "" || err != nil {
		t.Errorf("Invalidate() = %q, %v", backup, err)
	}
	keys, _ := store.Keys(ctx, "")
	if len(keys) != 0 {
		t.Errorf("unexpected keys %v", keys)
	}
}

// failingStore fails Set for keys containing failOn.
type failingStore struct {
	kvstore.Store
	failOn string
}

func (f *failingStore) Set(ctx context.Context, key string, value []byte) error {
	if strings.Contains(key, f.failOn) {
		return errors.New("quota exceeded")
	}
	return f.Store.Set(ctx, key, value)
}

func TestSaveWriteFailure(t *testing.T) {
	t.Parallel()
	c := New(&failingStore{Store: kvstore.NewMemory(), failOn: "points"}, "", "points")

	err := c.Save(context.Background(), &Record{Points: samplePoints()})
	if !errors.Is(err, ErrStorageWriteFailed) {
		t.Errorf("err = %v, want ErrStorageWriteFailed", err)
	}
}

func TestInvalidateBackupFailureKeepsPrimary(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	mem := kvstore.NewMemory()
	c := New(&failingStore{Store: mem, failOn: "backup"}, "", "points")

	if err := c.Save(ctx, &Record{Points: samplePoints()}); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Invalidate(ctx); !errors.Is(err, ErrStorageWriteFailed) {
		t.Fatalf("err = %v, want ErrStorageWriteFailed", err)
	}
	if _, err := mem.Get(ctx, "points"); err != nil {
		t.Errorf("primary removed despite failed backup: %v", err)
	}
}
