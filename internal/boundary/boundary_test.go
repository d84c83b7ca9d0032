// Waypoint - Delivery Network Simulation and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package boundary

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/paulmach/orb"

	"github.com/tomtom215/waypoint/internal/classify"
)

func loadFixture(t *testing.T) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", "regions.geojson"))
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	return data
}

func TestParseFixture(t *testing.T) {
	t.Parallel()

	coll, err := Parse(loadFixture(t), ParseOptions{DefaultPopulation: 50000})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if coll.Len() != 5 {
		t.Fatalf("Len() = %d, want 5", coll.Len())
	}

	// Sorted by name.
	names := []string{}
	for _, r := range coll.Regions() {
		names = append(names, r.Name)
	}
	want := []string{"Alger", "Ghardaïa", "Oran", "Tamanrasset", "Timimoun"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("Regions() order = %v, want %v", names, want)
		}
	}

	tests := []struct {
		lookup string
		pop    int
		zone   classify.Zone
	}{
		{"alger", 2988145, classify.ZoneNorth},      // census
		{"GHARDAIA", 400000, classify.ZoneSouth},    // property wins
		{"Timimoun", 50000, classify.ZoneSouth},     // default
		{"Tamanrasset", 176637, classify.ZoneSouth}, // census
	}
	for _, tt := range tests {
		r, ok := coll.Region(tt.lookup)
		if !ok {
			t.Errorf("Region(%q) not found", tt.lookup)
			continue
		}
		if r.Population != tt.pop {
			t.Errorf("%s population = %d, want %d", r.Name, r.Population, tt.pop)
		}
		if r.Zone != tt.zone {
			t.Errorf("%s zone = %s, want %s", r.Name, r.Zone, tt.zone)
		}
	}
}

func TestParseDropsUnknownWithoutDefault(t *testing.T) {
	t.Parallel()

	coll, err := Parse(loadFixture(t), ParseOptions{})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if _, ok := coll.Region("Timimoun"); ok {
		t.Error("Timimoun has no population source and should be dropped")
	}
	if coll.Len() != 4 {
		t.Errorf("Len() = %d, want 4", coll.Len())
	}
}

func TestRegionContains(t *testing.T) {
	t.Parallel()

	coll, err := Parse(loadFixture(t), ParseOptions{DefaultPopulation: 1})
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		region string
		pt     orb.Point
		want   bool
	}{
		{"Alger", orb.Point{3.0, 36.6}, true},
		{"Alger", orb.Point{3.5, 36.6}, false},
		{"Oran", orb.Point{-0.9, 35.5}, true},
		{"Oran", orb.Point{-0.6, 35.65}, false}, // inside the hole
		{"Tamanrasset", orb.Point{5.0, 22.0}, true},
		{"Tamanrasset", orb.Point{8.5, 19.5}, true}, // second polygon
		{"Tamanrasset", orb.Point{7.0, 20.5}, false},
		{"Ghardaïa", orb.Point{3.75, 31.5}, true},
		{"Ghardaïa", orb.Point{3.1, 32.8}, false}, // in bbox, outside triangle
	}
	for _, tt := range tests {
		r, _ := coll.Region(tt.region)
		if got := r.Contains(tt.pt); got != tt.want {
			t.Errorf("%s.Contains(%v) = %v, want %v", tt.region, tt.pt, got, tt.want)
		}
	}
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"not json":       `{{{`,
		"empty":          `{"type":"FeatureCollection","features":[]}`,
		"point geometry": `{"type":"FeatureCollection","features":[{"type":"Feature","properties":{"name":"Alger"},"geometry":{"type":"Point","coordinates":[3,36]}}]}`,
		"missing name":   `{"type":"FeatureCollection","features":[{"type":"Feature","properties":{},"geometry":{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,0]]]}}]}`,
	}
	for name, payload := range tests {
		if _, err := Parse([]byte(payload), ParseOptions{DefaultPopulation: 1}); !errors.Is(err, ErrDataUnavailable) {
			t.Errorf("%s: err = %v, want ErrDataUnavailable", name, err)
		}
	}
}

func TestParseMergesDuplicateNames(t *testing.T) {
	t.Parallel()

	payload := `{"type":"FeatureCollection","features":[
		{"type":"Feature","properties":{"name":"Oran"},"geometry":{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,1],[0,0]]]}},
		{"type":"Feature","properties":{"name":"ORAN"},"geometry":{"type":"Polygon","coordinates":[[[5,5],[6,5],[6,6],[5,6],[5,5]]]}}
	]}`
	coll, err := Parse([]byte(payload), ParseOptions{})
	if err != nil {
		t.Fatal(err)
	}
	r, _ := coll.Region("Oran")
	if coll.Len() != 1 || len(r.Geometry) != 2 {
		t.Fatalf("expected one region with two polygons, got %d regions, %d polygons", coll.Len(), len(r.Geometry))
	}
	if !r.Contains(orb.Point{5.5, 5.5}) {
		t.Error("merged polygon should be searchable")
	}
}

type countingSource struct {
	data  []byte
	err   error
	calls atomic.Int32
	delay time.Duration
}

func (s *countingSource) Fetch(ctx context.Context) ([]byte, error) {
	s.calls.Add(1)
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return s.data, s.err
}

func (s *countingSource) Name() string { return "counting" }

func TestLoaderCachesAndDeduplicates(t *testing.T) {
	t.Parallel()

	src := &countingSource{data: loadFixture(t), delay: 20 * time.Millisecond}
	l := NewLoader(src, Options{FetchTimeout: time.Second, ParseOptions: ParseOptions{DefaultPopulation: 1}})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := l.Load(context.Background()); err != nil {
				t.Errorf("Load() error = %v", err)
			}
		}()
	}
	wg.Wait()

	if _, err := l.Load(context.Background()); err != nil {
		t.Fatal(err)
	}
	if n := src.calls.Load(); n != 1 {
		t.Errorf("source fetched %d times, want 1", n)
	}

	l.Reset()
	if _, ok := l.Cached(); ok {
		t.Error("Reset should drop the cached collection")
	}
	if _, err := l.Load(context.Background()); err != nil {
		t.Fatal(err)
	}
	if n := src.calls.Load(); n != 2 {
		t.Errorf("source fetched %d times after Reset, want 2", n)
	}
}

func TestLoaderFailureIsNotCached(t *testing.T) {
	t.Parallel()

	src := &countingSource{err: errors.New("disk on fire")}
	l := NewLoader(src, Options{})

	_, err := l.Load(context.Background())
	if !errors.Is(err, ErrDataUnavailable) {
		t.Fatalf("err = %v, want ErrDataUnavailable", err)
	}

	src.err = nil
	src.data = loadFixture(t)
	if _, err := l.Load(context.Background()); err != nil {
		t.Fatalf("retry should succeed, got %v", err)
	}
}

func TestLoaderFetchTimeout(t *testing.T) {
	t.Parallel()

	src := &countingSource{data: loadFixture(t), delay: time.Second}
	l := NewLoader(src, Options{FetchTimeout: 10 * time.Millisecond})

	_, err := l.Load(context.Background())
	if !errors.Is(err, ErrDataUnavailable) || !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v, want ErrDataUnavailable wrapping DeadlineExceeded", err)
	}
}

func TestLoaderCallerCancel(t *testing.T) {
	t.Parallel()

	src := &countingSource{data: loadFixture(t), delay: 200 * time.Millisecond}
	l := NewLoader(src, Options{ParseOptions: ParseOptions{DefaultPopulation: 1}})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := l.Load(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestHTTPSource(t *testing.T) {
	t.Parallel()

	fixture := loadFixture(t)
	var fail atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail.Load() {
			http.Error(w, "nope", http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "application/geo+json")
		_, _ = w.Write(fixture)
	}))
	defer srv.Close()

	src := NewHTTPSource(srv.URL, HTTPOptions{MaxFailures: 2, OpenTimeout: time.Minute})
	data, err := src.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if len(data) != len(fixture) {
		t.Errorf("got %d bytes, want %d", len(data), len(fixture))
	}

	fail.Store(true)
	for i := 0; i < 2; i++ {
		if _, err := src.Fetch(context.Background()); err == nil {
			t.Fatal("expected failure on 502")
		}
	}
	// Breaker is now open; the server is not consulted.
	fail.Store(false)
	if _, err := src.Fetch(context.Background()); err == nil {
		t.Fatal("expected open breaker to reject the request")
	}
}

func TestFileSourceAndConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "b.geojson")
	if err := os.WriteFile(path, loadFixture(t), 0o600); err != nil {
		t.Fatal(err)
	}
	src := FileSource{Path: path}
	if _, err := src.Fetch(context.Background()); err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if _, err := (FileSource{Path: filepath.Join(dir, "missing")}).Fetch(context.Background()); err == nil {
		t.Error("expected error for missing file")
	}
}

// The process-wide loader is shared state, so this test is not parallel.
func TestInitReset(t *testing.T) {
	Reset()
	if _, err := Load(context.Background()); !errors.Is(err, ErrDataUnavailable) {
		t.Fatalf("Load before Init: err = %v", err)
	}

	Init(BytesSource(loadFixture(t)), Options{ParseOptions: ParseOptions{DefaultPopulation: 1}})
	defer Reset()

	coll, err := Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if coll.Len() != 5 {
		t.Errorf("Len() = %d", coll.Len())
	}
	if _, ok := Default(); !ok {
		t.Error("Default() should report the installed loader")
	}

	Reset()
	if _, ok := Default(); ok {
		t.Error("Reset should remove the loader")
	}
}

func TestCensusPopulation(t *testing.T) {
	t.Parallel()

	if pop, ok := CensusPopulation("SETIF"); !ok || pop != 1489979 {
		t.Errorf("CensusPopulation(SETIF) = %d, %v", pop, ok)
	}
	if _, ok := CensusPopulation("Atlantis"); ok {
		t.Error("unknown wilaya should not resolve")
	}
	if len(census2008) != 48 {
		t.Errorf("census table has %d wilayas, want 48", len(census2008))
	}
}
