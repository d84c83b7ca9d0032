// Waypoint - Delivery Network Simulation and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package boundary

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/waypoint/internal/config"
)

// maxDatasetBytes bounds the size of a fetched dataset.
const maxDatasetBytes = 64 << 20

// Source fetches the raw boundary dataset.
type Source interface {
	Fetch(ctx context.Context) ([]byte, error)
	Name() string
}

// FileSource reads the dataset from a local file.
type FileSource struct {
	Path string
}

// Fetch reads the whole file.
func (s FileSource) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.ReadFile(s.Path)
}

// Name identifies the source in logs and metrics.
func (s FileSource) Name() string { return "file" }

// BytesSource serves an in-memory dataset.
type BytesSource []byte

// Fetch returns the bytes.
func (s BytesSource) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s, nil
}

// Name identifies the source in logs and metrics.
func (s BytesSource) Name() string { return "bytes" }

// HTTPOptions configures an HTTPSource.
type HTTPOptions struct {
	Client      *http.Client
	MaxFailures uint32
	OpenTimeout time.Duration
}

// HTTPSource downloads the dataset behind a circuit breaker.
type HTTPSource struct {
	url     string
	client  *http.Client
	breaker *gobreaker.CircuitBreaker[[]byte]
}

// NewHTTPSource creates a source for url.
func NewHTTPSource(url string, opts HTTPOptions) *HTTPSource {
	client := opts.Client
	if client == nil {
		client = &http.Client{}
	}
	return &HTTPSource{
		url:     url,
		client:  client,
		breaker: newBreaker("boundary-fetch", opts.MaxFailures, opts.OpenTimeout),
	}
}

// Fetch downloads the dataset. Non-200 responses count as failures.
func (s *HTTPSource) Fetch(ctx context.Context) ([]byte, error) {
	return executeBreaker(s.breaker, func() ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, http.NoBody)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/geo+json, application/json")

		resp, err := s.client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("GET %s: unexpected status %d", s.url, resp.StatusCode)
		}
		data, err := io.ReadAll(io.LimitReader(resp.Body, maxDatasetBytes+1))
		if err != nil {
			return nil, err
		}
		if len(data) > maxDatasetBytes {
			return nil, fmt.Errorf("GET %s: dataset exceeds %d bytes", s.url, maxDatasetBytes)
		}
		return data, nil
	})
}

// Name identifies the source in logs and metrics.
func (s *HTTPSource) Name() string { return "http" }

// NewSourceFromConfig picks the HTTP source when a URL is configured and
// the file source otherwise.
func NewSourceFromConfig(cfg config.BoundariesConfig) Source {
	if cfg.URL != "" {
		return NewHTTPSource(cfg.URL, HTTPOptions{
			MaxFailures: cfg.BreakerMaxFailures,
			OpenTimeout: cfg.BreakerTimeout,
		})
	}
	return FileSource{Path: cfg.Path}
}
