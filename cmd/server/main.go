// Waypoint - Delivery Network Simulation and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/waypoint/internal/api"
	"github.com/tomtom215/waypoint/internal/boundary"
	"github.com/tomtom215/waypoint/internal/config"
	"github.com/tomtom215/waypoint/internal/generator"
	"github.com/tomtom215/waypoint/internal/kvstore"
	"github.com/tomtom215/waypoint/internal/logging"
	"github.com/tomtom215/waypoint/internal/mapview"
	"github.com/tomtom215/waypoint/internal/pointcache"
	"github.com/tomtom215/waypoint/internal/supervisor"
	"github.com/tomtom215/waypoint/internal/supervisor/services"
	ws "github.com/tomtom215/waypoint/internal/websocket"
)

func main() {
	if err := run(); err != nil {
		logging.Error().Err(err).Msg("Waypoint exited with error")
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		logging.Error().Err(err).Msg("Failed to load configuration")
		return err
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
		Output:    os.Stderr,
	})

	logging.Info().Msg("Starting Waypoint...")
	logging.Info().
		Str("addr", cfg.Server.Addr()).
		Str("store", cfg.Store.Backend).
		Int("budget", cfg.Generation.TotalBudget).
		Int("min_per_region", cfg.Generation.MinPerRegion).
		Msg("Configuration loaded")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	src := boundary.NewSourceFromConfig(cfg.Boundaries)
	loader := boundary.Init(src, boundary.Options{
		FetchTimeout: cfg.Boundaries.FetchTimeout,
		ParseOptions: boundary.ParseOptions{DefaultPopulation: cfg.Generation.DefaultPopulation},
	})
	logging.Info().Str("source", src.Name()).Msg("Boundary loader initialized")

	store, err := kvstore.Open(ctx, cfg.Store)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing point store")
		}
	}()
	logging.Info().Str("backend", cfg.Store.Backend).Msg("Point store opened")

	cache := pointcache.New(store, cfg.Store.Namespace, cfg.Store.Key)
	gen := generator.NewService(loader, cache, generator.OptionsFromConfig(cfg.Generation))

	view := mapview.New(cfg.MapView)
	hub := ws.NewHub(cfg.WebSocket)

	handler := api.NewHandler(gen, view, hub, cfg)
	gen.OnSnapshot(handler.OnSnapshot)
	view.Events().Subscribe(hub)
	hub.SetInbound(handler)

	router := api.NewRouter(handler, api.NewChiMiddleware(api.ChiMiddlewareConfigFrom(cfg.Security)))
	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       60 * time.Second,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureDecay:     30,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  cfg.Server.ShutdownTimeout + 5*time.Second,
	})
	if err != nil {
		return err
	}

	tree.AddDataService(services.NewWarmupService(gen, cfg.Generation.WarmupRetry))
	tree.AddMessagingService(services.NewWebSocketHubService(hub))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	logging.Info().Msg("Supervisor tree initialized")

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	var serveErr error
	select {
	case <-ctx.Done():
		logging.Info().Msg("Shutdown signal received, waiting for supervisor to finish...")
		serveErr = <-errCh
	case serveErr = <-errCh:
	}
	if serveErr != nil && !errors.Is(serveErr, context.Canceled) {
		logging.Error().Err(serveErr).Msg("Supervisor tree error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	logging.Info().Msg("Application stopped gracefully")
	return nil
}
