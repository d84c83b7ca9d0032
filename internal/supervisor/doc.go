// Waypoint - Delivery Network Simulation and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

/*
Package supervisor provides process supervision for Waypoint using suture v4.

Long-running services are organized into three layers for failure isolation:

	RootSupervisor ("waypoint")
	├── DataSupervisor ("data-layer")
	│   └── WarmupService
	├── MessagingSupervisor ("messaging-layer")
	│   └── WebSocketHubService
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

A crashed service is restarted with backoff by its own layer. The warmup
service finishes once the first snapshot is published and is not restarted.

Supervisor events are logged through sutureslog on the slog adapter of the
logging package:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddDataService(services.NewWarmupService(gen, cfg.Generation.WarmupRetry))
	tree.AddMessagingService(services.NewWebSocketHubService(hub))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
	    logging.Error().Err(err).Msg("supervisor stopped")
	}

The service wrappers live in the services subpackage.
*/
package supervisor
