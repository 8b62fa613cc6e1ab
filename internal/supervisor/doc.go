// Reliefmap - Humanitarian Coverage Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reliefmap

/*
Package supervisor provides process supervision for Reliefmap using suture v4.

Every long-running component runs as a suture.Service inside a three layer
tree:

	RootSupervisor ("reliefmap")
	├── DataSupervisor ("data-layer")
	│   ├── store-gc
	│   ├── score-cache
	│   └── event-router
	├── MessagingSupervisor ("messaging-layer")
	│   └── websocket-hub
	└── APISupervisor ("api-layer")
	    └── http-server

Each layer counts failures independently. A crashing event router is
restarted inside the data layer while the HTTP server keeps answering from
the score cache.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddDataService(store.NewGCService(st))
	tree.AddMessagingService(hub)
	tree.AddAPIService(services.NewHTTPService(server, 10*time.Second, logger))

	errCh := tree.ServeBackground(ctx)
	<-errCh

# Failure Handling

Failures decay exponentially (FailureDecay seconds). Once the counter
passes FailureThreshold the layer waits FailureBackoff before the next
restart. Services return ctx.Err() on shutdown and suture.ErrDoNotRestart
when there is nothing to do (the GC service on an in-memory store).

Supervisor events are logged through sutureslog on top of the zerolog slog
bridge in internal/logging.
*/
package supervisor
