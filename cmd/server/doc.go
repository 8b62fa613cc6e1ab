// Reliefmap - Humanitarian Coverage Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reliefmap

/*
Package main is the entry point for the Reliefmap server.

Reliefmap scores how well humanitarian aid covers each country and region
and recommends where additional projects would help most. The server keeps
the dataset in Badger, computes scores on demand and serves them over a JSON
API with a websocket channel for change notifications.

# Application Architecture

	RootSupervisor ("reliefmap")
	├── DataSupervisor ("data-layer")
	│   ├── store-gc        (Badger value log GC, on-disk stores only)
	│   ├── score-cache     (expired entry janitor)
	│   └── event-router    (dataset.changed -> cache eviction + broadcast)
	├── MessagingSupervisor ("messaging-layer")
	│   └── websocket-hub
	└── APISupervisor ("api-layer")
	    └── http-server

Startup order:

 1. Configuration (Koanf: defaults, config.yaml, environment)
 2. Logging (zerolog; slog bridge for suture and watermill)
 3. Dataset store, with the in-process event bus as its change notifier
 4. Coverage calculator, recommendation engine and score cache
 5. Dashboard service and dataset bootstrap (import dir or synthetic data)
 6. Websocket hub and event router
 7. HTTP router and server, then the supervisor tree

# Configuration

Common environment variables:

	HTTP_PORT            listen port (default 3858)
	STORE_PATH           Badger directory (default /data/reliefmap)
	STORE_IN_MEMORY      keep the dataset in memory only
	IMPORT_DIR           load countries/regions/orgs/aid_edges JSON on first start
	SEED_SYNTHETIC_DATA  generate the demo dataset when the store is empty
	STRICT_INTEGRITY     refuse to score a dataset with integrity violations
	CORS_ORIGINS         comma separated allowed origins
	LOG_LEVEL            trace, debug, info, warn or error

# Signal Handling

SIGINT and SIGTERM cancel the root context. The HTTP server drains in-flight
requests within SHUTDOWN_TIMEOUT, the websocket hub closes its clients, and
the event bus and store are closed once the tree has stopped.
*/
package main
