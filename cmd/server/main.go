// Reliefmap - Humanitarian Coverage Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reliefmap

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/ThreeDotsLabs/watermill"

	"github.com/tomtom215/reliefmap/internal/api"
	"github.com/tomtom215/reliefmap/internal/cache"
	"github.com/tomtom215/reliefmap/internal/config"
	"github.com/tomtom215/reliefmap/internal/coverage"
	"github.com/tomtom215/reliefmap/internal/dashboard"
	"github.com/tomtom215/reliefmap/internal/events"
	"github.com/tomtom215/reliefmap/internal/logging"
	"github.com/tomtom215/reliefmap/internal/metrics"
	"github.com/tomtom215/reliefmap/internal/recommend"
	"github.com/tomtom215/reliefmap/internal/store"
	"github.com/tomtom215/reliefmap/internal/supervisor"
	"github.com/tomtom215/reliefmap/internal/supervisor/services"
	ws "github.com/tomtom215/reliefmap/internal/websocket"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

//nolint:gocyclo // Main initialization function with sequential setup steps
func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})
	metrics.SetAppInfo(version, runtime.Version())

	logging.Info().
		Str("version", version).
		Str("environment", cfg.Server.Environment).
		Str("store_path", cfg.Store.Path).
		Bool("store_in_memory", cfg.Store.InMemory).
		Bool("strict_integrity", cfg.Store.StrictIntegrity).
		Msg("Starting Reliefmap")

	// Event bus first: the store publishes to it on every write.
	bus := events.NewBus(cfg.Events.BufferSize, watermill.NewSlogLogger(logging.NewSlogLogger("events")))

	st, err := store.Open(store.Config{
		Path:        cfg.Store.Path,
		InMemory:    cfg.Store.InMemory,
		Compression: true,
	}, logging.WithComponent("store"))
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open dataset store")
	}
	st.SetNotifier(bus)

	calc := coverage.NewCalculator(cfg.CoverageEngineConfig())
	engine, err := recommend.NewEngine(cfg.RecommendEngineConfig(), calc, logging.WithComponent("recommend"))
	if err != nil {
		closeStore(st)
		logging.Fatal().Err(err).Msg("Failed to create recommendation engine")
	}

	var scoreCache *cache.Cache
	if cfg.Cache.Enabled {
		scoreCache = cache.New(cfg.Cache.TTL)
	}

	svc := dashboard.NewService(st, calc, engine, scoreCache,
		dashboard.Config{StrictIntegrity: cfg.Store.StrictIntegrity},
		logging.WithComponent("dashboard"))

	bootCtx, bootCancel := context.WithTimeout(context.Background(), 2*time.Minute)
	source, err := svc.Bootstrap(bootCtx, dashboard.SeedConfig{
		ImportDir: cfg.Store.ImportDir,
		Synthetic: cfg.Store.SeedSynthetic,
		Seed:      cfg.Store.SeedValue,
	})
	bootCancel()
	if err != nil {
		closeStore(st)
		logging.Fatal().Err(err).Msg("Failed to bootstrap dataset")
	}
	logging.Info().Str("source", source).Uint64("dataset_version", svc.Version()).Msg("Dataset ready")

	wsHub := ws.NewHub(logging.WithComponent("websocket"))

	// A nil *cache.Cache must not reach the handler as a non-nil interface.
	var invalidator events.Invalidator
	if scoreCache != nil {
		invalidator = scoreCache
	}
	routerCfg := events.DefaultRouterConfig()
	if cfg.Events.CloseTimeout > 0 {
		routerCfg.CloseTimeout = cfg.Events.CloseTimeout
	}
	eventRouter := events.NewRouter(routerCfg, bus.Subscriber(), watermill.NewSlogLogger(logging.NewSlogLogger("event-router")))
	events.NewInvalidationHandler(invalidator, wsHub, svc).Register(eventRouter)

	mwCfg := api.DefaultChiMiddlewareConfig()
	mwCfg.CORSAllowedOrigins = cfg.Security.CORSOrigins
	mwCfg.RateLimitRequests = cfg.Security.RateLimitReqs
	mwCfg.RateLimitWindow = cfg.Security.RateLimitWindow
	mwCfg.RateLimitDisabled = cfg.Security.RateLimitDisabled
	chiMw := api.NewChiMiddleware(mwCfg)

	handler := api.NewHandler(svc, wsHub, chiMw.AllowedOrigins())
	router := api.NewRouter(handler, chiMw, logging.WithComponent("api"))

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  60 * time.Second,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.TreeConfig{
		FailureThreshold: cfg.Supervisor.FailureThreshold,
		FailureDecay:     cfg.Supervisor.FailureDecay,
		FailureBackoff:   cfg.Supervisor.FailureBackoff,
		ShutdownTimeout:  cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		closeStore(st)
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	tree.AddDataService(store.NewGCService(st))
	if scoreCache != nil {
		tree.AddDataService(scoreCache)
	}
	tree.AddDataService(eventRouter)
	tree.AddMessagingService(wsHub)
	tree.AddAPIService(services.NewHTTPService(server, cfg.Server.ShutdownTimeout,
		logging.With().Str("addr", addr).Logger()))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logging.Info().Str("addr", addr).Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	// The tree stops on its own only when a service terminates it; a signal
	// cancels ctx and the tree drains every layer before sending.
	if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, u := range unstopped {
		logging.Warn().Str("service", u.Name).Msg("Service failed to stop within timeout")
	}

	if err := bus.Close(); err != nil {
		logging.Error().Err(err).Msg("Error closing event bus")
	}
	closeStore(st)
	logging.Info().Msg("Reliefmap stopped")
}

func closeStore(st *store.BadgerStore) {
	if err := st.Close(); err != nil {
		logging.Error().Err(err).Msg("Error closing dataset store")
	}
}
