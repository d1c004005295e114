// Squadmatch - Player Compatibility Matching for Social Gaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/squadmatch

// Package main is the entry point for the Squadmatch server.
//
// Squadmatch computes pairwise player compatibility for social gaming
// platforms: questionnaire-driven archetype classification, candidate
// pool filtering over the social graph, and a multi-factor score with
// human-readable reasons.
//
// The server initializes components in the following order:
//
//  1. Configuration: Koanf v2 layered sources (defaults, config.yaml,
//     environment variables)
//  2. Storage: DuckDB tables for profiles, traits, schedules, libraries
//     and the social graph
//  3. Resilience: circuit breaker and rate limiter around repository
//     access
//  4. Result cache: BadgerDB TTL cache for computed matches
//  5. Events: Watermill transport (in-process channel, or NATS with an
//     optional embedded server)
//  6. HTTP API: Chi router under a suture supervisor tree
//
// The server handles graceful shutdown on SIGINT and SIGTERM: the
// supervisor drains the HTTP server, then events, cache and database
// close in reverse initialization order.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/squadmatch/internal/api"
	"github.com/tomtom215/squadmatch/internal/cache"
	"github.com/tomtom215/squadmatch/internal/config"
	"github.com/tomtom215/squadmatch/internal/events"
	"github.com/tomtom215/squadmatch/internal/logging"
	"github.com/tomtom215/squadmatch/internal/match"
	"github.com/tomtom215/squadmatch/internal/metrics"
	"github.com/tomtom215/squadmatch/internal/resilience"
	"github.com/tomtom215/squadmatch/internal/store"
	"github.com/tomtom215/squadmatch/internal/supervisor"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})
	metrics.SetAppInfo(version)

	logging.Info().
		Str("version", version).
		Str("db_path", cfg.Database.Path).
		Bool("cache_enabled", cfg.Cache.Enabled).
		Bool("nats_enabled", cfg.NATS.Enabled).
		Msg("Starting Squadmatch")

	db, err := store.New(&cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()

	if cfg.Database.SeedMockData {
		if err := db.SeedMockData(context.Background()); err != nil {
			logging.Fatal().Err(err).Msg("Failed to seed mock data")
		}
	}

	repos := resilience.Wrap(db.Repositories(), resilienceConfig(&cfg.Match))

	var resultCache *cache.ResultCache
	if cfg.Cache.Enabled {
		resultCache, err = cache.New(&cfg.Cache)
		if err != nil {
			logging.Fatal().Err(err).Msg("Failed to open result cache")
		}
		defer func() {
			if err := resultCache.Close(); err != nil {
				logging.Error().Err(err).Msg("Error closing result cache")
			}
		}()
	}

	transport, err := events.NewTransport(&cfg.NATS)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize event transport")
	}
	defer func() {
		if err := transport.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing event transport")
		}
	}()
	bus := events.NewBus(transport.Publisher, cfg.NATS.TopicPrefix)

	orchestrator := match.NewOrchestrator(repos, bus)
	orchestrator.SetBatchConcurrency(cfg.Match.BatchConcurrency)

	var apiCache api.ResultCache
	if resultCache != nil {
		apiCache = resultCache
	}
	handler := api.NewHandler(orchestrator, apiCache, db, db, cfg.API)
	router := api.NewRouter(handler, cfg.Security)

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	tree := supervisor.NewTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	tree.Add(supervisor.NewHTTPService(server, 10*time.Second))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logging.Info().Str("addr", server.Addr).Msg("HTTP server starting")
	if err := tree.Serve(ctx); err != nil && ctx.Err() == nil {
		logging.Error().Err(err).Msg("Supervisor tree failed")
		os.Exit(1)
	}
	logging.Info().Msg("Shutdown complete")
}

func resilienceConfig(cfg *config.MatchConfig) resilience.Config {
	rc := resilience.DefaultConfig()
	rc.BreakerEnabled = cfg.BreakerEnabled
	rc.RateLimit = cfg.RepositoryRateLimit
	return rc
}
