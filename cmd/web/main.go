// Copyright (c) 2026 Vocaboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command web is the entry point for the Vocaboard portal server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Load the identity provider's public key.
//  4. Connect to Redis when configured.
//  5. Build the backend clients and wire the domain services.
//  6. Start the dashboard sweeper and the HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/taibuivan/vocaboard/internal/access"
	"github.com/taibuivan/vocaboard/internal/api"
	"github.com/taibuivan/vocaboard/internal/cms"
	"github.com/taibuivan/vocaboard/internal/dashboard"
	"github.com/taibuivan/vocaboard/internal/generate"
	"github.com/taibuivan/vocaboard/internal/learning/bookmark"
	"github.com/taibuivan/vocaboard/internal/learning/category"
	"github.com/taibuivan/vocaboard/internal/learning/exercise"
	"github.com/taibuivan/vocaboard/internal/learning/roadmap"
	"github.com/taibuivan/vocaboard/internal/learning/topic"
	"github.com/taibuivan/vocaboard/internal/platform/apiclient"
	"github.com/taibuivan/vocaboard/internal/platform/config"
	"github.com/taibuivan/vocaboard/internal/platform/constants"
	redisstore "github.com/taibuivan/vocaboard/internal/platform/redis"
	"github.com/taibuivan/vocaboard/internal/platform/sec"
	"github.com/taibuivan/vocaboard/internal/users/member"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	log := newLogger(slog.LevelInfo)
	slog.SetDefault(log)

	log.Info("service_initializing", slog.String("version", constants.AppVersion))

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.Bool("cms", cfg.HasCMS()),
		slog.Bool("redis", cfg.RedisURL != ""),
	)

	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. Identity Provider ──────────────────────────────────────────────
	verifier, err := sec.NewTokenVerifier(cfg.IdentityPublicKeyPath, cfg.IdentityIssuer)
	must(log, err, "load identity provider key")

	// ── 4. Redis (optional) ───────────────────────────────────────────────
	var (
		rdb          *goredis.Client
		roleMemo     access.RoleMemo = access.NewMemoryMemo()
		contentCache cms.Cache
		checkCache   func(ctx context.Context) error
	)
	if cfg.RedisURL != "" {
		rdb, err = redisstore.NewClient(startupCtx, redisstore.Settings{URL: cfg.RedisURL, PoolSize: cfg.RedisPoolSize}, log)
		must(log, err, "connect to redis")
		defer func() {
			log.Info("closing_redis_client")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis_close_failed", slog.Any("error", cerr))
			}
		}()

		roleMemo = access.NewRedisMemo(rdb)
		contentCache = cms.NewRedisCache(rdb)
		checkCache = redisstore.Check(rdb)
	}

	// ── 5. Backend Clients ────────────────────────────────────────────────
	backend, err := apiclient.New(cfg.APIBaseURL, cfg.APIVersion,
		apiclient.WithTimeout(cfg.UpstreamTimeout),
		apiclient.WithLogger(log),
	)
	must(log, err, "build backend client")

	generator, err := apiclient.New(cfg.APIBaseURL, cfg.APIVersion,
		apiclient.WithTimeout(constants.GenerateUpstreamTimeout),
		apiclient.WithLogger(log),
	)
	must(log, err, "build generator client")

	var content *apiclient.Client
	if cfg.HasCMS() {
		content, err = apiclient.New(cfg.CMSURL, "api", apiclient.WithTimeout(cfg.UpstreamTimeout), apiclient.WithLogger(log))
		must(log, err, "build content client")
	}

	// ── 6. Domain Wiring ──────────────────────────────────────────────────
	resolver := access.NewResolver(backend, access.DefaultRoutes(), roleMemo, log)

	categoryService := category.NewService(category.NewAPIRepository(backend), log)
	roadmapService := roadmap.NewService(roadmap.NewAPIRepository(backend), log)
	topicService := topic.NewService(topic.NewAPIRepository(backend), log)
	exerciseService := exercise.NewService(exercise.NewAPIRepository(backend), log)
	bookmarkService := bookmark.NewService(bookmark.NewAPIRepository(backend), log)
	memberService := member.NewService(member.NewAPIRepository(backend), resolver, log)
	generateService := generate.NewService(generator, log)
	contentService := cms.NewService(content, cfg.CMSToken, contentCache, log)

	boards := dashboard.NewRegistry(dashboard.Sources{
		Categories: categoryService,
		Roadmaps:   roadmapService,
		Topics:     topicService,
		Bookmarks:  bookmarkService,
	}, constants.BoardIdleTTL, log)

	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckBackend: api.BackendProbe(backend),
		CheckCache:   checkCache,
	}, log)

	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Roles:     resolver,
		Access:    access.NewHandler(resolver),
		Category:  category.NewHandler(categoryService, resolver),
		Roadmap:   roadmap.NewHandler(roadmapService, resolver),
		Topic:     topic.NewHandler(topicService, resolver),
		Exercise:  exercise.NewHandler(exerciseService, resolver),
		Bookmark:  bookmark.NewHandler(bookmarkService, resolver),
		Member:    member.NewHandler(memberService, resolver),
		Generate:  generate.NewHandler(generateService, resolver),
		Content:   cms.NewHandler(contentService),
		Board:     dashboard.NewHandler(boards),
	}

	// ── 7. Background Work & HTTP Server ──────────────────────────────────
	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	go boards.Run(serverCtx, constants.BoardSweepInterval)

	server := api.NewServer(serverCtx, cfg, log, verifier, handlers)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server_startup_failed", slog.Any("error", err))
	}

	log.Info("server_shutting_down", slog.Duration("timeout", constants.ShutdownTimeout))
	serverCancel()

	if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
		log.Error("shutdown_failed", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server_stopped")
}

func newLogger(level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With(slog.String("app", constants.AppName))
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, all errors are returned and
// handled explicitly.
func must(log *slog.Logger, err error, step string) {
	if err != nil {
		log.Error("startup_failed",
			slog.String("step", step),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
