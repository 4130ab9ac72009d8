// Copyright (c) 2026 ElQasr. All rights reserved.
// Author: mohamed.magdy@elqasr-dev.com

// Command web is the entry point for the ElQasr portfolio web service.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Initialize the session token verifier (external identity provider).
//  4. Construct the backend REST client, query cache, and notice center.
//  5. Wire domain services and HTTP handlers.
//  6. Optionally prefetch the landing-page queries.
//  7. Start HTTP server with graceful shutdown.
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

	"github.com/mohamedmagdy99/elqasr-portfolio-sub000/internal/api"
	"github.com/mohamedmagdy99/elqasr-portfolio-sub000/internal/catalog/mainproject"
	"github.com/mohamedmagdy99/elqasr-portfolio-sub000/internal/catalog/project"
	"github.com/mohamedmagdy99/elqasr-portfolio-sub000/internal/gallery"
	"github.com/mohamedmagdy99/elqasr-portfolio-sub000/internal/mutate"
	"github.com/mohamedmagdy99/elqasr-portfolio-sub000/internal/notify"
	"github.com/mohamedmagdy99/elqasr-portfolio-sub000/internal/platform/backend"
	"github.com/mohamedmagdy99/elqasr-portfolio-sub000/internal/platform/config"
	"github.com/mohamedmagdy99/elqasr-portfolio-sub000/internal/platform/constants"
	"github.com/mohamedmagdy99/elqasr-portfolio-sub000/internal/platform/sec"
	"github.com/mohamedmagdy99/elqasr-portfolio-sub000/internal/querycache"
	"github.com/mohamedmagdy99/elqasr-portfolio-sub000/internal/users/auth"
	"github.com/mohamedmagdy99/elqasr-portfolio-sub000/internal/viewstate"
	"github.com/mohamedmagdy99/elqasr-portfolio-sub000/internal/warmup"
	"github.com/mohamedmagdy99/elqasr-portfolio-sub000/pkg/pagination"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("[ElQasr] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", constants.AppName))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("backend", cfg.BackendBaseURL),
	)

	// Root context shared by background workers (rate limiter cleanup).
	rootCtx, rootCancel := context.WithCancel(context.Background())
	defer rootCancel()

	// ── 3. Session Verification ───────────────────────────────────────────
	// Sessions are minted by the external identity provider; this service
	// holds only the public key.
	verifier, err := sec.NewTokenVerifier(cfg.SessionPubKeyPath, constants.AuthIssuer)
	must(log, err, "initialize session verifier")

	// ── 4. Backend Client, Cache, Notices ─────────────────────────────────
	backendClient := backend.New(cfg.BackendBaseURL, cfg.BackendTimeout, log)
	cache := querycache.New(cfg.CacheStaleAfter, log)
	notices := notify.NewCenter(constants.NoticeTTL)
	runner := mutate.NewRunner(cache, notices, log)

	// ── 5. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckBackend: backendClient.Ping,
	}, log)

	// ── 6. Domain Wiring ──────────────────────────────────────────────────
	projectService := project.NewService(project.NewBackendStore(backendClient), cache, runner, log)
	mainProjectService := mainproject.NewService(mainproject.NewBackendStore(backendClient), cache, runner, log)
	galleryService := gallery.NewService(gallery.NewBackendStore(backendClient), cache, runner, log)
	authService := auth.NewService(auth.NewBackendStore(backendClient), log)

	handlers := api.Handlers{
		Liveness:    liveness,
		Readiness:   readiness,
		Notices:     api.NewNoticesHandler(notices),
		Auth:        auth.NewHandler(authService),
		Project:     project.NewHandler(projectService),
		MainProject: mainproject.NewHandler(mainProjectService),
		Gallery:     gallery.NewHandler(galleryService),
	}

	// ── 7. Cache Warmup ───────────────────────────────────────────────────
	// Prefetch the landing page's first-page queries so the first visitor
	// does not pay backend latency. Best-effort: failures only log.
	if cfg.WarmCacheOnStart {
		warmup.Run(rootCtx, log, 10*time.Second,
			warmup.Task{Name: "projects_first_page", Run: func(warmCtx context.Context) error {
				state := viewstate.NewState(constants.ResourceProjects, pagination.DefaultLimit)
				projectService.List(warmCtx, state)
				return nil
			}},
			warmup.Task{Name: "main_projects_first_page", Run: func(warmCtx context.Context) error {
				state := viewstate.NewState(constants.ResourceMainProjects, pagination.DefaultLimit)
				mainProjectService.List(warmCtx, state)
				return nil
			}},
			warmup.Task{Name: "gallery", Run: func(warmCtx context.Context) error {
				galleryService.List(warmCtx)
				return nil
			}},
		)
	}

	// ── 8. HTTP Server ────────────────────────────────────────────────────
	server := api.NewServer(rootCtx, cfg, log, verifier, handlers)

	// ── 9. Graceful Shutdown ──────────────────────────────────────────────
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
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
