// Copyright (c) 2026 ElQasr. All rights reserved.
// Author: mohamed.magdy@elqasr-dev.com

// Package api contains the health check handlers for liveness and readiness probes.
package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/mohamedmagdy99/elqasr-portfolio-sub000/internal/platform/apperr"
	"github.com/mohamedmagdy99/elqasr-portfolio-sub000/internal/platform/respond"
)

// HealthDependencies holds the injectable dependency checkers for the /ready endpoint.
type HealthDependencies struct {
	// CheckBackend pings the backend REST API.
	CheckBackend func(context context.Context) error
}

type healthHandler struct {
	dependencies HealthDependencies
	logger       *slog.Logger
}

// NewHealthHandlers creates the /health and /ready http.HandlerFuncs.
func NewHealthHandlers(deps HealthDependencies, logger *slog.Logger) (liveness, readiness http.HandlerFunc) {
	handler := &healthHandler{dependencies: deps, logger: logger}
	return handler.liveness, handler.readiness
}

// liveness handles GET /health (Liveness probe).
func (handler *healthHandler) liveness(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, map[string]string{"status": "ok"})
}

// readiness handles GET /ready (Readiness probe).
//
// The backend is this service's only dependency: when it is unreachable the
// site still serves (reads soft-fail to cached or empty data), so a failed
// check reports degraded rather than dead.
func (handler *healthHandler) readiness(writer http.ResponseWriter, request *http.Request) {
	type checkResult struct {
		Name  string `json:"name"`
		IsOK  bool   `json:"ok"`
		Error string `json:"error,omitempty"`
	}

	results := make([]checkResult, 0, 1)
	isSystemReady := true

	if handler.dependencies.CheckBackend != nil {
		result := checkResult{Name: "backend", IsOK: true}
		if err := handler.dependencies.CheckBackend(request.Context()); err != nil {
			result.IsOK = false
			result.Error = err.Error()
			isSystemReady = false
			handler.logger.Error("readiness_check_failed", slog.String("dependency", "backend"), slog.Any("error", err))
		}
		results = append(results, result)
	}

	if !isSystemReady {
		degraded := apperr.ServiceUnavailable("One or more dependencies are unreachable")
		respond.JSON(writer, degraded.HTTPStatus, respond.SuccessEnvelope{Data: map[string]any{
			"status": "degraded",
			"checks": results,
			"error":  degraded.Message,
		}})
		return
	}

	respond.OK(writer, map[string]any{
		"status": "ready",
		"checks": results,
	})
}
