// Copyright (c) 2026 ElQasr. All rights reserved.
// Author: mohamed.magdy@elqasr-dev.com

/*
Package mainproject serves the active developments currently being marketed:
the filterable listing (available / sold), the detail page, and each
development's units.

# Routing Strategy

  - Public (v1): discovery endpoints, cache-backed and soft-failing.
  - Restricted (v1): mutations requiring [sec.RoleAdmin].
*/
package mainproject

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mohamedmagdy99/elqasr-portfolio-sub000/internal/platform/apperr"
	"github.com/mohamedmagdy99/elqasr-portfolio-sub000/internal/platform/constants"
	"github.com/mohamedmagdy99/elqasr-portfolio-sub000/internal/platform/middleware"
	requestutil "github.com/mohamedmagdy99/elqasr-portfolio-sub000/internal/platform/request"
	"github.com/mohamedmagdy99/elqasr-portfolio-sub000/internal/platform/respond"
	"github.com/mohamedmagdy99/elqasr-portfolio-sub000/internal/platform/sec"
	"github.com/mohamedmagdy99/elqasr-portfolio-sub000/internal/viewstate"
)

// Handler implements the HTTP layer for active developments.
type Handler struct {
	service *Service
}

// NewHandler constructs a main-project [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] with the main-project endpoints mounted.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// ## Public Discovery
	router.Get("/", handler.listMainProjects)
	router.Get("/{id}", handler.getMainProject)
	router.Get("/{id}/units", handler.listUnits)

	// ## Content Management (Admin Protected)
	router.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireRole(sec.RoleAdmin))

		admin.Post("/", handler.createMainProject)
		admin.Put("/{id}", handler.updateMainProject)
		admin.Delete("/{id}", handler.deleteMainProject)
	})

	return router
}

/*
GET /api/v1/main-projects.

Description: Retrieves a paginated page of active developments, optionally
filtered by sales state.

Request:
  - page: int (default 1)
  - limit: int (default 9, max 48)
  - status: string (available, sold)

Response:
  - 200: []MainProject with pagination meta; stale=true marks placeholder data
*/
func (handler *Handler) listMainProjects(writer http.ResponseWriter, request *http.Request) {
	state := viewstate.FromQuery(constants.ResourceMainProjects, request.URL.Query())

	result := handler.service.List(request.Context(), state)
	respond.Paginated(writer, result.Items, result.Meta, result.Stale)
}

// GET /api/v1/main-projects/{id}.
func (handler *Handler) getMainProject(writer http.ResponseWriter, request *http.Request) {
	mainProject := handler.service.Get(request.Context(), requestutil.ID(request, "id"))
	if mainProject == nil {
		respond.Error(writer, request, apperr.NotFound("Main project"))
		return
	}
	respond.OK(writer, mainProject)
}

// GET /api/v1/main-projects/{id}/units. An unreachable backend renders an
// empty unit list rather than an error page.
func (handler *Handler) listUnits(writer http.ResponseWriter, request *http.Request) {
	units := handler.service.Units(request.Context(), requestutil.ID(request, "id"))
	respond.OK(writer, units)
}

// POST /api/v1/main-projects. Admin only.
func (handler *Handler) createMainProject(writer http.ResponseWriter, request *http.Request) {
	session, err := requestutil.RequiredSession(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, err := handler.service.Create(request.Context(), session.Token, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, created)
}

// PUT /api/v1/main-projects/{id}. Admin only.
func (handler *Handler) updateMainProject(writer http.ResponseWriter, request *http.Request) {
	session, err := requestutil.RequiredSession(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.service.Update(request.Context(), session.Token, requestutil.ID(request, "id"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, updated)
}

// DELETE /api/v1/main-projects/{id}. Admin only.
func (handler *Handler) deleteMainProject(writer http.ResponseWriter, request *http.Request) {
	session, err := requestutil.RequiredSession(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), session.Token, requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
