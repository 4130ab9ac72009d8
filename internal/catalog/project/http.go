// Copyright (c) 2026 ElQasr. All rights reserved.
// Author: mohamed.magdy@elqasr-dev.com

/*
Package project serves the completed-development catalogue: the public
listing and detail pages plus the admin CRUD surface.

# Routing Strategy

  - Public (v1): paginated discovery endpoints, cache-backed and soft-failing.
  - Restricted (v1): mutations requiring [sec.RoleAdmin], which hard-fail
    and forward the caller's bearer token to the backend.
*/
package project

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

// Handler implements the HTTP layer for the project catalogue.
type Handler struct {
	service *Service
}

// NewHandler constructs a project [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] with the project endpoints mounted.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// ## Public Discovery
	router.Get("/", handler.listProjects)
	router.Get("/{id}", handler.getProject)

	// ## Content Management (Admin Protected)
	router.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireRole(sec.RoleAdmin))

		admin.Post("/", handler.createProject)
		admin.Put("/{id}", handler.updateProject)
		admin.Delete("/{id}", handler.deleteProject)
	})

	return router
}

/*
GET /api/v1/projects.

Description: Retrieves a paginated page of the project catalogue.

Request:
  - page: int (default 1)
  - limit: int (default 9, max 48)

Response:
  - 200: []Project with pagination meta; stale=true marks placeholder data
*/
func (handler *Handler) listProjects(writer http.ResponseWriter, request *http.Request) {
	state := viewstate.FromQuery(constants.ResourceProjects, request.URL.Query())

	result := handler.service.List(request.Context(), state)
	respond.Paginated(writer, result.Items, result.Meta, result.Stale)
}

/*
GET /api/v1/projects/{id}.

Response:
  - 200: Project
  - 404: when the project does not exist (or the backend is unreachable)
*/
func (handler *Handler) getProject(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	project := handler.service.Get(request.Context(), id)
	if project == nil {
		respond.Error(writer, request, apperr.NotFound("Project"))
		return
	}
	respond.OK(writer, project)
}

/*
POST /api/v1/projects. Admin only.

Response:
  - 201: the created Project
  - 400/422: validation failure (local or upstream)
*/
func (handler *Handler) createProject(writer http.ResponseWriter, request *http.Request) {
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

// PUT /api/v1/projects/{id}. Admin only.
func (handler *Handler) updateProject(writer http.ResponseWriter, request *http.Request) {
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

// DELETE /api/v1/projects/{id}. Admin only.
func (handler *Handler) deleteProject(writer http.ResponseWriter, request *http.Request) {
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
