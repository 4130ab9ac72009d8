// Copyright (c) 2026 ElQasr. All rights reserved.
// Author: mohamed.magdy@elqasr-dev.com

// Package gallery serves the homepage showcase strip: a flat list of image
// URLs with a single admin operation that replaces the whole set.
package gallery

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mohamedmagdy99/elqasr-portfolio-sub000/internal/platform/middleware"
	requestutil "github.com/mohamedmagdy99/elqasr-portfolio-sub000/internal/platform/request"
	"github.com/mohamedmagdy99/elqasr-portfolio-sub000/internal/platform/respond"
	"github.com/mohamedmagdy99/elqasr-portfolio-sub000/internal/platform/sec"
)

// Handler implements the HTTP layer for the gallery.
type Handler struct {
	service *Service
}

// NewHandler constructs a gallery [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] with the gallery endpoints mounted.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listImages)

	router.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireRole(sec.RoleAdmin))
		admin.Put("/", handler.replaceImages)
	})

	return router
}

// GET /api/v1/gallery. Always 200; an unreachable backend yields [].
func (handler *Handler) listImages(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, handler.service.List(request.Context()))
}

// PUT /api/v1/gallery. Admin only. Replaces the entire image set.
func (handler *Handler) replaceImages(writer http.ResponseWriter, request *http.Request) {
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

	images, err := handler.service.Replace(request.Context(), session.Token, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, images)
}
