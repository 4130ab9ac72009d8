// Copyright (c) 2026 ElQasr. All rights reserved.
// Author: mohamed.magdy@elqasr-dev.com

/*
Package auth relays account creation to the external identity provider.

Sessions themselves are not minted here: visitors authenticate against the
provider directly and this service only verifies the resulting bearer
tokens. Signup is proxied so the marketing site can offer a registration
form without exposing the provider's URL to browsers.
*/
package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/mohamedmagdy99/elqasr-portfolio-sub000/internal/platform/request"
	"github.com/mohamedmagdy99/elqasr-portfolio-sub000/internal/platform/respond"
)

// Handler implements the auth HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs an auth [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] with the auth endpoints mounted.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Post("/signup", handler.signup)
	return router
}

/*
POST /api/v1/auth/signup.

Description: Validates the payload locally, forwards it to the identity
provider, and relays the provider's JSON response verbatim.

Response:
  - 200: the provider's response body, unmodified
  - 400: local validation failure
*/
func (handler *Handler) signup(writer http.ResponseWriter, request *http.Request) {
	var input SignupInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	response, err := handler.service.Signup(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Verbatim relay: no success envelope, the provider's shape is the contract.
	respond.JSON(writer, http.StatusOK, response)
}
