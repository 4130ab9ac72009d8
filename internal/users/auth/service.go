// Copyright (c) 2026 ElQasr. All rights reserved.
// Author: mohamed.magdy@elqasr-dev.com

package auth

import (
	"context"
	"log/slog"

	"github.com/mohamedmagdy99/elqasr-portfolio-sub000/internal/platform/validate"
)

// Service validates signup requests before relaying them to the backend.
//
// This service is deliberately thin: the identity provider owns account
// rules, token issuance, and email verification. Local validation exists
// only to reject obviously malformed payloads without a network round-trip.
type Service struct {
	store  Store
	logger *slog.Logger
}

// NewService constructs an auth [Service].
func NewService(store Store, logger *slog.Logger) *Service {
	return &Service{
		store:  store,
		logger: logger,
	}
}

// Signup creates an account and returns the backend's response body
// verbatim, success or not. The handler relays it unchanged so clients see
// exactly what the identity provider said.
func (service *Service) Signup(context context.Context, input SignupInput) (map[string]any, error) {
	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).MaxLen(FieldName, input.Name, 120)
	validator.Required(FieldEmail, input.Email).Email(FieldEmail, input.Email)
	validator.Required(FieldPassword, input.Password).MinLen(FieldPassword, input.Password, 8)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	response, err := service.store.Signup(context, input)
	if err != nil {
		service.logger.Warn("signup_relay_failed", slog.String("error", err.Error()))
		return nil, err
	}
	return response, nil
}
