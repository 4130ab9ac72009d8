// Copyright (c) 2026 ElQasr. All rights reserved.
// Author: mohamed.magdy@elqasr-dev.com

/*
Package apperr defines the centralized error handling framework for the
ElQasr web service.

It provides a rich error type that bridges the gap between low-level
transport/backend errors and high-level HTTP responses.

Architecture:

  - AppError: A struct containing machine-readable ErrorCode and user-friendly messages.
  - Upstream: Explicit representation of failed backend API calls, carrying the
    upstream HTTP status and the parsed error payload.
  - Mapping: Explicit mapping from AppError to standard HTTP Status Codes.

Every error that leaves the service layer should be wrapped as an [AppError] to ensure
consistent API responses.
*/
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is the canonical error type for the ElQasr web service.
//
// It carries an HTTP status code, a machine-readable code, a client-safe
// message, and an optional slice of field-level validation errors.
//
// # Security
//
// The Cause field is for server-side logging only and is never sent to clients
// to avoid leaking internal implementation details.
type AppError struct {
	// Code is a machine-readable error identifier (e.g. "NOT_FOUND", "UPSTREAM_ERROR").
	Code string `json:"code"`
	// Message is a human-readable description safe to return to the client.
	Message string `json:"error"`
	// HTTPStatus is the HTTP response status code.
	HTTPStatus int `json:"-"`
	// Cause is the underlying error, used for server-side logging only.
	Cause error `json:"-"`
	// Details holds per-field validation errors for VALIDATION_ERROR responses.
	Details []FieldError `json:"details,omitempty"`
	// UpstreamStatus is the HTTP status the backend API returned when this
	// error mirrors a failed write. Zero for locally raised errors.
	UpstreamStatus int `json:"-"`
	// UpstreamBody is the parsed backend error payload, kept for logging and
	// admin notices.
	UpstreamBody map[string]any `json:"-"`
}

// FieldError represents a single field-level validation failure.
type FieldError struct {
	// Field is the JSON field name that failed validation.
	Field string `json:"field"`
	// Message is the human-readable description of the failure.
	Message string `json:"message"`
}

// Error implements the error interface. It returns the client-safe message.
func (e *AppError) Error() string { return e.Message }

// Unwrap allows [errors.Is] and [errors.As] to traverse the cause chain.
func (e *AppError) Unwrap() error { return e.Cause }

// # Client Errors (4xx)

// NotFound creates a 404 [AppError] for a named resource.
//
// Example:
//
//	apperr.NotFound("Project") // Returns "Project not found"
func NotFound(resource string) *AppError {
	return &AppError{
		Code:       "NOT_FOUND",
		Message:    resource + " not found",
		HTTPStatus: http.StatusNotFound,
	}
}

// Unauthorized creates a 401 [AppError].
func Unauthorized(msg string) *AppError {
	return &AppError{
		Code:       "UNAUTHORIZED",
		Message:    msg,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// Forbidden creates a 403 [AppError].
func Forbidden(msg string) *AppError {
	return &AppError{
		Code:       "FORBIDDEN",
		Message:    msg,
		HTTPStatus: http.StatusForbidden,
	}
}

// ValidationError creates a 400 [AppError] with optional per-field details.
func ValidationError(msg string, details ...FieldError) *AppError {
	return &AppError{
		Code:       "VALIDATION_ERROR",
		Message:    msg,
		HTTPStatus: http.StatusBadRequest,
		Details:    details,
	}
}

// RateLimited creates a 429 [AppError].
func RateLimited(retryAfterSeconds int) *AppError {
	return &AppError{
		Code:       "RATE_LIMITED",
		Message:    fmt.Sprintf("Too many requests. Try again in %ds.", retryAfterSeconds),
		HTTPStatus: http.StatusTooManyRequests,
	}
}

// # Server & Upstream Errors

// Internal creates a 500 [AppError] wrapping an unexpected server-side error.
// The cause is stored for logging but is never sent to the client.
func Internal(cause error) *AppError {
	return &AppError{
		Code:       "INTERNAL_ERROR",
		Message:    "An unexpected error occurred",
		HTTPStatus: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// Upstream creates an [AppError] mirroring a failed backend API call.
//
// # Contract
//
// Write operations against the backend are hard failures: the error must carry
// the upstream HTTP status and the parsed error body so the admin UI can show
// what the backend rejected. Upstream 4xx statuses pass through unchanged;
// upstream 5xx statuses surface as 502 Bad Gateway since the fault is not ours.
func Upstream(status int, body map[string]any) *AppError {
	message := "Backend request failed"
	if m, ok := body[FieldMessageKey].(string); ok && m != "" {
		message = m
	}

	httpStatus := status
	if status >= 500 {
		httpStatus = http.StatusBadGateway
	}

	return &AppError{
		Code:           "UPSTREAM_ERROR",
		Message:        message,
		HTTPStatus:     httpStatus,
		UpstreamStatus: status,
		UpstreamBody:   body,
	}
}

// FieldMessageKey is the backend error payload key holding the human message.
const FieldMessageKey = "message"

// ServiceUnavailable creates a 503 [AppError] for degraded readiness.
func ServiceUnavailable(msg string) *AppError {
	return &AppError{
		Code:       "SERVICE_UNAVAILABLE",
		Message:    msg,
		HTTPStatus: http.StatusServiceUnavailable,
	}
}

// # Helpers

// IsAppError reports whether err (or any error in its chain) is an [*AppError].
func IsAppError(err error) bool {
	var ae *AppError
	return errors.As(err, &ae)
}

// As extracts the [*AppError] from err's chain. It returns nil if not found.
func As(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}

// IsUpstream reports whether err represents a failed backend API call and,
// if so, returns the upstream HTTP status.
func IsUpstream(err error) (int, bool) {
	ae := As(err)
	if ae == nil || ae.UpstreamStatus == 0 {
		return 0, false
	}
	return ae.UpstreamStatus, true
}
