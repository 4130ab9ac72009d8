// Copyright (c) 2026 ElQasr. All rights reserved.
// Author: mohamed.magdy@elqasr-dev.com

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mohamedmagdy99/elqasr-portfolio-sub000/internal/platform/apperr"
	"github.com/mohamedmagdy99/elqasr-portfolio-sub000/internal/platform/ctxutil"
	"github.com/mohamedmagdy99/elqasr-portfolio-sub000/internal/platform/sec"
	"github.com/mohamedmagdy99/elqasr-portfolio-sub000/internal/platform/validate"
	"github.com/mohamedmagdy99/elqasr-portfolio-sub000/pkg/localized"
)

/*
DecodeJSON reads the request body and decodes it into the target structure.

Parameters:
  - request: *http.Request
  - target: interface{} (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target interface{}) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
ID retrieves a named URL parameter from the request.
*/
func ID(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
Session extracts the verified session from the request context.

Returns nil if the request is anonymous.
*/
func Session(request *http.Request) *sec.Session {
	return ctxutil.GetSession(request.Context())
}

/*
RequiredSession ensures the request is authenticated and returns the session.

Returns:
  - *sec.Session: The verified session
  - error: apperr.Unauthorized if the request is anonymous
*/
func RequiredSession(request *http.Request) (*sec.Session, error) {

	// Get the verified session
	session := ctxutil.GetSession(request.Context())

	// If the request is anonymous, return an error
	if session == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}

	return session, nil
}

/*
Locale resolves the display locale for a request.

The explicit ?locale= query parameter wins; otherwise the first
Accept-Language tag is consulted. Unknown values fall back to English.
*/
func Locale(request *http.Request) localized.Locale {

	// Explicit query parameter takes precedence
	if raw := request.URL.Query().Get("locale"); raw != "" {
		return localized.Parse(raw)
	}

	// Fall back to the Accept-Language header's first tag
	header := request.Header.Get("Accept-Language")
	if header == "" {
		return localized.English
	}

	first := header
	for i := 0; i < len(header); i++ {
		if header[i] == ',' || header[i] == ';' {
			first = header[:i]
			break
		}
	}
	return localized.Parse(first)
}
