// Copyright (c) 2026 ElQasr. All rights reserved.
// Author: mohamed.magdy@elqasr-dev.com

// Package pagination provides shared types and helpers for catalogue list
// endpoints.
//
// # Overview
//
// It standardizes how page-based navigation is requested via query parameters
// and how the resulting metadata is delivered in the API response envelope.
// The same Meta shape is used whether the data came from the backend API or
// from the query cache.
package pagination

import (
	"net/http"
	"net/url"

	"github.com/mohamedmagdy99/elqasr-portfolio-sub000/pkg/convert"
)

const (
	// DefaultLimit matches the 3x3 catalogue grid rendered by the site.
	DefaultLimit = 9
	// MaxLimit is the upper bound for items per page to prevent abuse.
	MaxLimit = 48
	// DefaultPage is the starting page (1-indexed).
	DefaultPage = 1
)

// Params holds the parsed page and limit from a request's query string.
type Params struct {
	Page  int
	Limit int
}

// Meta is the pagination metadata included in list responses.
//
// Field names mirror the backend list envelope so the render tree sees one
// consistent contract end to end.
type Meta struct {
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
}

// FromRequest parses "page" and "limit" query parameters from an HTTP request.
//
// # Clamping
//
// Invalid, negative, or excessive values are automatically clamped to
// [DefaultPage], [DefaultLimit], or [MaxLimit].
func FromRequest(r *http.Request) Params {
	return FromValues(r.URL.Query())
}

// FromValues parses "page" and "limit" from already-extracted query values.
func FromValues(values url.Values) Params {
	page := convert.ToIntD(values.Get("page"), DefaultPage)
	limit := convert.ToIntD(values.Get("limit"), DefaultLimit)

	if page < 1 {
		page = DefaultPage
	}

	if limit < 1 || limit > MaxLimit {
		limit = DefaultLimit
	}

	return Params{Page: page, Limit: limit}
}
