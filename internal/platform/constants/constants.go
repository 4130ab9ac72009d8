// Copyright (c) 2026 ElQasr. All rights reserved.
// Author: mohamed.magdy@elqasr-dev.com

/*
Package constants provides centralized, immutable values for the entire platform.

It defines default timeouts, rate limits, and cross-cutting keys that are shared
between different layers of the system.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Backend API: Timeouts and resource names for the upstream REST service.
  - Cache & Notices: Staleness windows and notice expiry.

Using this package ensures Magic Strings and Magic Numbers are eliminated
from the business logic.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "elqasr-web"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Backend API

const (
	// DefaultBackendTimeout bounds every outbound call to the backend REST API.
	// A hung upstream request must never pin a cache key in pending forever.
	DefaultBackendTimeout = 15 * time.Second

	// ResourceProjects is the query-key resource name for the unit catalogue.
	ResourceProjects = "projects"

	// ResourceMainProjects is the query-key resource name for parent developments.
	ResourceMainProjects = "main-projects"

	// ResourceGallery is the query-key resource name for the image gallery.
	ResourceGallery = "gallery"
)

// # Cache & Notices

const (
	// DefaultCacheStaleAfter is how long a successful cache entry is served
	// without a background refetch.
	DefaultCacheStaleAfter = 60 * time.Second

	// NoticeTTL is how long a mutation success/error notice stays visible
	// before it self-dismisses.
	NoticeTTL = 3 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 100.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 150

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # Authentication

const (
	// AuthIssuer is the expected 'iss' claim on session tokens minted by the
	// external session provider.
	AuthIssuer = "accounts.elqasr.dev"
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderOrigin        = "Origin"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
)

// # JSON Field Identifiers

const (
	FieldData    = "data"
	FieldMeta    = "meta"
	FieldError   = "error"
	FieldCode    = "code"
	FieldMessage = "message"
	FieldStatus  = "status"
	FieldSuccess = "success"
)
