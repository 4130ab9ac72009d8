// Copyright (c) 2026 ElQasr. All rights reserved.
// Author: mohamed.magdy@elqasr-dev.com

/*
Package backend implements the low-level HTTP client for the external ElQasr
REST API — the service that owns all persistence, auth issuance, and file
storage. This repository is strictly a client of it.

# Error Policy

The client enforces an intentional asymmetry, documented here because it is a
policy and not an accident of error-handling placement:

  - Reads soft-fail: list/get/gallery callers translate any transport, decode,
    or success:false failure into a safe empty default and log the cause. The
    marketing site must keep rendering through transient backend issues, even
    though "empty" and "failed silently" become indistinguishable to callers.
  - Writes hard-fail: a missing session token aborts before any network I/O,
    and a non-2xx response raises an [apperr.AppError] carrying the upstream
    HTTP status and the parsed error payload. Admin mutations must never
    pretend to have succeeded.

Read availability over read correctness; write correctness over write
availability.
*/
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mohamedmagdy99/elqasr-portfolio-sub000/internal/platform/apperr"
)

// Client is the HTTP client for the backend REST API.
//
// A single instance is constructed in main and shared by every domain store.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
}

// New creates a backend API client.
//
// The timeout bounds every outbound call, including reads that populate the
// query cache — a hung upstream request must never pin a cache key in
// pending forever.
func New(baseURL string, timeout time.Duration, log *slog.Logger) *Client {
	if timeout == 0 {
		timeout = 15 * time.Second
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		log:     log,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout:   10 * time.Second,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				MaxIdleConns:        100,
				IdleConnTimeout:     90 * time.Second,
				TLSHandshakeTimeout: 10 * time.Second,
			},
		},
	}
}

// Envelope mirrors the backend's JSON response envelope.
//
// Data is kept raw so each domain store can decode it into its own entity
// type (and normalize the bilingual wire shapes in the process).
type Envelope struct {
	Success     bool            `json:"success"`
	Data        json.RawMessage `json:"data"`
	Message     string          `json:"message,omitempty"`
	CurrentPage int             `json:"currentPage,omitempty"`
	TotalPages  int             `json:"totalPages,omitempty"`
}

// Get performs an unauthenticated read against the backend.
//
// It returns a plain error on transport, status, or decode failures. Callers
// on the read path soft-fail these per the package error policy; Get itself
// never masks a failure.
func (c *Client) Get(ctx context.Context, path string, params url.Values) (*Envelope, error) {
	target := c.baseURL + path
	if len(params) > 0 {
		target += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("backend: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("backend: GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("backend: GET %s returned %d", path, resp.StatusCode)
	}

	var envelope Envelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("backend: GET %s: malformed body: %w", path, err)
	}

	return &envelope, nil
}

// Write performs an authenticated mutation against the backend. This is the
// hard-fail path.
//
// # Contract
//
//   - An empty token fails fast with 401 BEFORE any network I/O.
//   - A non-2xx response becomes an [apperr.Upstream] error carrying the
//     upstream status and the parsed error body.
//   - Writes are single non-idempotent calls; there is no automatic retry.
func (c *Client) Write(ctx context.Context, method, path, token string, body any) (*Envelope, error) {
	if token == "" {
		return nil, apperr.Unauthorized("No active session")
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("backend: encode payload: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("backend: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("backend: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.upstreamError(method, path, resp)
	}

	// DELETE responses may legitimately have an empty body.
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("backend: %s %s: read body: %w", method, path, err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return &Envelope{Success: true}, nil
	}

	var envelope Envelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("backend: %s %s: malformed body: %w", method, path, err)
	}

	return &envelope, nil
}

// Post performs an unauthenticated JSON POST and returns the parsed body
// verbatim as a generic map. Used by the signup flow, whose contract is
// "return the backend's answer unmodified — the caller checks success".
func (c *Client) Post(ctx context.Context, path string, body any) (map[string]any, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("backend: encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("backend: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("backend: POST %s: %w", path, err)
	}
	defer resp.Body.Close()

	var parsed map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("backend: POST %s: malformed body: %w", path, err)
	}

	return parsed, nil
}

// Ping checks backend reachability for the readiness probe.
//
// The backend exposes no dedicated health endpoint, so a minimal catalogue
// read stands in for one.
func (c *Client) Ping(ctx context.Context) error {
	params := url.Values{}
	params.Set("page", "1")
	params.Set("limit", "1")

	_, err := c.Get(ctx, "/projects", params)
	return err
}

// upstreamError parses a non-2xx write response into an [apperr.AppError].
func (c *Client) upstreamError(method, path string, resp *http.Response) error {
	parsed := map[string]any{}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		// A backend that fails without a JSON body still yields a typed error.
		parsed = map[string]any{}
	}

	c.log.Error("backend_write_failed",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
	)

	return apperr.Upstream(resp.StatusCode, parsed)
}

// DecodeData unmarshals an envelope's raw data into the target type.
func DecodeData[T any](envelope *Envelope) (T, error) {
	var target T
	if len(envelope.Data) == 0 || string(envelope.Data) == "null" {
		return target, nil
	}
	if err := json.Unmarshal(envelope.Data, &target); err != nil {
		return target, fmt.Errorf("backend: decode data: %w", err)
	}
	return target, nil
}
