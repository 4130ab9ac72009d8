// Copyright (c) 2026 ElQasr. All rights reserved.
// Author: mohamed.magdy@elqasr-dev.com

package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mohamedmagdy99/elqasr-portfolio-sub000/internal/api"
)

func readinessProbe(t *testing.T, check func(context.Context) error) *httptest.ResponseRecorder {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	_, readiness := api.NewHealthHandlers(api.HealthDependencies{CheckBackend: check}, log)

	recorder := httptest.NewRecorder()
	readiness(recorder, httptest.NewRequest(http.MethodGet, "/ready", nil))
	return recorder
}

func TestReadiness_ReportsReady(t *testing.T) {
	recorder := readinessProbe(t, func(context.Context) error { return nil })

	assert.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		Data struct {
			Status string `json:"status"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "ready", body.Data.Status)
}

func TestReadiness_BackendDownReportsDegraded(t *testing.T) {
	recorder := readinessProbe(t, func(context.Context) error {
		return errors.New("connection refused")
	})

	assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)

	var body struct {
		Data struct {
			Status string `json:"status"`
			Checks []struct {
				Name string `json:"name"`
				IsOK bool   `json:"ok"`
			} `json:"checks"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))

	assert.Equal(t, "degraded", body.Data.Status)
	require.Len(t, body.Data.Checks, 1)
	assert.Equal(t, "backend", body.Data.Checks[0].Name)
	assert.False(t, body.Data.Checks[0].IsOK)
}
