// Copyright (c) 2026 ElQasr. All rights reserved.
// Author: mohamed.magdy@elqasr-dev.com

package project

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mohamedmagdy99/elqasr-portfolio-sub000/internal/platform/apperr"
	"github.com/mohamedmagdy99/elqasr-portfolio-sub000/internal/platform/backend"
	"github.com/mohamedmagdy99/elqasr-portfolio-sub000/pkg/localized"
)

func newTestStore(handler http.HandlerFunc) (*BackendStore, *httptest.Server) {
	server := httptest.NewServer(handler)
	client := backend.New(server.URL, 5*time.Second, slog.New(slog.NewTextHandler(io.Discard, nil)))
	return NewBackendStore(client), server
}

func TestList_SendsExactQueryParams(t *testing.T) {
	var captured url.Values
	store, server := newTestStore(func(writer http.ResponseWriter, request *http.Request) {
		captured = request.URL.Query()
		writer.Header().Set("Content-Type", "application/json")
		_, _ = writer.Write([]byte(`{"success":true,"data":[],"currentPage":2,"totalPages":7}`))
	})
	defer server.Close()

	query := url.Values{}
	query.Set("page", "2")
	query.Set("limit", "9")
	query.Set("status", "available")

	items, meta, err := store.List(context.Background(), query)
	require.NoError(t, err)

	assert.Equal(t, "2", captured.Get("page"))
	assert.Equal(t, "9", captured.Get("limit"))
	assert.Equal(t, "available", captured.Get("status"))
	assert.Len(t, captured, 3, "no extra query params may be sent")

	assert.Empty(t, items)
	assert.Equal(t, 2, meta.CurrentPage)
	assert.Equal(t, 7, meta.TotalPages)
}

func TestList_NormalizesBothLocalizedShapes(t *testing.T) {
	store, server := newTestStore(func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Content-Type", "application/json")
		_, _ = writer.Write([]byte(`{
			"success": true,
			"data": [
				{"id": "p1", "title": "Palm Towers", "description": "Legacy plain text", "images": []},
				{"id": "p2", "title": {"en": "Nile View", "ar": "اطلالة النيل"}, "description": {"en": "d", "ar": "و"}, "images": []}
			],
			"currentPage": 1,
			"totalPages": 1
		}`))
	})
	defer server.Close()

	items, _, err := store.List(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "Palm Towers", items[0].Title.Resolve(localized.Arabic), "plain text serves every locale")
	assert.Equal(t, "اطلالة النيل", items[1].Title.Resolve(localized.Arabic))
	assert.Equal(t, "Nile View", items[1].Title.Resolve(localized.English))

	assert.Equal(t, "palm-towers", items[0].Slug)
	assert.Equal(t, "nile-view", items[1].Slug)
}

func TestList_KeepsCatalogueAttributes(t *testing.T) {
	store, server := newTestStore(func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Content-Type", "application/json")
		_, _ = writer.Write([]byte(`{
			"success": true,
			"data": [
				{
					"id": "p1",
					"title": "Palm Towers",
					"description": "d",
					"status": "completed",
					"type": "Residential",
					"completionDate": "2024-06-01",
					"features": {"en": ["Clubhouse"], "ar": ["نادي اجتماعي"]},
					"mainProjectId": "m7",
					"images": []
				},
				{
					"id": "p2",
					"title": {"en": "Nile View", "ar": "اطلالة النيل"},
					"description": "d",
					"status": {"en": "Completed", "ar": "مكتمل"},
					"type": "Commercial",
					"images": []
				}
			],
			"currentPage": 1,
			"totalPages": 1
		}`))
	})
	defer server.Close()

	items, _, err := store.List(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, items, 2)

	first := items[0]
	assert.Equal(t, "completed", first.Status.Resolve(localized.English))
	assert.Equal(t, TypeResidential, first.Type)
	assert.Equal(t, "2024-06-01", first.CompletionDate)
	assert.Equal(t, []string{"Clubhouse"}, first.Features.Resolve(localized.English))
	assert.Equal(t, []string{"نادي اجتماعي"}, first.Features.Resolve(localized.Arabic))
	assert.Equal(t, "m7", first.MainProjectID)

	second := items[1]
	assert.Equal(t, "مكتمل", second.Status.Resolve(localized.Arabic))
	assert.Equal(t, TypeCommercial, second.Type)
	assert.Empty(t, second.CompletionDate)
	assert.Empty(t, second.MainProjectID)
}

func TestList_NullDataBecomesEmptySlice(t *testing.T) {
	store, server := newTestStore(func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Content-Type", "application/json")
		_, _ = writer.Write([]byte(`{"success":true,"data":null}`))
	})
	defer server.Close()

	items, _, err := store.List(context.Background(), nil)
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestGet_MissingProjectIsNilNotError(t *testing.T) {
	store, server := newTestStore(func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Content-Type", "application/json")
		_, _ = writer.Write([]byte(`{"success":false,"message":"Project not found"}`))
	})
	defer server.Close()

	project, err := store.Get(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Nil(t, project)
}

func TestCreate_MissingTokenNeverTouchesNetwork(t *testing.T) {
	var requests atomic.Int32
	store, server := newTestStore(func(writer http.ResponseWriter, request *http.Request) {
		requests.Add(1)
		writer.WriteHeader(http.StatusCreated)
		_, _ = writer.Write([]byte(`{"success":true}`))
	})
	defer server.Close()

	_, err := store.Create(context.Background(), "", Input{})
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, http.StatusUnauthorized, appError.HTTPStatus)
	assert.Equal(t, int32(0), requests.Load(), "a write without a session must fail before any I/O")
}

func TestCreate_ForwardsBearerTokenAndBody(t *testing.T) {
	var authorization string
	store, server := newTestStore(func(writer http.ResponseWriter, request *http.Request) {
		authorization = request.Header.Get("Authorization")
		writer.Header().Set("Content-Type", "application/json")
		writer.WriteHeader(http.StatusCreated)
		_, _ = writer.Write([]byte(`{"success":true,"data":{"id":"p9","title":"New Tower","images":[]}}`))
	})
	defer server.Close()

	created, err := store.Create(context.Background(), "session-token", Input{
		Title:       localized.Plain("New Tower"),
		Description: localized.Plain("desc"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Bearer session-token", authorization)
	require.NotNil(t, created)
	assert.Equal(t, "p9", created.ID)
}

func TestCreate_UpstreamRejectionCarriesStatusAndBody(t *testing.T) {
	store, server := newTestStore(func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Content-Type", "application/json")
		writer.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = writer.Write([]byte(`{"success":false,"message":"Title is required"}`))
	})
	defer server.Close()

	_, err := store.Create(context.Background(), "session-token", Input{})
	require.Error(t, err)

	status, ok := apperr.IsUpstream(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnprocessableEntity, status)

	appError := apperr.As(err)
	assert.Equal(t, "Title is required", appError.Message)
	assert.Equal(t, http.StatusUnprocessableEntity, appError.HTTPStatus, "upstream 4xx passes through unchanged")
}

func TestDelete_Upstream5xxBecomesBadGateway(t *testing.T) {
	store, server := newTestStore(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusInternalServerError)
	})
	defer server.Close()

	err := store.Delete(context.Background(), "session-token", "p1")
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, http.StatusBadGateway, appError.HTTPStatus)
	assert.Equal(t, http.StatusInternalServerError, appError.UpstreamStatus)
}
