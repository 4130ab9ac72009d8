// Copyright (c) 2026 ElQasr. All rights reserved.
// Author: mohamed.magdy@elqasr-dev.com

package gallery

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mohamedmagdy99/elqasr-portfolio-sub000/internal/mutate"
	"github.com/mohamedmagdy99/elqasr-portfolio-sub000/internal/notify"
	"github.com/mohamedmagdy99/elqasr-portfolio-sub000/internal/platform/backend"
	"github.com/mohamedmagdy99/elqasr-portfolio-sub000/internal/querycache"
)

type fakeStore struct {
	listCalls int
	images    []string
	listErr   error
}

func (fake *fakeStore) List(context context.Context) ([]string, error) {
	fake.listCalls++
	return fake.images, fake.listErr
}

func (fake *fakeStore) Replace(context context.Context, token string, input Input) ([]string, error) {
	fake.images = input.Images
	return input.Images, nil
}

func newTestService(fake *fakeStore) *Service {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	cache := querycache.New(time.Minute, log)
	runner := mutate.NewRunner(cache, notify.NewCenter(3*time.Second), log)
	return NewService(fake, cache, runner, log)
}

func TestList_SoftFailsToEmptySlice(t *testing.T) {
	service := newTestService(&fakeStore{listErr: errors.New("backend down")})

	images := service.List(context.Background())
	assert.NotNil(t, images, "soft failure must be [], not null")
	assert.Empty(t, images)
}

func TestList_Cached(t *testing.T) {
	fake := &fakeStore{images: []string{"https://cdn.elqasr.dev/a.jpg"}}
	service := newTestService(fake)

	first := service.List(context.Background())
	second := service.List(context.Background())

	assert.Equal(t, 1, fake.listCalls)
	assert.Equal(t, first, second)
}

func TestReplace_InvalidatesCachedGallery(t *testing.T) {
	fake := &fakeStore{images: []string{"https://cdn.elqasr.dev/a.jpg"}}
	service := newTestService(fake)

	_ = service.List(context.Background())
	require.Equal(t, 1, fake.listCalls)

	replaced, err := service.Replace(context.Background(), "token", Input{
		Images: []string{"https://cdn.elqasr.dev/b.jpg"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"https://cdn.elqasr.dev/b.jpg"}, replaced)

	images := service.List(context.Background())
	assert.Equal(t, 2, fake.listCalls)
	assert.Equal(t, []string{"https://cdn.elqasr.dev/b.jpg"}, images)
}

func TestReplace_RejectsRelativeURLs(t *testing.T) {
	service := newTestService(&fakeStore{})

	_, err := service.Replace(context.Background(), "token", Input{
		Images: []string{"/uploads/a.jpg"},
	})
	require.Error(t, err)
}

func TestBackendStore_NullDataIsEmptyGallery(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Content-Type", "application/json")
		_, _ = writer.Write([]byte(`{"success":true,"data":null}`))
	}))
	defer server.Close()

	client := backend.New(server.URL, 5*time.Second, slog.New(slog.NewTextHandler(io.Discard, nil)))
	store := NewBackendStore(client)

	images, err := store.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, images)
	assert.Empty(t, images)
}

func TestCacheKey_IsGalleryResource(t *testing.T) {
	key := querycache.NewKey("gallery")
	assert.Equal(t, "gallery", key.String())
}
