// Copyright (c) 2026 ElQasr. All rights reserved.
// Author: mohamed.magdy@elqasr-dev.com

package querycache

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(staleAfter time.Duration) *Cache {
	return New(staleAfter, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestRead_FreshHitSkipsNetwork(t *testing.T) {
	cache := newTestCache(time.Minute)
	key := NewKey("projects", PInt("page", 1))

	var calls atomic.Int32
	fetch := func(ctx context.Context) (any, error) {
		calls.Add(1)
		return []string{"palm-towers"}, nil
	}

	first, err := cache.Read(context.Background(), key, fetch)
	require.NoError(t, err)
	assert.Equal(t, StatusSuccess, first.Status)

	second, err := cache.Read(context.Background(), key, fetch)
	require.NoError(t, err)
	assert.Equal(t, StatusSuccess, second.Status)

	assert.Equal(t, int32(1), calls.Load(), "fresh entry must be served from memory")

	data, ok := Resolve[[]string](second)
	require.True(t, ok)
	assert.Equal(t, []string{"palm-towers"}, data)
}

func TestRead_ConcurrentReadersShareOneFetch(t *testing.T) {
	cache := newTestCache(time.Minute)
	key := NewKey("projects", PInt("page", 1))

	var calls atomic.Int32
	release := make(chan struct{})
	fetch := func(ctx context.Context) (any, error) {
		calls.Add(1)
		<-release
		return "payload", nil
	}

	const readers = 8
	var wg sync.WaitGroup
	results := make([]Snapshot, readers)

	for i := 0; i < readers; i++ {
		wg.Add(1)
		go func(index int) {
			defer wg.Done()
			snapshot, err := cache.Read(context.Background(), key, fetch)
			assert.NoError(t, err)
			results[index] = snapshot
		}(i)
	}

	// Let every reader reach the cache before the fetch completes.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load(), "overlapping reads must share one fetch")
	for _, snapshot := range results {
		assert.Equal(t, StatusSuccess, snapshot.Status)
		assert.Equal(t, "payload", snapshot.Data)
	}
}

func TestRead_StaleEntryServedThenRefreshed(t *testing.T) {
	cache := newTestCache(time.Minute)
	key := NewKey("gallery")

	current := time.Now()
	cache.now = func() time.Time { return current }

	var calls atomic.Int32
	refreshed := make(chan struct{})
	fetch := func(ctx context.Context) (any, error) {
		if calls.Add(1) == 2 {
			defer close(refreshed)
			return "new", nil
		}
		return "old", nil
	}

	first, err := cache.Read(context.Background(), key, fetch)
	require.NoError(t, err)
	assert.Equal(t, "old", first.Data)

	// Step past the staleness window.
	current = current.Add(2 * time.Minute)

	stale, err := cache.Read(context.Background(), key, fetch)
	require.NoError(t, err)
	assert.Equal(t, "old", stale.Data, "stale data is served immediately")

	select {
	case <-refreshed:
	case <-time.After(time.Second):
		t.Fatal("background refresh never ran")
	}

	// The background refresh has committed; no new fetch is needed.
	assert.Eventually(t, func() bool {
		snapshot, ok := cache.Peek(key)
		return ok && snapshot.Data == "new"
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, int32(2), calls.Load())
}

func TestInvalidate_ForcesNetworkOnNextRead(t *testing.T) {
	cache := newTestCache(time.Minute)
	key := NewKey("projects", PInt("page", 1))

	var calls atomic.Int32
	fetch := func(ctx context.Context) (any, error) {
		return int(calls.Add(1)), nil
	}

	_, err := cache.Read(context.Background(), key, fetch)
	require.NoError(t, err)

	matched := cache.InvalidateResource("projects")
	assert.Equal(t, 1, matched)

	snapshot, err := cache.Read(context.Background(), key, fetch)
	require.NoError(t, err)
	assert.Equal(t, 2, snapshot.Data, "invalidated entry must refetch before answering")
	assert.Equal(t, int32(2), calls.Load())
}

func TestInvalidate_OnlyMatchingResources(t *testing.T) {
	cache := newTestCache(time.Minute)

	fetch := func(ctx context.Context) (any, error) { return "x", nil }
	_, err := cache.Read(context.Background(), NewKey("projects", PInt("page", 1)), fetch)
	require.NoError(t, err)
	_, err = cache.Read(context.Background(), NewKey("gallery"), fetch)
	require.NoError(t, err)

	matched := cache.InvalidateResource("projects")
	assert.Equal(t, 1, matched)

	snapshot, ok := cache.Peek(NewKey("gallery"))
	require.True(t, ok)
	assert.Equal(t, StatusSuccess, snapshot.Status)
}

func TestRead_LastFetchStartedWins(t *testing.T) {
	cache := newTestCache(time.Minute)
	key := NewKey("main-projects", PInt("page", 1))

	slowRelease := make(chan struct{})
	slowStarted := make(chan struct{})
	slowFetch := func(ctx context.Context) (any, error) {
		close(slowStarted)
		<-slowRelease
		return "stale-result", nil
	}

	slowDone := make(chan struct{})
	go func() {
		defer close(slowDone)
		_, _ = cache.Read(context.Background(), key, slowFetch)
	}()
	<-slowStarted

	// A mutation invalidates the resource while the slow fetch is in flight.
	cache.InvalidateResource("main-projects")

	fastFetch := func(ctx context.Context) (any, error) { return "fresh-result", nil }
	snapshot, err := cache.Read(context.Background(), key, fastFetch)
	require.NoError(t, err)
	assert.Equal(t, "fresh-result", snapshot.Data)

	// Now let the superseded fetch complete; it must not clobber the store.
	close(slowRelease)
	<-slowDone

	stored, ok := cache.Peek(key)
	require.True(t, ok)
	assert.Equal(t, "fresh-result", stored.Data, "superseded completion must be discarded")
}

func TestRead_PreviousPagePlaceholder(t *testing.T) {
	cache := newTestCache(time.Minute)
	pageOne := NewKey("projects", PInt("page", 1))
	pageTwo := NewKey("projects", PInt("page", 2))

	prime := func(ctx context.Context) (any, error) { return "page-1-data", nil }
	_, err := cache.Read(context.Background(), pageOne, prime)
	require.NoError(t, err)

	release := make(chan struct{})
	fetchTwo := func(ctx context.Context) (any, error) {
		<-release
		return "page-2-data", nil
	}

	snapshot, err := cache.Read(context.Background(), pageTwo, fetchTwo, WithPreviousData(pageOne))
	require.NoError(t, err)
	assert.True(t, snapshot.Placeholder, "previous page data must be flagged as placeholder")
	assert.Equal(t, "page-1-data", snapshot.Data)
	assert.Equal(t, StatusPending, snapshot.Status)

	close(release)

	assert.Eventually(t, func() bool {
		stored, ok := cache.Peek(pageTwo)
		return ok && stored.Status == StatusSuccess && stored.Data == "page-2-data"
	}, time.Second, 5*time.Millisecond)
}

func TestRead_PlaceholderRequiresPreviousSuccess(t *testing.T) {
	cache := newTestCache(time.Minute)
	pageOne := NewKey("projects", PInt("page", 1))
	pageTwo := NewKey("projects", PInt("page", 2))

	fetch := func(ctx context.Context) (any, error) { return "page-2-data", nil }

	// Nothing cached under page 1: the read must block on its own fetch.
	snapshot, err := cache.Read(context.Background(), pageTwo, fetch, WithPreviousData(pageOne))
	require.NoError(t, err)
	assert.False(t, snapshot.Placeholder)
	assert.Equal(t, "page-2-data", snapshot.Data)
}

func TestRead_FetchErrorSurfacesInSnapshot(t *testing.T) {
	cache := newTestCache(time.Minute)
	key := NewKey("gallery")

	boom := errors.New("backend unreachable")
	fetch := func(ctx context.Context) (any, error) { return nil, boom }

	snapshot, err := cache.Read(context.Background(), key, fetch)
	require.NoError(t, err, "fetch failures belong in the snapshot, not the error return")
	assert.Equal(t, StatusError, snapshot.Status)
	assert.ErrorIs(t, snapshot.Err, boom)
	assert.Nil(t, snapshot.Data)
}

func TestRead_ErrorEntryRetriesOnNextRead(t *testing.T) {
	cache := newTestCache(time.Minute)
	key := NewKey("gallery")

	var calls atomic.Int32
	fetch := func(ctx context.Context) (any, error) {
		if calls.Add(1) == 1 {
			return nil, errors.New("transient")
		}
		return "recovered", nil
	}

	first, err := cache.Read(context.Background(), key, fetch)
	require.NoError(t, err)
	assert.Equal(t, StatusError, first.Status)

	second, err := cache.Read(context.Background(), key, fetch)
	require.NoError(t, err)
	assert.Equal(t, StatusSuccess, second.Status)
	assert.Equal(t, "recovered", second.Data)
}

func TestRead_SnapshotClockFollowsInjectedNow(t *testing.T) {
	cache := newTestCache(time.Minute)
	key := NewKey("gallery")

	fixed := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return fixed }

	// Cold sync read waits on its own flight; the snapshot it builds must
	// stamp FetchedAt with the cache clock, not the wall clock.
	snapshot, err := cache.Read(context.Background(), key, func(ctx context.Context) (any, error) {
		return "x", nil
	})
	require.NoError(t, err)
	assert.True(t, snapshot.FetchedAt.Equal(fixed))

	stored, ok := cache.Peek(key)
	require.True(t, ok)
	assert.True(t, stored.FetchedAt.Equal(fixed))
}

func TestKey_CanonicalForm(t *testing.T) {
	tests := []struct {
		name     string
		key      Key
		expected string
	}{
		{
			name:     "resource only",
			key:      NewKey("gallery"),
			expected: "gallery",
		},
		{
			name:     "ordered params",
			key:      NewKey("projects", PInt("page", 2), PInt("limit", 9), P("status", "available")),
			expected: "projects|page=2|limit=9|status=available",
		},
		{
			name:     "pages cache independently",
			key:      NewKey("projects", PInt("page", 3)),
			expected: "projects|page=3",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.expected, testCase.key.String())
		})
	}
}

func TestResolve_TypeMismatch(t *testing.T) {
	snapshot := Snapshot{Status: StatusSuccess, Data: "a string"}

	_, ok := Resolve[int](snapshot)
	assert.False(t, ok)

	value, ok := Resolve[string](snapshot)
	require.True(t, ok)
	assert.Equal(t, "a string", value)
}
