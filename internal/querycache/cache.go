// Copyright (c) 2026 ElQasr. All rights reserved.
// Author: mohamed.magdy@elqasr-dev.com

/*
Package querycache implements the in-memory, per-process query cache that
sits between the HTTP handlers and the backend stores.

Every read flows through a [Cache] instance created in main and injected
into the handlers — there is no package-level singleton, so tests and
future multi-tenant deployments can run isolated caches side by side.

# Semantics

  - Each distinct [Key] (resource + ordered params, one per page of a
    paginated list) caches independently.
  - Concurrent reads of the same key share a single in-flight fetch.
  - A fresh success entry is served without touching the network. A stale
    one is served immediately while a background refetch replaces it.
  - Invalidation marks entries so the NEXT read goes to the network before
    answering; previously cached data may still be offered as an explicit
    placeholder while that fetch runs.
  - When fetches overlap (an invalidation races an in-flight fetch), the
    last fetch started wins: completions from superseded fetches are
    logged and discarded instead of overwriting newer data.
*/
package querycache

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/mohamedmagdy99/elqasr-portfolio-sub000/pkg/pointer"
)

// Status is the lifecycle state of a cached query.
type Status string

const (
	StatusPending Status = "pending"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Snapshot is the caller-visible view of one cache entry at a point in time.
type Snapshot struct {
	Key       Key
	Status    Status
	Data      any
	Err       error
	FetchedAt time.Time

	// Placeholder reports that Data belongs to a different (previous) key
	// and is shown only while this key's own fetch is still running.
	Placeholder bool
}

// FetchFunc loads the authoritative value for a key from the backend.
type FetchFunc func(ctx context.Context) (any, error)

// flight is one in-progress fetch. Joiners wait on done and then read the
// result fields; gen ties the flight to the entry generation that started it.
type flight struct {
	gen  uint64
	done chan struct{}
	data any
	err  error
}

type entry struct {
	key       Key
	status    Status
	data      any
	err       error
	fetchedAt time.Time

	// invalid forces the next read to the network even if data exists.
	invalid bool

	// latestGen increments on every fetch start and every invalidation;
	// a completing fetch only commits if its gen still matches.
	latestGen uint64

	flight *flight
}

// Cache is the query cache. Safe for concurrent use.
type Cache struct {
	mu         sync.Mutex
	entries    map[string]*entry
	staleAfter time.Duration
	log        *slog.Logger

	// now is swappable in tests to step through staleness windows.
	now func() time.Time
}

// New creates a cache whose success entries count as fresh for staleAfter.
func New(staleAfter time.Duration, log *slog.Logger) *Cache {
	return &Cache{
		entries:    make(map[string]*entry),
		staleAfter: staleAfter,
		log:        log,
		now:        time.Now,
	}
}

// Option adjusts a single Read call.
type Option func(*readOptions)

type readOptions struct {
	placeholderFrom *Key
}

// WithPreviousData lets a read answer immediately with the last successful
// data cached under prev (typically the previous page of the same list)
// while this key's own fetch runs in the background.
func WithPreviousData(prev Key) Option {
	return func(opts *readOptions) {
		opts.placeholderFrom = pointer.To(prev)
	}
}

// Read returns the cached value for key, fetching it when missing, stale,
// or invalidated.
//
// The error return is reserved for context cancellation while waiting on a
// shared fetch; fetch failures are reported inside the snapshot so callers
// apply their own soft-fail policy.
func (c *Cache) Read(ctx context.Context, key Key, fetch FetchFunc, options ...Option) (Snapshot, error) {
	var opts readOptions
	for _, option := range options {
		option(&opts)
	}

	c.mu.Lock()

	ent, ok := c.entries[key.String()]
	if !ok {
		ent = &entry{key: key, status: StatusPending}
		c.entries[key.String()] = ent
	}

	// 1. Fresh hit: serve from memory, no network.
	if ent.status == StatusSuccess && !ent.invalid && c.now().Sub(ent.fetchedAt) < c.staleAfter {
		snapshot := snapshotOf(ent)
		c.mu.Unlock()
		return snapshot, nil
	}

	// 2. A fetch is already running: dedupe onto it.
	if ent.flight != nil {
		if placeholder, ok := c.placeholderLocked(ent, opts); ok {
			c.mu.Unlock()
			return placeholder, nil
		}
		inFlight := ent.flight
		c.mu.Unlock()
		return c.waitFlight(ctx, key, inFlight)
	}

	// 3. Stale success data that is not invalidated: serve it now and
	// refresh in the background.
	if ent.status == StatusSuccess && !ent.invalid {
		snapshot := snapshotOf(ent)
		inFlight := c.startFlightLocked(ent)
		c.mu.Unlock()

		go c.runFetch(context.WithoutCancel(ctx), key, inFlight, fetch)
		return snapshot, nil
	}

	// 4. Nothing usable under this key. If the caller offered previous data,
	// show it as a placeholder and fetch in the background.
	if placeholder, ok := c.placeholderLocked(ent, opts); ok {
		inFlight := c.startFlightLocked(ent)
		c.mu.Unlock()

		go c.runFetch(context.WithoutCancel(ctx), key, inFlight, fetch)
		return placeholder, nil
	}

	// 5. Cold path: fetch synchronously.
	inFlight := c.startFlightLocked(ent)
	c.mu.Unlock()

	c.runFetch(ctx, key, inFlight, fetch)
	return c.waitFlight(ctx, key, inFlight)
}

// Peek returns the current snapshot without triggering any fetch.
func (c *Cache) Peek(key Key) (Snapshot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ent, ok := c.entries[key.String()]
	if !ok {
		return Snapshot{}, false
	}
	return snapshotOf(ent), true
}

// Invalidate marks every entry whose key matches. Matched entries keep
// their data for placeholder use, but the next read must hit the network
// before answering. In-flight fetches on matched entries are superseded:
// their completions will be discarded.
func (c *Cache) Invalidate(match func(Key) bool) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	count := 0
	for _, ent := range c.entries {
		if !match(ent.key) {
			continue
		}
		ent.invalid = true
		ent.latestGen++
		if ent.flight != nil {
			ent.flight = nil
		}
		count++
	}

	if count > 0 {
		c.log.Debug("cache_invalidated", slog.Int("entries", count))
	}
	return count
}

// InvalidateResource invalidates all entries under the given resources.
func (c *Cache) InvalidateResource(resources ...string) int {
	wanted := make(map[string]bool, len(resources))
	for _, resource := range resources {
		wanted[resource] = true
	}
	return c.Invalidate(func(key Key) bool {
		return wanted[key.Resource()]
	})
}

// Len reports the number of cached entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// startFlightLocked registers a new fetch generation on the entry.
// Callers must hold c.mu.
func (c *Cache) startFlightLocked(ent *entry) *flight {
	ent.latestGen++
	ent.flight = &flight{
		gen:  ent.latestGen,
		done: make(chan struct{}),
	}
	if ent.status != StatusSuccess {
		ent.status = StatusPending
	}
	return ent.flight
}

// placeholderLocked resolves previous-key data to show while a fetch runs.
// Callers must hold c.mu.
func (c *Cache) placeholderLocked(ent *entry, opts readOptions) (Snapshot, bool) {
	if opts.placeholderFrom == nil {
		return Snapshot{}, false
	}

	previous, ok := c.entries[opts.placeholderFrom.String()]
	if !ok || previous.status != StatusSuccess {
		return Snapshot{}, false
	}

	return Snapshot{
		Key:         ent.key,
		Status:      StatusPending,
		Data:        previous.data,
		FetchedAt:   previous.fetchedAt,
		Placeholder: true,
	}, true
}

// runFetch executes one fetch and commits the result if its generation is
// still the latest for the entry.
func (c *Cache) runFetch(ctx context.Context, key Key, inFlight *flight, fetch FetchFunc) {
	data, err := fetch(ctx)

	inFlight.data = data
	inFlight.err = err
	close(inFlight.done)

	c.mu.Lock()
	defer c.mu.Unlock()

	ent, ok := c.entries[key.String()]
	if !ok {
		return
	}

	if inFlight.gen != ent.latestGen {
		// A newer fetch or an invalidation superseded this one.
		c.log.Debug("cache_fetch_discarded",
			slog.String("key", key.String()),
			slog.Uint64("fetch_gen", inFlight.gen),
			slog.Uint64("latest_gen", ent.latestGen),
		)
		return
	}

	ent.flight = nil
	ent.invalid = false
	ent.fetchedAt = c.now()
	if err != nil {
		ent.status = StatusError
		ent.err = err
		c.log.Warn("cache_fetch_failed",
			slog.String("key", key.String()),
			slog.String("error", err.Error()),
		)
		return
	}

	ent.status = StatusSuccess
	ent.data = data
	ent.err = nil
}

// waitFlight blocks until the shared fetch finishes or ctx is cancelled.
func (c *Cache) waitFlight(ctx context.Context, key Key, inFlight *flight) (Snapshot, error) {
	select {
	case <-inFlight.done:
	case <-ctx.Done():
		return Snapshot{}, ctx.Err()
	}

	snapshot := Snapshot{
		Key:       key,
		Status:    StatusSuccess,
		Data:      inFlight.data,
		FetchedAt: c.now(),
	}
	if inFlight.err != nil {
		snapshot.Status = StatusError
		snapshot.Err = inFlight.err
		snapshot.Data = nil
	}
	return snapshot, nil
}

func snapshotOf(ent *entry) Snapshot {
	return Snapshot{
		Key:       ent.key,
		Status:    ent.status,
		Data:      ent.data,
		Err:       ent.err,
		FetchedAt: ent.fetchedAt,
	}
}

// Resolve casts a snapshot's payload to T. A pending or error snapshot, or
// a payload of the wrong type, yields T's zero value and false.
func Resolve[T any](snapshot Snapshot) (T, bool) {
	var zero T
	if snapshot.Data == nil {
		return zero, false
	}
	value, ok := snapshot.Data.(T)
	if !ok {
		return zero, false
	}
	return value, true
}
