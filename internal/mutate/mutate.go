// Copyright (c) 2026 ElQasr. All rights reserved.
// Author: mohamed.magdy@elqasr-dev.com

// Package mutate couples backend writes to their side effects: on success a
// mutation invalidates the cached resources it changed and raises a success
// notice; on failure it raises an error notice and propagates the error.
//
// Handlers never touch the cache or the notice center directly for writes —
// routing every mutation through [Runner.Run] is what keeps reads and writes
// consistent.
package mutate

import (
	"context"
	"errors"
	"log/slog"

	"github.com/mohamedmagdy99/elqasr-portfolio-sub000/internal/notify"
	"github.com/mohamedmagdy99/elqasr-portfolio-sub000/internal/platform/apperr"
	"github.com/mohamedmagdy99/elqasr-portfolio-sub000/internal/querycache"
)

// Runner executes mutations with their cache and notice side effects.
type Runner struct {
	cache   *querycache.Cache
	notices *notify.Center
	log     *slog.Logger
}

// NewRunner wires a runner to the shared cache and notice center.
func NewRunner(cache *querycache.Cache, notices *notify.Center, log *slog.Logger) *Runner {
	return &Runner{
		cache:   cache,
		notices: notices,
		log:     log,
	}
}

// Run executes op and applies the mutation contract.
//
// action is a short human-readable label ("Project created") used for the
// success notice and log lines. invalidates lists the cache resources whose
// entries must refetch before the next read.
func (r *Runner) Run(ctx context.Context, action string, op func(ctx context.Context) error, invalidates ...string) error {
	if err := op(ctx); err != nil {
		r.notices.Push(notify.KindError, failureMessage(action, err))
		r.log.Warn("mutation_failed",
			slog.String("action", action),
			slog.String("error", err.Error()),
		)
		return err
	}

	if len(invalidates) > 0 {
		r.cache.InvalidateResource(invalidates...)
	}
	r.notices.Push(notify.KindSuccess, action)

	r.log.Info("mutation_applied",
		slog.String("action", action),
		slog.Any("invalidated", invalidates),
	)
	return nil
}

// failureMessage prefers the upstream error message when one exists so the
// operator sees "Project created failed: Title is required" rather than a
// generic failure line.
func failureMessage(action string, err error) string {
	var appError *apperr.AppError
	if errors.As(err, &appError) {
		return action + " failed: " + appError.Message
	}
	return action + " failed"
}
