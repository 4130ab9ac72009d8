// Copyright (c) 2026 ElQasr. All rights reserved.
// Author: mohamed.magdy@elqasr-dev.com

// Package warmup prefetches the landing page's queries at startup so the
// first visitor hits a warm cache instead of paying backend latency.
package warmup

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
)

// Task is one named prefetch.
type Task struct {
	Name string
	Run  func(context context.Context) error
}

// Run executes every task concurrently and waits for all of them.
//
// Warmup is best-effort: failures are logged and swallowed, because the
// read path soft-fails anyway and a cold cache is not a startup error.
func Run(context context.Context, log *slog.Logger, timeout time.Duration, tasks ...Task) {
	bounded, cancel := contextWithTimeout(context, timeout)
	defer cancel()

	started := time.Now()
	group, groupContext := errgroup.WithContext(bounded)

	for _, task := range tasks {
		task := task
		group.Go(func() error {
			if err := task.Run(groupContext); err != nil {
				log.Warn("warmup_task_failed",
					slog.String("task", task.Name),
					slog.String("error", err.Error()),
				)
			}
			// Never abort sibling prefetches.
			return nil
		})
	}

	_ = group.Wait()
	log.Info("warmup_finished",
		slog.Int("tasks", len(tasks)),
		slog.Int64("elapsed_ms", time.Since(started).Milliseconds()),
	)
}

func contextWithTimeout(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, timeout)
}
