// Copyright (c) 2026 ElQasr. All rights reserved.
// Author: mohamed.magdy@elqasr-dev.com

// Package notify holds short-lived operator notices produced by admin
// mutations ("Project created", "Delete failed: ...").
//
// Notices expire on their own after a fixed TTL; consumers poll Active and
// never have to dismiss anything explicitly.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Kind classifies a notice for presentation.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// Notice is one transient message.
type Notice struct {
	ID        string    `json:"id"`
	Kind      Kind      `json:"kind"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// Center stores notices and expires them after a TTL. Safe for concurrent use.
type Center struct {
	mu      sync.Mutex
	notices []Notice
	ttl     time.Duration

	// now is swappable in tests.
	now func() time.Time
}

// NewCenter creates a notice center whose notices live for ttl.
func NewCenter(ttl time.Duration) *Center {
	return &Center{
		ttl: ttl,
		now: time.Now,
	}
}

// Push records a notice and returns it.
func (c *Center) Push(kind Kind, message string) Notice {
	notice := Notice{
		ID:        uuid.New().String(),
		Kind:      kind,
		Message:   message,
		CreatedAt: c.now(),
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.notices = append(c.notices, notice)
	return notice
}

// Active returns the notices that have not yet expired, oldest first, and
// drops the expired ones.
func (c *Center) Active() []Notice {
	c.mu.Lock()
	defer c.mu.Unlock()

	cutoff := c.now().Add(-c.ttl)
	kept := c.notices[:0]
	for _, notice := range c.notices {
		if notice.CreatedAt.After(cutoff) {
			kept = append(kept, notice)
		}
	}
	c.notices = kept

	out := make([]Notice, len(kept))
	copy(out, kept)
	return out
}

// Clear drops every notice immediately.
func (c *Center) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notices = nil
}
