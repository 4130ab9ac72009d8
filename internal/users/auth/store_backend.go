// Copyright (c) 2026 ElQasr. All rights reserved.
// Author: mohamed.magdy@elqasr-dev.com

package auth

import (
	"context"

	"github.com/mohamedmagdy99/elqasr-portfolio-sub000/internal/platform/backend"
)

// BackendStore implements [Store] against the backend REST API.
type BackendStore struct {
	client *backend.Client
}

// NewBackendStore constructs the production store.
func NewBackendStore(client *backend.Client) *BackendStore {
	return &BackendStore{client: client}
}

func (store *BackendStore) Signup(context context.Context, input SignupInput) (map[string]any, error) {
	return store.client.Post(context, "/auth/signup", input)
}
