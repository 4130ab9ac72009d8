// Copyright (c) 2026 ElQasr. All rights reserved.
// Author: mohamed.magdy@elqasr-dev.com

package gallery

import (
	"context"
	"fmt"
	"net/http"

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

// List fetches the gallery image URLs. A null data payload is a legitimate
// empty gallery, not an error.
func (store *BackendStore) List(context context.Context) ([]string, error) {
	envelope, err := store.client.Get(context, "/gallery", nil)
	if err != nil {
		return nil, err
	}
	if !envelope.Success {
		return nil, fmt.Errorf("gallery list: backend reported failure: %s", envelope.Message)
	}

	images, err := backend.DecodeData[[]string](envelope)
	if err != nil {
		return nil, err
	}
	if images == nil {
		images = []string{}
	}
	return images, nil
}

// Replace swaps the entire image set.
func (store *BackendStore) Replace(context context.Context, token string, input Input) ([]string, error) {
	envelope, err := store.client.Write(context, http.MethodPut, "/gallery", token, input)
	if err != nil {
		return nil, err
	}

	images, err := backend.DecodeData[[]string](envelope)
	if err != nil {
		return nil, err
	}
	if images == nil {
		images = []string{}
	}
	return images, nil
}
