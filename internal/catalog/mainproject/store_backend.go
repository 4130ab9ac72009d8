// Copyright (c) 2026 ElQasr. All rights reserved.
// Author: mohamed.magdy@elqasr-dev.com

package mainproject

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/mohamedmagdy99/elqasr-portfolio-sub000/internal/platform/backend"
	"github.com/mohamedmagdy99/elqasr-portfolio-sub000/pkg/pagination"
)

// BackendStore implements [Store] against the backend REST API.
type BackendStore struct {
	client *backend.Client
}

// NewBackendStore constructs the production store.
func NewBackendStore(client *backend.Client) *BackendStore {
	return &BackendStore{client: client}
}

func (store *BackendStore) List(context context.Context, query url.Values) ([]MainProject, pagination.Meta, error) {
	envelope, err := store.client.Get(context, "/main-projects", query)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	if !envelope.Success {
		return nil, pagination.Meta{}, fmt.Errorf("main-projects list: backend reported failure: %s", envelope.Message)
	}

	projects, err := backend.DecodeData[[]MainProject](envelope)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	if projects == nil {
		projects = []MainProject{}
	}

	meta := pagination.Meta{
		CurrentPage: envelope.CurrentPage,
		TotalPages:  envelope.TotalPages,
	}
	return projects, meta, nil
}

func (store *BackendStore) Get(context context.Context, id string) (*MainProject, error) {
	envelope, err := store.client.Get(context, "/main-projects/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}
	if !envelope.Success {
		return nil, nil
	}
	return backend.DecodeData[*MainProject](envelope)
}

// ListUnits fetches every unit of one development. The backend does not
// paginate units; a development has at most a few dozen.
func (store *BackendStore) ListUnits(context context.Context, id string) ([]Unit, error) {
	envelope, err := store.client.Get(context, "/main-projects/"+url.PathEscape(id)+"/units", nil)
	if err != nil {
		return nil, err
	}
	if !envelope.Success {
		return nil, fmt.Errorf("units list: backend reported failure: %s", envelope.Message)
	}

	units, err := backend.DecodeData[[]Unit](envelope)
	if err != nil {
		return nil, err
	}
	if units == nil {
		units = []Unit{}
	}
	return units, nil
}

func (store *BackendStore) Create(context context.Context, token string, input Input) (*MainProject, error) {
	envelope, err := store.client.Write(context, http.MethodPost, "/main-projects", token, input)
	if err != nil {
		return nil, err
	}
	return backend.DecodeData[*MainProject](envelope)
}

func (store *BackendStore) Update(context context.Context, token, id string, input Input) (*MainProject, error) {
	envelope, err := store.client.Write(context, http.MethodPut, "/main-projects/"+url.PathEscape(id), token, input)
	if err != nil {
		return nil, err
	}
	return backend.DecodeData[*MainProject](envelope)
}

func (store *BackendStore) Delete(context context.Context, token, id string) error {
	_, err := store.client.Write(context, http.MethodDelete, "/main-projects/"+url.PathEscape(id), token, nil)
	return err
}
