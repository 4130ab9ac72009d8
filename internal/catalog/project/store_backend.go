// Copyright (c) 2026 ElQasr. All rights reserved.
// Author: mohamed.magdy@elqasr-dev.com

package project

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/mohamedmagdy99/elqasr-portfolio-sub000/internal/platform/backend"
	"github.com/mohamedmagdy99/elqasr-portfolio-sub000/pkg/localized"
	"github.com/mohamedmagdy99/elqasr-portfolio-sub000/pkg/pagination"
	"github.com/mohamedmagdy99/elqasr-portfolio-sub000/pkg/slug"
)

// Slugs always derive from the English title so URLs stay ASCII.
const localeForSlug = localized.English

// BackendStore implements [Store] against the backend REST API.
type BackendStore struct {
	client *backend.Client
}

// NewBackendStore constructs the production store.
func NewBackendStore(client *backend.Client) *BackendStore {
	return &BackendStore{client: client}
}

// List fetches one page of projects. Errors are returned as-is; the service
// layer owns the soft-fail policy for reads.
func (store *BackendStore) List(context context.Context, query url.Values) ([]Project, pagination.Meta, error) {
	envelope, err := store.client.Get(context, "/projects", query)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	if !envelope.Success {
		return nil, pagination.Meta{}, fmt.Errorf("projects list: backend reported failure: %s", envelope.Message)
	}

	projects, err := backend.DecodeData[[]Project](envelope)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	if projects == nil {
		projects = []Project{}
	}
	attachSlugs(projects)

	meta := pagination.Meta{
		CurrentPage: envelope.CurrentPage,
		TotalPages:  envelope.TotalPages,
	}
	return projects, meta, nil
}

// Get fetches one project by ID. A missing project is (nil, nil), not an
// error: the caller decides whether absence is exceptional.
func (store *BackendStore) Get(context context.Context, id string) (*Project, error) {
	envelope, err := store.client.Get(context, "/projects/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}
	if !envelope.Success {
		return nil, nil
	}

	project, err := backend.DecodeData[*Project](envelope)
	if err != nil {
		return nil, err
	}
	if project != nil {
		project.Slug = slug.From(project.Title.Resolve(localeForSlug))
	}
	return project, nil
}

// Create forwards a new project to the backend. Hard-fail path: the token
// is mandatory and upstream rejections surface as typed errors.
func (store *BackendStore) Create(context context.Context, token string, input Input) (*Project, error) {
	envelope, err := store.client.Write(context, http.MethodPost, "/projects", token, input)
	if err != nil {
		return nil, err
	}
	return backend.DecodeData[*Project](envelope)
}

// Update replaces a project's metadata.
func (store *BackendStore) Update(context context.Context, token, id string, input Input) (*Project, error) {
	envelope, err := store.client.Write(context, http.MethodPut, "/projects/"+url.PathEscape(id), token, input)
	if err != nil {
		return nil, err
	}
	return backend.DecodeData[*Project](envelope)
}

// Delete removes a project.
func (store *BackendStore) Delete(context context.Context, token, id string) error {
	_, err := store.client.Write(context, http.MethodDelete, "/projects/"+url.PathEscape(id), token, nil)
	return err
}

// attachSlugs derives SEO slugs from the English title; the backend does
// not store them.
func attachSlugs(projects []Project) {
	for index := range projects {
		projects[index].Slug = slug.From(projects[index].Title.Resolve(localeForSlug))
	}
}
