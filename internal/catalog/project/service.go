// Copyright (c) 2026 ElQasr. All rights reserved.
// Author: mohamed.magdy@elqasr-dev.com

package project

import (
	"context"
	"log/slog"

	"github.com/mohamedmagdy99/elqasr-portfolio-sub000/internal/mutate"
	"github.com/mohamedmagdy99/elqasr-portfolio-sub000/internal/platform/constants"
	"github.com/mohamedmagdy99/elqasr-portfolio-sub000/internal/platform/validate"
	"github.com/mohamedmagdy99/elqasr-portfolio-sub000/internal/querycache"
	"github.com/mohamedmagdy99/elqasr-portfolio-sub000/internal/viewstate"
	"github.com/mohamedmagdy99/elqasr-portfolio-sub000/pkg/pagination"
)

// # Service Layer

// listing is the unit cached per list query key.
type listing struct {
	Items []Project
	Meta  pagination.Meta
}

// ListResult is what the handler renders for a list request.
//
// Stale marks placeholder data carried over from the previous page while
// the requested page is still loading.
type ListResult struct {
	Items []Project
	Meta  pagination.Meta
	Stale bool
}

// Service orchestrates project reads through the query cache and writes
// through the mutation runner.
type Service struct {
	store  Store
	cache  *querycache.Cache
	runner *mutate.Runner
	logger *slog.Logger
}

// NewService constructs a project [Service].
func NewService(store Store, cache *querycache.Cache, runner *mutate.Runner, logger *slog.Logger) *Service {
	return &Service{
		store:  store,
		cache:  cache,
		runner: runner,
		logger: logger,
	}
}

// # Reads (soft-fail)

/*
List returns one page of the project catalogue.

Reads never propagate backend failures: a failed fetch yields an empty
page so the listing still renders, and the cause goes to the log. Requests
for pages beyond the first may answer immediately with the previous page's
data, flagged Stale, while the real page loads.
*/
func (service *Service) List(ctx context.Context, state *viewstate.State) ListResult {
	fetch := func(fetchContext context.Context) (any, error) {
		items, meta, err := service.store.List(fetchContext, state.BackendQuery())
		if err != nil {
			return nil, err
		}
		return listing{Items: items, Meta: meta}, nil
	}

	var options []querycache.Option
	if previous, ok := state.PreviousPageKey(); ok {
		options = append(options, querycache.WithPreviousData(previous))
	}

	snapshot, err := service.cache.Read(ctx, state.Key(), fetch, options...)
	if err != nil || snapshot.Status == querycache.StatusError {
		service.logListFailure(ctx, state, snapshot, err)
		return ListResult{Items: []Project{}}
	}

	page, ok := querycache.Resolve[listing](snapshot)
	if !ok {
		return ListResult{Items: []Project{}}
	}

	state.ObserveTotalPages(page.Meta.TotalPages)
	return ListResult{
		Items: page.Items,
		Meta:  page.Meta,
		Stale: snapshot.Placeholder,
	}
}

/*
Get returns one project by ID, or nil when it does not exist.

Absence and backend failure both come back as nil: the handler decides
whether nil is a 404 or a soft empty render.
*/
func (service *Service) Get(ctx context.Context, id string) *Project {
	key := querycache.NewKey(constants.ResourceProjects, querycache.P("id", id))

	fetch := func(fetchContext context.Context) (any, error) {
		return service.store.Get(fetchContext, id)
	}

	snapshot, err := service.cache.Read(ctx, key, fetch)
	if err != nil || snapshot.Status == querycache.StatusError {
		service.logger.Warn("project_get_soft_failed",
			slog.String("id", id),
			slog.Any("error", firstError(err, snapshot.Err)),
		)
		return nil
	}

	project, _ := querycache.Resolve[*Project](snapshot)
	return project
}

// # Writes (hard-fail)

// Create validates and persists a new project, then invalidates every
// cached project listing.
func (service *Service) Create(ctx context.Context, token string, input Input) (*Project, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	var created *Project
	err := service.runner.Run(ctx, "Project created", func(runContext context.Context) error {
		var opErr error
		created, opErr = service.store.Create(runContext, token, input)
		return opErr
	}, constants.ResourceProjects)

	return created, err
}

// Update replaces an existing project's metadata.
func (service *Service) Update(ctx context.Context, token, id string, input Input) (*Project, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	var updated *Project
	err := service.runner.Run(ctx, "Project updated", func(runContext context.Context) error {
		var opErr error
		updated, opErr = service.store.Update(runContext, token, id, input)
		return opErr
	}, constants.ResourceProjects)

	return updated, err
}

// Delete removes a project.
func (service *Service) Delete(ctx context.Context, token, id string) error {
	return service.runner.Run(ctx, "Project deleted", func(runContext context.Context) error {
		return service.store.Delete(runContext, token, id)
	}, constants.ResourceProjects)
}

// # Helpers

func validateInput(input Input) error {
	validator := &validate.Validator{}
	validator.LocalizedRequired(FieldTitle, input.Title)
	validator.LocalizedRequired(FieldDescription, input.Description)
	validator.Required(FieldType, string(input.Type)).OneOf(FieldType, string(input.Type),
		string(TypeResidential),
		string(TypeCommercial),
	)
	validator.URLList(FieldImages, input.Images)
	return validator.Err()
}

func (service *Service) logListFailure(ctx context.Context, state *viewstate.State, snapshot querycache.Snapshot, err error) {
	service.logger.WarnContext(ctx, "project_list_soft_failed",
		slog.String("key", state.Key().String()),
		slog.Any("error", firstError(err, snapshot.Err)),
	)
}

func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
