// Copyright (c) 2026 ElQasr. All rights reserved.
// Author: mohamed.magdy@elqasr-dev.com

package mainproject

import (
	"context"
	"log/slog"

	"github.com/mohamedmagdy99/elqasr-portfolio-sub000/internal/mutate"
	"github.com/mohamedmagdy99/elqasr-portfolio-sub000/internal/platform/constants"
	"github.com/mohamedmagdy99/elqasr-portfolio-sub000/internal/platform/ctxutil"
	"github.com/mohamedmagdy99/elqasr-portfolio-sub000/internal/platform/validate"
	"github.com/mohamedmagdy99/elqasr-portfolio-sub000/internal/querycache"
	"github.com/mohamedmagdy99/elqasr-portfolio-sub000/internal/viewstate"
	"github.com/mohamedmagdy99/elqasr-portfolio-sub000/pkg/pagination"
)

// listing is the unit cached per list query key.
type listing struct {
	Items []MainProject
	Meta  pagination.Meta
}

// ListResult is what the handler renders for a list request.
type ListResult struct {
	Items []MainProject
	Meta  pagination.Meta
	Stale bool
}

// Service orchestrates main-project reads through the query cache and
// writes through the mutation runner. Reads soft-fail, writes hard-fail,
// mirroring the project catalogue.
type Service struct {
	store  Store
	cache  *querycache.Cache
	runner *mutate.Runner
	logger *slog.Logger
}

// NewService constructs a main-project [Service].
func NewService(store Store, cache *querycache.Cache, runner *mutate.Runner, logger *slog.Logger) *Service {
	return &Service{
		store:  store,
		cache:  cache,
		runner: runner,
		logger: logger,
	}
}

// List returns one page of active developments, honoring the state filter
// carried in the view state (?status=available|sold).
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
		service.logger.WarnContext(ctx, "mainproject_list_soft_failed",
			slog.String("key", state.Key().String()),
			slog.Any("error", firstError(err, snapshot.Err)),
		)
		return ListResult{Items: []MainProject{}}
	}

	page, ok := querycache.Resolve[listing](snapshot)
	if !ok {
		return ListResult{Items: []MainProject{}}
	}

	state.ObserveTotalPages(page.Meta.TotalPages)
	return ListResult{
		Items: page.Items,
		Meta:  page.Meta,
		Stale: snapshot.Placeholder,
	}
}

// Get returns one development by ID, nil when absent or unreachable.
func (service *Service) Get(ctx context.Context, id string) *MainProject {
	key := querycache.NewKey(constants.ResourceMainProjects, querycache.P("id", id))

	snapshot, err := service.cache.Read(ctx, key, func(fetchContext context.Context) (any, error) {
		return service.store.Get(fetchContext, id)
	})
	if err != nil || snapshot.Status == querycache.StatusError {
		service.logger.Warn("mainproject_get_soft_failed",
			slog.String("id", id),
			slog.Any("error", firstError(err, snapshot.Err)),
		)
		return nil
	}

	mainProject, _ := querycache.Resolve[*MainProject](snapshot)
	return mainProject
}

// Units returns the units of one development, empty on failure. Units cache
// under their own key so a detail-page refresh does not refetch the parent.
func (service *Service) Units(ctx context.Context, id string) []Unit {
	key := querycache.NewKey(constants.ResourceMainProjects, querycache.P("id", id), querycache.P("sub", "units"))

	snapshot, err := service.cache.Read(ctx, key, func(fetchContext context.Context) (any, error) {
		return service.store.ListUnits(fetchContext, id)
	})
	if err != nil || snapshot.Status == querycache.StatusError {
		service.logger.Warn("mainproject_units_soft_failed",
			slog.String("id", id),
			slog.Any("error", firstError(err, snapshot.Err)),
		)
		return []Unit{}
	}

	units, ok := querycache.Resolve[[]Unit](snapshot)
	if !ok {
		return []Unit{}
	}
	return localizeUnits(ctx, units)
}

// localizeUnits resolves each unit's bilingual feature list into display
// highlights for the request locale. The cached slice is shared across
// requests, so the units are copied before being annotated.
func localizeUnits(ctx context.Context, units []Unit) []Unit {
	locale := ctxutil.GetLocale(ctx)

	localized := make([]Unit, len(units))
	copy(localized, units)
	for i := range localized {
		localized[i].Highlights = localized[i].Features.Resolve(locale)
	}
	return localized
}

// Create validates and persists a new development.
func (service *Service) Create(ctx context.Context, token string, input Input) (*MainProject, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	var created *MainProject
	err := service.runner.Run(ctx, "Main project created", func(runContext context.Context) error {
		var opErr error
		created, opErr = service.store.Create(runContext, token, input)
		return opErr
	}, constants.ResourceMainProjects)

	return created, err
}

// Update replaces a development's metadata. A state flip (available → sold)
// goes through here too.
func (service *Service) Update(ctx context.Context, token, id string, input Input) (*MainProject, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	var updated *MainProject
	err := service.runner.Run(ctx, "Main project updated", func(runContext context.Context) error {
		var opErr error
		updated, opErr = service.store.Update(runContext, token, id, input)
		return opErr
	}, constants.ResourceMainProjects)

	return updated, err
}

// Delete removes a development and its cached units.
func (service *Service) Delete(ctx context.Context, token, id string) error {
	return service.runner.Run(ctx, "Main project deleted", func(runContext context.Context) error {
		return service.store.Delete(runContext, token, id)
	}, constants.ResourceMainProjects)
}

func validateInput(input Input) error {
	validator := &validate.Validator{}
	validator.LocalizedRequired(FieldName, input.Name)
	validator.LocalizedRequired(FieldDescription, input.Description)
	validator.Required(FieldState, string(input.State)).OneOf(FieldState, string(input.State),
		string(StateAvailable),
		string(StateSold),
	)
	validator.URLList(FieldImages, input.Images)
	return validator.Err()
}

func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
