// Copyright (c) 2026 ElQasr. All rights reserved.
// Author: mohamed.magdy@elqasr-dev.com

package gallery

import (
	"context"
	"log/slog"

	"github.com/mohamedmagdy99/elqasr-portfolio-sub000/internal/mutate"
	"github.com/mohamedmagdy99/elqasr-portfolio-sub000/internal/platform/constants"
	"github.com/mohamedmagdy99/elqasr-portfolio-sub000/internal/platform/validate"
	"github.com/mohamedmagdy99/elqasr-portfolio-sub000/internal/querycache"
)

// Service orchestrates gallery reads through the query cache and writes
// through the mutation runner.
type Service struct {
	store  Store
	cache  *querycache.Cache
	runner *mutate.Runner
	logger *slog.Logger
}

// NewService constructs a gallery [Service].
func NewService(store Store, cache *querycache.Cache, runner *mutate.Runner, logger *slog.Logger) *Service {
	return &Service{
		store:  store,
		cache:  cache,
		runner: runner,
		logger: logger,
	}
}

// List returns the gallery image URLs. Failures render an empty gallery;
// the homepage must not break because the showcase strip cannot load.
func (service *Service) List(ctx context.Context) []string {
	key := querycache.NewKey(constants.ResourceGallery)

	snapshot, err := service.cache.Read(ctx, key, func(fetchContext context.Context) (any, error) {
		return service.store.List(fetchContext)
	})
	if err != nil || snapshot.Status == querycache.StatusError {
		service.logger.Warn("gallery_soft_failed", slog.Any("error", firstError(err, snapshot.Err)))
		return []string{}
	}

	images, ok := querycache.Resolve[[]string](snapshot)
	if !ok {
		return []string{}
	}
	return images
}

// Replace swaps the entire image set and invalidates the cached gallery.
func (service *Service) Replace(ctx context.Context, token string, input Input) ([]string, error) {
	validator := &validate.Validator{}
	validator.URLList(FieldImages, input.Images)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	var images []string
	err := service.runner.Run(ctx, "Gallery updated", func(runContext context.Context) error {
		var opErr error
		images, opErr = service.store.Replace(runContext, token, input)
		return opErr
	}, constants.ResourceGallery)

	return images, err
}

func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
