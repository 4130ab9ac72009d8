// Copyright (c) 2026 ElQasr. All rights reserved.
// Author: mohamed.magdy@elqasr-dev.com

package project

import (
	"context"
	"net/url"

	"github.com/mohamedmagdy99/elqasr-portfolio-sub000/pkg/pagination"
)

// Store abstracts the backend API for the project catalogue. The production
// implementation lives in store_backend.go; tests substitute fakes.
type Store interface {
	List(context context.Context, query url.Values) ([]Project, pagination.Meta, error)
	Get(context context.Context, id string) (*Project, error)

	Create(context context.Context, token string, input Input) (*Project, error)
	Update(context context.Context, token, id string, input Input) (*Project, error)
	Delete(context context.Context, token, id string) error
}
