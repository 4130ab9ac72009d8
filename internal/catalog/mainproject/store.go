// Copyright (c) 2026 ElQasr. All rights reserved.
// Author: mohamed.magdy@elqasr-dev.com

package mainproject

import (
	"context"
	"net/url"

	"github.com/mohamedmagdy99/elqasr-portfolio-sub000/pkg/pagination"
)

// Store abstracts the backend API for active developments.
type Store interface {
	List(context context.Context, query url.Values) ([]MainProject, pagination.Meta, error)
	Get(context context.Context, id string) (*MainProject, error)
	ListUnits(context context.Context, id string) ([]Unit, error)

	Create(context context.Context, token string, input Input) (*MainProject, error)
	Update(context context.Context, token, id string, input Input) (*MainProject, error)
	Delete(context context.Context, token, id string) error
}
