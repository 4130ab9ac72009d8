// Copyright (c) 2026 ElQasr. All rights reserved.
// Author: mohamed.magdy@elqasr-dev.com

package gallery

import "context"

// Store abstracts the backend API for the showcase gallery. The gallery is
// a single flat list of image URLs, not a paginated resource.
type Store interface {
	List(context context.Context) ([]string, error)
	Replace(context context.Context, token string, input Input) ([]string, error)
}
