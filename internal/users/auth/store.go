// Copyright (c) 2026 ElQasr. All rights reserved.
// Author: mohamed.magdy@elqasr-dev.com

package auth

import "context"

// Store abstracts the backend's account endpoint.
type Store interface {
	// Signup forwards the payload and returns the backend's response body
	// verbatim — the caller relays it without reinterpretation.
	Signup(context context.Context, input SignupInput) (map[string]any, error)
}
