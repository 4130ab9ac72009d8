// Copyright (c) 2026 ElQasr. All rights reserved.
// Author: mohamed.magdy@elqasr-dev.com

package auth

// Field identifiers used in validation error details.
const (
	FieldName     = "name"
	FieldEmail    = "email"
	FieldPassword = "password"
)

// SignupInput is the account-creation payload forwarded to the backend.
// Passwords are never hashed or stored here; the backend owns credentials.
type SignupInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
