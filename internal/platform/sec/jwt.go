// Copyright (c) 2026 ElQasr. All rights reserved.
// Author: mohamed.magdy@elqasr-dev.com

// Package sec provides session verification primitives.
//
// # Architecture
//
// Sessions are minted by an external credential provider; this service never
// issues, refreshes, or revokes tokens. It only verifies RS256 signatures with
// the provider's public key and reads the embedded role, keeping the raw token
// around so write operations can forward it to the backend API as the bearer
// credential.
package sec

import (
	"crypto/rsa"
	"fmt"
	"os"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims is the payload embedded inside a session token.
//
// # Why custom claims?
//
// By reading UserID and Role directly from the verified JWT, the middleware
// can reconstruct the active session WITHOUT a round trip to the session
// provider on every request.
type SessionClaims struct {
	jwt.RegisteredClaims

	// Custom application claims are abbreviated to keep the JWT payload small.
	UserID string `json:"uid"`
	Role   string `json:"rol"`
}

// Session is the verified identity attached to a request.
type Session struct {
	// UserID is the account identifier from the session provider.
	UserID string

	// Role gates admin affordances (see [UserRole]).
	Role UserRole

	// Token is the raw bearer JWT, forwarded verbatim to the backend API on
	// write requests. This service never inspects it beyond verification.
	Token string
}

// TokenVerifier verifies session tokens using the provider's RS256 public key.
type TokenVerifier struct {
	publicKey *rsa.PublicKey
	issuer    string
}

// NewTokenVerifier reads the provider's RSA public key from the given path.
func NewTokenVerifier(publicKeyPath, issuer string) (*TokenVerifier, error) {
	publicKeyData, err := os.ReadFile(publicKeyPath)
	if err != nil {
		return nil, fmt.Errorf("sec: failed to read public key from %s: %w", publicKeyPath, err)
	}

	publicKey, err := jwt.ParseRSAPublicKeyFromPEM(publicKeyData)
	if err != nil {
		return nil, fmt.Errorf("sec: failed to parse public key: %w", err)
	}

	return &TokenVerifier{
		publicKey: publicKey,
		issuer:    issuer,
	}, nil
}

// VerifyToken checks the signature and validity of a session token string and
// returns the [Session] it represents.
func (verifier *TokenVerifier) VerifyToken(tokenString string) (*Session, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return verifier.publicKey, nil
	}, jwt.WithIssuer(verifier.issuer))

	if err != nil {
		return nil, fmt.Errorf("sec: invalid token: %w", err)
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("sec: invalid token claims")
	}

	return &Session{
		UserID: claims.UserID,
		Role:   UserRole(claims.Role),
		Token:  tokenString,
	}, nil
}
