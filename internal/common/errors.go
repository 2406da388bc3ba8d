// Package common defines sentinel errors and constants shared by the
// server layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// repository errors
	ErrorNotFound = errors.New("not found")
	ErrorConflict = errors.New("already exists")

	// service errors
	ErrorInternal         = errors.New("internal error")
	ErrorUnauthorized     = errors.New("unauthorized")
	ErrorForbidden        = errors.New("forbidden")
	ErrorValidation       = errors.New("validation error")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNoMessages         = errors.New("conversation has no messages")

	ErrInvalidToken = errors.New("invalid token")

	// token lifecycle
	ErrTokenExpired        = errors.New("token expired")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
)
