// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors produced while extracting the bearer token from the
// "Authorization" header. The auth middleware maps all of them to 401.
var (
	// ErrEmptyAuthorizationHeader: the request carries no "Authorization"
	// header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidAuthorizationHeader: the header is present but does not
	// split into a scheme and a value.
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	// ErrEmptyToken: the scheme prefix is there but the token value is an
	// empty string.
	ErrEmptyToken = errors.New("empty token in `Authorization` header")
)
