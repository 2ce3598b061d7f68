// Copyright (c) 2026 Librarium. All rights reserved.
// Author: tu.haminh.dev@gmail.com

package auth

// # Token Parameters

const (
	// RefreshTokenLength is the byte length of the opaque refresh token.
	RefreshTokenLength = 32

	// RefreshTokenCookieName carries the refresh token between requests.
	RefreshTokenCookieName = "librarium_refresh"

	// RefreshTokenCookiePath scopes the cookie to the auth endpoints only.
	RefreshTokenCookiePath = "/api/v1/auth"
)
