package domain

import (
	"github.com/allisson/gatekeeper/internal/errors"
)

// Domain-specific errors for authentication operations.
var (
	// ErrTokenInvalid indicates a bad signature or malformed payload. Never
	// refreshable.
	ErrTokenInvalid = errors.Wrap(errors.ErrUnauthorized, "token is invalid")

	// ErrTokenExpired indicates an authentic token past its expiry.
	ErrTokenExpired = errors.Wrap(errors.ErrUnauthorized, "token is expired")

	// ErrAssertionInvalid indicates the identity assertion is missing a
	// subject or otherwise unusable.
	ErrAssertionInvalid = errors.Wrap(errors.ErrInvalidInput, "identity assertion is invalid")
)
