// Package service provides the bearer token signing, validation and refresh
// services.
package service

import (
	"time"

	authDomain "github.com/allisson/gatekeeper/internal/auth/domain"
)

// TokenService signs, verifies and refreshes bearer tokens. Implementations
// are pure functions of (token, key, now) and are safe for concurrent use.
type TokenService interface {
	// Generate mints a signed token for the subject. It succeeds for any
	// non-empty username.
	Generate(username string, authorities []string, sessionIndex *string) (string, error)

	// Validate verifies the signature first and the expiry second, producing
	// the three-way Valid/Expired/Invalid outcome. Expired still carries the
	// original claims; Invalid carries none.
	Validate(token string) authDomain.TokenOutcome

	// Refresh mints a new token with the same subject, authorities and
	// session index but fresh timestamps. It succeeds for Valid and Expired
	// tokens and fails for Invalid ones.
	Refresh(token string) (string, error)

	// ExtractUsername reads the subject without enforcing expiry. Not
	// authorization-safe; for logging and audit correlation only.
	ExtractUsername(token string) (string, error)

	// ExtractAuthorities reads the authorities without enforcing expiry. Not
	// authorization-safe; for logging and audit correlation only.
	ExtractAuthorities(token string) ([]string, error)

	// IsExpired reports whether the token is past its expiry. Any parse
	// failure counts as expired.
	IsExpired(token string) bool

	// TTL returns the configured validity window for newly minted tokens.
	TTL() time.Duration
}
