// Package domain defines the authentication and authorization domain types:
// token claims, validation outcomes, identity assertions and decisions.
package domain

import (
	"time"
)

// TokenClaims holds the fields embedded in a bearer token. Claims are created
// at token generation, round-trip entirely inside the signed token and are
// never persisted.
type TokenClaims struct {
	Subject      string
	Authorities  []string
	SessionIndex *string
	IssuedAt     time.Time
	ExpiresAt    time.Time
}

// TokenStatus tags the outcome of a token validation.
type TokenStatus string

const (
	// TokenStatusValid marks an authentic token inside its validity window.
	TokenStatusValid TokenStatus = "valid"

	// TokenStatusExpired marks an authentic token past its expiry. Expired
	// tokens were once legitimate and may be refreshed.
	TokenStatusExpired TokenStatus = "expired"

	// TokenStatusInvalid marks a token with a bad signature or malformed
	// payload. Invalid tokens carry no trusted claims and must never be
	// refreshed.
	TokenStatusInvalid TokenStatus = "invalid"
)

// TokenOutcome is the three-way result of validating a token. Claims are
// present for Valid and Expired outcomes; Reason is present for Invalid.
type TokenOutcome struct {
	Status TokenStatus
	Claims *TokenClaims
	Reason string
}

// ValidOutcome builds the outcome for an authentic, unexpired token.
func ValidOutcome(claims *TokenClaims) TokenOutcome {
	return TokenOutcome{Status: TokenStatusValid, Claims: claims}
}

// ExpiredOutcome builds the outcome for an authentic token past its expiry.
// The original claims are kept for audit correlation and refresh.
func ExpiredOutcome(claims *TokenClaims) TokenOutcome {
	return TokenOutcome{Status: TokenStatusExpired, Claims: claims}
}

// InvalidOutcome builds the outcome for a token that failed signature or
// payload checks.
func InvalidOutcome(reason string) TokenOutcome {
	return TokenOutcome{Status: TokenStatusInvalid, Reason: reason}
}

// IsValid reports whether the token is authentic and unexpired.
func (o TokenOutcome) IsValid() bool {
	return o.Status == TokenStatusValid
}

// IsExpired reports whether the token is authentic but past its expiry.
func (o TokenOutcome) IsExpired() bool {
	return o.Status == TokenStatusExpired
}

// IsInvalid reports whether the token failed signature or payload checks.
func (o TokenOutcome) IsInvalid() bool {
	return o.Status == TokenStatusInvalid
}
