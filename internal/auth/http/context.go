// Package http provides HTTP handlers and middleware for authentication and
// authorization operations.
package http

import (
	"context"

	authDomain "github.com/allisson/gatekeeper/internal/auth/domain"
)

// claimsKey is a context key type for storing authenticated token claims.
type claimsKey struct{}

// WithClaims stores authenticated token claims in the context. Called by the
// authentication middleware after successful token validation.
func WithClaims(ctx context.Context, claims *authDomain.TokenClaims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

// GetClaims retrieves authenticated token claims from the context. Returns
// (claims, true) if present, or (nil, false) if no claims were set.
func GetClaims(ctx context.Context) (*authDomain.TokenClaims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(*authDomain.TokenClaims)
	return claims, ok
}
