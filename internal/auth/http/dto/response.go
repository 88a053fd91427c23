package dto

import (
	"time"

	authDomain "github.com/allisson/gatekeeper/internal/auth/domain"
)

// AuthenticationResponse is the outcome of an authentication attempt.
type AuthenticationResponse struct {
	Authenticated bool   `json:"authenticated"`
	Token         string `json:"token,omitempty"`
	ExpiresIn     int64  `json:"expires_in,omitempty"`
	Message       string `json:"message,omitempty"`
}

// NewAuthenticationResponse converts an authentication result.
func NewAuthenticationResponse(result authDomain.AuthenticationResult) AuthenticationResponse {
	return AuthenticationResponse{
		Authenticated: result.Authenticated,
		Token:         result.Token,
		ExpiresIn:     result.ExpiresIn,
		Message:       result.Message,
	}
}

// ValidateTokenResponse reports the three-way token validation outcome.
// Claims are echoed for valid and expired tokens; invalid tokens only carry
// the reason.
type ValidateTokenResponse struct {
	Status       string     `json:"status"`
	Username     string     `json:"username,omitempty"`
	Authorities  []string   `json:"authorities,omitempty"`
	SessionIndex *string    `json:"session_index,omitempty"`
	IssuedAt     *time.Time `json:"issued_at,omitempty"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty"`
	Reason       string     `json:"reason,omitempty"`
}

// NewValidateTokenResponse converts a token outcome.
func NewValidateTokenResponse(outcome authDomain.TokenOutcome) ValidateTokenResponse {
	response := ValidateTokenResponse{
		Status: string(outcome.Status),
		Reason: outcome.Reason,
	}
	if outcome.Claims != nil {
		response.Username = outcome.Claims.Subject
		response.Authorities = outcome.Claims.Authorities
		response.SessionIndex = outcome.Claims.SessionIndex
		issuedAt := outcome.Claims.IssuedAt
		expiresAt := outcome.Claims.ExpiresAt
		response.IssuedAt = &issuedAt
		response.ExpiresAt = &expiresAt
	}
	return response
}

// RefreshTokenResponse carries the freshly minted token.
type RefreshTokenResponse struct {
	Token string `json:"token"`
}
