// Package dto provides data transfer objects for HTTP request and response
// handling.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/gatekeeper/internal/validation"
)

// BridgeTokenRequest carries an identity assertion already verified by the
// identity provider bridge. The bridge authenticates itself with a shared
// secret header; the assertion content is trusted as-is.
type BridgeTokenRequest struct {
	Username     string   `json:"username"`
	Authorities  []string `json:"authorities"`
	SessionIndex *string  `json:"session_index"`
}

// Validate checks if the bridge token request is valid.
func (r *BridgeTokenRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Username,
			validation.Required,
			customValidation.NotBlank,
			customValidation.Username,
			validation.Length(1, 255),
		),
	)
}

// LoginRequest carries a local username/password credential.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate checks if the login request is valid.
func (r *LoginRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Username,
			validation.Required,
			customValidation.NotBlank,
		),
		validation.Field(&r.Password,
			validation.Required,
		),
	)
}

// TokenRequest carries a bearer token for validation or refresh.
type TokenRequest struct {
	Token string `json:"token"`
}

// Validate checks if the token request is valid.
func (r *TokenRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Token,
			validation.Required,
			customValidation.NotBlank,
		),
	)
}

// AuthorizeRequest carries one (user, resource, action) authorization check.
type AuthorizeRequest struct {
	Username string `json:"username"`
	Resource string `json:"resource"`
	Action   string `json:"action"`
}

// Validate checks if the authorize request is valid.
func (r *AuthorizeRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Username,
			validation.Required,
			customValidation.NotBlank,
			customValidation.Username,
		),
		validation.Field(&r.Resource,
			validation.Required,
			customValidation.PermissionPart,
		),
		validation.Field(&r.Action,
			validation.Required,
			customValidation.PermissionPart,
		),
	)
}
