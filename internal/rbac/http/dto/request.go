// Package dto provides data transfer objects for the access-control
// management HTTP layer.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/gatekeeper/internal/validation"
)

// CreateUserRequest represents the API request for user creation. Password is
// optional; users without one can only authenticate through the identity
// bridge.
type CreateUserRequest struct {
	Username       string `json:"username"`
	Email          string `json:"email"`
	OrganizationID *int64 `json:"organization_id"`
	Password       string `json:"password"`
}

// Validate checks if the create user request is valid.
func (r *CreateUserRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Username,
			validation.Required,
			customValidation.NotBlank,
			customValidation.Username,
			validation.Length(1, 255),
		),
		validation.Field(&r.Email,
			validation.Required,
			customValidation.NotBlank,
			customValidation.Email,
			validation.Length(5, 255),
		),
		validation.Field(&r.Password,
			validation.Length(8, 128),
		),
	)
}

// UpdateUserRequest represents the API request for updating a user's mutable
// attributes. The username comes from the URL path.
type UpdateUserRequest struct {
	Email          string `json:"email"`
	OrganizationID *int64 `json:"organization_id"`
}

// Validate checks if the update user request is valid.
func (r *UpdateUserRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Email,
			validation.Required,
			customValidation.NotBlank,
			customValidation.Email,
			validation.Length(5, 255),
		),
	)
}

// SetPasswordRequest represents the API request for setting a user's local
// credential.
type SetPasswordRequest struct {
	Password string `json:"password"`
}

// Validate checks if the set password request is valid.
func (r *SetPasswordRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Password,
			validation.Required,
			validation.Length(8, 128),
		),
	)
}

// CreateRoleRequest represents the API request for role creation.
type CreateRoleRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Validate checks if the create role request is valid.
func (r *CreateRoleRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name,
			validation.Required,
			customValidation.NotBlank,
			customValidation.NoWhitespace,
			validation.Length(1, 255),
		),
		validation.Field(&r.Description,
			validation.Length(0, 1024),
		),
	)
}

// CreatePermissionRequest represents the API request for permission creation.
type CreatePermissionRequest struct {
	Resource string `json:"resource"`
	Action   string `json:"action"`
}

// Validate checks if the create permission request is valid.
func (r *CreatePermissionRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Resource,
			validation.Required,
			customValidation.PermissionPart,
			validation.Length(1, 255),
		),
		validation.Field(&r.Action,
			validation.Required,
			customValidation.PermissionPart,
			validation.Length(1, 255),
		),
	)
}

// AssignRoleRequest represents the API request for assigning a role to the
// user named in the URL path.
type AssignRoleRequest struct {
	Role string `json:"role"`
}

// Validate checks if the assign role request is valid.
func (r *AssignRoleRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Role,
			validation.Required,
			customValidation.NotBlank,
			customValidation.NoWhitespace,
		),
	)
}

// GrantPermissionRequest represents the API request for granting a permission
// to the role named in the URL path.
type GrantPermissionRequest struct {
	Resource string `json:"resource"`
	Action   string `json:"action"`
}

// Validate checks if the grant permission request is valid.
func (r *GrantPermissionRequest) Validate() error {
	return validation.ValidateStruct(r,
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
