package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/allisson/gatekeeper/internal/rbac/domain"
)

// UserResponse represents a user in API responses. The password hash never
// leaves the persistence layer.
type UserResponse struct {
	ID             uuid.UUID `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	OrganizationID *int64    `json:"organization_id,omitempty"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewUserResponse converts a domain User to a UserResponse.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:             user.ID,
		Username:       user.Username,
		Email:          user.Email,
		OrganizationID: user.OrganizationID,
		IsActive:       user.IsActive,
		CreatedAt:      user.CreatedAt,
		UpdatedAt:      user.UpdatedAt,
	}
}

// RoleResponse represents a role in API responses.
type RoleResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewRoleResponse converts a domain Role to a RoleResponse.
func NewRoleResponse(role *domain.Role) RoleResponse {
	return RoleResponse{
		ID:          role.ID,
		Name:        role.Name,
		Description: role.Description,
		IsActive:    role.IsActive,
		CreatedAt:   role.CreatedAt,
	}
}

// ListRolesResponse wraps a page of roles.
type ListRolesResponse struct {
	Roles []RoleResponse `json:"roles"`
}

// NewListRolesResponse converts a page of domain Roles to a response.
func NewListRolesResponse(roles []*domain.Role) ListRolesResponse {
	response := ListRolesResponse{Roles: make([]RoleResponse, 0, len(roles))}
	for _, role := range roles {
		response.Roles = append(response.Roles, NewRoleResponse(role))
	}
	return response
}

// PermissionResponse represents a permission in API responses.
type PermissionResponse struct {
	ID        uuid.UUID `json:"id"`
	Resource  string    `json:"resource"`
	Action    string    `json:"action"`
	Key       string    `json:"key"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// NewPermissionResponse converts a domain Permission to a PermissionResponse.
func NewPermissionResponse(permission *domain.Permission) PermissionResponse {
	return PermissionResponse{
		ID:        permission.ID,
		Resource:  permission.Resource,
		Action:    permission.Action,
		Key:       permission.Key(),
		IsActive:  permission.IsActive,
		CreatedAt: permission.CreatedAt,
	}
}
