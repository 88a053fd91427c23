// Package usecase implements the access-control management business logic:
// user, role and permission administration plus local credential handling.
package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/allisson/gatekeeper/internal/rbac/domain"
)

// RBACRepository defines the persistence operations for access-control data.
type RBACRepository interface {
	CreateUser(ctx context.Context, user *domain.User) error
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	UpdateUser(ctx context.Context, user *domain.User) error
	SetUserActive(ctx context.Context, username string, active bool) error
	SetPassword(ctx context.Context, username string, passwordHash string) error
	CreateRole(ctx context.Context, role *domain.Role) error
	GetRoleByName(ctx context.Context, name string) (*domain.Role, error)
	SetRoleActive(ctx context.Context, name string, active bool) error
	ListRoles(ctx context.Context, offset, limit int) ([]*domain.Role, error)
	CreatePermission(ctx context.Context, permission *domain.Permission) error
	GetPermission(ctx context.Context, resource, action string) (*domain.Permission, error)
	AssignRoleToUser(ctx context.Context, userID, roleID uuid.UUID) error
	RevokeRoleFromUser(ctx context.Context, userID, roleID uuid.UUID) error
	GrantPermissionToRole(ctx context.Context, roleID, permissionID uuid.UUID) error
	RevokePermissionFromRole(ctx context.Context, roleID, permissionID uuid.UUID) error
}

// CreateUserInput contains the input data for user creation. Password is
// optional; when empty the user carries no local credential and can only
// authenticate through the identity bridge.
type CreateUserInput struct {
	Username       string `json:"username"`
	Email          string `json:"email"`
	OrganizationID *int64 `json:"organization_id"`
	Password       string `json:"password"`
}

// UpdateUserInput contains the mutable user attributes.
type UpdateUserInput struct {
	Username       string `json:"username"`
	Email          string `json:"email"`
	OrganizationID *int64 `json:"organization_id"`
}

// CreateRoleInput contains the input data for role creation.
type CreateRoleInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CreatePermissionInput contains the input data for permission creation.
type CreatePermissionInput struct {
	Resource string `json:"resource"`
	Action   string `json:"action"`
}

// RBACUseCase defines the access-control management operations.
type RBACUseCase interface {
	CreateUser(ctx context.Context, input CreateUserInput) (*domain.User, error)
	GetUser(ctx context.Context, username string) (*domain.User, error)
	UpdateUser(ctx context.Context, input UpdateUserInput) (*domain.User, error)
	DeactivateUser(ctx context.Context, username string) error
	SetPassword(ctx context.Context, username, password string) error
	VerifyLocalCredential(ctx context.Context, username, password string) (*domain.User, error)
	CreateRole(ctx context.Context, input CreateRoleInput) (*domain.Role, error)
	DeactivateRole(ctx context.Context, name string) error
	ListRoles(ctx context.Context, offset, limit int) ([]*domain.Role, error)
	CreatePermission(ctx context.Context, input CreatePermissionInput) (*domain.Permission, error)
	AssignRole(ctx context.Context, username, roleName string) error
	RevokeRole(ctx context.Context, username, roleName string) error
	GrantPermission(ctx context.Context, roleName, resource, action string) error
	RevokePermission(ctx context.Context, roleName, resource, action string) error
}
