// Package domain defines the access-control entities: users, roles and
// permissions, plus the grant relations between them.
package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/gatekeeper/internal/errors"
)

// User represents a directory subject that can authenticate and hold roles.
// PasswordHash is only set for users with a local credential; users that
// authenticate exclusively through the identity bridge carry none.
type User struct {
	ID             uuid.UUID
	Username       string
	Email          string
	OrganizationID *int64
	PasswordHash   *string
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Role groups permissions under a name. Inactive roles contribute nothing to
// authorization decisions regardless of their assignments.
type Role struct {
	ID          uuid.UUID
	Name        string
	Description string
	IsActive    bool
	CreatedAt   time.Time
}

// Permission represents one grantable capability identified by a
// resource/action pair.
type Permission struct {
	ID        uuid.UUID
	Resource  string
	Action    string
	IsActive  bool
	CreatedAt time.Time
}

// Key returns the canonical "resource:action" form of the permission.
func (p Permission) Key() string {
	return fmt.Sprintf("%s:%s", p.Resource, p.Action)
}

// Domain-specific errors for access-control operations.
var (
	// ErrUserNotFound indicates the requested user does not exist.
	ErrUserNotFound = errors.Wrap(errors.ErrNotFound, "user not found")

	// ErrUserAlreadyExists indicates a user with the same username already exists.
	ErrUserAlreadyExists = errors.Wrap(errors.ErrConflict, "user already exists")

	// ErrRoleNotFound indicates the requested role does not exist.
	ErrRoleNotFound = errors.Wrap(errors.ErrNotFound, "role not found")

	// ErrRoleAlreadyExists indicates a role with the same name already exists.
	ErrRoleAlreadyExists = errors.Wrap(errors.ErrConflict, "role already exists")

	// ErrPermissionNotFound indicates the requested permission does not exist.
	ErrPermissionNotFound = errors.Wrap(errors.ErrNotFound, "permission not found")

	// ErrPermissionAlreadyExists indicates a permission with the same
	// resource/action pair already exists.
	ErrPermissionAlreadyExists = errors.Wrap(errors.ErrConflict, "permission already exists")

	// ErrUserInactive indicates the user exists but is deactivated.
	ErrUserInactive = errors.Wrap(errors.ErrForbidden, "user is inactive")

	// ErrNoLocalCredential indicates the user has no local password set.
	ErrNoLocalCredential = errors.Wrap(errors.ErrUnauthorized, "user has no local credential")
)
