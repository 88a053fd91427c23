package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	authDomain "github.com/allisson/gatekeeper/internal/auth/domain"
)

// AuthorizationEngine resolves (user, resource, action) triples against the
// role and permission store. Every path is fail-closed: a store failure or an
// inactive user produces a denial, never an error, and denials are normal
// business outcomes that are not logged as problems.
type AuthorizationEngine struct {
	store  RoleAndPermissionStore
	logger *slog.Logger
}

// NewAuthorizationEngine creates a new AuthorizationEngine.
func NewAuthorizationEngine(store RoleAndPermissionStore, logger *slog.Logger) *AuthorizationEngine {
	return &AuthorizationEngine{store: store, logger: logger}
}

// activeUser looks the user up and reports whether they exist and are active.
// Lookup failures read as "not active".
func (e *AuthorizationEngine) activeUser(ctx context.Context, username string) (*int64, bool) {
	user, err := e.store.GetUserByUsername(ctx, username)
	if err != nil || user == nil || !user.IsActive {
		return nil, false
	}
	return user.OrganizationID, true
}

// Authorize decides one triple. Inactive or unknown users are denied before
// any permission data is consulted. Granted decisions carry the user's full
// permission and role sets as context for downstream callers.
func (e *AuthorizationEngine) Authorize(ctx context.Context, username, resource, action string) authDomain.AuthorizationDecision {
	denied := func(reason string) authDomain.AuthorizationDecision {
		return authDomain.AuthorizationDecision{
			Username: username,
			Resource: resource,
			Action:   action,
			Reason:   reason,
		}
	}

	organizationID, active := e.activeUser(ctx, username)
	if !active {
		return denied("user inactive or unknown")
	}

	held, err := e.store.HasActivePermission(ctx, username, resource, action)
	if err != nil {
		e.logLookupFailure(ctx, username, err)
		return denied("authorization check failed")
	}
	if !held {
		return denied(fmt.Sprintf("no permission for %s:%s", resource, action))
	}

	permissions, err := e.store.GetActivePermissionKeys(ctx, username)
	if err != nil {
		e.logLookupFailure(ctx, username, err)
		return denied("authorization check failed")
	}
	roles, err := e.store.GetActiveRoleNames(ctx, username)
	if err != nil {
		e.logLookupFailure(ctx, username, err)
		return denied("authorization check failed")
	}

	return authDomain.AuthorizationDecision{
		Granted:        true,
		Username:       username,
		Resource:       resource,
		Action:         action,
		Permissions:    permissions,
		Roles:          roles,
		OrganizationID: organizationID,
	}
}

// GetUserPermissions projects the user's effective access. This is a read
// path that never fails: any lookup error collapses to an empty, inactive
// projection.
func (e *AuthorizationEngine) GetUserPermissions(ctx context.Context, username string) authDomain.UserPermissions {
	empty := authDomain.UserPermissions{
		Username:    username,
		Permissions: []string{},
		Roles:       []string{},
	}

	organizationID, active := e.activeUser(ctx, username)
	if !active {
		return empty
	}

	permissions, err := e.store.GetActivePermissionKeys(ctx, username)
	if err != nil {
		e.logLookupFailure(ctx, username, err)
		return empty
	}
	roles, err := e.store.GetActiveRoleNames(ctx, username)
	if err != nil {
		e.logLookupFailure(ctx, username, err)
		return empty
	}
	if permissions == nil {
		permissions = []string{}
	}
	if roles == nil {
		roles = []string{}
	}

	return authDomain.UserPermissions{
		Username:       username,
		Permissions:    permissions,
		Roles:          roles,
		OrganizationID: organizationID,
		IsActive:       true,
	}
}

// HasRole reports whether the active user holds the named active role.
func (e *AuthorizationEngine) HasRole(ctx context.Context, username, role string) bool {
	return e.HasAnyRole(ctx, username, []string{role})
}

// HasAnyRole reports whether the active user holds at least one of the named
// active roles.
func (e *AuthorizationEngine) HasAnyRole(ctx context.Context, username string, roles []string) bool {
	if _, active := e.activeUser(ctx, username); !active {
		return false
	}

	held, err := e.store.GetActiveRoleNames(ctx, username)
	if err != nil {
		e.logLookupFailure(ctx, username, err)
		return false
	}

	for _, role := range roles {
		if slices.Contains(held, role) {
			return true
		}
	}
	return false
}

// HasPermission reports whether the active user holds resource:action through
// an active role.
func (e *AuthorizationEngine) HasPermission(ctx context.Context, username, resource, action string) bool {
	if _, active := e.activeUser(ctx, username); !active {
		return false
	}

	held, err := e.store.HasActivePermission(ctx, username, resource, action)
	if err != nil {
		e.logLookupFailure(ctx, username, err)
		return false
	}
	return held
}

// HasAnyPermission reports whether the active user holds the resource paired
// with at least one of the actions.
func (e *AuthorizationEngine) HasAnyPermission(ctx context.Context, username, resource string, actions []string) bool {
	if _, active := e.activeUser(ctx, username); !active {
		return false
	}

	for _, action := range actions {
		held, err := e.store.HasActivePermission(ctx, username, resource, action)
		if err != nil {
			e.logLookupFailure(ctx, username, err)
			return false
		}
		if held {
			return true
		}
	}
	return false
}

// logLookupFailure records a store failure. The decision itself stays a plain
// denial; only the operational cause is logged.
func (e *AuthorizationEngine) logLookupFailure(ctx context.Context, username string, err error) {
	if e.logger == nil {
		return
	}
	e.logger.ErrorContext(ctx, "role and permission store lookup failed",
		slog.String("username", username),
		slog.Any("error", err),
	)
}
