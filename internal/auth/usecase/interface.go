// Package usecase implements the authentication and authorization business
// logic: the RBAC decision engine and the two orchestrators that tie tokens,
// decisions and security events together.
package usecase

import (
	"context"

	authDomain "github.com/allisson/gatekeeper/internal/auth/domain"
	rbacDomain "github.com/allisson/gatekeeper/internal/rbac/domain"
)

// RoleAndPermissionStore is the narrow query contract the decision engine
// consumes. Implementations must apply the active-flag filters at query time:
// a deactivated role immediately stops granting its permissions.
type RoleAndPermissionStore interface {
	GetUserByUsername(ctx context.Context, username string) (*rbacDomain.User, error)
	HasActivePermission(ctx context.Context, username, resource, action string) (bool, error)
	GetActiveRoleNames(ctx context.Context, username string) ([]string, error)
	GetActivePermissionKeys(ctx context.Context, username string) ([]string, error)
}

// CredentialVerifier checks a local username/password credential. It is the
// fallback authentication path for principals that do not come through the
// identity provider bridge.
type CredentialVerifier interface {
	VerifyLocalCredential(ctx context.Context, username, password string) (*rbacDomain.User, error)
}

// AuthenticationUseCase turns identity assertions and credentials into issued
// tokens plus an audit trail. Authentication failures are structured results,
// never errors.
type AuthenticationUseCase interface {
	// Authenticate issues a token for an externally-verified identity
	// assertion.
	Authenticate(ctx context.Context, assertion authDomain.IdentityAssertion) authDomain.AuthenticationResult

	// Login issues a token after verifying a local username/password
	// credential.
	Login(ctx context.Context, username, password string) authDomain.AuthenticationResult

	// ValidateToken produces the three-way Valid/Expired/Invalid outcome.
	ValidateToken(ctx context.Context, token string) authDomain.TokenOutcome

	// RefreshToken exchanges a valid or expired token for a fresh one.
	RefreshToken(ctx context.Context, token string) (string, error)
}

// AuthorizationUseCase makes role/permission-based decisions. Every method
// fails closed: lookup errors read as denials, never as errors.
type AuthorizationUseCase interface {
	// Authorize decides one (user, resource, action) triple and emits an
	// authorization event regardless of outcome.
	Authorize(ctx context.Context, username, resource, action string) authDomain.AuthorizationDecision

	// GetUserPermissions projects the user's effective access. Lookup
	// failures produce an empty, inactive projection.
	GetUserPermissions(ctx context.Context, username string) authDomain.UserPermissions

	HasRole(ctx context.Context, username, role string) bool
	HasAnyRole(ctx context.Context, username string, roles []string) bool
	HasPermission(ctx context.Context, username, resource, action string) bool
	HasAnyPermission(ctx context.Context, username, resource string, actions []string) bool
}
