package usecase

import (
	"context"
	"time"

	authDomain "github.com/allisson/gatekeeper/internal/auth/domain"
	"github.com/allisson/gatekeeper/internal/metrics"
)

// authenticationUseCaseWithMetrics decorates AuthenticationUseCase with
// metrics instrumentation.
type authenticationUseCaseWithMetrics struct {
	next    AuthenticationUseCase
	metrics metrics.BusinessMetrics
}

// NewAuthenticationUseCaseWithMetrics wraps an AuthenticationUseCase with
// metrics recording.
func NewAuthenticationUseCaseWithMetrics(useCase AuthenticationUseCase, m metrics.BusinessMetrics) AuthenticationUseCase {
	return &authenticationUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Authenticate records metrics for assertion-based authentication. A failed
// authentication is a business outcome, not an operational error, so the
// status label tracks the result.
func (a *authenticationUseCaseWithMetrics) Authenticate(ctx context.Context, assertion authDomain.IdentityAssertion) authDomain.AuthenticationResult {
	start := time.Now()
	result := a.next.Authenticate(ctx, assertion)

	status := "success"
	if !result.Authenticated {
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "auth", "authenticate", status)
	a.metrics.RecordDuration(ctx, "auth", "authenticate", time.Since(start), status)

	return result
}

// Login records metrics for credential-based authentication.
func (a *authenticationUseCaseWithMetrics) Login(ctx context.Context, username, password string) authDomain.AuthenticationResult {
	start := time.Now()
	result := a.next.Login(ctx, username, password)

	status := "success"
	if !result.Authenticated {
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "auth", "login", status)
	a.metrics.RecordDuration(ctx, "auth", "login", time.Since(start), status)

	return result
}

// ValidateToken records metrics for token validation, labeled by outcome.
func (a *authenticationUseCaseWithMetrics) ValidateToken(ctx context.Context, token string) authDomain.TokenOutcome {
	start := time.Now()
	outcome := a.next.ValidateToken(ctx, token)

	status := string(outcome.Status)
	a.metrics.RecordOperation(ctx, "auth", "token_validate", status)
	a.metrics.RecordDuration(ctx, "auth", "token_validate", time.Since(start), status)

	return outcome
}

// RefreshToken records metrics for token refresh.
func (a *authenticationUseCaseWithMetrics) RefreshToken(ctx context.Context, token string) (string, error) {
	start := time.Now()
	refreshed, err := a.next.RefreshToken(ctx, token)

	status := "success"
	if err != nil {
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "auth", "token_refresh", status)
	a.metrics.RecordDuration(ctx, "auth", "token_refresh", time.Since(start), status)

	return refreshed, err
}

// authorizationUseCaseWithMetrics decorates AuthorizationUseCase with metrics
// instrumentation.
type authorizationUseCaseWithMetrics struct {
	next    AuthorizationUseCase
	metrics metrics.BusinessMetrics
}

// NewAuthorizationUseCaseWithMetrics wraps an AuthorizationUseCase with
// metrics recording.
func NewAuthorizationUseCaseWithMetrics(useCase AuthorizationUseCase, m metrics.BusinessMetrics) AuthorizationUseCase {
	return &authorizationUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Authorize records metrics for authorization decisions, labeled granted or
// denied.
func (a *authorizationUseCaseWithMetrics) Authorize(ctx context.Context, username, resource, action string) authDomain.AuthorizationDecision {
	start := time.Now()
	decision := a.next.Authorize(ctx, username, resource, action)

	status := "granted"
	if !decision.Granted {
		status = "denied"
	}

	a.metrics.RecordOperation(ctx, "authz", "authorize", status)
	a.metrics.RecordDuration(ctx, "authz", "authorize", time.Since(start), status)

	return decision
}

// GetUserPermissions records metrics for the permission projection read path.
func (a *authorizationUseCaseWithMetrics) GetUserPermissions(ctx context.Context, username string) authDomain.UserPermissions {
	start := time.Now()
	projection := a.next.GetUserPermissions(ctx, username)

	a.metrics.RecordOperation(ctx, "authz", "user_permissions", "success")
	a.metrics.RecordDuration(ctx, "authz", "user_permissions", time.Since(start), "success")

	return projection
}

func (a *authorizationUseCaseWithMetrics) HasRole(ctx context.Context, username, role string) bool {
	return a.next.HasRole(ctx, username, role)
}

func (a *authorizationUseCaseWithMetrics) HasAnyRole(ctx context.Context, username string, roles []string) bool {
	return a.next.HasAnyRole(ctx, username, roles)
}

func (a *authorizationUseCaseWithMetrics) HasPermission(ctx context.Context, username, resource, action string) bool {
	return a.next.HasPermission(ctx, username, resource, action)
}

func (a *authorizationUseCaseWithMetrics) HasAnyPermission(ctx context.Context, username, resource string, actions []string) bool {
	return a.next.HasAnyPermission(ctx, username, resource, actions)
}
