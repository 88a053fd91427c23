package usecase

import (
	"context"

	authDomain "github.com/allisson/gatekeeper/internal/auth/domain"
	eventsDomain "github.com/allisson/gatekeeper/internal/events/domain"
	eventsUsecase "github.com/allisson/gatekeeper/internal/events/usecase"
)

// AuthorizationUseCaseImpl wraps the decision engine with an unconditional
// audit emission: every Authorize call produces exactly one authorization
// event, granted or denied.
type AuthorizationUseCaseImpl struct {
	engine    *AuthorizationEngine
	publisher eventsUsecase.Publisher
}

// NewAuthorizationUseCase creates a new AuthorizationUseCase.
func NewAuthorizationUseCase(engine *AuthorizationEngine, publisher eventsUsecase.Publisher) AuthorizationUseCase {
	return &AuthorizationUseCaseImpl{
		engine:    engine,
		publisher: publisher,
	}
}

// Authorize decides the triple and emits the authorization event. The engine
// is fail-closed, so the event always reflects the decision actually returned
// to the caller.
func (uc *AuthorizationUseCaseImpl) Authorize(ctx context.Context, username, resource, action string) authDomain.AuthorizationDecision {
	decision := uc.engine.Authorize(ctx, username, resource, action)

	uc.publisher.Publish(eventsDomain.NewAuthorizationEvent(
		username,
		resource,
		action,
		decision.Granted,
		decision.Permissions,
		decision.Reason,
	))

	return decision
}

// GetUserPermissions projects the user's effective access.
func (uc *AuthorizationUseCaseImpl) GetUserPermissions(ctx context.Context, username string) authDomain.UserPermissions {
	return uc.engine.GetUserPermissions(ctx, username)
}

// HasRole reports whether the active user holds the named active role.
func (uc *AuthorizationUseCaseImpl) HasRole(ctx context.Context, username, role string) bool {
	return uc.engine.HasRole(ctx, username, role)
}

// HasAnyRole reports whether the active user holds any of the named roles.
func (uc *AuthorizationUseCaseImpl) HasAnyRole(ctx context.Context, username string, roles []string) bool {
	return uc.engine.HasAnyRole(ctx, username, roles)
}

// HasPermission reports whether the active user holds resource:action.
func (uc *AuthorizationUseCaseImpl) HasPermission(ctx context.Context, username, resource, action string) bool {
	return uc.engine.HasPermission(ctx, username, resource, action)
}

// HasAnyPermission reports whether the active user holds the resource with
// any of the actions.
func (uc *AuthorizationUseCaseImpl) HasAnyPermission(ctx context.Context, username, resource string, actions []string) bool {
	return uc.engine.HasAnyPermission(ctx, username, resource, actions)
}
