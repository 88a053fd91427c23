package usecase

import (
	"context"
	"log/slog"

	authDomain "github.com/allisson/gatekeeper/internal/auth/domain"
	"github.com/allisson/gatekeeper/internal/auth/service"
	apperrors "github.com/allisson/gatekeeper/internal/errors"
	eventsDomain "github.com/allisson/gatekeeper/internal/events/domain"
	eventsUsecase "github.com/allisson/gatekeeper/internal/events/usecase"
)

// failureActor is the fixed placeholder recorded on authentication failure
// events. Partial identities extracted before the failure are deliberately
// not logged.
const failureActor = "unknown"

// genericAuthFailure is the safe message returned on unexpected failures.
const genericAuthFailure = "authentication failed"

// AuthenticationUseCaseImpl orchestrates one authentication attempt: turn a
// trusted identity assertion or a verified local credential into an issued
// token, emitting the audit trail along the way. No error escapes the flow;
// failures come back as structured results.
type AuthenticationUseCaseImpl struct {
	tokenService service.TokenService
	verifier     CredentialVerifier
	store        RoleAndPermissionStore
	publisher    eventsUsecase.Publisher
	logger       *slog.Logger
}

// NewAuthenticationUseCase creates a new AuthenticationUseCase.
func NewAuthenticationUseCase(
	tokenService service.TokenService,
	verifier CredentialVerifier,
	store RoleAndPermissionStore,
	publisher eventsUsecase.Publisher,
	logger *slog.Logger,
) AuthenticationUseCase {
	return &AuthenticationUseCaseImpl{
		tokenService: tokenService,
		verifier:     verifier,
		store:        store,
		publisher:    publisher,
		logger:       logger,
	}
}

// Authenticate issues a token for an externally-verified identity assertion.
// The assertion is trusted as input; its verification happened at the bridge.
func (uc *AuthenticationUseCaseImpl) Authenticate(ctx context.Context, assertion authDomain.IdentityAssertion) authDomain.AuthenticationResult {
	if assertion.Username == "" {
		return uc.failure(ctx, "assertion carries no subject")
	}

	token, err := uc.tokenService.Generate(assertion.Username, assertion.Authorities, assertion.SessionIndex)
	if err != nil {
		uc.logFailure(ctx, err)
		return uc.failure(ctx, genericAuthFailure)
	}

	return uc.success(assertion.Username, token)
}

// Login issues a token after verifying a local username/password credential.
// The issued authorities are the user's active role names.
func (uc *AuthenticationUseCaseImpl) Login(ctx context.Context, username, password string) authDomain.AuthenticationResult {
	user, err := uc.verifier.VerifyLocalCredential(ctx, username, password)
	if err != nil {
		if !apperrors.Is(err, apperrors.ErrUnauthorized) {
			uc.logFailure(ctx, err)
		}
		return uc.failure(ctx, "invalid credentials")
	}

	authorities, err := uc.store.GetActiveRoleNames(ctx, user.Username)
	if err != nil {
		uc.logFailure(ctx, err)
		return uc.failure(ctx, genericAuthFailure)
	}

	token, err := uc.tokenService.Generate(user.Username, authorities, nil)
	if err != nil {
		uc.logFailure(ctx, err)
		return uc.failure(ctx, genericAuthFailure)
	}

	return uc.success(user.Username, token)
}

// ValidateToken produces the three-way Valid/Expired/Invalid outcome.
func (uc *AuthenticationUseCaseImpl) ValidateToken(_ context.Context, token string) authDomain.TokenOutcome {
	return uc.tokenService.Validate(token)
}

// RefreshToken exchanges a valid or expired token for a fresh one and emits a
// token.refreshed event. Invalid tokens are rejected without an event.
func (uc *AuthenticationUseCaseImpl) RefreshToken(_ context.Context, token string) (string, error) {
	refreshed, err := uc.tokenService.Refresh(token)
	if err != nil {
		return "", err
	}

	username, err := uc.tokenService.ExtractUsername(refreshed)
	if err != nil {
		username = failureActor
	}
	uc.publisher.Publish(eventsDomain.NewTokenRefreshedEvent(username))

	return refreshed, nil
}

// success emits the success audit trail and builds the success result.
func (uc *AuthenticationUseCaseImpl) success(username, token string) authDomain.AuthenticationResult {
	uc.publisher.PublishAll([]*eventsDomain.Event{
		eventsDomain.NewAuthenticationEvent(username, true, ""),
		eventsDomain.NewTokenGeneratedEvent(username),
	})

	return authDomain.AuthenticationResult{
		Authenticated: true,
		Token:         token,
		ExpiresIn:     int64(uc.tokenService.TTL().Seconds()),
	}
}

// failure emits exactly one failure event and builds the failure result.
func (uc *AuthenticationUseCaseImpl) failure(_ context.Context, message string) authDomain.AuthenticationResult {
	uc.publisher.Publish(eventsDomain.NewAuthenticationEvent(failureActor, false, message))

	return authDomain.AuthenticationResult{
		Authenticated: false,
		Message:       message,
	}
}

func (uc *AuthenticationUseCaseImpl) logFailure(ctx context.Context, err error) {
	if uc.logger == nil {
		return
	}
	uc.logger.ErrorContext(ctx, "authentication attempt failed", slog.Any("error", err))
}
