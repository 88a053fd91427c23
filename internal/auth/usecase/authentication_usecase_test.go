package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/gatekeeper/internal/auth/domain"
	"github.com/allisson/gatekeeper/internal/auth/service"
	apperrors "github.com/allisson/gatekeeper/internal/errors"
	eventsDomain "github.com/allisson/gatekeeper/internal/events/domain"
	rbacDomain "github.com/allisson/gatekeeper/internal/rbac/domain"
)

// mockVerifier is a mock implementation of CredentialVerifier.
type mockVerifier struct {
	mock.Mock
}

func (m *mockVerifier) VerifyLocalCredential(ctx context.Context, username, password string) (*rbacDomain.User, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rbacDomain.User), args.Error(1)
}

// failingTokenService breaks mid-flow to exercise the failure path.
type failingTokenService struct {
	service.TokenService
}

func (f *failingTokenService) Generate(username string, authorities []string, sessionIndex *string) (string, error) {
	return "", apperrors.New("signing backend unavailable")
}

func realTokenService(t *testing.T) service.TokenService {
	t.Helper()

	svc, err := service.NewTokenService([]byte("authentication-usecase-test-secret"), time.Hour)
	require.NoError(t, err)
	return svc
}

func setupAuthUseCase(t *testing.T, tokenService service.TokenService) (AuthenticationUseCase, *mockVerifier, *mockStore, *recordingPublisher) {
	t.Helper()

	verifier := new(mockVerifier)
	store := new(mockStore)
	publisher := &recordingPublisher{}
	uc := NewAuthenticationUseCase(tokenService, verifier, store, publisher, testLogger())
	return uc, verifier, store, publisher
}

func TestAuthenticationUseCase_Authenticate(t *testing.T) {
	t.Run("trusted assertion yields token and audit trail", func(t *testing.T) {
		tokenService := realTokenService(t)
		uc, _, _, publisher := setupAuthUseCase(t, tokenService)

		sessionIndex := "session-9"
		result := uc.Authenticate(context.Background(), authDomain.IdentityAssertion{
			Username:     "jane.doe",
			Authorities:  []string{"ROLE_USER"},
			SessionIndex: &sessionIndex,
		})

		require.True(t, result.Authenticated)
		assert.Empty(t, result.Message)
		assert.Equal(t, int64(3600), result.ExpiresIn)

		outcome := tokenService.Validate(result.Token)
		require.True(t, outcome.IsValid())
		assert.Equal(t, "jane.doe", outcome.Claims.Subject)
		require.NotNil(t, outcome.Claims.SessionIndex)
		assert.Equal(t, sessionIndex, *outcome.Claims.SessionIndex)

		assert.Equal(t, []eventsDomain.EventType{
			eventsDomain.EventTypeAuthenticationSuccess,
			eventsDomain.EventTypeTokenGenerated,
		}, publisher.types())
	})

	t.Run("assertion without subject fails with one failure event", func(t *testing.T) {
		uc, _, _, publisher := setupAuthUseCase(t, realTokenService(t))

		result := uc.Authenticate(context.Background(), authDomain.IdentityAssertion{})

		assert.False(t, result.Authenticated)
		assert.NotEmpty(t, result.Message)
		assert.Empty(t, result.Token)

		require.Equal(t, []eventsDomain.EventType{eventsDomain.EventTypeAuthenticationFailure}, publisher.types())
		payload := publisher.events[0].Payload.(eventsDomain.AuthenticationPayload)
		assert.Equal(t, "unknown", payload.Username)
	})

	t.Run("mid-flow failure never escapes and emits one failure event", func(t *testing.T) {
		uc, _, _, publisher := setupAuthUseCase(t, &failingTokenService{})

		result := uc.Authenticate(context.Background(), authDomain.IdentityAssertion{
			Username:    "jane.doe",
			Authorities: []string{"ROLE_USER"},
		})

		assert.False(t, result.Authenticated)
		assert.NotEmpty(t, result.Message)

		require.Equal(t, []eventsDomain.EventType{eventsDomain.EventTypeAuthenticationFailure}, publisher.types())
		// The actor is logged as the fixed placeholder even though a partial
		// identity was available
		payload := publisher.events[0].Payload.(eventsDomain.AuthenticationPayload)
		assert.Equal(t, "unknown", payload.Username)
	})
}

func TestAuthenticationUseCase_Login(t *testing.T) {
	t.Run("verified credential yields token with role authorities", func(t *testing.T) {
		tokenService := realTokenService(t)
		uc, verifier, store, publisher := setupAuthUseCase(t, tokenService)

		verifier.On("VerifyLocalCredential", mock.Anything, "jane.doe", "correct horse battery").
			Return(activeUser("jane.doe"), nil)
		store.On("GetActiveRoleNames", mock.Anything, "jane.doe").Return([]string{"AUDITOR"}, nil)

		result := uc.Login(context.Background(), "jane.doe", "correct horse battery")

		require.True(t, result.Authenticated)
		outcome := tokenService.Validate(result.Token)
		require.True(t, outcome.IsValid())
		assert.Equal(t, []string{"AUDITOR"}, outcome.Claims.Authorities)

		assert.Equal(t, []eventsDomain.EventType{
			eventsDomain.EventTypeAuthenticationSuccess,
			eventsDomain.EventTypeTokenGenerated,
		}, publisher.types())
	})

	t.Run("rejected credential fails with one failure event", func(t *testing.T) {
		uc, verifier, _, publisher := setupAuthUseCase(t, realTokenService(t))

		verifier.On("VerifyLocalCredential", mock.Anything, "jane.doe", "wrong").
			Return(nil, apperrors.Wrap(apperrors.ErrUnauthorized, "invalid credentials"))

		result := uc.Login(context.Background(), "jane.doe", "wrong")

		assert.False(t, result.Authenticated)
		assert.Equal(t, "invalid credentials", result.Message)
		assert.Equal(t, []eventsDomain.EventType{eventsDomain.EventTypeAuthenticationFailure}, publisher.types())
	})
}

func TestAuthenticationUseCase_ValidateToken(t *testing.T) {
	tokenService := realTokenService(t)
	uc, _, _, _ := setupAuthUseCase(t, tokenService)

	token, err := tokenService.Generate("jane.doe", nil, nil)
	require.NoError(t, err)

	assert.True(t, uc.ValidateToken(context.Background(), token).IsValid())
	assert.True(t, uc.ValidateToken(context.Background(), "garbage").IsInvalid())
}

func TestAuthenticationUseCase_RefreshToken(t *testing.T) {
	t.Run("valid token refreshes and emits event", func(t *testing.T) {
		tokenService := realTokenService(t)
		uc, _, _, publisher := setupAuthUseCase(t, tokenService)

		token, err := tokenService.Generate("jane.doe", []string{"ROLE_USER"}, nil)
		require.NoError(t, err)

		refreshed, err := uc.RefreshToken(context.Background(), token)
		require.NoError(t, err)
		assert.True(t, tokenService.Validate(refreshed).IsValid())

		require.Equal(t, []eventsDomain.EventType{eventsDomain.EventTypeTokenRefreshed}, publisher.types())
		payload := publisher.events[0].Payload.(eventsDomain.TokenPayload)
		assert.Equal(t, "jane.doe", payload.Username)
	})

	t.Run("invalid token is rejected without event", func(t *testing.T) {
		uc, _, _, publisher := setupAuthUseCase(t, realTokenService(t))

		_, err := uc.RefreshToken(context.Background(), "garbage")
		assert.True(t, apperrors.Is(err, authDomain.ErrTokenInvalid))
		assert.Empty(t, publisher.types())
	})
}
