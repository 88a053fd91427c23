// Package mocks provides mock implementations for testing HTTP handlers.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	authDomain "github.com/allisson/gatekeeper/internal/auth/domain"
)

// MockAuthenticationUseCase is a mock implementation of AuthenticationUseCase
// for testing.
type MockAuthenticationUseCase struct {
	mock.Mock
}

// Authenticate mocks the Authenticate method.
func (m *MockAuthenticationUseCase) Authenticate(ctx context.Context, assertion authDomain.IdentityAssertion) authDomain.AuthenticationResult {
	args := m.Called(ctx, assertion)
	return args.Get(0).(authDomain.AuthenticationResult)
}

// Login mocks the Login method.
func (m *MockAuthenticationUseCase) Login(ctx context.Context, username, password string) authDomain.AuthenticationResult {
	args := m.Called(ctx, username, password)
	return args.Get(0).(authDomain.AuthenticationResult)
}

// ValidateToken mocks the ValidateToken method.
func (m *MockAuthenticationUseCase) ValidateToken(ctx context.Context, token string) authDomain.TokenOutcome {
	args := m.Called(ctx, token)
	return args.Get(0).(authDomain.TokenOutcome)
}

// RefreshToken mocks the RefreshToken method.
func (m *MockAuthenticationUseCase) RefreshToken(ctx context.Context, token string) (string, error) {
	args := m.Called(ctx, token)
	return args.String(0), args.Error(1)
}

// MockAuthorizationUseCase is a mock implementation of AuthorizationUseCase
// for testing.
type MockAuthorizationUseCase struct {
	mock.Mock
}

// Authorize mocks the Authorize method.
func (m *MockAuthorizationUseCase) Authorize(ctx context.Context, username, resource, action string) authDomain.AuthorizationDecision {
	args := m.Called(ctx, username, resource, action)
	return args.Get(0).(authDomain.AuthorizationDecision)
}

// GetUserPermissions mocks the GetUserPermissions method.
func (m *MockAuthorizationUseCase) GetUserPermissions(ctx context.Context, username string) authDomain.UserPermissions {
	args := m.Called(ctx, username)
	return args.Get(0).(authDomain.UserPermissions)
}

// HasRole mocks the HasRole method.
func (m *MockAuthorizationUseCase) HasRole(ctx context.Context, username, role string) bool {
	args := m.Called(ctx, username, role)
	return args.Bool(0)
}

// HasAnyRole mocks the HasAnyRole method.
func (m *MockAuthorizationUseCase) HasAnyRole(ctx context.Context, username string, roles []string) bool {
	args := m.Called(ctx, username, roles)
	return args.Bool(0)
}

// HasPermission mocks the HasPermission method.
func (m *MockAuthorizationUseCase) HasPermission(ctx context.Context, username, resource, action string) bool {
	args := m.Called(ctx, username, resource, action)
	return args.Bool(0)
}

// HasAnyPermission mocks the HasAnyPermission method.
func (m *MockAuthorizationUseCase) HasAnyPermission(ctx context.Context, username, resource string, actions []string) bool {
	args := m.Called(ctx, username, resource, actions)
	return args.Bool(0)
}
