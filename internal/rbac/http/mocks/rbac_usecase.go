// Package mocks provides mock implementations for testing HTTP handlers.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/allisson/gatekeeper/internal/rbac/domain"
	"github.com/allisson/gatekeeper/internal/rbac/usecase"
)

// MockRBACUseCase is a mock implementation of RBACUseCase for testing.
type MockRBACUseCase struct {
	mock.Mock
}

// CreateUser mocks the CreateUser method.
func (m *MockRBACUseCase) CreateUser(ctx context.Context, input usecase.CreateUserInput) (*domain.User, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// GetUser mocks the GetUser method.
func (m *MockRBACUseCase) GetUser(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// UpdateUser mocks the UpdateUser method.
func (m *MockRBACUseCase) UpdateUser(ctx context.Context, input usecase.UpdateUserInput) (*domain.User, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// DeactivateUser mocks the DeactivateUser method.
func (m *MockRBACUseCase) DeactivateUser(ctx context.Context, username string) error {
	args := m.Called(ctx, username)
	return args.Error(0)
}

// SetPassword mocks the SetPassword method.
func (m *MockRBACUseCase) SetPassword(ctx context.Context, username, password string) error {
	args := m.Called(ctx, username, password)
	return args.Error(0)
}

// VerifyLocalCredential mocks the VerifyLocalCredential method.
func (m *MockRBACUseCase) VerifyLocalCredential(ctx context.Context, username, password string) (*domain.User, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// CreateRole mocks the CreateRole method.
func (m *MockRBACUseCase) CreateRole(ctx context.Context, input usecase.CreateRoleInput) (*domain.Role, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Role), args.Error(1)
}

// DeactivateRole mocks the DeactivateRole method.
func (m *MockRBACUseCase) DeactivateRole(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

// ListRoles mocks the ListRoles method.
func (m *MockRBACUseCase) ListRoles(ctx context.Context, offset, limit int) ([]*domain.Role, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Role), args.Error(1)
}

// CreatePermission mocks the CreatePermission method.
func (m *MockRBACUseCase) CreatePermission(ctx context.Context, input usecase.CreatePermissionInput) (*domain.Permission, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Permission), args.Error(1)
}

// AssignRole mocks the AssignRole method.
func (m *MockRBACUseCase) AssignRole(ctx context.Context, username, roleName string) error {
	args := m.Called(ctx, username, roleName)
	return args.Error(0)
}

// RevokeRole mocks the RevokeRole method.
func (m *MockRBACUseCase) RevokeRole(ctx context.Context, username, roleName string) error {
	args := m.Called(ctx, username, roleName)
	return args.Error(0)
}

// GrantPermission mocks the GrantPermission method.
func (m *MockRBACUseCase) GrantPermission(ctx context.Context, roleName, resource, action string) error {
	args := m.Called(ctx, roleName, resource, action)
	return args.Error(0)
}

// RevokePermission mocks the RevokePermission method.
func (m *MockRBACUseCase) RevokePermission(ctx context.Context, roleName, resource, action string) error {
	args := m.Called(ctx, roleName, resource, action)
	return args.Error(0)
}
