package commands

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/allisson/gatekeeper/internal/rbac/domain"
	rbacMocks "github.com/allisson/gatekeeper/internal/rbac/http/mocks"
	rbacUsecase "github.com/allisson/gatekeeper/internal/rbac/usecase"
)

func TestRunCreateRole(t *testing.T) {
	ctx := context.Background()
	logger := slog.Default()
	roleID := uuid.New()

	t.Run("text-output", func(t *testing.T) {
		mockUseCase := &rbacMocks.MockRBACUseCase{}
		input := rbacUsecase.CreateRoleInput{
			Name:        "auditor",
			Description: "Read-only audit access",
		}
		role := &domain.Role{
			ID:          roleID,
			Name:        "auditor",
			Description: "Read-only audit access",
			IsActive:    true,
		}

		mockUseCase.On("CreateRole", ctx, input).Return(role, nil)

		var out bytes.Buffer
		io := IOTuple{Writer: &out}

		err := RunCreateRole(ctx, mockUseCase, logger, "auditor", "Read-only audit access", "text", io)

		require.NoError(t, err)
		require.Contains(t, out.String(), roleID.String())
		require.Contains(t, out.String(), "auditor")
		mockUseCase.AssertExpectations(t)
	})

	t.Run("json-output", func(t *testing.T) {
		mockUseCase := &rbacMocks.MockRBACUseCase{}
		input := rbacUsecase.CreateRoleInput{Name: "operator"}
		role := &domain.Role{ID: roleID, Name: "operator", IsActive: true}

		mockUseCase.On("CreateRole", ctx, input).Return(role, nil)

		var out bytes.Buffer
		io := IOTuple{Writer: &out}

		err := RunCreateRole(ctx, mockUseCase, logger, "operator", "", "json", io)

		require.NoError(t, err)
		require.Contains(t, out.String(), `"name": "operator"`)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("duplicate-role", func(t *testing.T) {
		mockUseCase := &rbacMocks.MockRBACUseCase{}
		input := rbacUsecase.CreateRoleInput{Name: "auditor"}

		mockUseCase.On("CreateRole", ctx, input).Return(nil, domain.ErrRoleAlreadyExists)

		var out bytes.Buffer
		io := IOTuple{Writer: &out}

		err := RunCreateRole(ctx, mockUseCase, logger, "auditor", "", "text", io)

		require.Error(t, err)
		require.ErrorIs(t, err, domain.ErrRoleAlreadyExists)
		mockUseCase.AssertExpectations(t)
	})
}
