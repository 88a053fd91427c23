package commands

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/allisson/gatekeeper/internal/rbac/domain"
	rbacMocks "github.com/allisson/gatekeeper/internal/rbac/http/mocks"
)

func TestRunDeactivateRole(t *testing.T) {
	ctx := context.Background()
	logger := slog.Default()

	t.Run("success", func(t *testing.T) {
		mockUseCase := &rbacMocks.MockRBACUseCase{}
		mockUseCase.On("DeactivateRole", ctx, "auditors").Return(nil)

		var out bytes.Buffer
		io := IOTuple{Writer: &out}

		err := RunDeactivateRole(ctx, mockUseCase, logger, "auditors", io)

		require.NoError(t, err)
		require.Contains(t, out.String(), "deactivated")
		mockUseCase.AssertExpectations(t)
	})

	t.Run("unknown-role", func(t *testing.T) {
		mockUseCase := &rbacMocks.MockRBACUseCase{}
		mockUseCase.On("DeactivateRole", ctx, "ghost").Return(domain.ErrRoleNotFound)

		var out bytes.Buffer
		io := IOTuple{Writer: &out}

		err := RunDeactivateRole(ctx, mockUseCase, logger, "ghost", io)

		require.Error(t, err)
		require.ErrorIs(t, err, domain.ErrRoleNotFound)
		mockUseCase.AssertExpectations(t)
	})
}
