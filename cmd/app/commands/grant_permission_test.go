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

func TestRunGrantPermission(t *testing.T) {
	ctx := context.Background()
	logger := slog.Default()

	t.Run("success", func(t *testing.T) {
		mockUseCase := &rbacMocks.MockRBACUseCase{}
		mockUseCase.On("GrantPermission", ctx, "auditor", "vault", "read").Return(nil)

		var out bytes.Buffer
		io := IOTuple{Writer: &out}

		err := RunGrantPermission(ctx, mockUseCase, logger, "auditor", "vault", "read", io)

		require.NoError(t, err)
		require.Contains(t, out.String(), "vault:read")
		require.Contains(t, out.String(), "auditor")
		mockUseCase.AssertExpectations(t)
	})

	t.Run("unknown-permission", func(t *testing.T) {
		mockUseCase := &rbacMocks.MockRBACUseCase{}
		mockUseCase.On("GrantPermission", ctx, "auditor", "vault", "erase").Return(domain.ErrPermissionNotFound)

		var out bytes.Buffer
		io := IOTuple{Writer: &out}

		err := RunGrantPermission(ctx, mockUseCase, logger, "auditor", "vault", "erase", io)

		require.Error(t, err)
		require.ErrorIs(t, err, domain.ErrPermissionNotFound)
		mockUseCase.AssertExpectations(t)
	})
}
