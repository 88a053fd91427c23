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

func TestRunSetPassword(t *testing.T) {
	ctx := context.Background()
	logger := slog.Default()

	t.Run("success", func(t *testing.T) {
		mockUseCase := &rbacMocks.MockRBACUseCase{}
		mockUseCase.On("SetPassword", ctx, "alice", "N3w!password").Return(nil)

		var out bytes.Buffer
		io := IOTuple{Writer: &out}

		err := RunSetPassword(ctx, mockUseCase, logger, "alice", "N3w!password", io)

		require.NoError(t, err)
		require.Contains(t, out.String(), "alice")
		mockUseCase.AssertExpectations(t)
	})

	t.Run("unknown-user", func(t *testing.T) {
		mockUseCase := &rbacMocks.MockRBACUseCase{}
		mockUseCase.On("SetPassword", ctx, "ghost", "N3w!password").Return(domain.ErrUserNotFound)

		var out bytes.Buffer
		io := IOTuple{Writer: &out}

		err := RunSetPassword(ctx, mockUseCase, logger, "ghost", "N3w!password", io)

		require.Error(t, err)
		require.ErrorIs(t, err, domain.ErrUserNotFound)
		mockUseCase.AssertExpectations(t)
	})
}
