package commands

import (
	"context"
	"fmt"
	"log/slog"

	rbacUsecase "github.com/allisson/gatekeeper/internal/rbac/usecase"
)

// RunSetPassword sets or replaces a user's local password.
//
// Requirements: Database must be migrated and accessible.
func RunSetPassword(
	ctx context.Context,
	rbacUseCase rbacUsecase.RBACUseCase,
	logger *slog.Logger,
	username string,
	password string,
	io IOTuple,
) error {
	logger.Info("setting user password", slog.String("username", username))

	if err := rbacUseCase.SetPassword(ctx, username, password); err != nil {
		return fmt.Errorf("failed to set password: %w", err)
	}

	fmt.Fprintf(io.Writer, "Password updated for user %q\n", username)

	logger.Info("password updated successfully", slog.String("username", username))
	return nil
}
