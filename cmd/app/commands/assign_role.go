package commands

import (
	"context"
	"fmt"
	"log/slog"

	rbacUsecase "github.com/allisson/gatekeeper/internal/rbac/usecase"
)

// RunAssignRole assigns a role to a user.
//
// Requirements: Database must be migrated and accessible.
func RunAssignRole(
	ctx context.Context,
	rbacUseCase rbacUsecase.RBACUseCase,
	logger *slog.Logger,
	username string,
	roleName string,
	io IOTuple,
) error {
	logger.Info("assigning role to user",
		slog.String("username", username),
		slog.String("role", roleName),
	)

	if err := rbacUseCase.AssignRole(ctx, username, roleName); err != nil {
		return fmt.Errorf("failed to assign role: %w", err)
	}

	fmt.Fprintf(io.Writer, "Role %q assigned to user %q\n", roleName, username)

	logger.Info("role assigned successfully",
		slog.String("username", username),
		slog.String("role", roleName),
	)
	return nil
}
