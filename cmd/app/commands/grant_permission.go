package commands

import (
	"context"
	"fmt"
	"log/slog"

	rbacUsecase "github.com/allisson/gatekeeper/internal/rbac/usecase"
)

// RunGrantPermission grants a permission to a role.
//
// Requirements: Database must be migrated and accessible.
func RunGrantPermission(
	ctx context.Context,
	rbacUseCase rbacUsecase.RBACUseCase,
	logger *slog.Logger,
	roleName string,
	resource string,
	action string,
	io IOTuple,
) error {
	logger.Info("granting permission to role",
		slog.String("role", roleName),
		slog.String("resource", resource),
		slog.String("action", action),
	)

	if err := rbacUseCase.GrantPermission(ctx, roleName, resource, action); err != nil {
		return fmt.Errorf("failed to grant permission: %w", err)
	}

	fmt.Fprintf(io.Writer, "Permission %s:%s granted to role %q\n", resource, action, roleName)

	logger.Info("permission granted successfully",
		slog.String("role", roleName),
		slog.String("resource", resource),
		slog.String("action", action),
	)
	return nil
}
