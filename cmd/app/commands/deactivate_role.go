package commands

import (
	"context"
	"fmt"
	"log/slog"

	rbacUsecase "github.com/allisson/gatekeeper/internal/rbac/usecase"
)

// RunDeactivateRole deactivates a role. The role and its assignments are
// kept, but its permissions stop counting toward authorization decisions
// from this point on.
//
// Requirements: Database must be migrated and accessible.
func RunDeactivateRole(
	ctx context.Context,
	rbacUseCase rbacUsecase.RBACUseCase,
	logger *slog.Logger,
	name string,
	io IOTuple,
) error {
	logger.Info("deactivating role", slog.String("name", name))

	if err := rbacUseCase.DeactivateRole(ctx, name); err != nil {
		return fmt.Errorf("failed to deactivate role: %w", err)
	}

	fmt.Fprintf(io.Writer, "Role %q deactivated\n", name)

	logger.Info("role deactivated successfully", slog.String("name", name))
	return nil
}
