package commands

import (
	"context"
	"fmt"
	"log/slog"

	rbacUsecase "github.com/allisson/gatekeeper/internal/rbac/usecase"
)

// RunDeactivateUser deactivates a user. The user record is kept so audit
// history stays intact, but every authentication and authorization decision
// for the user is denied from this point on.
//
// Requirements: Database must be migrated and accessible.
func RunDeactivateUser(
	ctx context.Context,
	rbacUseCase rbacUsecase.RBACUseCase,
	logger *slog.Logger,
	username string,
	io IOTuple,
) error {
	logger.Info("deactivating user", slog.String("username", username))

	if err := rbacUseCase.DeactivateUser(ctx, username); err != nil {
		return fmt.Errorf("failed to deactivate user: %w", err)
	}

	fmt.Fprintf(io.Writer, "User %q deactivated\n", username)

	logger.Info("user deactivated successfully", slog.String("username", username))
	return nil
}
