package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/allisson/gatekeeper/internal/rbac/http/dto"
	rbacUsecase "github.com/allisson/gatekeeper/internal/rbac/usecase"
)

// RunCreatePermission creates a new permission identified by a
// resource/action pair. Outputs the created permission in either text or
// JSON format.
//
// Requirements: Database must be migrated and accessible.
func RunCreatePermission(
	ctx context.Context,
	rbacUseCase rbacUsecase.RBACUseCase,
	logger *slog.Logger,
	resource string,
	action string,
	format string,
	io IOTuple,
) error {
	logger.Info("creating new permission",
		slog.String("resource", resource),
		slog.String("action", action),
	)

	input := rbacUsecase.CreatePermissionInput{
		Resource: resource,
		Action:   action,
	}

	permission, err := rbacUseCase.CreatePermission(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to create permission: %w", err)
	}

	response := dto.NewPermissionResponse(permission)
	if format == "json" {
		outputJSON(response, io.Writer)
	} else {
		fmt.Fprintf(io.Writer, "Permission created successfully!\n")
		fmt.Fprintf(io.Writer, "ID:  %s\n", permission.ID)
		fmt.Fprintf(io.Writer, "Key: %s\n", permission.Key())
	}

	logger.Info("permission created successfully",
		slog.String("permission_id", permission.ID.String()),
		slog.String("key", permission.Key()),
	)

	return nil
}
