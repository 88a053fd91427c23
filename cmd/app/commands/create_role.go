package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/allisson/gatekeeper/internal/rbac/http/dto"
	rbacUsecase "github.com/allisson/gatekeeper/internal/rbac/usecase"
)

// RunCreateRole creates a new role. Outputs the created role in either text
// or JSON format.
//
// Requirements: Database must be migrated and accessible.
func RunCreateRole(
	ctx context.Context,
	rbacUseCase rbacUsecase.RBACUseCase,
	logger *slog.Logger,
	name string,
	description string,
	format string,
	io IOTuple,
) error {
	logger.Info("creating new role", slog.String("name", name))

	input := rbacUsecase.CreateRoleInput{
		Name:        name,
		Description: description,
	}

	role, err := rbacUseCase.CreateRole(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to create role: %w", err)
	}

	response := dto.NewRoleResponse(role)
	if format == "json" {
		outputJSON(response, io.Writer)
	} else {
		fmt.Fprintf(io.Writer, "Role created successfully!\n")
		fmt.Fprintf(io.Writer, "ID:          %s\n", role.ID)
		fmt.Fprintf(io.Writer, "Name:        %s\n", role.Name)
		if role.Description != "" {
			fmt.Fprintf(io.Writer, "Description: %s\n", role.Description)
		}
	}

	logger.Info("role created successfully",
		slog.String("role_id", role.ID.String()),
		slog.String("name", name),
	)

	return nil
}
