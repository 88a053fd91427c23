package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/allisson/gatekeeper/internal/rbac/http/dto"
	rbacUsecase "github.com/allisson/gatekeeper/internal/rbac/usecase"
)

// RunCreateUser creates a new user. Password is optional: when omitted the
// user has no local credential and can only authenticate through the identity
// bridge. Outputs the created user in either text or JSON format.
//
// Requirements: Database must be migrated and accessible.
func RunCreateUser(
	ctx context.Context,
	rbacUseCase rbacUsecase.RBACUseCase,
	logger *slog.Logger,
	username string,
	email string,
	organizationID *int64,
	password string,
	format string,
	io IOTuple,
) error {
	logger.Info("creating new user", slog.String("username", username))

	input := rbacUsecase.CreateUserInput{
		Username:       username,
		Email:          email,
		OrganizationID: organizationID,
		Password:       password,
	}

	user, err := rbacUseCase.CreateUser(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	response := dto.NewUserResponse(user)
	if format == "json" {
		outputJSON(response, io.Writer)
	} else {
		fmt.Fprintf(io.Writer, "User created successfully!\n")
		fmt.Fprintf(io.Writer, "ID:       %s\n", user.ID)
		fmt.Fprintf(io.Writer, "Username: %s\n", user.Username)
		fmt.Fprintf(io.Writer, "Email:    %s\n", user.Email)
		if user.OrganizationID != nil {
			fmt.Fprintf(io.Writer, "Org:      %d\n", *user.OrganizationID)
		}
		if password == "" {
			fmt.Fprintf(io.Writer, "No local password set: bridge-only user\n")
		}
	}

	logger.Info("user created successfully",
		slog.String("user_id", user.ID.String()),
		slog.String("username", username),
	)

	return nil
}
