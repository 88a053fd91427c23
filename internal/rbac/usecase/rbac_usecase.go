package usecase

import (
	"context"
	"strings"

	"github.com/allisson/go-pwdhash"
	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	"github.com/allisson/gatekeeper/internal/database"
	apperrors "github.com/allisson/gatekeeper/internal/errors"
	eventsDomain "github.com/allisson/gatekeeper/internal/events/domain"
	eventsUsecase "github.com/allisson/gatekeeper/internal/events/usecase"
	"github.com/allisson/gatekeeper/internal/rbac/domain"
	appValidation "github.com/allisson/gatekeeper/internal/validation"
)

// RBACUseCaseImpl handles access-control management business logic. Directory
// changes are announced through the event publisher after the storage write
// succeeds; publication is fire-and-forget and never fails the operation.
type RBACUseCaseImpl struct {
	txManager database.TxManager
	repo      RBACRepository
	publisher eventsUsecase.Publisher
	hasher    *pwdhash.PasswordHasher
}

// NewRBACUseCase creates a new RBACUseCase.
func NewRBACUseCase(
	txManager database.TxManager,
	repo RBACRepository,
	publisher eventsUsecase.Publisher,
) (RBACUseCase, error) {
	hasher, err := pwdhash.New(pwdhash.WithPolicy(pwdhash.PolicyInteractive))
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to create password hasher")
	}

	return &RBACUseCaseImpl{
		txManager: txManager,
		repo:      repo,
		publisher: publisher,
		hasher:    hasher,
	}, nil
}

func (uc *RBACUseCaseImpl) validateCreateUserInput(input CreateUserInput) error {
	err := validation.ValidateStruct(&input,
		validation.Field(&input.Username,
			validation.Required.Error("username is required"),
			appValidation.Username,
			validation.Length(1, 255).Error("username must be between 1 and 255 characters"),
		),
		validation.Field(&input.Email,
			validation.Required.Error("email is required"),
			appValidation.NotBlank,
			validation.Length(5, 255).Error("email must be between 5 and 255 characters"),
		),
		validation.Field(&input.Password,
			validation.Length(8, 128).Error("password must be between 8 and 128 characters"),
		),
	)
	return appValidation.WrapValidationError(err)
}

// CreateUser registers a new user and announces a user.created event.
func (uc *RBACUseCaseImpl) CreateUser(ctx context.Context, input CreateUserInput) (*domain.User, error) {
	if err := uc.validateCreateUserInput(input); err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:             uuid.Must(uuid.NewV7()),
		Username:       strings.TrimSpace(input.Username),
		Email:          strings.TrimSpace(strings.ToLower(input.Email)),
		OrganizationID: input.OrganizationID,
		IsActive:       true,
	}

	if input.Password != "" {
		hashed, err := uc.hasher.Hash([]byte(input.Password))
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to hash password")
		}
		user.PasswordHash = &hashed
	}

	if err := uc.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	uc.publisher.Publish(eventsDomain.NewUserLifecycleEvent(user.Username, "created"))
	return user, nil
}

// GetUser retrieves a user by username.
func (uc *RBACUseCaseImpl) GetUser(ctx context.Context, username string) (*domain.User, error) {
	return uc.repo.GetUserByUsername(ctx, username)
}

// UpdateUser updates the mutable user attributes and announces a user.updated
// event.
func (uc *RBACUseCaseImpl) UpdateUser(ctx context.Context, input UpdateUserInput) (*domain.User, error) {
	err := validation.ValidateStruct(&input,
		validation.Field(&input.Username,
			validation.Required.Error("username is required"),
			appValidation.Username,
		),
		validation.Field(&input.Email,
			validation.Required.Error("email is required"),
			appValidation.NotBlank,
			validation.Length(5, 255).Error("email must be between 5 and 255 characters"),
		),
	)
	if err := appValidation.WrapValidationError(err); err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:       strings.TrimSpace(input.Username),
		Email:          strings.TrimSpace(strings.ToLower(input.Email)),
		OrganizationID: input.OrganizationID,
	}
	if err := uc.repo.UpdateUser(ctx, user); err != nil {
		return nil, err
	}

	uc.publisher.Publish(eventsDomain.NewUserLifecycleEvent(user.Username, "updated"))
	return uc.repo.GetUserByUsername(ctx, user.Username)
}

// DeactivateUser clears the user's active flag and announces a
// user.deactivated event. Deactivation takes effect on the next authorization
// decision; tokens already issued stay valid until expiry.
func (uc *RBACUseCaseImpl) DeactivateUser(ctx context.Context, username string) error {
	if err := uc.repo.SetUserActive(ctx, username, false); err != nil {
		return err
	}

	uc.publisher.Publish(eventsDomain.NewUserLifecycleEvent(username, "deactivated"))
	return nil
}

// SetPassword hashes and stores a local credential for the user.
func (uc *RBACUseCaseImpl) SetPassword(ctx context.Context, username, password string) error {
	err := validation.Validate(password,
		validation.Required.Error("password is required"),
		validation.Length(8, 128).Error("password must be between 8 and 128 characters"),
	)
	if err := appValidation.WrapValidationError(err); err != nil {
		return err
	}

	hashed, err := uc.hasher.Hash([]byte(password))
	if err != nil {
		return apperrors.Wrap(err, "failed to hash password")
	}

	return uc.repo.SetPassword(ctx, username, hashed)
}

// VerifyLocalCredential checks a username/password pair against the stored
// local credential. Inactive users and users without a local credential are
// rejected the same way as a wrong password.
func (uc *RBACUseCaseImpl) VerifyLocalCredential(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := uc.repo.GetUserByUsername(ctx, username)
	if err != nil {
		if apperrors.Is(err, domain.ErrUserNotFound) {
			return nil, apperrors.Wrap(apperrors.ErrUnauthorized, "invalid credentials")
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, apperrors.Wrap(apperrors.ErrUnauthorized, "invalid credentials")
	}
	if user.PasswordHash == nil {
		return nil, apperrors.Wrap(apperrors.ErrUnauthorized, "invalid credentials")
	}

	ok, err := uc.hasher.Verify([]byte(password), *user.PasswordHash)
	if err != nil || !ok {
		return nil, apperrors.Wrap(apperrors.ErrUnauthorized, "invalid credentials")
	}

	return user, nil
}

// CreateRole registers a new role. Roles start active.
func (uc *RBACUseCaseImpl) CreateRole(ctx context.Context, input CreateRoleInput) (*domain.Role, error) {
	err := validation.ValidateStruct(&input,
		validation.Field(&input.Name,
			validation.Required.Error("name is required"),
			appValidation.NotBlank,
			appValidation.NoWhitespace,
			validation.Length(1, 255).Error("name must be between 1 and 255 characters"),
		),
		validation.Field(&input.Description,
			validation.Length(0, 1024).Error("description must be at most 1024 characters"),
		),
	)
	if err := appValidation.WrapValidationError(err); err != nil {
		return nil, err
	}

	role := &domain.Role{
		ID:          uuid.Must(uuid.NewV7()),
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		IsActive:    true,
	}
	if err := uc.repo.CreateRole(ctx, role); err != nil {
		return nil, err
	}

	return role, nil
}

// DeactivateRole clears the role's active flag. Every permission the role
// carried stops contributing to authorization decisions on the next check;
// the role assignments themselves are kept, so reactivating the flag in the
// database restores the grants.
func (uc *RBACUseCaseImpl) DeactivateRole(ctx context.Context, name string) error {
	return uc.repo.SetRoleActive(ctx, name, false)
}

// ListRoles retrieves a page of roles ordered by name.
func (uc *RBACUseCaseImpl) ListRoles(ctx context.Context, offset, limit int) ([]*domain.Role, error) {
	return uc.repo.ListRoles(ctx, offset, limit)
}

// CreatePermission registers a new permission. Permissions start active.
func (uc *RBACUseCaseImpl) CreatePermission(ctx context.Context, input CreatePermissionInput) (*domain.Permission, error) {
	err := validation.ValidateStruct(&input,
		validation.Field(&input.Resource,
			validation.Required.Error("resource is required"),
			appValidation.PermissionPart,
		),
		validation.Field(&input.Action,
			validation.Required.Error("action is required"),
			appValidation.PermissionPart,
		),
	)
	if err := appValidation.WrapValidationError(err); err != nil {
		return nil, err
	}

	permission := &domain.Permission{
		ID:       uuid.Must(uuid.NewV7()),
		Resource: input.Resource,
		Action:   input.Action,
		IsActive: true,
	}
	if err := uc.repo.CreatePermission(ctx, permission); err != nil {
		return nil, err
	}

	return permission, nil
}

// AssignRole assigns a role to a user. The lookup and the assignment run in
// one transaction so a concurrent role deletion cannot leave a dangling grant.
func (uc *RBACUseCaseImpl) AssignRole(ctx context.Context, username, roleName string) error {
	return uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		user, err := uc.repo.GetUserByUsername(ctx, username)
		if err != nil {
			return err
		}
		role, err := uc.repo.GetRoleByName(ctx, roleName)
		if err != nil {
			return err
		}
		return uc.repo.AssignRoleToUser(ctx, user.ID, role.ID)
	})
}

// RevokeRole removes a role assignment from a user.
func (uc *RBACUseCaseImpl) RevokeRole(ctx context.Context, username, roleName string) error {
	return uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		user, err := uc.repo.GetUserByUsername(ctx, username)
		if err != nil {
			return err
		}
		role, err := uc.repo.GetRoleByName(ctx, roleName)
		if err != nil {
			return err
		}
		return uc.repo.RevokeRoleFromUser(ctx, user.ID, role.ID)
	})
}

// GrantPermission grants a permission to a role.
func (uc *RBACUseCaseImpl) GrantPermission(ctx context.Context, roleName, resource, action string) error {
	return uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		role, err := uc.repo.GetRoleByName(ctx, roleName)
		if err != nil {
			return err
		}
		permission, err := uc.repo.GetPermission(ctx, resource, action)
		if err != nil {
			return err
		}
		return uc.repo.GrantPermissionToRole(ctx, role.ID, permission.ID)
	})
}

// RevokePermission removes a permission grant from a role.
func (uc *RBACUseCaseImpl) RevokePermission(ctx context.Context, roleName, resource, action string) error {
	return uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		role, err := uc.repo.GetRoleByName(ctx, roleName)
		if err != nil {
			return err
		}
		permission, err := uc.repo.GetPermission(ctx, resource, action)
		if err != nil {
			return err
		}
		return uc.repo.RevokePermissionFromRole(ctx, role.ID, permission.ID)
	})
}
