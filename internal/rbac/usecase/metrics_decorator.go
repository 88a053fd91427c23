package usecase

import (
	"context"
	"time"

	"github.com/allisson/gatekeeper/internal/metrics"
	"github.com/allisson/gatekeeper/internal/rbac/domain"
)

// rbacUseCaseWithMetrics decorates RBACUseCase with metrics instrumentation.
type rbacUseCaseWithMetrics struct {
	next    RBACUseCase
	metrics metrics.BusinessMetrics
}

// NewRBACUseCaseWithMetrics wraps an RBACUseCase with metrics recording.
func NewRBACUseCaseWithMetrics(useCase RBACUseCase, m metrics.BusinessMetrics) RBACUseCase {
	return &rbacUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// record emits the operation counter and duration histogram for one call.
func (r *rbacUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	r.metrics.RecordOperation(ctx, "rbac", operation, status)
	r.metrics.RecordDuration(ctx, "rbac", operation, time.Since(start), status)
}

func (r *rbacUseCaseWithMetrics) CreateUser(ctx context.Context, input CreateUserInput) (*domain.User, error) {
	start := time.Now()
	user, err := r.next.CreateUser(ctx, input)
	r.record(ctx, "user_create", start, err)
	return user, err
}

func (r *rbacUseCaseWithMetrics) GetUser(ctx context.Context, username string) (*domain.User, error) {
	start := time.Now()
	user, err := r.next.GetUser(ctx, username)
	r.record(ctx, "user_get", start, err)
	return user, err
}

func (r *rbacUseCaseWithMetrics) UpdateUser(ctx context.Context, input UpdateUserInput) (*domain.User, error) {
	start := time.Now()
	user, err := r.next.UpdateUser(ctx, input)
	r.record(ctx, "user_update", start, err)
	return user, err
}

func (r *rbacUseCaseWithMetrics) DeactivateUser(ctx context.Context, username string) error {
	start := time.Now()
	err := r.next.DeactivateUser(ctx, username)
	r.record(ctx, "user_deactivate", start, err)
	return err
}

func (r *rbacUseCaseWithMetrics) SetPassword(ctx context.Context, username, password string) error {
	start := time.Now()
	err := r.next.SetPassword(ctx, username, password)
	r.record(ctx, "password_set", start, err)
	return err
}

func (r *rbacUseCaseWithMetrics) VerifyLocalCredential(ctx context.Context, username, password string) (*domain.User, error) {
	start := time.Now()
	user, err := r.next.VerifyLocalCredential(ctx, username, password)
	r.record(ctx, "credential_verify", start, err)
	return user, err
}

func (r *rbacUseCaseWithMetrics) CreateRole(ctx context.Context, input CreateRoleInput) (*domain.Role, error) {
	start := time.Now()
	role, err := r.next.CreateRole(ctx, input)
	r.record(ctx, "role_create", start, err)
	return role, err
}

func (r *rbacUseCaseWithMetrics) DeactivateRole(ctx context.Context, name string) error {
	start := time.Now()
	err := r.next.DeactivateRole(ctx, name)
	r.record(ctx, "role_deactivate", start, err)
	return err
}

func (r *rbacUseCaseWithMetrics) ListRoles(ctx context.Context, offset, limit int) ([]*domain.Role, error) {
	start := time.Now()
	roles, err := r.next.ListRoles(ctx, offset, limit)
	r.record(ctx, "role_list", start, err)
	return roles, err
}

func (r *rbacUseCaseWithMetrics) CreatePermission(ctx context.Context, input CreatePermissionInput) (*domain.Permission, error) {
	start := time.Now()
	permission, err := r.next.CreatePermission(ctx, input)
	r.record(ctx, "permission_create", start, err)
	return permission, err
}

func (r *rbacUseCaseWithMetrics) AssignRole(ctx context.Context, username, roleName string) error {
	start := time.Now()
	err := r.next.AssignRole(ctx, username, roleName)
	r.record(ctx, "role_assign", start, err)
	return err
}

func (r *rbacUseCaseWithMetrics) RevokeRole(ctx context.Context, username, roleName string) error {
	start := time.Now()
	err := r.next.RevokeRole(ctx, username, roleName)
	r.record(ctx, "role_revoke", start, err)
	return err
}

func (r *rbacUseCaseWithMetrics) GrantPermission(ctx context.Context, roleName, resource, action string) error {
	start := time.Now()
	err := r.next.GrantPermission(ctx, roleName, resource, action)
	r.record(ctx, "permission_grant", start, err)
	return err
}

func (r *rbacUseCaseWithMetrics) RevokePermission(ctx context.Context, roleName, resource, action string) error {
	start := time.Now()
	err := r.next.RevokePermission(ctx, roleName, resource, action)
	r.record(ctx, "permission_revoke", start, err)
	return err
}
