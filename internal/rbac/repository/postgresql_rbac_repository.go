// Package repository provides data persistence implementations for the
// access-control entities. Repositories support both PostgreSQL and MySQL and
// apply the active-flag filters inside the queries, so callers never see
// grants contributed by inactive users, roles or permissions.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/gatekeeper/internal/database"
	apperrors "github.com/allisson/gatekeeper/internal/errors"
	"github.com/allisson/gatekeeper/internal/rbac/domain"
)

// PostgreSQLRBACRepository handles access-control persistence for PostgreSQL.
type PostgreSQLRBACRepository struct {
	db *sql.DB
}

// NewPostgreSQLRBACRepository creates a new PostgreSQLRBACRepository.
func NewPostgreSQLRBACRepository(db *sql.DB) *PostgreSQLRBACRepository {
	return &PostgreSQLRBACRepository{db: db}
}

// CreateUser inserts a new user.
func (r *PostgreSQLRBACRepository) CreateUser(ctx context.Context, user *domain.User) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO users (id, username, email, organization_id, password_hash, is_active, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())`

	_, err := querier.ExecContext(
		ctx,
		query,
		user.ID,
		user.Username,
		user.Email,
		user.OrganizationID,
		user.PasswordHash,
		user.IsActive,
	)
	if err != nil {
		if isPostgreSQLUniqueViolation(err) {
			return domain.ErrUserAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create user")
	}
	return nil
}

// GetUserByUsername retrieves a user by username, active or not.
func (r *PostgreSQLRBACRepository) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, username, email, organization_id, password_hash, is_active, created_at, updated_at
			  FROM users WHERE username = $1`

	err := querier.QueryRowContext(ctx, query, username).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.OrganizationID,
		&user.PasswordHash,
		&user.IsActive,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get user by username")
	}

	return &user, nil
}

// UpdateUser updates the mutable user attributes.
func (r *PostgreSQLRBACRepository) UpdateUser(ctx context.Context, user *domain.User) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE users SET email = $1, organization_id = $2, updated_at = $3 WHERE username = $4`

	result, err := querier.ExecContext(ctx, query, user.Email, user.OrganizationID, time.Now().UTC(), user.Username)
	if err != nil {
		return apperrors.Wrap(err, "failed to update user")
	}
	return requireRowAffected(result, domain.ErrUserNotFound)
}

// SetUserActive toggles the user's active flag.
func (r *PostgreSQLRBACRepository) SetUserActive(ctx context.Context, username string, active bool) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE users SET is_active = $1, updated_at = $2 WHERE username = $3`

	result, err := querier.ExecContext(ctx, query, active, time.Now().UTC(), username)
	if err != nil {
		return apperrors.Wrap(err, "failed to set user active flag")
	}
	return requireRowAffected(result, domain.ErrUserNotFound)
}

// SetPassword stores the user's local credential hash.
func (r *PostgreSQLRBACRepository) SetPassword(ctx context.Context, username string, passwordHash string) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE users SET password_hash = $1, updated_at = $2 WHERE username = $3`

	result, err := querier.ExecContext(ctx, query, passwordHash, time.Now().UTC(), username)
	if err != nil {
		return apperrors.Wrap(err, "failed to set user password")
	}
	return requireRowAffected(result, domain.ErrUserNotFound)
}

// CreateRole inserts a new role.
func (r *PostgreSQLRBACRepository) CreateRole(ctx context.Context, role *domain.Role) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO roles (id, name, description, is_active, created_at)
			  VALUES ($1, $2, $3, $4, NOW())`

	_, err := querier.ExecContext(ctx, query, role.ID, role.Name, role.Description, role.IsActive)
	if err != nil {
		if isPostgreSQLUniqueViolation(err) {
			return domain.ErrRoleAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create role")
	}
	return nil
}

// SetRoleActive toggles the role's active flag.
func (r *PostgreSQLRBACRepository) SetRoleActive(ctx context.Context, name string, active bool) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE roles SET is_active = $1 WHERE name = $2`

	result, err := querier.ExecContext(ctx, query, active, name)
	if err != nil {
		return apperrors.Wrap(err, "failed to set role active flag")
	}
	return requireRowAffected(result, domain.ErrRoleNotFound)
}

// GetRoleByName retrieves a role by name.
func (r *PostgreSQLRBACRepository) GetRoleByName(ctx context.Context, name string) (*domain.Role, error) {
	var role domain.Role
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, description, is_active, created_at FROM roles WHERE name = $1`

	err := querier.QueryRowContext(ctx, query, name).Scan(
		&role.ID,
		&role.Name,
		&role.Description,
		&role.IsActive,
		&role.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRoleNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get role by name")
	}

	return &role, nil
}

// ListRoles retrieves roles ordered by name.
func (r *PostgreSQLRBACRepository) ListRoles(ctx context.Context, offset, limit int) ([]*domain.Role, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, description, is_active, created_at
			  FROM roles ORDER BY name OFFSET $1 LIMIT $2`

	rows, err := querier.QueryContext(ctx, query, offset, limit)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list roles")
	}
	defer func() { _ = rows.Close() }()

	var roles []*domain.Role
	for rows.Next() {
		var role domain.Role
		if err := rows.Scan(&role.ID, &role.Name, &role.Description, &role.IsActive, &role.CreatedAt); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan role")
		}
		roles = append(roles, &role)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate roles")
	}

	return roles, nil
}

// CreatePermission inserts a new permission.
func (r *PostgreSQLRBACRepository) CreatePermission(ctx context.Context, permission *domain.Permission) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO permissions (id, resource, action, is_active, created_at)
			  VALUES ($1, $2, $3, $4, NOW())`

	_, err := querier.ExecContext(ctx, query, permission.ID, permission.Resource, permission.Action, permission.IsActive)
	if err != nil {
		if isPostgreSQLUniqueViolation(err) {
			return domain.ErrPermissionAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create permission")
	}
	return nil
}

// GetPermission retrieves a permission by its resource/action pair.
func (r *PostgreSQLRBACRepository) GetPermission(ctx context.Context, resource, action string) (*domain.Permission, error) {
	var permission domain.Permission
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, resource, action, is_active, created_at
			  FROM permissions WHERE resource = $1 AND action = $2`

	err := querier.QueryRowContext(ctx, query, resource, action).Scan(
		&permission.ID,
		&permission.Resource,
		&permission.Action,
		&permission.IsActive,
		&permission.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrPermissionNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get permission")
	}

	return &permission, nil
}

// AssignRoleToUser creates a user/role assignment. Assigning the same role
// twice is a no-op.
func (r *PostgreSQLRBACRepository) AssignRoleToUser(ctx context.Context, userID, roleID uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO user_roles (user_id, role_id, created_at)
			  VALUES ($1, $2, NOW())
			  ON CONFLICT (user_id, role_id) DO NOTHING`

	_, err := querier.ExecContext(ctx, query, userID, roleID)
	if err != nil {
		return apperrors.Wrap(err, "failed to assign role to user")
	}
	return nil
}

// RevokeRoleFromUser removes a user/role assignment.
func (r *PostgreSQLRBACRepository) RevokeRoleFromUser(ctx context.Context, userID, roleID uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	query := `DELETE FROM user_roles WHERE user_id = $1 AND role_id = $2`

	_, err := querier.ExecContext(ctx, query, userID, roleID)
	if err != nil {
		return apperrors.Wrap(err, "failed to revoke role from user")
	}
	return nil
}

// GrantPermissionToRole creates a role/permission grant. Granting the same
// permission twice is a no-op.
func (r *PostgreSQLRBACRepository) GrantPermissionToRole(ctx context.Context, roleID, permissionID uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO role_permissions (role_id, permission_id, created_at)
			  VALUES ($1, $2, NOW())
			  ON CONFLICT (role_id, permission_id) DO NOTHING`

	_, err := querier.ExecContext(ctx, query, roleID, permissionID)
	if err != nil {
		return apperrors.Wrap(err, "failed to grant permission to role")
	}
	return nil
}

// RevokePermissionFromRole removes a role/permission grant.
func (r *PostgreSQLRBACRepository) RevokePermissionFromRole(ctx context.Context, roleID, permissionID uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	query := `DELETE FROM role_permissions WHERE role_id = $1 AND permission_id = $2`

	_, err := querier.ExecContext(ctx, query, roleID, permissionID)
	if err != nil {
		return apperrors.Wrap(err, "failed to revoke permission from role")
	}
	return nil
}

// HasActivePermission reports whether the user holds the resource/action
// permission through at least one active role. Inactive users, roles and
// permissions are filtered out by the query itself.
func (r *PostgreSQLRBACRepository) HasActivePermission(ctx context.Context, username, resource, action string) (bool, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT EXISTS (
				  SELECT 1
				  FROM users u
				  JOIN user_roles ur ON ur.user_id = u.id
				  JOIN roles ro ON ro.id = ur.role_id AND ro.is_active = TRUE
				  JOIN role_permissions rp ON rp.role_id = ro.id
				  JOIN permissions p ON p.id = rp.permission_id AND p.is_active = TRUE
				  WHERE u.username = $1 AND u.is_active = TRUE
					AND p.resource = $2 AND p.action = $3
			  )`

	var exists bool
	if err := querier.QueryRowContext(ctx, query, username, resource, action).Scan(&exists); err != nil {
		return false, apperrors.Wrap(err, "failed to check permission")
	}
	return exists, nil
}

// GetActiveRoleNames retrieves the names of the user's active roles.
func (r *PostgreSQLRBACRepository) GetActiveRoleNames(ctx context.Context, username string) ([]string, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ro.name
			  FROM users u
			  JOIN user_roles ur ON ur.user_id = u.id
			  JOIN roles ro ON ro.id = ur.role_id AND ro.is_active = TRUE
			  WHERE u.username = $1 AND u.is_active = TRUE
			  ORDER BY ro.name`

	return scanStrings(ctx, querier, query, "failed to get role names", username)
}

// GetActivePermissionKeys retrieves the distinct "resource:action" keys the
// user holds through active roles.
func (r *PostgreSQLRBACRepository) GetActivePermissionKeys(ctx context.Context, username string) ([]string, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT DISTINCT p.resource || ':' || p.action AS permission_key
			  FROM users u
			  JOIN user_roles ur ON ur.user_id = u.id
			  JOIN roles ro ON ro.id = ur.role_id AND ro.is_active = TRUE
			  JOIN role_permissions rp ON rp.role_id = ro.id
			  JOIN permissions p ON p.id = rp.permission_id AND p.is_active = TRUE
			  WHERE u.username = $1 AND u.is_active = TRUE
			  ORDER BY permission_key`

	return scanStrings(ctx, querier, query, "failed to get permission keys", username)
}

// scanStrings runs a single-column string query.
func scanStrings(ctx context.Context, querier database.Querier, query, wrapMsg string, args ...any) ([]string, error) {
	rows, err := querier.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Wrap(err, wrapMsg)
	}
	defer func() { _ = rows.Close() }()

	var values []string
	for rows.Next() {
		var value string
		if err := rows.Scan(&value); err != nil {
			return nil, apperrors.Wrap(err, wrapMsg)
		}
		values = append(values, value)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, wrapMsg)
	}

	return values, nil
}

// requireRowAffected maps zero-row updates to the given domain error.
func requireRowAffected(result sql.Result, notFound error) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to read affected rows")
	}
	if affected == 0 {
		return notFound
	}
	return nil
}

// isPostgreSQLUniqueViolation checks if the error is a PostgreSQL unique
// constraint violation.
func isPostgreSQLUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "duplicate key") || strings.Contains(errMsg, "unique constraint")
}
