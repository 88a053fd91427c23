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

// MySQLRBACRepository handles access-control persistence for MySQL.
type MySQLRBACRepository struct {
	db *sql.DB
}

// NewMySQLRBACRepository creates a new MySQLRBACRepository.
func NewMySQLRBACRepository(db *sql.DB) *MySQLRBACRepository {
	return &MySQLRBACRepository{db: db}
}

// CreateUser inserts a new user.
func (r *MySQLRBACRepository) CreateUser(ctx context.Context, user *domain.User) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO users (id, username, email, organization_id, password_hash, is_active, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, NOW(), NOW())`

	_, err := querier.ExecContext(
		ctx,
		query,
		user.ID.String(),
		user.Username,
		user.Email,
		user.OrganizationID,
		user.PasswordHash,
		user.IsActive,
	)
	if err != nil {
		if isMySQLUniqueViolation(err) {
			return domain.ErrUserAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create user")
	}
	return nil
}

// GetUserByUsername retrieves a user by username, active or not.
func (r *MySQLRBACRepository) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User
	var id string
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, username, email, organization_id, password_hash, is_active, created_at, updated_at
			  FROM users WHERE username = ?`

	err := querier.QueryRowContext(ctx, query, username).Scan(
		&id,
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

	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to parse user id")
	}
	user.ID = parsed

	return &user, nil
}

// UpdateUser updates the mutable user attributes.
func (r *MySQLRBACRepository) UpdateUser(ctx context.Context, user *domain.User) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE users SET email = ?, organization_id = ?, updated_at = ? WHERE username = ?`

	result, err := querier.ExecContext(ctx, query, user.Email, user.OrganizationID, time.Now().UTC(), user.Username)
	if err != nil {
		return apperrors.Wrap(err, "failed to update user")
	}
	return requireRowAffected(result, domain.ErrUserNotFound)
}

// SetUserActive toggles the user's active flag.
func (r *MySQLRBACRepository) SetUserActive(ctx context.Context, username string, active bool) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE users SET is_active = ?, updated_at = ? WHERE username = ?`

	result, err := querier.ExecContext(ctx, query, active, time.Now().UTC(), username)
	if err != nil {
		return apperrors.Wrap(err, "failed to set user active flag")
	}
	return requireRowAffected(result, domain.ErrUserNotFound)
}

// SetPassword stores the user's local credential hash.
func (r *MySQLRBACRepository) SetPassword(ctx context.Context, username string, passwordHash string) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE users SET password_hash = ?, updated_at = ? WHERE username = ?`

	result, err := querier.ExecContext(ctx, query, passwordHash, time.Now().UTC(), username)
	if err != nil {
		return apperrors.Wrap(err, "failed to set user password")
	}
	return requireRowAffected(result, domain.ErrUserNotFound)
}

// CreateRole inserts a new role.
func (r *MySQLRBACRepository) CreateRole(ctx context.Context, role *domain.Role) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO roles (id, name, description, is_active, created_at)
			  VALUES (?, ?, ?, ?, NOW())`

	_, err := querier.ExecContext(ctx, query, role.ID.String(), role.Name, role.Description, role.IsActive)
	if err != nil {
		if isMySQLUniqueViolation(err) {
			return domain.ErrRoleAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create role")
	}
	return nil
}

// SetRoleActive toggles the role's active flag.
func (r *MySQLRBACRepository) SetRoleActive(ctx context.Context, name string, active bool) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE roles SET is_active = ? WHERE name = ?`

	result, err := querier.ExecContext(ctx, query, active, name)
	if err != nil {
		return apperrors.Wrap(err, "failed to set role active flag")
	}
	return requireRowAffected(result, domain.ErrRoleNotFound)
}

// GetRoleByName retrieves a role by name.
func (r *MySQLRBACRepository) GetRoleByName(ctx context.Context, name string) (*domain.Role, error) {
	var role domain.Role
	var id string
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, description, is_active, created_at FROM roles WHERE name = ?`

	err := querier.QueryRowContext(ctx, query, name).Scan(
		&id,
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

	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to parse role id")
	}
	role.ID = parsed

	return &role, nil
}

// ListRoles retrieves roles ordered by name.
func (r *MySQLRBACRepository) ListRoles(ctx context.Context, offset, limit int) ([]*domain.Role, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, description, is_active, created_at
			  FROM roles ORDER BY name LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list roles")
	}
	defer func() { _ = rows.Close() }()

	var roles []*domain.Role
	for rows.Next() {
		var role domain.Role
		var id string
		if err := rows.Scan(&id, &role.Name, &role.Description, &role.IsActive, &role.CreatedAt); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan role")
		}
		parsed, err := uuid.Parse(id)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to parse role id")
		}
		role.ID = parsed
		roles = append(roles, &role)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate roles")
	}

	return roles, nil
}

// CreatePermission inserts a new permission.
func (r *MySQLRBACRepository) CreatePermission(ctx context.Context, permission *domain.Permission) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO permissions (id, resource, action, is_active, created_at)
			  VALUES (?, ?, ?, ?, NOW())`

	_, err := querier.ExecContext(ctx, query, permission.ID.String(), permission.Resource, permission.Action, permission.IsActive)
	if err != nil {
		if isMySQLUniqueViolation(err) {
			return domain.ErrPermissionAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create permission")
	}
	return nil
}

// GetPermission retrieves a permission by its resource/action pair.
func (r *MySQLRBACRepository) GetPermission(ctx context.Context, resource, action string) (*domain.Permission, error) {
	var permission domain.Permission
	var id string
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, resource, action, is_active, created_at
			  FROM permissions WHERE resource = ? AND action = ?`

	err := querier.QueryRowContext(ctx, query, resource, action).Scan(
		&id,
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

	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to parse permission id")
	}
	permission.ID = parsed

	return &permission, nil
}

// AssignRoleToUser creates a user/role assignment. Assigning the same role
// twice is a no-op.
func (r *MySQLRBACRepository) AssignRoleToUser(ctx context.Context, userID, roleID uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT IGNORE INTO user_roles (user_id, role_id, created_at) VALUES (?, ?, NOW())`

	_, err := querier.ExecContext(ctx, query, userID.String(), roleID.String())
	if err != nil {
		return apperrors.Wrap(err, "failed to assign role to user")
	}
	return nil
}

// RevokeRoleFromUser removes a user/role assignment.
func (r *MySQLRBACRepository) RevokeRoleFromUser(ctx context.Context, userID, roleID uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	query := `DELETE FROM user_roles WHERE user_id = ? AND role_id = ?`

	_, err := querier.ExecContext(ctx, query, userID.String(), roleID.String())
	if err != nil {
		return apperrors.Wrap(err, "failed to revoke role from user")
	}
	return nil
}

// GrantPermissionToRole creates a role/permission grant. Granting the same
// permission twice is a no-op.
func (r *MySQLRBACRepository) GrantPermissionToRole(ctx context.Context, roleID, permissionID uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT IGNORE INTO role_permissions (role_id, permission_id, created_at) VALUES (?, ?, NOW())`

	_, err := querier.ExecContext(ctx, query, roleID.String(), permissionID.String())
	if err != nil {
		return apperrors.Wrap(err, "failed to grant permission to role")
	}
	return nil
}

// RevokePermissionFromRole removes a role/permission grant.
func (r *MySQLRBACRepository) RevokePermissionFromRole(ctx context.Context, roleID, permissionID uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	query := `DELETE FROM role_permissions WHERE role_id = ? AND permission_id = ?`

	_, err := querier.ExecContext(ctx, query, roleID.String(), permissionID.String())
	if err != nil {
		return apperrors.Wrap(err, "failed to revoke permission from role")
	}
	return nil
}

// HasActivePermission reports whether the user holds the resource/action
// permission through at least one active role.
func (r *MySQLRBACRepository) HasActivePermission(ctx context.Context, username, resource, action string) (bool, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT EXISTS (
				  SELECT 1
				  FROM users u
				  JOIN user_roles ur ON ur.user_id = u.id
				  JOIN roles ro ON ro.id = ur.role_id AND ro.is_active = TRUE
				  JOIN role_permissions rp ON rp.role_id = ro.id
				  JOIN permissions p ON p.id = rp.permission_id AND p.is_active = TRUE
				  WHERE u.username = ? AND u.is_active = TRUE
					AND p.resource = ? AND p.action = ?
			  )`

	var exists bool
	if err := querier.QueryRowContext(ctx, query, username, resource, action).Scan(&exists); err != nil {
		return false, apperrors.Wrap(err, "failed to check permission")
	}
	return exists, nil
}

// GetActiveRoleNames retrieves the names of the user's active roles.
func (r *MySQLRBACRepository) GetActiveRoleNames(ctx context.Context, username string) ([]string, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ro.name
			  FROM users u
			  JOIN user_roles ur ON ur.user_id = u.id
			  JOIN roles ro ON ro.id = ur.role_id AND ro.is_active = TRUE
			  WHERE u.username = ? AND u.is_active = TRUE
			  ORDER BY ro.name`

	return scanStrings(ctx, querier, query, "failed to get role names", username)
}

// GetActivePermissionKeys retrieves the distinct "resource:action" keys the
// user holds through active roles.
func (r *MySQLRBACRepository) GetActivePermissionKeys(ctx context.Context, username string) ([]string, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT DISTINCT CONCAT(p.resource, ':', p.action) AS permission_key
			  FROM users u
			  JOIN user_roles ur ON ur.user_id = u.id
			  JOIN roles ro ON ro.id = ur.role_id AND ro.is_active = TRUE
			  JOIN role_permissions rp ON rp.role_id = ro.id
			  JOIN permissions p ON p.id = rp.permission_id AND p.is_active = TRUE
			  WHERE u.username = ? AND u.is_active = TRUE
			  ORDER BY permission_key`

	return scanStrings(ctx, querier, query, "failed to get permission keys", username)
}

// isMySQLUniqueViolation checks if the error is a MySQL unique constraint
// violation (error 1062).
func isMySQLUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "error 1062") || strings.Contains(errMsg, "duplicate entry")
}
