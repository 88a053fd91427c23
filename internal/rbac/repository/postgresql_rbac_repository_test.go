package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/gatekeeper/internal/errors"
	"github.com/allisson/gatekeeper/internal/rbac/domain"
)

func setupMockDB(t *testing.T) (*PostgreSQLRBACRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewPostgreSQLRBACRepository(db), mock
}

func TestPostgreSQLRBACRepository_CreateUser(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo, mock := setupMockDB(t)

		user := &domain.User{
			ID:       uuid.Must(uuid.NewV7()),
			Username: "jane.doe",
			Email:    "jane@example.com",
			IsActive: true,
		}

		mock.ExpectExec("INSERT INTO users").
			WithArgs(user.ID, user.Username, user.Email, nil, nil, true).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.CreateUser(context.Background(), user)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate username maps to conflict", func(t *testing.T) {
		repo, mock := setupMockDB(t)

		user := &domain.User{ID: uuid.Must(uuid.NewV7()), Username: "jane.doe", IsActive: true}

		mock.ExpectExec("INSERT INTO users").
			WillReturnError(errors.New(`pq: duplicate key value violates unique constraint "users_username_key"`))

		err := repo.CreateUser(context.Background(), user)
		assert.True(t, apperrors.Is(err, domain.ErrUserAlreadyExists))
	})
}

func TestPostgreSQLRBACRepository_GetUserByUsername(t *testing.T) {
	t.Run("found with null optional columns", func(t *testing.T) {
		repo, mock := setupMockDB(t)

		id := uuid.Must(uuid.NewV7())
		now := time.Now().UTC()
		rows := sqlmock.NewRows([]string{
			"id", "username", "email", "organization_id", "password_hash", "is_active", "created_at", "updated_at",
		}).AddRow(id, "jane.doe", "jane@example.com", nil, nil, true, now, now)

		mock.ExpectQuery("SELECT (.+) FROM users WHERE username").
			WithArgs("jane.doe").
			WillReturnRows(rows)

		user, err := repo.GetUserByUsername(context.Background(), "jane.doe")
		require.NoError(t, err)
		assert.Equal(t, id, user.ID)
		assert.Equal(t, "jane.doe", user.Username)
		assert.Nil(t, user.OrganizationID)
		assert.Nil(t, user.PasswordHash)
		assert.True(t, user.IsActive)
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock := setupMockDB(t)

		mock.ExpectQuery("SELECT (.+) FROM users WHERE username").
			WithArgs("ghost").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		user, err := repo.GetUserByUsername(context.Background(), "ghost")
		assert.Nil(t, user)
		assert.True(t, apperrors.Is(err, domain.ErrUserNotFound))
	})
}

func TestPostgreSQLRBACRepository_SetUserActive(t *testing.T) {
	t.Run("unknown user maps to not found", func(t *testing.T) {
		repo, mock := setupMockDB(t)

		mock.ExpectExec("UPDATE users SET is_active").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.SetUserActive(context.Background(), "ghost", false)
		assert.True(t, apperrors.Is(err, domain.ErrUserNotFound))
	})

	t.Run("success", func(t *testing.T) {
		repo, mock := setupMockDB(t)

		mock.ExpectExec("UPDATE users SET is_active").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.SetUserActive(context.Background(), "jane.doe", false)
		assert.NoError(t, err)
	})
}

func TestPostgreSQLRBACRepository_SetRoleActive(t *testing.T) {
	t.Run("unknown role maps to not found", func(t *testing.T) {
		repo, mock := setupMockDB(t)

		mock.ExpectExec("UPDATE roles SET is_active").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.SetRoleActive(context.Background(), "ghost", false)
		assert.True(t, apperrors.Is(err, domain.ErrRoleNotFound))
	})

	t.Run("success", func(t *testing.T) {
		repo, mock := setupMockDB(t)

		mock.ExpectExec("UPDATE roles SET is_active").
			WithArgs(false, "auditors").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.SetRoleActive(context.Background(), "auditors", false)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgreSQLRBACRepository_HasActivePermission(t *testing.T) {
	t.Run("permission held", func(t *testing.T) {
		repo, mock := setupMockDB(t)

		mock.ExpectQuery("SELECT EXISTS").
			WithArgs("jane.doe", "portfolio", "delete").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		held, err := repo.HasActivePermission(context.Background(), "jane.doe", "portfolio", "delete")
		require.NoError(t, err)
		assert.True(t, held)
	})

	t.Run("permission absent", func(t *testing.T) {
		repo, mock := setupMockDB(t)

		mock.ExpectQuery("SELECT EXISTS").
			WithArgs("jane.doe", "portfolio", "delete").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

		held, err := repo.HasActivePermission(context.Background(), "jane.doe", "portfolio", "delete")
		require.NoError(t, err)
		assert.False(t, held)
	})
}

func TestPostgreSQLRBACRepository_GetActivePermissionKeys(t *testing.T) {
	repo, mock := setupMockDB(t)

	rows := sqlmock.NewRows([]string{"permission_key"}).
		AddRow("portfolio:delete").
		AddRow("portfolio:read")

	mock.ExpectQuery("SELECT DISTINCT").
		WithArgs("jane.doe").
		WillReturnRows(rows)

	keys, err := repo.GetActivePermissionKeys(context.Background(), "jane.doe")
	require.NoError(t, err)
	assert.Equal(t, []string{"portfolio:delete", "portfolio:read"}, keys)
}

func TestPostgreSQLRBACRepository_GetActiveRoleNames(t *testing.T) {
	repo, mock := setupMockDB(t)

	rows := sqlmock.NewRows([]string{"name"}).AddRow("admin").AddRow("auditor")

	mock.ExpectQuery("SELECT ro.name").
		WithArgs("jane.doe").
		WillReturnRows(rows)

	names, err := repo.GetActiveRoleNames(context.Background(), "jane.doe")
	require.NoError(t, err)
	assert.Equal(t, []string{"admin", "auditor"}, names)
}

func TestPostgreSQLRBACRepository_CreateRole(t *testing.T) {
	t.Run("duplicate name maps to conflict", func(t *testing.T) {
		repo, mock := setupMockDB(t)

		role := &domain.Role{ID: uuid.Must(uuid.NewV7()), Name: "admin", IsActive: true}

		mock.ExpectExec("INSERT INTO roles").
			WillReturnError(errors.New(`pq: duplicate key value violates unique constraint "roles_name_key"`))

		err := repo.CreateRole(context.Background(), role)
		assert.True(t, apperrors.Is(err, domain.ErrRoleAlreadyExists))
	})
}
