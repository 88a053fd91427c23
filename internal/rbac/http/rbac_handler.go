// Package http provides HTTP handlers for access-control management
// operations: users, roles, permissions and their assignments.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/gatekeeper/internal/httputil"
	"github.com/allisson/gatekeeper/internal/rbac/http/dto"
	rbacUseCase "github.com/allisson/gatekeeper/internal/rbac/usecase"
	customValidation "github.com/allisson/gatekeeper/internal/validation"
)

// RBACHandler handles HTTP requests for access-control management.
type RBACHandler struct {
	rbacUseCase rbacUseCase.RBACUseCase
	logger      *slog.Logger
}

// NewRBACHandler creates a new access-control management handler.
func NewRBACHandler(rbacUseCase rbacUseCase.RBACUseCase, logger *slog.Logger) *RBACHandler {
	return &RBACHandler{
		rbacUseCase: rbacUseCase,
		logger:      logger,
	}
}

// CreateUserHandler creates a new user.
// POST /v1/rbac/users - requires the rbac:write permission.
// Returns 201 Created with the user, 409 on duplicate username or email.
func (h *RBACHandler) CreateUserHandler(c *gin.Context) {
	var req dto.CreateUserRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	user, err := h.rbacUseCase.CreateUser(c.Request.Context(), rbacUseCase.CreateUserInput{
		Username:       req.Username,
		Email:          req.Email,
		OrganizationID: req.OrganizationID,
		Password:       req.Password,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.NewUserResponse(user))
}

// GetUserHandler retrieves a user by username.
// GET /v1/rbac/users/:username - requires the rbac:read permission.
// Returns 200 OK with the user, 404 when unknown.
func (h *RBACHandler) GetUserHandler(c *gin.Context) {
	username := c.Param("username")

	if err := customValidation.Username.Validate(username); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	user, err := h.rbacUseCase.GetUser(c.Request.Context(), username)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

// UpdateUserHandler updates a user's mutable attributes.
// PUT /v1/rbac/users/:username - requires the rbac:write permission.
// Returns 200 OK with the updated user.
func (h *RBACHandler) UpdateUserHandler(c *gin.Context) {
	username := c.Param("username")

	if err := customValidation.Username.Validate(username); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	var req dto.UpdateUserRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	user, err := h.rbacUseCase.UpdateUser(c.Request.Context(), rbacUseCase.UpdateUserInput{
		Username:       username,
		Email:          req.Email,
		OrganizationID: req.OrganizationID,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

// DeactivateUserHandler deactivates a user. Deactivation is the only removal
// operation: users are never deleted, so audit history stays intact.
// DELETE /v1/rbac/users/:username - requires the rbac:write permission.
// Returns 204 No Content.
func (h *RBACHandler) DeactivateUserHandler(c *gin.Context) {
	username := c.Param("username")

	if err := customValidation.Username.Validate(username); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	if err := h.rbacUseCase.DeactivateUser(c.Request.Context(), username); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// SetPasswordHandler sets a user's local credential.
// PUT /v1/rbac/users/:username/password - requires the rbac:write permission.
// Returns 204 No Content.
func (h *RBACHandler) SetPasswordHandler(c *gin.Context) {
	username := c.Param("username")

	if err := customValidation.Username.Validate(username); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	var req dto.SetPasswordRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	if err := h.rbacUseCase.SetPassword(c.Request.Context(), username, req.Password); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// CreateRoleHandler creates a new role.
// POST /v1/rbac/roles - requires the rbac:write permission.
// Returns 201 Created with the role, 409 on duplicate name.
func (h *RBACHandler) CreateRoleHandler(c *gin.Context) {
	var req dto.CreateRoleRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	role, err := h.rbacUseCase.CreateRole(c.Request.Context(), rbacUseCase.CreateRoleInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.NewRoleResponse(role))
}

// ListRolesHandler lists roles with offset/limit pagination.
// GET /v1/rbac/roles?offset=N&limit=N - requires the rbac:read permission.
// Returns 200 OK with the page of roles.
func (h *RBACHandler) ListRolesHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	roles, err := h.rbacUseCase.ListRoles(c.Request.Context(), offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.NewListRolesResponse(roles))
}

// DeactivateRoleHandler deactivates a role. Like users, roles are never
// deleted: the flag cut removes the role's permissions from authorization
// decisions while keeping its assignments on record.
// DELETE /v1/rbac/roles/:role - requires the rbac:write permission.
// Returns 204 No Content, 404 when the role is unknown.
func (h *RBACHandler) DeactivateRoleHandler(c *gin.Context) {
	role := c.Param("role")

	if err := h.rbacUseCase.DeactivateRole(c.Request.Context(), role); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// CreatePermissionHandler creates a new permission.
// POST /v1/rbac/permissions - requires the rbac:write permission.
// Returns 201 Created with the permission, 409 on duplicate resource:action.
func (h *RBACHandler) CreatePermissionHandler(c *gin.Context) {
	var req dto.CreatePermissionRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	permission, err := h.rbacUseCase.CreatePermission(c.Request.Context(), rbacUseCase.CreatePermissionInput{
		Resource: req.Resource,
		Action:   req.Action,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.NewPermissionResponse(permission))
}

// AssignRoleHandler assigns a role to a user.
// POST /v1/rbac/users/:username/roles - requires the rbac:write permission.
// Returns 204 No Content. Assigning an already-held role is a no-op.
func (h *RBACHandler) AssignRoleHandler(c *gin.Context) {
	username := c.Param("username")

	if err := customValidation.Username.Validate(username); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	var req dto.AssignRoleRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	if err := h.rbacUseCase.AssignRole(c.Request.Context(), username, req.Role); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// RevokeRoleHandler revokes a role from a user.
// DELETE /v1/rbac/users/:username/roles/:role - requires the rbac:write
// permission. Returns 204 No Content.
func (h *RBACHandler) RevokeRoleHandler(c *gin.Context) {
	username := c.Param("username")
	role := c.Param("role")

	if err := customValidation.Username.Validate(username); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	if err := h.rbacUseCase.RevokeRole(c.Request.Context(), username, role); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// GrantPermissionHandler grants a permission to a role.
// POST /v1/rbac/roles/:role/permissions - requires the rbac:write permission.
// Returns 204 No Content. Granting an already-held permission is a no-op.
func (h *RBACHandler) GrantPermissionHandler(c *gin.Context) {
	role := c.Param("role")

	var req dto.GrantPermissionRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	if err := h.rbacUseCase.GrantPermission(c.Request.Context(), role, req.Resource, req.Action); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// RevokePermissionHandler revokes a permission from a role.
// DELETE /v1/rbac/roles/:role/permissions/:resource/:action - requires the
// rbac:write permission. Returns 204 No Content.
func (h *RBACHandler) RevokePermissionHandler(c *gin.Context) {
	role := c.Param("role")
	resource := c.Param("resource")
	action := c.Param("action")

	if err := customValidation.PermissionPart.Validate(resource); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}
	if err := customValidation.PermissionPart.Validate(action); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	if err := h.rbacUseCase.RevokePermission(c.Request.Context(), role, resource, action); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}
