package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/gatekeeper/internal/auth/http/dto"
	authUseCase "github.com/allisson/gatekeeper/internal/auth/usecase"
	"github.com/allisson/gatekeeper/internal/httputil"
	customValidation "github.com/allisson/gatekeeper/internal/validation"
)

// AuthzHandler handles HTTP requests for authorization decisions.
type AuthzHandler struct {
	authzUseCase authUseCase.AuthorizationUseCase
	logger       *slog.Logger
}

// NewAuthzHandler creates a new authorization handler.
func NewAuthzHandler(authzUseCase authUseCase.AuthorizationUseCase, logger *slog.Logger) *AuthzHandler {
	return &AuthzHandler{
		authzUseCase: authzUseCase,
		logger:       logger,
	}
}

// CheckHandler decides one (user, resource, action) triple.
// POST /v1/authz/check - requires an authenticated caller.
// Always returns 200 OK: a denial is a decision, not an HTTP error.
func (h *AuthzHandler) CheckHandler(c *gin.Context) {
	var req dto.AuthorizeRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	decision := h.authzUseCase.Authorize(c.Request.Context(), req.Username, req.Resource, req.Action)
	c.JSON(http.StatusOK, decision)
}

// UserPermissionsHandler projects a user's effective roles and permissions.
// GET /v1/authz/users/:username/permissions - requires an authenticated
// caller. Unknown users yield an empty inactive projection, not a 404.
func (h *AuthzHandler) UserPermissionsHandler(c *gin.Context) {
	username := c.Param("username")

	if err := customValidation.Username.Validate(username); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	projection := h.authzUseCase.GetUserPermissions(c.Request.Context(), username)
	c.JSON(http.StatusOK, projection)
}
