package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	authDomain "github.com/allisson/gatekeeper/internal/auth/domain"
	"github.com/allisson/gatekeeper/internal/auth/http/dto"
	authUseCase "github.com/allisson/gatekeeper/internal/auth/usecase"
	"github.com/allisson/gatekeeper/internal/httputil"
	customValidation "github.com/allisson/gatekeeper/internal/validation"
)

// AuthHandler handles HTTP requests for authentication and token lifecycle
// operations.
type AuthHandler struct {
	authUseCase authUseCase.AuthenticationUseCase
	logger      *slog.Logger
}

// NewAuthHandler creates a new authentication handler.
func NewAuthHandler(authUseCase authUseCase.AuthenticationUseCase, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authUseCase: authUseCase,
		logger:      logger,
	}
}

// BridgeTokenHandler issues a token for an identity assertion submitted by
// the identity provider bridge.
// POST /v1/auth/token - guarded by the bridge shared secret middleware.
// Returns 201 Created with the token, or 401 with a failure result.
func (h *AuthHandler) BridgeTokenHandler(c *gin.Context) {
	var req dto.BridgeTokenRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	result := h.authUseCase.Authenticate(c.Request.Context(), authDomain.IdentityAssertion{
		Username:     req.Username,
		Authorities:  req.Authorities,
		SessionIndex: req.SessionIndex,
	})

	if !result.Authenticated {
		c.JSON(http.StatusUnauthorized, dto.NewAuthenticationResponse(result))
		return
	}

	c.JSON(http.StatusCreated, dto.NewAuthenticationResponse(result))
}

// LoginHandler issues a token for a local username/password credential.
// POST /v1/auth/login - no authentication required, rate limited.
// Returns 200 OK with the token, or 401 with a failure result.
func (h *AuthHandler) LoginHandler(c *gin.Context) {
	var req dto.LoginRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	result := h.authUseCase.Login(c.Request.Context(), req.Username, req.Password)

	if !result.Authenticated {
		c.JSON(http.StatusUnauthorized, dto.NewAuthenticationResponse(result))
		return
	}

	c.JSON(http.StatusOK, dto.NewAuthenticationResponse(result))
}

// ValidateTokenHandler reports the three-way validation outcome for a token.
// POST /v1/auth/validate - no authentication required (token introspection).
// Always returns 200 OK; the outcome lives in the response body.
func (h *AuthHandler) ValidateTokenHandler(c *gin.Context) {
	var req dto.TokenRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	outcome := h.authUseCase.ValidateToken(c.Request.Context(), req.Token)
	c.JSON(http.StatusOK, dto.NewValidateTokenResponse(outcome))
}

// RefreshTokenHandler exchanges a valid or expired token for a fresh one.
// POST /v1/auth/refresh - no authentication middleware: an expired token must
// be refreshable, and the use case rejects invalid tokens itself.
// Returns 200 OK with the new token, or 401 for invalid tokens.
func (h *AuthHandler) RefreshTokenHandler(c *gin.Context) {
	var req dto.TokenRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	token, err := h.authUseCase.RefreshToken(c.Request.Context(), req.Token)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.RefreshTokenResponse{Token: token})
}
