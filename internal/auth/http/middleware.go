package http

import (
	"crypto/subtle"
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	authService "github.com/allisson/gatekeeper/internal/auth/service"
	authUseCase "github.com/allisson/gatekeeper/internal/auth/usecase"
	apperrors "github.com/allisson/gatekeeper/internal/errors"
	"github.com/allisson/gatekeeper/internal/httputil"
)

// BridgeSecretHeader carries the shared secret the identity provider bridge
// uses to authenticate itself to the token issuance endpoint.
const BridgeSecretHeader = "X-Bridge-Secret"

// AuthenticationMiddleware authenticates requests via a Bearer token in the
// Authorization header.
//
// The middleware validates the token and stores its claims in the request
// context for downstream handlers. Expired and invalid tokens are both
// rejected with 401; the three-way distinction only matters to the refresh
// endpoint, which does not sit behind this middleware.
func AuthenticationMiddleware(tokenService authService.TokenService, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Debug("authentication failed: missing authorization header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		const bearerPrefix = "bearer "
		if len(authHeader) < len(bearerPrefix) ||
			!strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
			logger.Debug("authentication failed: malformed authorization header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		token := authHeader[len(bearerPrefix):]
		if token == "" {
			logger.Debug("authentication failed: empty bearer token")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		outcome := tokenService.Validate(token)
		if !outcome.IsValid() {
			logger.Debug("authentication failed: token not valid",
				slog.String("status", string(outcome.Status)))
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		ctx := WithClaims(c.Request.Context(), outcome.Claims)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// BridgeSecretMiddleware guards the token issuance endpoint. Only the
// identity provider bridge, which holds the shared secret, may submit
// identity assertions.
func BridgeSecretMiddleware(sharedSecret string, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		provided := c.GetHeader(BridgeSecretHeader)
		if sharedSecret == "" ||
			subtle.ConstantTimeCompare([]byte(provided), []byte(sharedSecret)) != 1 {
			logger.Debug("bridge secret check failed")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		c.Next()
	}
}

// PermissionMiddleware requires the authenticated subject to hold the given
// resource:action permission.
//
// MUST be used after AuthenticationMiddleware: the subject comes from the
// claims stored in the request context. The check is fail-closed; any lookup
// problem reads as a denial.
func PermissionMiddleware(
	authzUseCase authUseCase.AuthorizationUseCase,
	resource, action string,
	logger *slog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := GetClaims(c.Request.Context())
		if !ok || claims == nil {
			logger.Debug("permission check failed: no authenticated subject in context")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		if !authzUseCase.HasPermission(c.Request.Context(), claims.Subject, resource, action) {
			logger.Debug("permission check failed: insufficient permissions",
				slog.String("username", claims.Subject),
				slog.String("resource", resource),
				slog.String("action", action))
			httputil.HandleErrorGin(c, apperrors.ErrForbidden, logger)
			c.Abort()
			return
		}

		c.Next()
	}
}
