// Package http provides the API server: routing, shared middleware and the
// health endpoints.
package http

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authHTTP "github.com/allisson/gatekeeper/internal/auth/http"
	authService "github.com/allisson/gatekeeper/internal/auth/service"
	authUseCase "github.com/allisson/gatekeeper/internal/auth/usecase"
	"github.com/allisson/gatekeeper/internal/config"
	"github.com/allisson/gatekeeper/internal/metrics"
	rbacHTTP "github.com/allisson/gatekeeper/internal/rbac/http"
)

// Server represents the API HTTP server.
type Server struct {
	db     *sql.DB
	router *gin.Engine
	server *http.Server
	logger *slog.Logger

	// lifecycleCtx is canceled on Shutdown so middleware background
	// goroutines stop with the server.
	lifecycleCtx    context.Context
	cancelLifecycle context.CancelFunc
}

// NewServer creates a new API server. The router is assembled separately via
// SetupRouter so tests can install a minimal one.
func NewServer(db *sql.DB, host string, port int, logger *slog.Logger) *Server {
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		db:     db,
		logger: logger,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		lifecycleCtx:    ctx,
		cancelLifecycle: cancel,
	}
}

// RouterConfig carries the handlers and services the router wires together.
type RouterConfig struct {
	Config          *config.Config
	MetricsProvider *metrics.Provider
	TokenService    authService.TokenService
	AuthzUseCase    authUseCase.AuthorizationUseCase
	AuthHandler     *authHTTP.AuthHandler
	AuthzHandler    *authHTTP.AuthzHandler
	RBACHandler     *rbacHTTP.RBACHandler
}

// SetupRouter assembles the gin router: shared middleware first, then the
// public health endpoints, then the versioned API groups with their guards.
func (s *Server) SetupRouter(rc RouterConfig) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if rc.MetricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(
			rc.MetricsProvider.MeterProvider(),
			rc.Config.MetricsNamespace,
		))
	}

	if corsMiddleware := createCORSMiddleware(
		rc.Config.CORSEnabled,
		rc.Config.CORSAllowOrigins,
		s.logger,
	); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	// Unauthenticated token lifecycle endpoints, IP rate limited. The token
	// issuance endpoint is additionally guarded by the bridge shared secret.
	authGroup := router.Group("/v1/auth")
	if rc.Config.RateLimitTokenEnabled {
		authGroup.Use(authHTTP.RateLimitMiddleware(
			s.lifecycleCtx,
			rc.Config.RateLimitTokenRequestsPerSec,
			rc.Config.RateLimitTokenBurst,
			s.logger,
		))
	}
	authGroup.POST("/token",
		authHTTP.BridgeSecretMiddleware(rc.Config.BridgeSharedSecret, s.logger),
		rc.AuthHandler.BridgeTokenHandler,
	)
	authGroup.POST("/login", rc.AuthHandler.LoginHandler)
	authGroup.POST("/validate", rc.AuthHandler.ValidateTokenHandler)
	authGroup.POST("/refresh", rc.AuthHandler.RefreshTokenHandler)

	// Authorization decisions require an authenticated caller.
	authzGroup := router.Group("/v1/authz")
	authzGroup.Use(authHTTP.AuthenticationMiddleware(rc.TokenService, s.logger))
	if rc.Config.RateLimitEnabled {
		authzGroup.Use(authHTTP.RateLimitMiddleware(
			s.lifecycleCtx,
			rc.Config.RateLimitRequestsPerSec,
			rc.Config.RateLimitBurst,
			s.logger,
		))
	}
	authzGroup.POST("/check", rc.AuthzHandler.CheckHandler)
	authzGroup.GET("/users/:username/permissions", rc.AuthzHandler.UserPermissionsHandler)

	// Access-control management, split into read and write permissions.
	rbacGroup := router.Group("/v1/rbac")
	rbacGroup.Use(authHTTP.AuthenticationMiddleware(rc.TokenService, s.logger))

	rbacRead := authHTTP.PermissionMiddleware(rc.AuthzUseCase, "rbac", "read", s.logger)
	rbacWrite := authHTTP.PermissionMiddleware(rc.AuthzUseCase, "rbac", "write", s.logger)

	rbacGroup.GET("/users/:username", rbacRead, rc.RBACHandler.GetUserHandler)
	rbacGroup.GET("/roles", rbacRead, rc.RBACHandler.ListRolesHandler)

	rbacGroup.POST("/users", rbacWrite, rc.RBACHandler.CreateUserHandler)
	rbacGroup.PUT("/users/:username", rbacWrite, rc.RBACHandler.UpdateUserHandler)
	rbacGroup.DELETE("/users/:username", rbacWrite, rc.RBACHandler.DeactivateUserHandler)
	rbacGroup.PUT("/users/:username/password", rbacWrite, rc.RBACHandler.SetPasswordHandler)
	rbacGroup.POST("/users/:username/roles", rbacWrite, rc.RBACHandler.AssignRoleHandler)
	rbacGroup.DELETE("/users/:username/roles/:role", rbacWrite, rc.RBACHandler.RevokeRoleHandler)
	rbacGroup.POST("/roles", rbacWrite, rc.RBACHandler.CreateRoleHandler)
	rbacGroup.DELETE("/roles/:role", rbacWrite, rc.RBACHandler.DeactivateRoleHandler)
	rbacGroup.POST("/roles/:role/permissions", rbacWrite, rc.RBACHandler.GrantPermissionHandler)
	rbacGroup.DELETE(
		"/roles/:role/permissions/:resource/:action",
		rbacWrite,
		rc.RBACHandler.RevokePermissionHandler,
	)
	rbacGroup.POST("/permissions", rbacWrite, rc.RBACHandler.CreatePermissionHandler)

	s.router = router
}

// GetRouter returns the assembled router, for tests that serve it directly.
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}

// healthHandler reports process liveness.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports readiness to serve traffic. The database is the
// only hard dependency; event sinks are fire-and-forget and do not gate
// readiness.
func (s *Server) readinessHandler(c *gin.Context) {
	components := gin.H{}
	ready := true

	if s.db == nil {
		components["database"] = "error"
		ready = false
	} else {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := s.db.PingContext(ctx); err != nil {
			components["database"] = "error"
			ready = false
		} else {
			components["database"] = "ok"
		}
	}

	if !ready {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": components,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": components,
	})
}

// Start starts the API server.
func (s *Server) Start(ctx context.Context) error {
	s.server.Handler = s.router

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the API server and stops middleware
// background goroutines.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	s.cancelLifecycle()
	return s.server.Shutdown(ctx)
}
