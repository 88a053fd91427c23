package app

import (
	"context"
	"encoding/base64"
	"fmt"

	"gocloud.dev/secrets"

	authHTTP "github.com/allisson/gatekeeper/internal/auth/http"
	authService "github.com/allisson/gatekeeper/internal/auth/service"
	authUseCase "github.com/allisson/gatekeeper/internal/auth/usecase"

	// Register KMS provider drivers for the signing secret key URI
	_ "gocloud.dev/secrets/awskms"
	_ "gocloud.dev/secrets/azurekeyvault"
	_ "gocloud.dev/secrets/gcpkms"
	_ "gocloud.dev/secrets/hashivault"
	_ "gocloud.dev/secrets/localsecrets"
)

// TokenService returns the token signing and validation service.
func (c *Container) TokenService() (authService.TokenService, error) {
	c.tokenServiceInit.Do(func() {
		service, err := c.initTokenService()
		if err != nil {
			c.initErrors["tokenService"] = err
			return
		}
		c.tokenService = service
	})
	if storedErr, exists := c.initErrors["tokenService"]; exists {
		return nil, storedErr
	}
	return c.tokenService, nil
}

// AuthenticationUseCase returns the authentication orchestrator.
func (c *Container) AuthenticationUseCase() (authUseCase.AuthenticationUseCase, error) {
	c.authenticationUseCaseInit.Do(func() {
		useCase, err := c.initAuthenticationUseCase()
		if err != nil {
			c.initErrors["authenticationUseCase"] = err
			return
		}
		c.authenticationUseCase = useCase
	})
	if storedErr, exists := c.initErrors["authenticationUseCase"]; exists {
		return nil, storedErr
	}
	return c.authenticationUseCase, nil
}

// AuthorizationUseCase returns the authorization decision use case.
func (c *Container) AuthorizationUseCase() (authUseCase.AuthorizationUseCase, error) {
	c.authorizationUseCaseInit.Do(func() {
		useCase, err := c.initAuthorizationUseCase()
		if err != nil {
			c.initErrors["authorizationUseCase"] = err
			return
		}
		c.authorizationUseCase = useCase
	})
	if storedErr, exists := c.initErrors["authorizationUseCase"]; exists {
		return nil, storedErr
	}
	return c.authorizationUseCase, nil
}

// AuthHandler returns the authentication HTTP handler.
func (c *Container) AuthHandler() (*authHTTP.AuthHandler, error) {
	c.authHandlerInit.Do(func() {
		useCase, err := c.AuthenticationUseCase()
		if err != nil {
			c.initErrors["authHandler"] = fmt.Errorf("failed to get authentication use case for auth handler: %w", err)
			return
		}
		c.authHandler = authHTTP.NewAuthHandler(useCase, c.Logger())
	})
	if storedErr, exists := c.initErrors["authHandler"]; exists {
		return nil, storedErr
	}
	return c.authHandler, nil
}

// AuthzHandler returns the authorization HTTP handler.
func (c *Container) AuthzHandler() (*authHTTP.AuthzHandler, error) {
	c.authzHandlerInit.Do(func() {
		useCase, err := c.AuthorizationUseCase()
		if err != nil {
			c.initErrors["authzHandler"] = fmt.Errorf("failed to get authorization use case for authz handler: %w", err)
			return
		}
		c.authzHandler = authHTTP.NewAuthzHandler(useCase, c.Logger())
	})
	if storedErr, exists := c.initErrors["authzHandler"]; exists {
		return nil, storedErr
	}
	return c.authzHandler, nil
}

// initTokenService creates the token service, resolving the signing secret.
// When JWTSigningSecretKeyURI is set, JWTSigningSecret holds the base64 KMS
// ciphertext and is decrypted once at startup; otherwise it is used directly.
func (c *Container) initTokenService() (authService.TokenService, error) {
	secret := []byte(c.config.JWTSigningSecret)

	if c.config.JWTSigningSecretKeyURI != "" {
		decrypted, err := c.decryptSigningSecret()
		if err != nil {
			return nil, err
		}
		secret = decrypted
	}

	service, err := authService.NewTokenService(secret, c.config.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to create token service: %w", err)
	}

	return service, nil
}

// decryptSigningSecret decrypts the configured signing secret through the KMS
// keeper named by the key URI.
func (c *Container) decryptSigningSecret() ([]byte, error) {
	ctx := context.Background()

	keeper, err := secrets.OpenKeeper(ctx, c.config.JWTSigningSecretKeyURI)
	if err != nil {
		return nil, fmt.Errorf("failed to open KMS keeper for signing secret: %w", err)
	}
	defer func() { _ = keeper.Close() }()

	ciphertext, err := base64.StdEncoding.DecodeString(c.config.JWTSigningSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to decode KMS-encrypted signing secret: %w", err)
	}

	plaintext, err := keeper.Decrypt(ctx, ciphertext)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt signing secret: %w", err)
	}

	return plaintext, nil
}

// initAuthenticationUseCase creates the authentication orchestrator with all
// its dependencies.
func (c *Container) initAuthenticationUseCase() (authUseCase.AuthenticationUseCase, error) {
	tokenService, err := c.TokenService()
	if err != nil {
		return nil, fmt.Errorf("failed to get token service for authentication use case: %w", err)
	}

	rbacUseCase, err := c.RBACUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get rbac use case for authentication use case: %w", err)
	}

	store, err := c.AuthorizationStore()
	if err != nil {
		return nil, fmt.Errorf("failed to get authorization store for authentication use case: %w", err)
	}

	router, err := c.EventRouter()
	if err != nil {
		return nil, fmt.Errorf("failed to get event router for authentication use case: %w", err)
	}

	baseUseCase := authUseCase.NewAuthenticationUseCase(
		tokenService,
		rbacUseCase,
		store,
		router,
		c.Logger(),
	)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for authentication use case: %w", err)
		}
		return authUseCase.NewAuthenticationUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initAuthorizationUseCase creates the decision engine and its use case.
func (c *Container) initAuthorizationUseCase() (authUseCase.AuthorizationUseCase, error) {
	store, err := c.AuthorizationStore()
	if err != nil {
		return nil, fmt.Errorf("failed to get authorization store for authorization use case: %w", err)
	}

	router, err := c.EventRouter()
	if err != nil {
		return nil, fmt.Errorf("failed to get event router for authorization use case: %w", err)
	}

	engine := authUseCase.NewAuthorizationEngine(store, c.Logger())
	baseUseCase := authUseCase.NewAuthorizationUseCase(engine, router)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for authorization use case: %w", err)
		}
		return authUseCase.NewAuthorizationUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}
