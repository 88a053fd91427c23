package app

import (
	"fmt"

	authUseCase "github.com/allisson/gatekeeper/internal/auth/usecase"
	rbacHTTP "github.com/allisson/gatekeeper/internal/rbac/http"
	rbacRepository "github.com/allisson/gatekeeper/internal/rbac/repository"
	rbacUsecase "github.com/allisson/gatekeeper/internal/rbac/usecase"
)

// RBACRepository returns the access-control repository instance.
func (c *Container) RBACRepository() (rbacUsecase.RBACRepository, error) {
	store, err := c.rbacStore()
	if err != nil {
		return nil, err
	}
	return store, nil
}

// AuthorizationStore returns the read-side store the decision engine
// consumes. Both SQL repositories apply the active-flag filters in their
// queries, so the engine never sees grants from deactivated entities.
func (c *Container) AuthorizationStore() (authUseCase.RoleAndPermissionStore, error) {
	store, err := c.rbacStore()
	if err != nil {
		return nil, err
	}
	return store, nil
}

// rbacStore initializes the driver-specific repository on first access.
func (c *Container) rbacStore() (rbacStore, error) {
	c.rbacRepoInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["rbacRepo"] = fmt.Errorf("failed to get database for rbac repository: %w", err)
			return
		}

		switch c.config.DBDriver {
		case "mysql":
			c.rbacRepo = rbacRepository.NewMySQLRBACRepository(db)
		case "postgres":
			c.rbacRepo = rbacRepository.NewPostgreSQLRBACRepository(db)
		default:
			c.initErrors["rbacRepo"] = fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
	if storedErr, exists := c.initErrors["rbacRepo"]; exists {
		return nil, storedErr
	}
	return c.rbacRepo, nil
}

// RBACUseCase returns the access-control management use case.
func (c *Container) RBACUseCase() (rbacUsecase.RBACUseCase, error) {
	c.rbacUseCaseInit.Do(func() {
		useCase, err := c.initRBACUseCase()
		if err != nil {
			c.initErrors["rbacUseCase"] = err
			return
		}
		c.rbacUseCase = useCase
	})
	if storedErr, exists := c.initErrors["rbacUseCase"]; exists {
		return nil, storedErr
	}
	return c.rbacUseCase, nil
}

// RBACHandler returns the access-control management HTTP handler.
func (c *Container) RBACHandler() (*rbacHTTP.RBACHandler, error) {
	c.rbacHandlerInit.Do(func() {
		useCase, err := c.RBACUseCase()
		if err != nil {
			c.initErrors["rbacHandler"] = fmt.Errorf("failed to get rbac use case for rbac handler: %w", err)
			return
		}
		c.rbacHandler = rbacHTTP.NewRBACHandler(useCase, c.Logger())
	})
	if storedErr, exists := c.initErrors["rbacHandler"]; exists {
		return nil, storedErr
	}
	return c.rbacHandler, nil
}

// initRBACUseCase creates the rbac use case with all its dependencies.
func (c *Container) initRBACUseCase() (rbacUsecase.RBACUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for rbac use case: %w", err)
	}

	repo, err := c.RBACRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get rbac repository for rbac use case: %w", err)
	}

	router, err := c.EventRouter()
	if err != nil {
		return nil, fmt.Errorf("failed to get event router for rbac use case: %w", err)
	}

	baseUseCase, err := rbacUsecase.NewRBACUseCase(txManager, repo, router)
	if err != nil {
		return nil, fmt.Errorf("failed to create rbac use case: %w", err)
	}

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for rbac use case: %w", err)
		}
		return rbacUsecase.NewRBACUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}
