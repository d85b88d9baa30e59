package app

import (
	"fmt"

	"github.com/ngoinfo/copilot-gateway/internal/gateway"
	generationHTTP "github.com/ngoinfo/copilot-gateway/internal/generation/http"
	generationUseCase "github.com/ngoinfo/copilot-gateway/internal/generation/usecase"
)

// GatewayClient returns the authenticated backend gateway client.
func (c *Container) GatewayClient() (*gateway.Client, error) {
	var err error
	c.gatewayClientInit.Do(func() {
		c.gatewayClient, err = c.initGatewayClient()
		if err != nil {
			c.initErrors["gatewayClient"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["gatewayClient"]; exists {
		return nil, storedErr
	}
	return c.gatewayClient, nil
}

// GenerateUseCase returns the generation use case.
func (c *Container) GenerateUseCase() (generationUseCase.UseCase, error) {
	var err error
	c.generateUseCaseInit.Do(func() {
		c.generateUseCase, err = c.initGenerateUseCase()
		if err != nil {
			c.initErrors["generateUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["generateUseCase"]; exists {
		return nil, storedErr
	}
	return c.generateUseCase, nil
}

// GenerationHandler returns the HTTP handler for generation endpoints.
func (c *Container) GenerationHandler() (*generationHTTP.GenerationHandler, error) {
	var err error
	c.generationHandlerInit.Do(func() {
		c.generationHandler, err = c.initGenerationHandler()
		if err != nil {
			c.initErrors["generationHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["generationHandler"]; exists {
		return nil, storedErr
	}
	return c.generationHandler, nil
}

// initGatewayClient creates the gateway client with all its dependencies.
func (c *Container) initGatewayClient() (*gateway.Client, error) {
	settings, err := c.SettingsUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get settings use case for gateway client: %w", err)
	}

	tokens, err := c.TokenUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get token use case for gateway client: %w", err)
	}

	return gateway.NewClient(settings, tokens, nil, c.Logger()), nil
}

// initGenerateUseCase creates the generation use case with all its dependencies.
func (c *Container) initGenerateUseCase() (generationUseCase.UseCase, error) {
	tiers, err := c.TierUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get tier use case for generate use case: %w", err)
	}

	limiter, err := c.CooldownLimiter()
	if err != nil {
		return nil, fmt.Errorf("failed to get cooldown limiter for generate use case: %w", err)
	}

	dispatcher, err := c.GatewayClient()
	if err != nil {
		return nil, fmt.Errorf("failed to get gateway client for generate use case: %w", err)
	}

	meta, err := c.PrincipalMetaRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get principal meta repository for generate use case: %w", err)
	}

	settings, err := c.SettingsUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get settings use case for generate use case: %w", err)
	}

	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for generate use case: %w", err)
	}

	baseUseCase := generationUseCase.NewGenerateUseCase(
		tiers,
		limiter,
		dispatcher,
		meta,
		settings,
		txManager,
		c.Clock(),
		c.Logger(),
	)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for generate use case: %w", err)
		}
		return generationUseCase.NewGenerateUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initGenerationHandler creates the generation HTTP handler.
func (c *Container) initGenerationHandler() (*generationHTTP.GenerationHandler, error) {
	useCase, err := c.GenerateUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get generate use case for generation handler: %w", err)
	}

	return generationHTTP.NewGenerationHandler(useCase, c.Logger()), nil
}
