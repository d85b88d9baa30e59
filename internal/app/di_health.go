package app

import (
	"fmt"

	healthHTTP "github.com/ngoinfo/copilot-gateway/internal/health/http"
	healthUseCase "github.com/ngoinfo/copilot-gateway/internal/health/usecase"
)

// StatusUseCase returns the configuration status use case.
func (c *Container) StatusUseCase() (healthUseCase.UseCase, error) {
	var err error
	c.statusUseCaseInit.Do(func() {
		c.statusUseCase, err = c.initStatusUseCase()
		if err != nil {
			c.initErrors["statusUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["statusUseCase"]; exists {
		return nil, storedErr
	}
	return c.statusUseCase, nil
}

// StatusHandler returns the HTTP handler for status and usage endpoints.
func (c *Container) StatusHandler() (*healthHTTP.StatusHandler, error) {
	var err error
	c.statusHandlerInit.Do(func() {
		c.statusHandler, err = c.initStatusHandler()
		if err != nil {
			c.initErrors["statusHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["statusHandler"]; exists {
		return nil, storedErr
	}
	return c.statusHandler, nil
}

// initStatusUseCase creates the status use case with all its dependencies.
func (c *Container) initStatusUseCase() (healthUseCase.UseCase, error) {
	settings, err := c.SettingsUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get settings use case for status use case: %w", err)
	}

	dispatcher, err := c.GatewayClient()
	if err != nil {
		return nil, fmt.Errorf("failed to get gateway client for status use case: %w", err)
	}

	return healthUseCase.NewStatusUseCase(settings, dispatcher, c.Logger()), nil
}

// initStatusHandler creates the status HTTP handler.
func (c *Container) initStatusHandler() (*healthHTTP.StatusHandler, error) {
	useCase, err := c.StatusUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get status use case for status handler: %w", err)
	}

	return healthHTTP.NewStatusHandler(useCase, c.Logger()), nil
}
