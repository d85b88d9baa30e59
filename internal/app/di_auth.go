package app

import (
	"fmt"

	authService "github.com/ngoinfo/copilot-gateway/internal/auth/service"
	authUseCase "github.com/ngoinfo/copilot-gateway/internal/auth/usecase"
)

// TokenSigner returns the HS256 token signer.
func (c *Container) TokenSigner() authService.TokenSigner {
	c.tokenSignerInit.Do(func() {
		c.tokenSigner = authService.NewHS256Signer()
	})
	return c.tokenSigner
}

// TokenUseCase returns the token minting use case.
func (c *Container) TokenUseCase() (authUseCase.TokenIssuer, error) {
	var err error
	c.tokenUseCaseInit.Do(func() {
		c.tokenUseCase, err = c.initTokenUseCase()
		if err != nil {
			c.initErrors["tokenUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["tokenUseCase"]; exists {
		return nil, storedErr
	}
	return c.tokenUseCase, nil
}

// initTokenUseCase creates the token use case with all its dependencies.
func (c *Container) initTokenUseCase() (authUseCase.TokenIssuer, error) {
	settings, err := c.SettingsUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get settings use case for token use case: %w", err)
	}

	tiers, err := c.TierUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get tier use case for token use case: %w", err)
	}

	return authUseCase.NewTokenUseCase(settings, tiers, c.TokenSigner(), c.Clock(), c.Logger()), nil
}
