package app

import (
	"context"
	"fmt"

	authService "github.com/ngoinfo/copilot-gateway/internal/auth/service"
	cryptoService "github.com/ngoinfo/copilot-gateway/internal/crypto/service"
	settingsRepository "github.com/ngoinfo/copilot-gateway/internal/settings/repository"
	settingsUseCase "github.com/ngoinfo/copilot-gateway/internal/settings/usecase"
)

// KMSService returns the KMS service for unwrapping the site key.
func (c *Container) KMSService() cryptoService.KMSService {
	c.kmsServiceInit.Do(func() {
		c.kmsService = cryptoService.NewKMSService()
	})
	return c.kmsService
}

// KeySource returns the source of the secret-store encryption key.
func (c *Container) KeySource() (cryptoService.KeySource, error) {
	var err error
	c.keySourceInit.Do(func() {
		c.keySource, err = c.initKeySource()
		if err != nil {
			c.initErrors["keySource"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["keySource"]; exists {
		return nil, storedErr
	}
	return c.keySource, nil
}

// SettingRepository returns the settings repository instance.
func (c *Container) SettingRepository() (settingsUseCase.SettingRepository, error) {
	var err error
	c.settingRepoInit.Do(func() {
		c.settingRepo, err = c.initSettingRepository()
		if err != nil {
			c.initErrors["settingRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["settingRepo"]; exists {
		return nil, storedErr
	}
	return c.settingRepo, nil
}

// SettingsUseCase returns the settings use case.
func (c *Container) SettingsUseCase() (settingsUseCase.UseCase, error) {
	var err error
	c.settingsUCInit.Do(func() {
		c.settingsUC, err = c.initSettingsUseCase()
		if err != nil {
			c.initErrors["settingsUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["settingsUseCase"]; exists {
		return nil, storedErr
	}
	return c.settingsUC, nil
}

// SecretGenerator returns the signing secret generator.
func (c *Container) SecretGenerator() authService.SecretGenerator {
	c.secretGeneratorInit.Do(func() {
		c.secretGenerator = authService.NewRandomSecretGenerator()
	})
	return c.secretGenerator
}

// initKeySource selects the key source based on configuration. A KMS-wrapped
// site key takes precedence over the plain one.
func (c *Container) initKeySource() (cryptoService.KeySource, error) {
	if c.config.KMSKeyURI != "" && c.config.SiteKeyWrapped != "" {
		keeper, err := c.KMSService().OpenKeeper(context.Background(), c.config.KMSKeyURI)
		if err != nil {
			return nil, fmt.Errorf("failed to open KMS keeper for key source: %w", err)
		}
		return cryptoService.NewKMSKeySource(keeper, c.config.SiteKeyWrapped), nil
	}

	return cryptoService.NewSiteKeySource(c.config.SiteKey), nil
}

// initSettingRepository creates the settings repository based on the database driver.
func (c *Container) initSettingRepository() (settingsUseCase.SettingRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for setting repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return settingsRepository.NewPostgreSQLSettingRepository(db), nil
	case "mysql":
		return settingsRepository.NewMySQLSettingRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initSettingsUseCase creates the settings use case with all its dependencies.
func (c *Container) initSettingsUseCase() (settingsUseCase.UseCase, error) {
	repo, err := c.SettingRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get setting repository for settings use case: %w", err)
	}

	keySource, err := c.KeySource()
	if err != nil {
		return nil, fmt.Errorf("failed to get key source for settings use case: %w", err)
	}

	return settingsUseCase.NewSettingsUseCase(repo, keySource, c.config.Environment, c.Logger()), nil
}
