package app

import (
	"fmt"

	membershipRepository "github.com/ngoinfo/copilot-gateway/internal/membership/repository"
	membershipUseCase "github.com/ngoinfo/copilot-gateway/internal/membership/usecase"
	principalRepository "github.com/ngoinfo/copilot-gateway/internal/principal/repository"
	"github.com/ngoinfo/copilot-gateway/internal/ratelimit"
)

// PrincipalMetaRepository returns the per-principal metadata repository.
func (c *Container) PrincipalMetaRepository() (membershipUseCase.PrincipalMetaRepository, error) {
	var err error
	c.principalMetaRepoInit.Do(func() {
		c.principalMetaRepo, err = c.initPrincipalMetaRepository()
		if err != nil {
			c.initErrors["principalMetaRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["principalMetaRepo"]; exists {
		return nil, storedErr
	}
	return c.principalMetaRepo, nil
}

// MembershipRepository returns the membership repository instance.
func (c *Container) MembershipRepository() (membershipUseCase.MembershipRepository, error) {
	var err error
	c.membershipRepoInit.Do(func() {
		c.membershipRepo, err = c.initMembershipRepository()
		if err != nil {
			c.initErrors["membershipRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["membershipRepo"]; exists {
		return nil, storedErr
	}
	return c.membershipRepo, nil
}

// TierUseCase returns the tier use case, which resolves plan tiers and gates
// free-tier usage.
func (c *Container) TierUseCase() (tierService, error) {
	var err error
	c.tierUseCaseInit.Do(func() {
		c.tierUseCase, err = c.initTierUseCase()
		if err != nil {
			c.initErrors["tierUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["tierUseCase"]; exists {
		return nil, storedErr
	}
	return c.tierUseCase, nil
}

// CooldownLimiter returns the per-principal generation cooldown limiter.
func (c *Container) CooldownLimiter() (ratelimit.Limiter, error) {
	var err error
	c.cooldownLimiterInit.Do(func() {
		c.cooldownLimiter, err = c.initCooldownLimiter()
		if err != nil {
			c.initErrors["cooldownLimiter"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["cooldownLimiter"]; exists {
		return nil, storedErr
	}
	return c.cooldownLimiter, nil
}

// initPrincipalMetaRepository creates the metadata repository based on the database driver.
func (c *Container) initPrincipalMetaRepository() (membershipUseCase.PrincipalMetaRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for principal meta repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return principalRepository.NewPostgreSQLMetaRepository(db), nil
	case "mysql":
		return principalRepository.NewMySQLMetaRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initMembershipRepository creates the membership repository based on the database driver.
func (c *Container) initMembershipRepository() (membershipUseCase.MembershipRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for membership repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return membershipRepository.NewPostgreSQLMembershipRepository(db), nil
	case "mysql":
		return membershipRepository.NewMySQLMembershipRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initTierUseCase creates the tier use case with all its dependencies.
func (c *Container) initTierUseCase() (tierService, error) {
	memberships, err := c.MembershipRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get membership repository for tier use case: %w", err)
	}

	settings, err := c.SettingsUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get settings use case for tier use case: %w", err)
	}

	meta, err := c.PrincipalMetaRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get principal meta repository for tier use case: %w", err)
	}

	return membershipUseCase.NewTierUseCase(memberships, settings, meta, c.Clock(), c.Logger()), nil
}

// initCooldownLimiter creates the cooldown limiter with all its dependencies.
func (c *Container) initCooldownLimiter() (ratelimit.Limiter, error) {
	settings, err := c.SettingsUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get settings use case for cooldown limiter: %w", err)
	}

	meta, err := c.PrincipalMetaRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get principal meta repository for cooldown limiter: %w", err)
	}

	return ratelimit.NewCooldownLimiter(settings, meta, c.Clock(), c.Logger()), nil
}
