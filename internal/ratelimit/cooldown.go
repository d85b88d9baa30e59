// Package ratelimit enforces a per-principal cooldown between generations.
//
// The cooldown is timestamp-based rather than token-bucket-based: only a
// successful dispatch marks the principal, so failed attempts never consume
// the window.
package ratelimit

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/ngoinfo/copilot-gateway/internal/clock"
	apperrors "github.com/ngoinfo/copilot-gateway/internal/errors"
	principalDomain "github.com/ngoinfo/copilot-gateway/internal/principal/domain"
)

// CooldownSettings supplies the configured cooldown duration.
type CooldownSettings interface {
	Cooldown(ctx context.Context) (time.Duration, error)
}

// PrincipalMetaRepository reads and writes per-principal metadata.
type PrincipalMetaRepository interface {
	Get(ctx context.Context, principalID, key string) (string, error)
	Set(ctx context.Context, principalID, key, value string) error
}

// Limiter gates generation attempts per principal.
type Limiter interface {
	// Allow reports whether the principal may generate now. When blocked,
	// retryAfter is the remaining wait.
	Allow(ctx context.Context, principalID string) (allowed bool, retryAfter time.Duration, err error)
	// Mark records a successful dispatch, starting a new cooldown window.
	Mark(ctx context.Context, principalID string) error
}

// CooldownLimiter implements Limiter over the principal metadata store.
type CooldownLimiter struct {
	settings CooldownSettings
	meta     PrincipalMetaRepository
	clock    clock.Clock
	logger   *slog.Logger
}

// NewCooldownLimiter creates a new CooldownLimiter.
func NewCooldownLimiter(
	settings CooldownSettings,
	meta PrincipalMetaRepository,
	clk clock.Clock,
	logger *slog.Logger,
) *CooldownLimiter {
	return &CooldownLimiter{
		settings: settings,
		meta:     meta,
		clock:    clk,
		logger:   logger,
	}
}

// Allow reports whether the principal's cooldown window has elapsed.
// A principal with no recorded dispatch is allowed.
func (c *CooldownLimiter) Allow(ctx context.Context, principalID string) (bool, time.Duration, error) {
	cooldown, err := c.settings.Cooldown(ctx)
	if err != nil {
		return false, 0, err
	}

	raw, err := c.meta.Get(ctx, principalID, principalDomain.MetaLastGenerationAt)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return true, 0, nil
		}
		return false, 0, err
	}

	lastAt, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		// A corrupt timestamp never blocks the principal
		c.logger.Warn("unparsable cooldown timestamp",
			slog.String("principal_id", principalID),
			slog.String("value", raw),
		)
		return true, 0, nil
	}

	elapsed := c.clock.Now().Sub(time.Unix(lastAt, 0))
	if elapsed >= cooldown {
		return true, 0, nil
	}
	return false, cooldown - elapsed, nil
}

// Mark records the current time as the principal's last dispatch.
func (c *CooldownLimiter) Mark(ctx context.Context, principalID string) error {
	now := strconv.FormatInt(c.clock.Now().Unix(), 10)
	return c.meta.Set(ctx, principalID, principalDomain.MetaLastGenerationAt, now)
}
