package usecase

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/ngoinfo/copilot-gateway/internal/clock"
	apperrors "github.com/ngoinfo/copilot-gateway/internal/errors"
	"github.com/ngoinfo/copilot-gateway/internal/membership/domain"
	principalDomain "github.com/ngoinfo/copilot-gateway/internal/principal/domain"
)

// freeAccessWindow is how long a free-tier principal waits between generations.
const freeAccessWindow = 24 * time.Hour

// tierUseCase implements TierResolver and FreeAccess.
type tierUseCase struct {
	memberships MembershipRepository
	settings    TierSettings
	meta        PrincipalMetaRepository
	clock       clock.Clock
	logger      *slog.Logger
}

// NewTierUseCase creates a new tier use case.
func NewTierUseCase(
	memberships MembershipRepository,
	settings TierSettings,
	meta PrincipalMetaRepository,
	clk clock.Clock,
	logger *slog.Logger,
) interface {
	TierResolver
	FreeAccess
} {
	return &tierUseCase{
		memberships: memberships,
		settings:    settings,
		meta:        meta,
		clock:       clk,
		logger:      logger,
	}
}

// Resolve maps the principal's active memberships to a tier. Any lookup or
// configuration failure degrades to FREE rather than blocking token minting.
func (t *tierUseCase) Resolve(ctx context.Context, principalID string) domain.Tier {
	free, growth, impact, err := t.settings.TierIDs(ctx)
	if err != nil {
		t.logger.Warn("tier mapping unavailable, defaulting to free",
			slog.String("principal_id", principalID),
			slog.Any("error", err),
		)
		return domain.TierFree
	}

	active, err := t.memberships.Active(ctx, principalID)
	if err != nil {
		t.logger.Warn("membership lookup failed, defaulting to free",
			slog.String("principal_id", principalID),
			slog.Any("error", err),
		)
		return domain.TierFree
	}

	mapping := domain.TierMapping{Free: free, Growth: growth, Impact: impact}
	return mapping.Resolve(active)
}

// HasFreeAccess reports whether a free-tier principal may generate now.
// A principal with no recorded free use is eligible.
func (t *tierUseCase) HasFreeAccess(ctx context.Context, principalID string) (bool, error) {
	raw, err := t.meta.Get(ctx, principalID, principalDomain.MetaFreeUseAt)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return true, nil
		}
		return false, err
	}

	lastUse, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		// Unreadable timestamp should not lock the principal out forever
		t.logger.Warn("unparsable free-use timestamp",
			slog.String("principal_id", principalID),
			slog.String("value", raw),
		)
		return true, nil
	}

	elapsed := t.clock.Now().Sub(time.Unix(lastUse, 0))
	return elapsed >= freeAccessWindow, nil
}

// MarkFreeUse records the current time as the principal's last free use.
func (t *tierUseCase) MarkFreeUse(ctx context.Context, principalID string) error {
	now := strconv.FormatInt(t.clock.Now().Unix(), 10)
	return t.meta.Set(ctx, principalID, principalDomain.MetaFreeUseAt, now)
}
