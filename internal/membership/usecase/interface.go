// Package usecase resolves plan tiers and free-tier eligibility.
package usecase

import (
	"context"

	"github.com/ngoinfo/copilot-gateway/internal/membership/domain"
)

// MembershipRepository looks up a principal's active memberships.
type MembershipRepository interface {
	Active(ctx context.Context, principalID string) ([]domain.Membership, error)
}

// TierSettings supplies the plan-id-to-tier mapping.
type TierSettings interface {
	TierIDs(ctx context.Context) (free, growth, impact []int, err error)
}

// PrincipalMetaRepository reads and writes per-principal metadata.
type PrincipalMetaRepository interface {
	Get(ctx context.Context, principalID, key string) (string, error)
	Set(ctx context.Context, principalID, key, value string) error
}

// TierResolver resolves a principal's plan tier.
type TierResolver interface {
	// Resolve never fails: lookup or configuration errors degrade to FREE.
	Resolve(ctx context.Context, principalID string) domain.Tier
}

// FreeAccess gates free-tier principals to one generation per 24 hours.
type FreeAccess interface {
	HasFreeAccess(ctx context.Context, principalID string) (bool, error)
	MarkFreeUse(ctx context.Context, principalID string) error
}
