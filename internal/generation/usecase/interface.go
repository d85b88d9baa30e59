// Package usecase orchestrates proposal generation: eligibility gates,
// dispatch to the backend, and bookkeeping after the outcome.
package usecase

import (
	"context"

	authDomain "github.com/ngoinfo/copilot-gateway/internal/auth/domain"
	"github.com/ngoinfo/copilot-gateway/internal/gateway"
	"github.com/ngoinfo/copilot-gateway/internal/generation/domain"
	membershipDomain "github.com/ngoinfo/copilot-gateway/internal/membership/domain"
	principalDomain "github.com/ngoinfo/copilot-gateway/internal/principal/domain"
)

// Dispatcher performs authenticated calls against the backend.
type Dispatcher interface {
	Post(
		ctx context.Context,
		path string,
		payload any,
		principal principalDomain.Principal,
		profile authDomain.Profile,
	) (gateway.Envelope, error)
}

// TierService resolves tiers and gates free-tier usage.
type TierService interface {
	Resolve(ctx context.Context, principalID string) membershipDomain.Tier
	HasFreeAccess(ctx context.Context, principalID string) (bool, error)
	MarkFreeUse(ctx context.Context, principalID string) error
}

// AttemptSettings stores the diagnostic snapshot of the latest dispatch.
type AttemptSettings interface {
	LastAttempt(ctx context.Context) (string, error)
	SetLastAttempt(ctx context.Context, snapshot string) error
}

// PrincipalMetaRepository reads and writes per-principal metadata.
type PrincipalMetaRepository interface {
	Get(ctx context.Context, principalID, key string) (string, error)
	Set(ctx context.Context, principalID, key, value string) error
}

// UseCase is the generation orchestrator.
type UseCase interface {
	// Generate runs the full gate sequence and dispatches one attempt.
	// Refusals and failures come back as *domain.Failure.
	Generate(ctx context.Context, principal principalDomain.Principal, input domain.GenerateInput) (domain.Result, error)

	// History returns the principal's stored generations, newest first.
	History(ctx context.Context, principalID string) ([]domain.HistoryEntry, error)
}
