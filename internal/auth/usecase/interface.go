// Package usecase mints signed tokens for outbound calls.
package usecase

import (
	"context"
	"time"

	"github.com/ngoinfo/copilot-gateway/internal/auth/domain"
	principalDomain "github.com/ngoinfo/copilot-gateway/internal/principal/domain"
)

// TokenSettings supplies the claim configuration and signing secret.
type TokenSettings interface {
	Issuer(ctx context.Context) (string, error)
	Audience(ctx context.Context) (string, error)
	TokenTTL(ctx context.Context) (time.Duration, error)
	SigningSecret(ctx context.Context) (string, error)
}

// TokenIssuer mints signed tokens for a principal.
type TokenIssuer interface {
	Mint(ctx context.Context, principal principalDomain.Principal, profile domain.Profile) (domain.Token, error)
}
