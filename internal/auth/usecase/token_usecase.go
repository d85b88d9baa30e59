package usecase

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/ngoinfo/copilot-gateway/internal/auth/domain"
	"github.com/ngoinfo/copilot-gateway/internal/auth/service"
	"github.com/ngoinfo/copilot-gateway/internal/clock"
	apperrors "github.com/ngoinfo/copilot-gateway/internal/errors"
	membershipUseCase "github.com/ngoinfo/copilot-gateway/internal/membership/usecase"
	principalDomain "github.com/ngoinfo/copilot-gateway/internal/principal/domain"
)

// tokenUseCase implements TokenIssuer.
type tokenUseCase struct {
	settings TokenSettings
	tiers    membershipUseCase.TierResolver
	signer   service.TokenSigner
	clock    clock.Clock
	logger   *slog.Logger
}

// NewTokenUseCase creates a new token use case.
func NewTokenUseCase(
	settings TokenSettings,
	tiers membershipUseCase.TierResolver,
	signer service.TokenSigner,
	clk clock.Clock,
	logger *slog.Logger,
) TokenIssuer {
	return &tokenUseCase{
		settings: settings,
		tiers:    tiers,
		signer:   signer,
		clock:    clk,
		logger:   logger,
	}
}

// Mint builds the claim set for profile and signs it with the stored secret.
// Returns ErrSecretUnavailable when no usable signing secret is configured.
func (t *tokenUseCase) Mint(
	ctx context.Context,
	principal principalDomain.Principal,
	profile domain.Profile,
) (domain.Token, error) {
	if principal.ID == "" {
		return domain.Token{}, apperrors.Wrap(apperrors.ErrUnauthorized, "principal required")
	}

	secret, err := t.settings.SigningSecret(ctx)
	if err != nil {
		return domain.Token{}, err
	}

	issuer, err := t.settings.Issuer(ctx)
	if err != nil {
		return domain.Token{}, err
	}
	audience, err := t.settings.Audience(ctx)
	if err != nil {
		return domain.Token{}, err
	}

	input := domain.ClaimInput{
		Subject:  principal.ID,
		Email:    principal.Email,
		Issuer:   issuer,
		Audience: audience,
		IssuedAt: t.clock.Now(),
	}

	if profile == domain.ProfileAPI {
		ttl, err := t.settings.TokenTTL(ctx)
		if err != nil {
			return domain.Token{}, err
		}
		input.TTL = ttl
		input.Tier = t.tiers.Resolve(ctx, principal.ID)
		input.Nonce = uuid.New().String()
	}

	signed, err := t.signer.Sign(domain.BuildClaims(profile, input), secret)
	if err != nil {
		return domain.Token{}, err
	}

	t.logger.Info("token minted",
		slog.String("principal_id", principal.ID),
		slog.String("profile", string(profile)),
		slog.String("token_prefix", tokenPrefix(signed)),
		slog.Int("token_length", len(signed)),
	)

	return domain.Token{Value: signed, ExpiresAt: domain.Expiry(profile, input)}, nil
}

// tokenPrefix returns the loggable head of a token. Full tokens never reach
// the logs.
func tokenPrefix(token string) string {
	const visible = 12
	if len(token) <= visible {
		return token
	}
	return token[:visible]
}
