package usecase

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngoinfo/copilot-gateway/internal/auth/domain"
	"github.com/ngoinfo/copilot-gateway/internal/auth/service"
	apperrors "github.com/ngoinfo/copilot-gateway/internal/errors"
	membershipDomain "github.com/ngoinfo/copilot-gateway/internal/membership/domain"
	principalDomain "github.com/ngoinfo/copilot-gateway/internal/principal/domain"
	"github.com/ngoinfo/copilot-gateway/internal/testutil"
)

type staticTokenSettings struct {
	issuer    string
	audience  string
	ttl       time.Duration
	secret    string
	secretErr error
}

func (s staticTokenSettings) Issuer(context.Context) (string, error)   { return s.issuer, nil }
func (s staticTokenSettings) Audience(context.Context) (string, error) { return s.audience, nil }
func (s staticTokenSettings) TokenTTL(context.Context) (time.Duration, error) {
	return s.ttl, nil
}
func (s staticTokenSettings) SigningSecret(context.Context) (string, error) {
	return s.secret, s.secretErr
}

type staticTierResolver struct {
	tier membershipDomain.Tier
}

func (s staticTierResolver) Resolve(context.Context, string) membershipDomain.Tier {
	return s.tier
}

func testTokenSettings() staticTokenSettings {
	return staticTokenSettings{
		issuer:   "ngoinfo-wp",
		audience: "ngoinfo-copilot",
		ttl:      15 * time.Minute,
		secret:   "Av3ry$trongSecretWith32Characters!",
	}
}

func TestTokenUseCase_Mint(t *testing.T) {
	ctx := context.Background()
	logger := slog.Default()
	signer := service.NewHS256Signer()
	principal := principalDomain.Principal{ID: "42", Email: "user@example.org"}
	// Verify validates exp against the wall clock, so the fake clock starts now
	now := time.Now().UTC().Truncate(time.Second)

	t.Run("Success_GenerationProfile", func(t *testing.T) {
		settings := testTokenSettings()
		clk := testutil.NewFakeClock(now)
		uc := NewTokenUseCase(settings, staticTierResolver{tier: membershipDomain.TierGrowth}, signer, clk, logger)

		token, err := uc.Mint(ctx, principal, domain.ProfileGeneration)
		require.NoError(t, err)
		assert.Equal(t, now.Add(10*time.Minute), token.ExpiresAt)

		claims, err := signer.Verify(token.Value, settings.secret)
		require.NoError(t, err)
		assert.Equal(t, "42", claims["sub"])
		assert.Equal(t, "user@example.org", claims["email"])
		assert.Equal(t, "grantpilot", claims["plan"])
		assert.Equal(t, "ngoinfo-wp", claims["iss"])
		assert.Equal(t, "ngoinfo-copilot", claims["aud"])
		assert.Equal(t, float64(now.Unix()), claims["iat"])
		assert.Equal(t, float64(now.Add(10*time.Minute).Unix()), claims["exp"])
		assert.NotContains(t, claims, "nonce")
		assert.NotContains(t, claims, "plan_tier")
	})

	t.Run("Success_APIProfile", func(t *testing.T) {
		settings := testTokenSettings()
		clk := testutil.NewFakeClock(now)
		uc := NewTokenUseCase(settings, staticTierResolver{tier: membershipDomain.TierImpact}, signer, clk, logger)

		token, err := uc.Mint(ctx, principal, domain.ProfileAPI)
		require.NoError(t, err)
		assert.Equal(t, now.Add(15*time.Minute), token.ExpiresAt)

		claims, err := signer.Verify(token.Value, settings.secret)
		require.NoError(t, err)
		assert.Equal(t, "IMPACT", claims["plan_tier"])
		assert.NotEmpty(t, claims["nonce"])
		assert.Equal(t, float64(now.Add(15*time.Minute).Unix()), claims["exp"])
		assert.NotContains(t, claims, "plan")
	})

	t.Run("Success_APITokensCarryFreshNonces", func(t *testing.T) {
		clk := testutil.NewFakeClock(now)
		uc := NewTokenUseCase(testTokenSettings(), staticTierResolver{tier: membershipDomain.TierFree}, signer, clk, logger)

		first, err := uc.Mint(ctx, principal, domain.ProfileAPI)
		require.NoError(t, err)
		second, err := uc.Mint(ctx, principal, domain.ProfileAPI)
		require.NoError(t, err)
		assert.NotEqual(t, first.Value, second.Value)
	})

	t.Run("Error_SecretUnavailable", func(t *testing.T) {
		settings := testTokenSettings()
		settings.secretErr = apperrors.ErrSecretUnavailable
		clk := testutil.NewFakeClock(now)
		uc := NewTokenUseCase(settings, staticTierResolver{tier: membershipDomain.TierFree}, signer, clk, logger)

		_, err := uc.Mint(ctx, principal, domain.ProfileGeneration)
		assert.ErrorIs(t, err, apperrors.ErrSecretUnavailable)
	})

	t.Run("Error_MissingPrincipal", func(t *testing.T) {
		clk := testutil.NewFakeClock(now)
		uc := NewTokenUseCase(testTokenSettings(), staticTierResolver{tier: membershipDomain.TierFree}, signer, clk, logger)

		_, err := uc.Mint(ctx, principalDomain.Principal{}, domain.ProfileGeneration)
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})
}
