package usecase

import (
	"context"
	"log/slog"
	"net/url"
	"strconv"
	"strings"
	"time"

	validation "github.com/jellydator/validation"

	cryptoService "github.com/ngoinfo/copilot-gateway/internal/crypto/service"
	apperrors "github.com/ngoinfo/copilot-gateway/internal/errors"
	settingsDomain "github.com/ngoinfo/copilot-gateway/internal/settings/domain"
	appvalidation "github.com/ngoinfo/copilot-gateway/internal/validation"
)

// settingsUseCase implements UseCase over a SettingRepository.
//
// The signing secret is decrypted on demand and never cached: the cipher is
// rebuilt from the key source for every encrypt/decrypt call.
type settingsUseCase struct {
	repo        SettingRepository
	keySource   cryptoService.KeySource
	environment string
	logger      *slog.Logger
}

// NewSettingsUseCase creates a new settings use case.
func NewSettingsUseCase(
	repo SettingRepository,
	keySource cryptoService.KeySource,
	environment string,
	logger *slog.Logger,
) UseCase {
	return &settingsUseCase{
		repo:        repo,
		keySource:   keySource,
		environment: environment,
		logger:      logger,
	}
}

// BaseURL returns the backend base URL. Returns ErrConfigMissing when unset.
func (s *settingsUseCase) BaseURL(ctx context.Context) (string, error) {
	value, err := s.stringSetting(ctx, settingsDomain.KeyBaseURL, "")
	if err != nil {
		return "", err
	}
	if value == "" {
		return "", apperrors.Wrap(apperrors.ErrConfigMissing, "api base url not set")
	}
	return strings.TrimRight(value, "/"), nil
}

// SetBaseURL validates and stores the backend base URL.
func (s *settingsUseCase) SetBaseURL(ctx context.Context, raw string) error {
	raw = strings.TrimSpace(raw)
	if err := validation.Validate(raw, validation.Required, appvalidation.NotBlank); err != nil {
		return appvalidation.WrapValidationError(err)
	}

	parsed, err := url.Parse(raw)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return apperrors.Wrap(apperrors.ErrInvalidInput, "base url must be an absolute http(s) url")
	}

	// Production talks to the backend over TLS only
	if s.environment == "production" {
		parsed.Scheme = "https"
	}

	return s.repo.Set(ctx, settingsDomain.KeyBaseURL, strings.TrimRight(parsed.String(), "/"))
}

// Issuer returns the token issuer claim value.
func (s *settingsUseCase) Issuer(ctx context.Context) (string, error) {
	return s.stringSetting(ctx, settingsDomain.KeyIssuer, settingsDomain.DefaultIssuer)
}

// Audience returns the token audience claim value.
func (s *settingsUseCase) Audience(ctx context.Context) (string, error) {
	return s.stringSetting(ctx, settingsDomain.KeyAudience, settingsDomain.DefaultAudience)
}

// TokenTTL returns the API-profile token lifetime.
func (s *settingsUseCase) TokenTTL(ctx context.Context) (time.Duration, error) {
	minutes, err := s.intSetting(
		ctx,
		settingsDomain.KeyTokenTTLMinutes,
		settingsDomain.DefaultTokenTTLMinutes,
		settingsDomain.MinTokenTTLMinutes,
		settingsDomain.MaxTokenTTLMinutes,
	)
	if err != nil {
		return 0, err
	}
	return time.Duration(minutes) * time.Minute, nil
}

// HTTPTimeout returns the outbound call timeout. The default is deliberately
// short (8s) so a slow backend fails fast instead of hanging the caller; a
// longer timeout previously let upstream gateway timeouts cascade.
func (s *settingsUseCase) HTTPTimeout(ctx context.Context) (time.Duration, error) {
	seconds, err := s.intSetting(
		ctx,
		settingsDomain.KeyHTTPTimeoutSeconds,
		settingsDomain.DefaultHTTPTimeoutSecs,
		settingsDomain.MinHTTPTimeoutSecs,
		settingsDomain.MaxHTTPTimeoutSecs,
	)
	if err != nil {
		return 0, err
	}
	return time.Duration(seconds) * time.Second, nil
}

// Cooldown returns the per-principal generation cooldown.
func (s *settingsUseCase) Cooldown(ctx context.Context) (time.Duration, error) {
	seconds, err := s.intSetting(
		ctx,
		settingsDomain.KeyCooldownSeconds,
		settingsDomain.DefaultCooldownSecs,
		settingsDomain.MinCooldownSecs,
		settingsDomain.MaxCooldownSecs,
	)
	if err != nil {
		return 0, err
	}
	return time.Duration(seconds) * time.Second, nil
}

// SetSigningSecret validates, encrypts, and stores the signing secret.
func (s *settingsUseCase) SetSigningSecret(ctx context.Context, plaintext string) error {
	if err := validation.Validate(plaintext, validation.Required, appvalidation.SecretStrength{MinLength: 32}); err != nil {
		return appvalidation.WrapValidationError(err)
	}

	cipher, err := s.cipher(ctx)
	if err != nil {
		return err
	}

	blob, err := cipher.Encrypt(plaintext)
	if err != nil {
		return apperrors.Wrap(err, "failed to encrypt signing secret")
	}

	return s.repo.Set(ctx, settingsDomain.KeySigningSecret, blob)
}

// SigningSecret decrypts and returns the signing secret.
func (s *settingsUseCase) SigningSecret(ctx context.Context) (string, error) {
	blob, err := s.repo.Get(ctx, settingsDomain.KeySigningSecret)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			s.logger.Warn("signing secret not configured")
			return "", apperrors.ErrSecretUnavailable
		}
		return "", err
	}

	cipher, err := s.cipher(ctx)
	if err != nil {
		s.logger.Error("site key unavailable for secret decryption", slog.Any("error", err))
		return "", apperrors.ErrSecretUnavailable
	}

	plaintext, err := cipher.Decrypt(blob)
	if err != nil {
		// Corrupt blob or rotated site key; the secret must be re-entered.
		s.logger.Error("failed to decrypt signing secret", slog.Any("error", err))
		return "", apperrors.ErrSecretUnavailable
	}

	return plaintext, nil
}

// HasSigningSecret reports whether an encrypted secret blob is stored.
func (s *settingsUseCase) HasSigningSecret(ctx context.Context) (bool, error) {
	_, err := s.repo.Get(ctx, settingsDomain.KeySigningSecret)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// TierIDs returns the membership plan ids mapped to each tier.
func (s *settingsUseCase) TierIDs(ctx context.Context) (free, growth, impact []int, err error) {
	freeRaw, err := s.stringSetting(ctx, settingsDomain.KeyTierFreeIDs, settingsDomain.DefaultTierFreeIDs)
	if err != nil {
		return nil, nil, nil, err
	}
	growthRaw, err := s.stringSetting(ctx, settingsDomain.KeyTierGrowthIDs, settingsDomain.DefaultTierGrowthIDs)
	if err != nil {
		return nil, nil, nil, err
	}
	impactRaw, err := s.stringSetting(ctx, settingsDomain.KeyTierImpactIDs, settingsDomain.DefaultTierImpactIDs)
	if err != nil {
		return nil, nil, nil, err
	}

	return parseIDList(freeRaw), parseIDList(growthRaw), parseIDList(impactRaw), nil
}

// LastAttempt returns the diagnostic snapshot of the most recent attempt.
func (s *settingsUseCase) LastAttempt(ctx context.Context) (string, error) {
	return s.stringSetting(ctx, settingsDomain.KeyLastAttempt, "")
}

// SetLastAttempt overwrites the diagnostic snapshot.
func (s *settingsUseCase) SetLastAttempt(ctx context.Context, snapshot string) error {
	return s.repo.Set(ctx, settingsDomain.KeyLastAttempt, snapshot)
}

// cipher builds a fresh cipher from the key source.
func (s *settingsUseCase) cipher(ctx context.Context) (cryptoService.SecretCipher, error) {
	key, err := s.keySource.Key(ctx)
	if err != nil {
		return nil, err
	}
	return cryptoService.NewAESCBC(key)
}

// stringSetting reads a setting, substituting def when absent.
func (s *settingsUseCase) stringSetting(ctx context.Context, name, def string) (string, error) {
	value, err := s.repo.Get(ctx, name)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return def, nil
		}
		return "", err
	}
	return value, nil
}

// intSetting reads an integer setting, substituting def when absent or
// unparsable and clamping the result into [min, max].
func (s *settingsUseCase) intSetting(ctx context.Context, name string, def, min, max int) (int, error) {
	raw, err := s.stringSetting(ctx, name, "")
	if err != nil {
		return 0, err
	}
	if raw == "" {
		return def, nil
	}

	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		s.logger.Warn("ignoring unparsable setting",
			slog.String("name", name),
			slog.String("value", raw),
		)
		return def, nil
	}

	if value < min {
		return min, nil
	}
	if value > max {
		return max, nil
	}
	return value, nil
}

// parseIDList parses a comma-separated id list, skipping blank or
// non-numeric segments the way the settings form accepts free text.
func parseIDList(raw string) []int {
	var ids []int
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.Atoi(part)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}
