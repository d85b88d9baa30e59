// Package usecase implements typed access to the settings store: parsing,
// defaulting, clamping, and encrypted handling of the signing secret.
package usecase

import (
	"context"
	"time"
)

// SettingRepository defines persistence operations for raw settings.
type SettingRepository interface {
	// Get retrieves a setting value by name. Returns ErrNotFound when absent.
	Get(ctx context.Context, name string) (string, error)

	// Set inserts or overwrites a setting.
	Set(ctx context.Context, name, value string) error

	// Delete removes a setting by name.
	Delete(ctx context.Context, name string) error
}

// UseCase defines typed settings operations.
type UseCase interface {
	// BaseURL returns the backend base URL without trailing slash.
	// Returns ErrConfigMissing when unset.
	BaseURL(ctx context.Context) (string, error)

	// SetBaseURL validates and stores the backend base URL. In the production
	// environment the scheme is forced to https.
	SetBaseURL(ctx context.Context, raw string) error

	// Issuer and Audience return the token `iss` / `aud` values with defaults.
	Issuer(ctx context.Context) (string, error)
	Audience(ctx context.Context) (string, error)

	// TokenTTL returns the API-profile token lifetime.
	TokenTTL(ctx context.Context) (time.Duration, error)

	// HTTPTimeout returns the outbound call timeout.
	HTTPTimeout(ctx context.Context) (time.Duration, error)

	// Cooldown returns the per-principal generation cooldown.
	Cooldown(ctx context.Context) (time.Duration, error)

	// SetSigningSecret validates the plaintext secret's strength, encrypts it
	// with the site key, and stores the blob.
	SetSigningSecret(ctx context.Context, plaintext string) error

	// SigningSecret decrypts and returns the signing secret. Returns
	// ErrSecretUnavailable when the secret is missing or cannot be decrypted.
	SigningSecret(ctx context.Context) (string, error)

	// HasSigningSecret reports whether an encrypted secret blob is stored,
	// without attempting decryption.
	HasSigningSecret(ctx context.Context) (bool, error)

	// TierIDs returns the membership plan ids mapped to the FREE, GROWTH and
	// IMPACT tiers.
	TierIDs(ctx context.Context) (free, growth, impact []int, err error)

	// LastAttempt returns the diagnostic snapshot of the most recent
	// generation attempt, or "" when none was recorded.
	LastAttempt(ctx context.Context) (string, error)

	// SetLastAttempt overwrites the diagnostic snapshot.
	SetLastAttempt(ctx context.Context, snapshot string) error
}
