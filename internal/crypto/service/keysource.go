package service

import (
	"context"
	"crypto/sha256"
	"encoding/base64"

	"golang.org/x/crypto/pbkdf2"

	cryptoDomain "github.com/ngoinfo/copilot-gateway/internal/crypto/domain"
	apperrors "github.com/ngoinfo/copilot-gateway/internal/errors"
)

const (
	// keyDerivationSalt binds derived keys to this application. Changing it,
	// like changing the site key itself, makes existing blobs unrecoverable.
	keyDerivationSalt = "copilot-gateway/secret-store/v1"

	keyDerivationIterations = 4096
)

// SiteKeySource derives the secret-store encryption key from the site-wide
// secret via PBKDF2-SHA256. The site key is held as provided; the derived key
// is computed per call and never cached.
type SiteKeySource struct {
	siteKey string
}

// NewSiteKeySource creates a KeySource backed by a plain site key.
func NewSiteKeySource(siteKey string) *SiteKeySource {
	return &SiteKeySource{siteKey: siteKey}
}

// Key derives the 32-byte AES key from the site key.
func (s *SiteKeySource) Key(_ context.Context) ([]byte, error) {
	if s.siteKey == "" {
		return nil, cryptoDomain.ErrSiteKeyMissing
	}
	return pbkdf2.Key([]byte(s.siteKey), []byte(keyDerivationSalt), keyDerivationIterations, 32, sha256.New), nil
}

// KMSKeeper is the subset of gocloud.dev/secrets.Keeper used to unwrap a
// wrapped site key. *secrets.Keeper satisfies it.
type KMSKeeper interface {
	Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error)
}

// KMSKeySource unwraps a KMS-wrapped site key and then derives the encryption
// key the same way SiteKeySource does. Used when the site key must not live
// in plain environment variables.
type KMSKeySource struct {
	keeper     KMSKeeper
	wrappedKey string
}

// NewKMSKeySource creates a KeySource that unwraps wrappedKey (base64) with
// the provided keeper on every Key call.
func NewKMSKeySource(keeper KMSKeeper, wrappedKey string) *KMSKeySource {
	return &KMSKeySource{keeper: keeper, wrappedKey: wrappedKey}
}

// Key unwraps the wrapped site key and derives the 32-byte AES key from it.
func (s *KMSKeySource) Key(ctx context.Context) ([]byte, error) {
	if s.wrappedKey == "" {
		return nil, cryptoDomain.ErrSiteKeyMissing
	}

	ciphertext, err := base64.StdEncoding.DecodeString(s.wrappedKey)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to decode wrapped site key")
	}

	siteKey, err := s.keeper.Decrypt(ctx, ciphertext)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to unwrap site key")
	}

	return pbkdf2.Key(siteKey, []byte(keyDerivationSalt), keyDerivationIterations, 32, sha256.New), nil
}
