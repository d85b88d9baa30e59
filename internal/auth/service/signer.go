package service

import (
	"github.com/golang-jwt/jwt/v5"

	"github.com/ngoinfo/copilot-gateway/internal/auth/domain"
	apperrors "github.com/ngoinfo/copilot-gateway/internal/errors"
)

// HS256Signer implements TokenSigner with HMAC-SHA256.
//
// Signing is deterministic for a given claim set and secret: map claims are
// serialized with sorted keys, so the same input always yields the same token.
type HS256Signer struct{}

// NewHS256Signer creates a new HS256Signer.
func NewHS256Signer() *HS256Signer {
	return &HS256Signer{}
}

// Sign produces a compact HS256 token over claims.
func (s *HS256Signer) Sign(claims map[string]any, secret string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims(claims))
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", apperrors.Wrap(err, "failed to sign token")
	}
	return signed, nil
}

// Verify checks the signature and expiry of a compact token and returns its
// claims. Only HS256 is accepted.
func (s *HS256Signer) Verify(tokenString, secret string) (map[string]any, error) {
	parsed, err := jwt.Parse(
		tokenString,
		func(*jwt.Token) (any, error) { return []byte(secret), nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		if apperrors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, apperrors.Wrap(domain.ErrTokenInvalid, err.Error())
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, domain.ErrTokenInvalid
	}
	return claims, nil
}
