// Package service provides token signing and secret generation.
package service

// TokenSigner signs and verifies HMAC tokens.
type TokenSigner interface {
	Sign(claims map[string]any, secret string) (string, error)
	Verify(token, secret string) (map[string]any, error)
}

// SecretGenerator produces random signing secrets.
type SecretGenerator interface {
	Generate(length int) (string, error)
}
