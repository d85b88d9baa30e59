// Package service provides the cryptographic primitives behind the secret
// store: AES-256-CBC encryption of the signing secret at rest and derivation
// of the encryption key from the site-wide secret.
package service

import "context"

// SecretCipher encrypts and decrypts small string secrets at rest.
type SecretCipher interface {
	// Encrypt encrypts plaintext and returns base64(iv || ciphertext).
	// Encryption is non-deterministic: a fresh random IV is used per call.
	Encrypt(plaintext string) (string, error)

	// Decrypt reverses Encrypt. Any failure (bad base64, short blob, wrong
	// key, bad padding) returns ErrDecryptionFailed.
	Decrypt(blob string) (string, error)
}

// KeySource yields the 32-byte key the SecretCipher encrypts with.
type KeySource interface {
	// Key derives or unwraps the encryption key. The result must not be
	// cached by callers beyond the operation that needs it.
	Key(ctx context.Context) ([]byte, error)
}
