package domain

import "errors"

var (
	// ErrEncryptionFailed indicates the cipher could not produce a blob.
	ErrEncryptionFailed = errors.New("encryption failed")

	// ErrDecryptionFailed indicates the blob could not be decrypted. Callers
	// must treat this as "secret not usable"; no distinction is made between
	// a corrupt blob and a rotated site key.
	ErrDecryptionFailed = errors.New("decryption failed")

	// ErrInvalidKeySize indicates the derived key is not 32 bytes.
	ErrInvalidKeySize = errors.New("key must be exactly 32 bytes")

	// ErrSiteKeyMissing indicates no site key material is configured.
	ErrSiteKeyMissing = errors.New("site key not configured")
)
