package service

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"

	cryptoDomain "github.com/ngoinfo/copilot-gateway/internal/crypto/domain"
	apperrors "github.com/ngoinfo/copilot-gateway/internal/errors"
)

// AESCBCCipher implements SecretCipher using AES-256-CBC with PKCS#7 padding.
//
// The wire format is base64(iv || ciphertext) with a random 16-byte IV per
// encryption, so two encryptions of the same plaintext always differ. CBC is
// kept (rather than an AEAD) because the stored blob format is shared with
// the settings store's existing contents; the blob is never accepted from an
// untrusted party, only read back from our own storage.
//
// The cipher instance is stateless and safe for concurrent use.
type AESCBCCipher struct {
	key []byte
}

// NewAESCBC creates a new AES-256-CBC cipher. The key must be exactly
// 32 bytes; derive it through a KeySource, never use raw passphrase bytes.
func NewAESCBC(key []byte) (*AESCBCCipher, error) {
	if len(key) != 32 {
		return nil, cryptoDomain.ErrInvalidKeySize
	}
	// Copy so later mutation of the caller's slice can't affect the cipher.
	k := make([]byte, 32)
	copy(k, key)
	return &AESCBCCipher{key: k}, nil
}

// Encrypt encrypts plaintext and returns base64(iv || ciphertext).
func (c *AESCBCCipher) Encrypt(plaintext string) (string, error) {
	block, err := aes.NewCipher(c.key)
	if err != nil {
		return "", apperrors.Wrap(cryptoDomain.ErrEncryptionFailed, err.Error())
	}

	padded := pkcs7Pad([]byte(plaintext), aes.BlockSize)

	iv := make([]byte, aes.BlockSize)
	if _, err := rand.Read(iv); err != nil {
		return "", apperrors.Wrap(cryptoDomain.ErrEncryptionFailed, err.Error())
	}

	ciphertext := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, padded)

	return base64.StdEncoding.EncodeToString(append(iv, ciphertext...)), nil
}

// Decrypt base64-decodes the blob, splits IV and ciphertext, and decrypts.
// Every failure mode collapses into ErrDecryptionFailed.
func (c *AESCBCCipher) Decrypt(blob string) (string, error) {
	data, err := base64.StdEncoding.DecodeString(blob)
	if err != nil {
		return "", cryptoDomain.ErrDecryptionFailed
	}
	if len(data) <= aes.BlockSize {
		return "", cryptoDomain.ErrDecryptionFailed
	}

	iv, ciphertext := data[:aes.BlockSize], data[aes.BlockSize:]
	if len(ciphertext)%aes.BlockSize != 0 {
		return "", cryptoDomain.ErrDecryptionFailed
	}

	block, err := aes.NewCipher(c.key)
	if err != nil {
		return "", cryptoDomain.ErrDecryptionFailed
	}

	plaintext := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plaintext, ciphertext)

	unpadded, ok := pkcs7Unpad(plaintext, aes.BlockSize)
	if !ok {
		return "", cryptoDomain.ErrDecryptionFailed
	}

	return string(unpadded), nil
}

// pkcs7Pad appends PKCS#7 padding up to blockSize.
func pkcs7Pad(data []byte, blockSize int) []byte {
	padLen := blockSize - len(data)%blockSize
	return append(data, bytes.Repeat([]byte{byte(padLen)}, padLen)...)
}

// pkcs7Unpad strips PKCS#7 padding, reporting whether the padding was valid.
func pkcs7Unpad(data []byte, blockSize int) ([]byte, bool) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, false
	}
	padLen := int(data[len(data)-1])
	if padLen == 0 || padLen > blockSize || padLen > len(data) {
		return nil, false
	}
	for _, b := range data[len(data)-padLen:] {
		if int(b) != padLen {
			return nil, false
		}
	}
	return data[:len(data)-padLen], true
}
