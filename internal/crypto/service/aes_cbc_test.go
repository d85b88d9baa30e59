package service

import (
	"crypto/rand"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/ngoinfo/copilot-gateway/internal/crypto/domain"
)

func testKey(t *testing.T) []byte {
	t.Helper()
	key := make([]byte, 32)
	_, err := rand.Read(key)
	require.NoError(t, err)
	return key
}

func TestNewAESCBC(t *testing.T) {
	t.Run("Success_ValidKey", func(t *testing.T) {
		c, err := NewAESCBC(testKey(t))
		require.NoError(t, err)
		assert.NotNil(t, c)
	})

	t.Run("Error_InvalidKeySize", func(t *testing.T) {
		for _, size := range []int{0, 16, 24, 31, 33, 64} {
			_, err := NewAESCBC(make([]byte, size))
			assert.ErrorIs(t, err, cryptoDomain.ErrInvalidKeySize, "size %d", size)
		}
	})
}

func TestAESCBCCipher_RoundTrip(t *testing.T) {
	c, err := NewAESCBC(testKey(t))
	require.NoError(t, err)

	plaintexts := []string{
		"",
		"x",
		"Sup3r$ecretSigningKey-with-32-plus-characters!",
		strings.Repeat("block-aligned-16", 4),
		"unicode: émoji 🗝 and newlines\n\t",
	}

	for _, plaintext := range plaintexts {
		blob, err := c.Encrypt(plaintext)
		require.NoError(t, err)
		assert.NotEmpty(t, blob)

		decrypted, err := c.Decrypt(blob)
		require.NoError(t, err)
		assert.Equal(t, plaintext, decrypted)
	}
}

func TestAESCBCCipher_NonDeterministic(t *testing.T) {
	c, err := NewAESCBC(testKey(t))
	require.NoError(t, err)

	plaintext := "same plaintext, different IV"

	blob1, err := c.Encrypt(plaintext)
	require.NoError(t, err)
	blob2, err := c.Encrypt(plaintext)
	require.NoError(t, err)

	// Random IV per encryption: identical plaintexts must yield distinct blobs
	assert.NotEqual(t, blob1, blob2)

	for _, blob := range []string{blob1, blob2} {
		decrypted, err := c.Decrypt(blob)
		require.NoError(t, err)
		assert.Equal(t, plaintext, decrypted)
	}
}

func TestAESCBCCipher_Decrypt_Failures(t *testing.T) {
	c, err := NewAESCBC(testKey(t))
	require.NoError(t, err)

	t.Run("Error_InvalidBase64", func(t *testing.T) {
		_, err := c.Decrypt("%%% not base64 %%%")
		assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed)
	})

	t.Run("Error_BlobShorterThanIV", func(t *testing.T) {
		short := base64.StdEncoding.EncodeToString(make([]byte, 16))
		_, err := c.Decrypt(short)
		assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed)
	})

	t.Run("Error_CiphertextNotBlockAligned", func(t *testing.T) {
		blob := base64.StdEncoding.EncodeToString(make([]byte, 16+7))
		_, err := c.Decrypt(blob)
		assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed)
	})

	t.Run("Error_WrongKey", func(t *testing.T) {
		plaintext := "secret under key A"
		blob, err := c.Encrypt(plaintext)
		require.NoError(t, err)

		other, err := NewAESCBC(testKey(t))
		require.NoError(t, err)

		// Wrong key usually fails padding validation; in the rare case the
		// garbage happens to end in valid padding, it still never recovers
		// the original plaintext.
		decrypted, err := other.Decrypt(blob)
		if err == nil {
			assert.NotEqual(t, plaintext, decrypted)
		} else {
			assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed)
		}
	})
}

func TestPKCS7(t *testing.T) {
	t.Run("Success_PadUnpad", func(t *testing.T) {
		for length := 0; length < 48; length++ {
			data := make([]byte, length)
			padded := pkcs7Pad(data, 16)
			assert.Zero(t, len(padded)%16)

			unpadded, ok := pkcs7Unpad(padded, 16)
			require.True(t, ok)
			assert.Equal(t, data, unpadded)
		}
	})

	t.Run("Error_InvalidPadding", func(t *testing.T) {
		invalid := [][]byte{
			{},
			make([]byte, 15),
			append(make([]byte, 15), 0),  // zero pad length
			append(make([]byte, 15), 17), // pad length beyond block size
			{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 3, 2}, // inconsistent pad bytes
		}
		for i, data := range invalid {
			_, ok := pkcs7Unpad(data, 16)
			assert.False(t, ok, "case %d", i)
		}
	})
}
