package service

import (
	"crypto/rand"
	"math/big"

	apperrors "github.com/ngoinfo/copilot-gateway/internal/errors"
)

const (
	secretLower   = "abcdefghijklmnopqrstuvwxyz"
	secretUpper   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	secretDigits  = "0123456789"
	secretSpecial = "!@#$%^&*()-_=+[]{}<>?"

	// MinSecretLength is the shortest secret Generate will produce.
	MinSecretLength = 32
)

// RandomSecretGenerator implements SecretGenerator with crypto/rand.
// Generated secrets always contain at least one character of each class so
// they pass the strength rules applied when a secret is stored.
type RandomSecretGenerator struct{}

// NewRandomSecretGenerator creates a new RandomSecretGenerator.
func NewRandomSecretGenerator() *RandomSecretGenerator {
	return &RandomSecretGenerator{}
}

// Generate returns a random secret of the requested length. Lengths below
// MinSecretLength are raised to it.
func (g *RandomSecretGenerator) Generate(length int) (string, error) {
	if length < MinSecretLength {
		length = MinSecretLength
	}

	all := secretLower + secretUpper + secretDigits + secretSpecial
	out := make([]byte, length)

	// One character from each class up front, the rest from the full set
	classes := []string{secretLower, secretUpper, secretDigits, secretSpecial}
	for i := range out {
		source := all
		if i < len(classes) {
			source = classes[i]
		}
		c, err := randomByte(source)
		if err != nil {
			return "", err
		}
		out[i] = c
	}

	// Shuffle so the class-guaranteed characters are not positional
	for i := len(out) - 1; i > 0; i-- {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			return "", apperrors.Wrap(err, "failed to shuffle secret")
		}
		j := n.Int64()
		out[i], out[j] = out[j], out[i]
	}

	return string(out), nil
}

func randomByte(source string) (byte, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(source))))
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to read random bytes")
	}
	return source[n.Int64()], nil
}
