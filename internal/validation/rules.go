// Package validation provides custom validation rules for the application.
package validation

import (
	"fmt"
	"strings"
	"unicode"

	validation "github.com/jellydator/validation"

	apperrors "github.com/ngoinfo/copilot-gateway/internal/errors"
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// SecretStrength validates that a signing secret meets minimum requirements:
// at least MinLength characters with lowercase, uppercase, digit, and symbol.
type SecretStrength struct {
	MinLength int
}

// Validate checks if the secret meets the configured requirements
func (s SecretStrength) Validate(value interface{}) error {
	secret, ok := value.(string)
	if !ok {
		return validation.NewError("validation_secret_strength", "secret must be a string")
	}

	if len(secret) < s.MinLength {
		return validation.NewError(
			"validation_secret_min_length",
			fmt.Sprintf("secret must be at least %d characters", s.MinLength),
		)
	}

	if !hasLowerCase(secret) {
		return validation.NewError(
			"validation_secret_lowercase",
			"secret must contain at least one lowercase letter",
		)
	}

	if !hasUpperCase(secret) {
		return validation.NewError(
			"validation_secret_uppercase",
			"secret must contain at least one uppercase letter",
		)
	}

	if !hasNumber(secret) {
		return validation.NewError("validation_secret_number", "secret must contain at least one number")
	}

	if !hasSpecialChar(secret) {
		return validation.NewError(
			"validation_secret_special",
			"secret must contain at least one special character",
		)
	}

	return nil
}

// hasUpperCase checks if string contains uppercase letters
func hasUpperCase(s string) bool {
	for _, r := range s {
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}

// hasLowerCase checks if string contains lowercase letters
func hasLowerCase(s string) bool {
	for _, r := range s {
		if unicode.IsLower(r) {
			return true
		}
	}
	return false
}

// hasNumber checks if string contains numbers
func hasNumber(s string) bool {
	for _, r := range s {
		if unicode.IsNumber(r) {
			return true
		}
	}
	return false
}

// hasSpecialChar checks if string contains characters outside [a-zA-Z0-9]
func hasSpecialChar(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsNumber(r) {
			return true
		}
	}
	return false
}

// NoWhitespace validates that string doesn't contain leading/trailing whitespace
var NoWhitespace = validation.NewStringRuleWithError(
	func(s string) bool {
		return s == strings.TrimSpace(s)
	},
	validation.NewError("validation_no_whitespace", "must not contain leading or trailing whitespace"),
)

// NotBlank validates that a string is not empty after trimming whitespace
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)
