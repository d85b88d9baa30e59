package domain

import apperrors "github.com/ngoinfo/copilot-gateway/internal/errors"

var (
	// ErrTokenInvalid indicates a token failed signature or shape checks.
	ErrTokenInvalid = apperrors.New("token invalid")

	// ErrTokenExpired indicates a token's exp claim is in the past.
	ErrTokenExpired = apperrors.New("token expired")
)
