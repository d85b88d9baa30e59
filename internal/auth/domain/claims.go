// Package domain defines token profiles and claim construction.
package domain

import (
	"time"

	membershipDomain "github.com/ngoinfo/copilot-gateway/internal/membership/domain"
)

// Profile selects the claim shape of a minted token.
type Profile string

const (
	// ProfileGeneration is the short-lived token attached to generation
	// requests. Its plan claim is the fixed product identifier, not a tier.
	ProfileGeneration Profile = "generation"

	// ProfileAPI is the general API token carrying the resolved plan tier
	// and a nonce.
	ProfileAPI Profile = "api"
)

// GenerationPlan is the plan claim value on generation-profile tokens.
const GenerationPlan = "grantpilot"

// GenerationTokenLifetime is the fixed lifetime of generation-profile tokens.
const GenerationTokenLifetime = 10 * time.Minute

// ClaimInput carries everything needed to build a claim set.
type ClaimInput struct {
	Subject  string
	Email    string
	Issuer   string
	Audience string
	Tier     membershipDomain.Tier
	Nonce    string
	IssuedAt time.Time
	TTL      time.Duration
}

// Token is a signed token with its expiry.
type Token struct {
	Value     string
	ExpiresAt time.Time
}

// BuildClaims constructs the claim set for the given profile. Claim values
// are plain JSON types so the signed payload is stable for a given input.
func BuildClaims(profile Profile, in ClaimInput) map[string]any {
	iat := in.IssuedAt.Unix()

	if profile == ProfileGeneration {
		return map[string]any{
			"sub":   in.Subject,
			"email": in.Email,
			"plan":  GenerationPlan,
			"iss":   in.Issuer,
			"aud":   in.Audience,
			"iat":   iat,
			"exp":   in.IssuedAt.Add(GenerationTokenLifetime).Unix(),
		}
	}

	return map[string]any{
		"sub":       in.Subject,
		"email":     in.Email,
		"plan_tier": string(in.Tier),
		"iss":       in.Issuer,
		"aud":       in.Audience,
		"iat":       iat,
		"exp":       in.IssuedAt.Add(in.TTL).Unix(),
		"nonce":     in.Nonce,
	}
}

// Expiry returns when a token built from in for profile expires.
func Expiry(profile Profile, in ClaimInput) time.Time {
	if profile == ProfileGeneration {
		return in.IssuedAt.Add(GenerationTokenLifetime)
	}
	return in.IssuedAt.Add(in.TTL)
}
