// Package domain defines the settings store contract: the named key-value
// configuration that drives token minting and outbound calls.
package domain

// Setting names. These are the persisted keys; values are always strings and
// parsed by the settings use case.
const (
	// KeyBaseURL is the Copilot backend base URL (no trailing slash).
	KeyBaseURL = "api_base_url"

	// KeyIssuer and KeyAudience are the token `iss` / `aud` claims.
	KeyIssuer   = "jwt_issuer"
	KeyAudience = "jwt_audience"

	// KeySigningSecret holds the encrypted signing secret:
	// base64(iv || AES-256-CBC ciphertext). Never stored in plaintext.
	KeySigningSecret = "jwt_secret"

	// KeyTokenTTLMinutes is the API-profile token lifetime in minutes.
	KeyTokenTTLMinutes = "jwt_expiry_minutes"

	// KeyTierFreeIDs, KeyTierGrowthIDs, KeyTierImpactIDs map membership plan
	// ids (comma-separated integers) to plan tiers.
	KeyTierFreeIDs   = "tier_free_ids"
	KeyTierGrowthIDs = "tier_growth_ids"
	KeyTierImpactIDs = "tier_impact_ids"

	// KeyHTTPTimeoutSeconds bounds every outbound call.
	KeyHTTPTimeoutSeconds = "http_timeout_secs"

	// KeyCooldownSeconds is the per-principal generation cooldown.
	KeyCooldownSeconds = "cooldown_secs"

	// KeyLastAttempt holds the bounded diagnostic snapshot of the most recent
	// generation attempt (JSON, truncated, redacted).
	KeyLastAttempt = "last_generate_attempt"
)

// Defaults applied when a setting is absent.
const (
	DefaultIssuer          = "ngoinfo-wp"
	DefaultAudience        = "ngoinfo-copilot"
	DefaultTokenTTLMinutes = 15
	DefaultHTTPTimeoutSecs = 8
	DefaultCooldownSecs    = 60
	DefaultTierFreeIDs     = "2268"
	DefaultTierGrowthIDs   = "2259,2271"
	DefaultTierImpactIDs   = "2272,2273"
)

// Clamping ranges for writable numeric settings.
const (
	MinTokenTTLMinutes = 5
	MaxTokenTTLMinutes = 60

	MinHTTPTimeoutSecs = 10
	MaxHTTPTimeoutSecs = 300

	MinCooldownSecs = 30
	MaxCooldownSecs = 300
)

// Setting is a single persisted key-value pair.
type Setting struct {
	Name  string
	Value string
}
