package gateway

import "regexp"

// Sensitive material is scrubbed from anything the gateway keeps or logs:
// raw bodies, transport errors, diagnostic snapshots.
var (
	bearerPattern   = regexp.MustCompile(`(?i)bearer\s+[A-Za-z0-9._~+/=-]+`)
	secretKVPattern = regexp.MustCompile(`(?i)("?(?:[a-z0-9_-]*?)(?:secret|token|password|api_?key)"?\s*[:=]\s*)("[^"]*"|'[^']*'|[^\s,}&]+)`)
	queryKeyPattern = regexp.MustCompile(`(?i)((?:secret|token|password|api_?key)=)[^\s&"']+`)
)

// Redact replaces credential-looking material in s with [REDACTED].
func Redact(s string) string {
	s = bearerPattern.ReplaceAllString(s, "Bearer [REDACTED]")
	s = secretKVPattern.ReplaceAllString(s, "${1}[REDACTED]")
	s = queryKeyPattern.ReplaceAllString(s, "${1}[REDACTED]")
	return s
}
