// Package gateway mediates outbound calls to the backend API and normalizes
// every outcome, success or failure, into a single envelope shape.
package gateway

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// maxRawBody caps how much of an unparsable response body the envelope keeps.
const maxRawBody = 500

// ErrorInfo describes a failed call.
type ErrorInfo struct {
	Code      string         `json:"code"`
	Message   string         `json:"message"`
	RequestID string         `json:"request_id,omitempty"`
	Details   map[string]any `json:"details,omitempty"`
}

// Envelope is the normalized result of an outbound call. StatusCode 0 means
// the request never reached the backend.
type Envelope struct {
	Success    bool           `json:"success"`
	StatusCode int            `json:"status_code"`
	Data       map[string]any `json:"data,omitempty"`
	Error      *ErrorInfo     `json:"error,omitempty"`
	RawBody    string         `json:"raw_body,omitempty"`
}

// CodeRequestFailed marks transport-level failures (DNS, TLS, timeout).
const CodeRequestFailed = "REQUEST_FAILED"

// statusPhrases maps statuses the backend is known to return to user-facing
// phrases used when the body carries no message of its own.
var statusPhrases = map[int]string{
	400: "Bad request",
	401: "Authentication failed",
	403: "Access denied",
	404: "Not found",
	422: "Validation failed",
	429: "Too many requests",
	500: "Server error",
	502: "Bad gateway",
	503: "Service unavailable",
	504: "Gateway timeout",
}

// requestIDPattern scans raw bodies for a request id when the body is not
// parsable JSON but still mentions one.
var requestIDPattern = regexp.MustCompile(`request_id["']?\s*:\s*["']?([a-f0-9-]+)`)

// Normalize converts an HTTP response into an envelope. Bodies are parsed as
// JSON only when the content type says so; anything else is kept raw, capped.
func Normalize(statusCode int, contentType string, body []byte) Envelope {
	parsed := parseJSONBody(contentType, body)

	if statusCode >= 200 && statusCode < 300 {
		env := Envelope{Success: true, StatusCode: statusCode}
		if parsed != nil {
			env.Data = parsed
		} else if len(body) > 0 {
			env.RawBody = capRawBody(body)
		}
		return env
	}

	return normalizeError(statusCode, parsed, body)
}

// NormalizeTransportFailure converts a transport-level error into an envelope
// with status 0. The error text is redacted before it is kept.
func NormalizeTransportFailure(err error) Envelope {
	return Envelope{
		Success:    false,
		StatusCode: 0,
		Error: &ErrorInfo{
			Code:    CodeRequestFailed,
			Message: Redact(err.Error()),
		},
	}
}

// normalizeError builds a failure envelope. Normalization is idempotent: a
// body that already carries an envelope-shaped error is passed through.
func normalizeError(statusCode int, parsed map[string]any, body []byte) Envelope {
	env := Envelope{Success: false, StatusCode: statusCode}

	if parsed == nil {
		env.Error = &ErrorInfo{
			Code:      syntheticCode(statusCode),
			Message:   statusPhrase(statusCode),
			RequestID: scanRequestID(body),
		}
		env.RawBody = capRawBody(body)
		return env
	}

	info := &ErrorInfo{}

	// Already-normalized payloads keep their error block verbatim
	errBlock, _ := parsed["error"].(map[string]any)
	if errBlock != nil {
		info.Code = stringField(errBlock, "code")
		info.Message = stringField(errBlock, "message")
		info.RequestID = stringField(errBlock, "request_id")
		if details, ok := errBlock["details"].(map[string]any); ok {
			info.Details = details
		}
	} else {
		info.Code = stringField(parsed, "code")
		info.Message = stringField(parsed, "message")
		if info.Message == "" {
			info.Message = stringField(parsed, "detail")
		}
	}

	if info.RequestID == "" {
		info.RequestID = stringField(parsed, "request_id")
	}
	if info.RequestID == "" {
		info.RequestID = scanRequestID(body)
	}
	if info.Code == "" {
		info.Code = syntheticCode(statusCode)
	}
	if info.Message == "" {
		info.Message = statusPhrase(statusCode)
	}

	env.Error = info
	return env
}

func parseJSONBody(contentType string, body []byte) map[string]any {
	if !strings.Contains(strings.ToLower(contentType), "json") || len(body) == 0 {
		return nil
	}
	var parsed map[string]any
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil
	}
	return parsed
}

func syntheticCode(statusCode int) string {
	return fmt.Sprintf("HTTP_%d", statusCode)
}

func statusPhrase(statusCode int) string {
	if phrase, ok := statusPhrases[statusCode]; ok {
		return phrase
	}
	return fmt.Sprintf("HTTP Error %d", statusCode)
}

func scanRequestID(body []byte) string {
	match := requestIDPattern.FindSubmatch(body)
	if match == nil {
		return ""
	}
	return string(match[1])
}

func stringField(m map[string]any, key string) string {
	value, _ := m[key].(string)
	return value
}

func capRawBody(body []byte) string {
	raw := Redact(string(body))
	if len(raw) > maxRawBody {
		return raw[:maxRawBody]
	}
	return raw
}
