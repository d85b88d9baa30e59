package domain

import "time"

// FailureCode classifies why a generation attempt was refused or failed.
type FailureCode string

const (
	FailureConfig     FailureCode = "config"
	FailureAuth       FailureCode = "auth"
	FailurePlan       FailureCode = "plan"
	FailureValidation FailureCode = "validation"
	FailureRate       FailureCode = "rate"
	FailureAPI        FailureCode = "api"
)

// userMessages maps failure codes to what the principal is shown. The
// backend's own error text is operator-facing and never rendered directly.
var userMessages = map[FailureCode]string{
	FailureConfig:     "The generation service is not configured yet. Please complete the connection settings.",
	FailureAuth:       "We could not authenticate with the generation service. Please check the connection settings.",
	FailurePlan:       "Your current plan does not allow another generation right now. Upgrade your plan or try again later.",
	FailureValidation: "Please correct the highlighted fields and try again.",
	FailureRate:       "Please wait a moment before generating again.",
	FailureAPI:        "The generation service is temporarily unavailable. Please try again in a few minutes.",
}

// Failure is a refused or failed generation attempt. It implements error so
// the orchestrator can return it through the usual error path.
//
// Code is the local taxonomy and drives the HTTP status and user message.
// BackendCode, when set, is the normalized error code the backend returned
// and is what the caller sees as the failure code.
type Failure struct {
	Code        FailureCode
	BackendCode string
	Message     string
	Detail      string
	RequestID   string
	RetryAfter  time.Duration
	Fields      map[string]any
}

// NewFailure builds a Failure with the user message for code. detail is the
// operator-facing cause kept for logs and diagnostics.
func NewFailure(code FailureCode, detail string) *Failure {
	return &Failure{
		Code:    code,
		Message: userMessages[code],
		Detail:  detail,
	}
}

// Error returns the operator-facing description.
func (f *Failure) Error() string {
	if f.Detail != "" {
		return string(f.Code) + ": " + f.Detail
	}
	return string(f.Code) + ": " + f.Message
}
