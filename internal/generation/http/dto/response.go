package dto

import (
	"time"

	"github.com/ngoinfo/copilot-gateway/internal/generation/domain"
)

// GenerateResponse is a successful generation outcome.
type GenerateResponse struct {
	Success    bool           `json:"success"`
	ProposalID string         `json:"proposal_id"`
	Preview    string         `json:"preview,omitempty"`
	Meta       map[string]any `json:"meta,omitempty"`
}

// MapResultToResponse converts a domain result to a response.
func MapResultToResponse(result domain.Result) GenerateResponse {
	return GenerateResponse{
		Success:    true,
		ProposalID: result.ProposalID,
		Preview:    result.Preview,
		Meta:       result.Meta,
	}
}

// FailureResponse is a refused or failed generation attempt. The message is
// safe to show to the principal; backend detail stays in the logs.
type FailureResponse struct {
	Success        bool           `json:"success"`
	Code           string         `json:"code"`
	Message        string         `json:"message"`
	RequestID      string         `json:"request_id,omitempty"`
	RetryAfterSecs int            `json:"retry_after_secs,omitempty"`
	Fields         map[string]any `json:"fields,omitempty"`
}

// MapFailureToResponse converts a domain failure to a response. Failures the
// backend returned keep the backend's error code; local refusals use the
// local taxonomy.
func MapFailureToResponse(failure *domain.Failure) FailureResponse {
	code := string(failure.Code)
	if failure.BackendCode != "" {
		code = failure.BackendCode
	}
	return FailureResponse{
		Success:        false,
		Code:           code,
		Message:        failure.Message,
		RequestID:      failure.RequestID,
		RetryAfterSecs: int(failure.RetryAfter.Seconds()),
		Fields:         failure.Fields,
	}
}

// HistoryEntryResponse is one stored generation.
type HistoryEntryResponse struct {
	ProposalID string    `json:"proposal_id"`
	Title      string    `json:"title"`
	CreatedAt  time.Time `json:"created_at"`
}

// HistoryResponse is the principal's generation history, newest first.
type HistoryResponse struct {
	Data []HistoryEntryResponse `json:"data"`
}

// MapHistoryToResponse converts domain history entries to a response.
func MapHistoryToResponse(history []domain.HistoryEntry) HistoryResponse {
	data := make([]HistoryEntryResponse, 0, len(history))
	for _, entry := range history {
		data = append(data, HistoryEntryResponse{
			ProposalID: entry.ProposalID,
			Title:      entry.Title,
			CreatedAt:  entry.CreatedAt,
		})
	}
	return HistoryResponse{Data: data}
}
