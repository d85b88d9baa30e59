// Package domain defines generation requests, results, history, and the
// user-facing failure taxonomy.
package domain

import (
	"time"

	validation "github.com/jellydator/validation"
)

const (
	// MaxHistoryEntries bounds the stored per-principal history, newest first.
	MaxHistoryEntries = 20

	minTextLength = 2
	maxTextLength = 200

	minDurationMonths = 1
	maxDurationMonths = 60
)

// GenerateInput is the proposal request as submitted by the principal.
type GenerateInput struct {
	Donor          string  `json:"donor"`
	Theme          string  `json:"theme"`
	Country        string  `json:"country"`
	Title          string  `json:"title"`
	Budget         float64 `json:"budget"`
	DurationMonths int     `json:"duration_months"`
}

// Validate checks the input against the submission rules. Text fields carry
// between 2 and 200 characters, budget is non-negative, duration is 1 to 60
// months.
func (g GenerateInput) Validate() error {
	return validation.ValidateStruct(&g,
		validation.Field(&g.Donor, validation.Required, validation.Length(minTextLength, maxTextLength)),
		validation.Field(&g.Theme, validation.Required, validation.Length(minTextLength, maxTextLength)),
		validation.Field(&g.Country, validation.Required, validation.Length(minTextLength, maxTextLength)),
		validation.Field(&g.Title, validation.Required, validation.Length(minTextLength, maxTextLength)),
		validation.Field(&g.Budget, validation.Min(0.0)),
		validation.Field(&g.DurationMonths, validation.Required, validation.Min(minDurationMonths), validation.Max(maxDurationMonths)),
	)
}

// Result is a successful generation outcome.
type Result struct {
	ProposalID string
	Preview    string
	Meta       map[string]any
}

// HistoryEntry is one generation recorded in a principal's history.
type HistoryEntry struct {
	ProposalID string    `json:"proposal_id"`
	Title      string    `json:"title"`
	CreatedAt  time.Time `json:"created_at"`
}

// PrependHistory adds entry at the head and drops anything past the cap.
func PrependHistory(history []HistoryEntry, entry HistoryEntry) []HistoryEntry {
	history = append([]HistoryEntry{entry}, history...)
	if len(history) > MaxHistoryEntries {
		history = history[:MaxHistoryEntries]
	}
	return history
}
