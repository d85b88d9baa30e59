// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"github.com/ngoinfo/copilot-gateway/internal/generation/domain"
)

// GenerateRequest is the submitted proposal request.
type GenerateRequest struct {
	Donor          string  `json:"donor"`
	Theme          string  `json:"theme"`
	Country        string  `json:"country"`
	Title          string  `json:"title"`
	Budget         float64 `json:"budget"`
	DurationMonths int     `json:"duration_months"`
}

// ToDomain converts the request to a domain input.
func (r GenerateRequest) ToDomain() domain.GenerateInput {
	return domain.GenerateInput{
		Donor:          r.Donor,
		Theme:          r.Theme,
		Country:        r.Country,
		Title:          r.Title,
		Budget:         r.Budget,
		DurationMonths: r.DurationMonths,
	}
}
