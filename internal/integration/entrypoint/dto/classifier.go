// Package dto defines data transfer objects for API requests and responses.
package dto

import "github.com/yosan-kanri/backend/internal/application/adapter"

// SuggestWorkCodeRequest represents the request body for a work-code
// suggestion.
type SuggestWorkCodeRequest struct {
	Description string `json:"description" binding:"required,min=1,max=1000"`
}

// WorkCodeSuggestionResponse represents a suggested construction-type code.
type WorkCodeSuggestionResponse struct {
	Code       string  `json:"code"`
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning"`
}

// ToWorkCodeSuggestionResponse converts a WorkCodeSuggestion to its DTO.
func ToWorkCodeSuggestionResponse(s *adapter.WorkCodeSuggestion) WorkCodeSuggestionResponse {
	return WorkCodeSuggestionResponse{
		Code:       s.Code,
		Name:       s.Name,
		Confidence: s.Confidence,
		Reasoning:  s.Reasoning,
	}
}
