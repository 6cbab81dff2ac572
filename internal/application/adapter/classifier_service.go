// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
)

// WorkCodeSuggestion represents a suggested construction-type code for a
// work item description.
type WorkCodeSuggestion struct {
	Code       string
	Name       string
	Confidence float64
	Reasoning  string
}

// ClassifierService defines the interface for suggesting a catalog work code
// from a free-text work name or payment description.
type ClassifierService interface {
	// SuggestWorkCode returns the closest construction-type code from the
	// catalog for the given description.
	SuggestWorkCode(ctx context.Context, description string) (*WorkCodeSuggestion, error)

	// IsAvailable checks if the classifier is available and properly configured.
	IsAvailable() bool
}
