// Package classification contains work-code classification use cases.
package classification

import (
	"context"
	"fmt"
	"strings"

	"github.com/yosan-kanri/backend/internal/application/adapter"
	domainerror "github.com/yosan-kanri/backend/internal/domain/error"
)

// SuggestWorkCodeInput represents the input for a work-code suggestion.
type SuggestWorkCodeInput struct {
	Description string
}

// SuggestWorkCodeOutput represents the output of a work-code suggestion.
type SuggestWorkCodeOutput struct {
	Suggestion *adapter.WorkCodeSuggestion
}

// SuggestWorkCodeUseCase asks the classifier for the construction-type code
// that best matches a free-text work description.
type SuggestWorkCodeUseCase struct {
	classifier adapter.ClassifierService
}

// NewSuggestWorkCodeUseCase creates a new SuggestWorkCodeUseCase instance.
func NewSuggestWorkCodeUseCase(classifier adapter.ClassifierService) *SuggestWorkCodeUseCase {
	return &SuggestWorkCodeUseCase{classifier: classifier}
}

// Execute returns a catalog code suggestion for the given description.
func (uc *SuggestWorkCodeUseCase) Execute(ctx context.Context, input SuggestWorkCodeInput) (*SuggestWorkCodeOutput, error) {
	description := strings.TrimSpace(input.Description)
	if description == "" {
		return nil, domainerror.NewClassifierError(
			domainerror.ErrCodeClassifierEmptyDescription,
			"description is required",
			nil,
		)
	}

	if !uc.classifier.IsAvailable() {
		return nil, domainerror.NewClassifierError(
			domainerror.ErrCodeClassifierUnavailable,
			"work code classifier is not configured",
			domainerror.ErrClassifierUnavailable,
		)
	}

	suggestion, err := uc.classifier.SuggestWorkCode(ctx, description)
	if err != nil {
		return nil, fmt.Errorf("failed to classify work description: %w", err)
	}

	return &SuggestWorkCodeOutput{Suggestion: suggestion}, nil
}
