// Package adapters provides implementations for external service integrations.
package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/yosan-kanri/backend/internal/application/adapter"
	"github.com/yosan-kanri/backend/internal/domain/entity"
	domainerror "github.com/yosan-kanri/backend/internal/domain/error"
)

// GeminiService implements the ClassifierService using Google Gemini. It maps
// a free-text work description to one of the construction-type codes in the
// catalog.
type GeminiService struct {
	apiKey    string
	modelName string
}

// NewGeminiService creates a new Gemini service instance.
func NewGeminiService(apiKey string) *GeminiService {
	return &GeminiService{
		apiKey:    apiKey,
		modelName: "gemini-2.5-flash-lite",
	}
}

// IsAvailable checks if the Gemini service is available and properly configured.
func (s *GeminiService) IsAvailable() bool {
	return s.apiKey != ""
}

// SuggestWorkCode asks Gemini for the catalog code that best matches the
// given description.
func (s *GeminiService) SuggestWorkCode(ctx context.Context, description string) (*adapter.WorkCodeSuggestion, error) {
	if !s.IsAvailable() {
		return nil, domainerror.NewClassifierError(
			domainerror.ErrCodeClassifierUnavailable,
			"gemini service is not configured",
			domainerror.ErrClassifierUnavailable,
		)
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(s.apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(s.modelName)

	// Configure model for JSON output
	model.SetTemperature(0.2)
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, genai.Text(s.buildPrompt(description)))
	if err != nil {
		return nil, domainerror.NewClassifierError(
			domainerror.ErrCodeClassifierServiceError,
			"gemini request failed",
			err,
		)
	}

	suggestion, err := s.parseResponse(resp)
	if err != nil {
		return nil, err
	}

	return suggestion, nil
}

// buildPrompt creates the prompt for Gemini.
func (s *GeminiService) buildPrompt(description string) string {
	var sb strings.Builder

	sb.WriteString(`あなたは建設業の積算担当者です。工事内容の説明文から、最も適切な工種コードを選んでください。

工種コード一覧:
`)

	for _, ct := range entity.ConstructionTypes() {
		sb.WriteString(fmt.Sprintf("- %s: %s\n", ct.Code, ct.Name))
	}

	sb.WriteString(fmt.Sprintf(`
工事内容の説明文:
"%s"

必ず上の一覧にあるコードから一つだけ選んでください。以下のJSONオブジェクトのみを返してください:
{
  "code": "工種コード",
  "confidence": 0.0-1.0,
  "reasoning": "選定理由を日本語で簡潔に"
}
`, description))

	return sb.String()
}

// geminiWorkCode represents the raw response from Gemini.
type geminiWorkCode struct {
	Code       string  `json:"code"`
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning"`
}

// parseResponse parses the Gemini response into a WorkCodeSuggestion. A code
// outside the catalog is rejected rather than passed through.
func (s *GeminiService) parseResponse(resp *genai.GenerateContentResponse) (*adapter.WorkCodeSuggestion, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil, domainerror.NewClassifierError(
			domainerror.ErrCodeClassifierBadResponse,
			"empty response from gemini",
			domainerror.ErrClassifierBadResponse,
		)
	}

	// Get the text content from the response
	var textContent string
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			textContent = string(text)
			break
		}
	}

	// Clean the response (remove markdown code blocks if present)
	textContent = strings.TrimPrefix(textContent, "```json")
	textContent = strings.TrimPrefix(textContent, "```")
	textContent = strings.TrimSuffix(textContent, "```")
	textContent = strings.TrimSpace(textContent)

	if textContent == "" {
		return nil, domainerror.NewClassifierError(
			domainerror.ErrCodeClassifierBadResponse,
			"no text content in response",
			domainerror.ErrClassifierBadResponse,
		)
	}

	var raw geminiWorkCode
	if err := json.Unmarshal([]byte(textContent), &raw); err != nil {
		return nil, domainerror.NewClassifierError(
			domainerror.ErrCodeClassifierBadResponse,
			"failed to parse gemini response",
			err,
		)
	}

	name, ok := entity.ConstructionTypeName(raw.Code)
	if !ok {
		return nil, domainerror.NewClassifierError(
			domainerror.ErrCodeClassifierBadResponse,
			fmt.Sprintf("gemini suggested unknown work code %q", raw.Code),
			domainerror.ErrClassifierBadResponse,
		)
	}

	confidence := raw.Confidence
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}

	return &adapter.WorkCodeSuggestion{
		Code:       raw.Code,
		Name:       name,
		Confidence: confidence,
		Reasoning:  raw.Reasoning,
	}, nil
}
