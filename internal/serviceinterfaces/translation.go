// Package serviceinterfaces holds the contracts shared between services and
// the code that swaps in their implementations.
package serviceinterfaces

import "context"

// TranslateRequest represents a request to translate text
type TranslateRequest struct {
	Text           string `json:"text"`
	TargetLanguage string `json:"target_language"`
	SourceLanguage string `json:"source_language,omitempty"`
}

// TranslateResponse represents the response from a translation service
type TranslateResponse struct {
	TranslatedText string  `json:"translated_text"`
	SourceLanguage string  `json:"source_language"`
	TargetLanguage string  `json:"target_language"`
	Provider       string  `json:"provider"`
	Confidence     float64 `json:"confidence,omitempty"`
}

// TranslationService defines the interface for remote translation providers.
// Implementations return an error on any failure; the best-effort layer above
// them decides what the caller sees.
type TranslationService interface {
	Translate(ctx context.Context, req TranslateRequest) (*TranslateResponse, error)
	ValidateLanguageCode(langCode string) error
	GetSupportedLanguages() []string
}
