package models

// TranslationSource says where a translation came from.
type TranslationSource string

// Translation sources.
const (
	TranslationSourceCache    TranslationSource = "cache"
	TranslationSourceRemote   TranslationSource = "remote"
	TranslationSourceFallback TranslationSource = "fallback"
)

// TranslationResult is the best-effort translation of a sentence. It always
// carries some text, possibly produced by the local glossary.
type TranslationResult struct {
	Text       string            `json:"text"`
	Translated string            `json:"translated"`
	Source     string            `json:"source_language"`
	Target     string            `json:"target_language"`
	Provider   string            `json:"provider,omitempty"`
	Origin     TranslationSource `json:"origin"`
	Cached     bool              `json:"cached"`
	Fallback   bool              `json:"fallback"`
}

// TranslateRequest is the body of POST /v1/translate.
type TranslateRequest struct {
	Text           string `json:"text" validate:"required,max=5000"`
	SourceLanguage string `json:"source_language" validate:"omitempty,min=2,max=10"`
	TargetLanguage string `json:"target_language" validate:"omitempty,min=2,max=10"`
}
