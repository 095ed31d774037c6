package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"phraseapp/internal/config"
	"phraseapp/internal/observability"
	"phraseapp/internal/serviceinterfaces"
	contextutils "phraseapp/internal/utils"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
)

// TranslationServiceInterface defines the interface for translation services
type TranslationServiceInterface = serviceinterfaces.TranslationService

// newProviderHTTPClient returns a traced client. The per-call deadline comes
// from the context; the client timeout is only a backstop.
func newProviderHTTPClient() *http.Client {
	return &http.Client{
		Timeout:   config.DefaultHTTPTimeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
}

// checkRequest applies the checks shared by all remote providers
func checkRequest(req serviceinterfaces.TranslateRequest, providerConfig config.TranslationProviderConfig) error {
	if req.SourceLanguage == "" || req.TargetLanguage == "" {
		return contextutils.NewAppError(contextutils.ErrorCodeInvalidInput, contextutils.SeverityWarn, "Source and target language are required", "")
	}
	if strings.TrimSpace(req.Text) == "" {
		return contextutils.NewAppError(contextutils.ErrorCodeInvalidInput, contextutils.SeverityWarn, "Text cannot be empty", "")
	}
	if providerConfig.MaxTextLength > 0 && len(req.Text) > providerConfig.MaxTextLength {
		return contextutils.NewAppError(contextutils.ErrorCodeInvalidInput, contextutils.SeverityWarn,
			fmt.Sprintf("Text cannot exceed %d characters", providerConfig.MaxTextLength), "")
	}
	return nil
}

// postJSON sends body to endpoint and decodes a 200 response into out
func postJSON(ctx context.Context, client *http.Client, endpoint, provider string, body, out interface{}) error {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return contextutils.WrapError(err, "failed to marshal request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(jsonBody))
	if err != nil {
		return contextutils.WrapError(err, "failed to create request")
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return contextutils.NewAppErrorWithCause(contextutils.ErrorCodeTimeout, contextutils.SeverityWarn,
				provider+" request timed out", "", err)
		}
		return contextutils.NewAppErrorWithCause(contextutils.ErrorCodeTranslationFailed, contextutils.SeverityWarn,
			provider+" request failed", "", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return contextutils.NewAppError(contextutils.ErrorCodeTranslationFailed, contextutils.SeverityWarn,
			fmt.Sprintf("%s API error: %d", provider, resp.StatusCode), strings.TrimSpace(string(respBody)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return contextutils.NewAppErrorWithCause(contextutils.ErrorCodeTranslationFailed, contextutils.SeverityWarn,
			"failed to decode "+provider+" response", "", err)
	}
	return nil
}

// GoogleTranslationService handles translation requests using Google Translate API
type GoogleTranslationService struct {
	provider   config.TranslationProviderConfig
	httpClient *http.Client
	logger     *observability.Logger
}

// NewGoogleTranslationService creates a new Google translation service instance
func NewGoogleTranslationService(provider config.TranslationProviderConfig, logger *observability.Logger) *GoogleTranslationService {
	return &GoogleTranslationService{
		provider:   provider,
		httpClient: newProviderHTTPClient(),
		logger:     logger,
	}
}

// GoogleTranslateRequest represents the request format for Google Translate API
type GoogleTranslateRequest struct {
	Q      []string `json:"q"`
	Target string   `json:"target"`
	Source string   `json:"source,omitempty"`
	Format string   `json:"format"`
}

// GoogleTranslateResponse represents the response format from Google Translate API
type GoogleTranslateResponse struct {
	Data struct {
		Translations []struct {
			TranslatedText         string `json:"translatedText"`
			DetectedSourceLanguage string `json:"detectedSourceLanguage"`
		} `json:"translations"`
	} `json:"data"`
}

// Translate translates text using the Google Translate v2 API
func (s *GoogleTranslationService) Translate(ctx context.Context, req serviceinterfaces.TranslateRequest) (result *serviceinterfaces.TranslateResponse, err error) {
	ctx, span := observability.TraceTranslationFunction(ctx, "translate_google",
		append(observability.AttributeLanguagePair(req.SourceLanguage, req.TargetLanguage),
			observability.AttributeProvider(s.provider.Code),
			attribute.Int("translation.text_length", len(req.Text)),
		)...,
	)
	defer observability.FinishSpan(span, &err)

	if s.provider.APIKey == "" {
		return nil, contextutils.NewAppError(contextutils.ErrorCodeServiceUnavailable, contextutils.SeverityError, "Google Translate API key not configured", "")
	}
	if err := checkRequest(req, s.provider); err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s%s?key=%s", s.provider.BaseURL, s.provider.APIEndpoint, url.QueryEscape(s.provider.APIKey))
	var googleResp GoogleTranslateResponse
	if err := postJSON(ctx, s.httpClient, endpoint, "Google Translate", GoogleTranslateRequest{
		Q:      []string{req.Text},
		Target: req.TargetLanguage,
		Source: req.SourceLanguage,
		Format: "text",
	}, &googleResp); err != nil {
		return nil, err
	}

	if len(googleResp.Data.Translations) == 0 {
		return nil, contextutils.NewAppError(contextutils.ErrorCodeTranslationFailed, contextutils.SeverityWarn, "No translation returned from Google Translate API", "")
	}

	return &serviceinterfaces.TranslateResponse{
		TranslatedText: googleResp.Data.Translations[0].TranslatedText,
		SourceLanguage: req.SourceLanguage,
		TargetLanguage: req.TargetLanguage,
		Provider:       s.provider.Code,
	}, nil
}

// ValidateLanguageCode validates that a language code is properly formatted
func (s *GoogleTranslationService) ValidateLanguageCode(langCode string) error {
	return validateLanguageCode(langCode)
}

// GetSupportedLanguages returns the target languages this deployment offers
func (s *GoogleTranslationService) GetSupportedLanguages() []string {
	return []string{"pt", "en", "es", "de", "it", "nl"}
}

// LibreTranslateService talks to a LibreTranslate instance
type LibreTranslateService struct {
	provider   config.TranslationProviderConfig
	httpClient *http.Client
	logger     *observability.Logger
}

// NewLibreTranslateService creates a LibreTranslate client
func NewLibreTranslateService(provider config.TranslationProviderConfig, logger *observability.Logger) *LibreTranslateService {
	return &LibreTranslateService{
		provider:   provider,
		httpClient: newProviderHTTPClient(),
		logger:     logger,
	}
}

// LibreTranslateRequest is the POST /translate body
type LibreTranslateRequest struct {
	Q      string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
	Format string `json:"format"`
	APIKey string `json:"api_key,omitempty"`
}

// LibreTranslateResponse is the POST /translate answer
type LibreTranslateResponse struct {
	TranslatedText string `json:"translatedText"`
}

// Translate translates text with LibreTranslate
func (s *LibreTranslateService) Translate(ctx context.Context, req serviceinterfaces.TranslateRequest) (result *serviceinterfaces.TranslateResponse, err error) {
	ctx, span := observability.TraceTranslationFunction(ctx, "translate_libretranslate",
		append(observability.AttributeLanguagePair(req.SourceLanguage, req.TargetLanguage),
			observability.AttributeProvider(s.provider.Code),
			attribute.Int("translation.text_length", len(req.Text)),
		)...,
	)
	defer observability.FinishSpan(span, &err)

	if err := checkRequest(req, s.provider); err != nil {
		return nil, err
	}

	var libreResp LibreTranslateResponse
	if err := postJSON(ctx, s.httpClient, s.provider.BaseURL+s.provider.APIEndpoint, "LibreTranslate", LibreTranslateRequest{
		Q:      req.Text,
		Source: req.SourceLanguage,
		Target: req.TargetLanguage,
		Format: "text",
		APIKey: s.provider.APIKey,
	}, &libreResp); err != nil {
		return nil, err
	}

	if libreResp.TranslatedText == "" {
		return nil, contextutils.NewAppError(contextutils.ErrorCodeTranslationFailed, contextutils.SeverityWarn, "No translation returned from LibreTranslate", "")
	}

	return &serviceinterfaces.TranslateResponse{
		TranslatedText: libreResp.TranslatedText,
		SourceLanguage: req.SourceLanguage,
		TargetLanguage: req.TargetLanguage,
		Provider:       s.provider.Code,
	}, nil
}

// ValidateLanguageCode validates that a language code is properly formatted
func (s *LibreTranslateService) ValidateLanguageCode(langCode string) error {
	return validateLanguageCode(langCode)
}

// GetSupportedLanguages returns the target languages this deployment offers
func (s *LibreTranslateService) GetSupportedLanguages() []string {
	return []string{"pt", "en", "es", "de", "it"}
}

// NoopTranslationService is a no-operation implementation for testing and development
type NoopTranslationService struct{}

// NewNoopTranslationService creates a new noop translation service instance
func NewNoopTranslationService() *NoopTranslationService {
	return &NoopTranslationService{}
}

// Translate returns the original text unchanged (no-op)
func (s *NoopTranslationService) Translate(_ context.Context, req serviceinterfaces.TranslateRequest) (*serviceinterfaces.TranslateResponse, error) {
	return &serviceinterfaces.TranslateResponse{
		TranslatedText: req.Text,
		SourceLanguage: req.SourceLanguage,
		TargetLanguage: req.TargetLanguage,
		Provider:       "noop",
		Confidence:     1.0,
	}, nil
}

// ValidateLanguageCode validates that a language code is properly formatted
func (s *NoopTranslationService) ValidateLanguageCode(langCode string) error {
	return validateLanguageCode(langCode)
}

// GetSupportedLanguages returns a list of supported target languages for translation
func (s *NoopTranslationService) GetSupportedLanguages() []string {
	return []string{"en", "es", "fr", "de", "it", "pt"}
}

func validateLanguageCode(langCode string) error {
	if !contextutils.IsValidLanguageCode(langCode) {
		return contextutils.NewAppError(contextutils.ErrorCodeInvalidInput, contextutils.SeverityWarn, "Invalid language code format", langCode)
	}
	return nil
}

// NewTranslationService returns the remote provider named by the
// configuration. A disabled or unknown provider yields nil: callers then rely
// on the local glossary only.
func NewTranslationService(cfg *config.TranslationConfig, logger *observability.Logger) TranslationServiceInterface {
	if !cfg.Enabled {
		return nil
	}

	providerConfig, exists := cfg.Providers[cfg.DefaultProvider]
	if !exists {
		return nil
	}

	switch providerConfig.Code {
	case "google":
		return NewGoogleTranslationService(providerConfig, logger)
	case "libretranslate":
		return NewLibreTranslateService(providerConfig, logger)
	case "noop":
		return NewNoopTranslationService()
	default:
		logger.Warn(context.Background(), "Unsupported translation provider, remote translation disabled", map[string]interface{}{
			"provider": providerConfig.Code,
		})
		return nil
	}
}

// remoteTimeout clamps the configured per-call timeout
func remoteTimeout(d time.Duration) time.Duration {
	if d <= 0 {
		return config.DefaultTranslationTimeout
	}
	return d
}
