package services

import (
	"context"
	"sync"
	"testing"

	"phraseapp/internal/config"
	"phraseapp/internal/lexicon"
	"phraseapp/internal/observability"
	"phraseapp/internal/serviceinterfaces"

	"github.com/stretchr/testify/require"
)

func testLogger() *observability.Logger {
	return observability.NewLogger(&config.OpenTelemetryConfig{EnableLogging: false})
}

func loadLexicon(t *testing.T) *lexicon.Lexicon {
	t.Helper()
	lex, err := lexicon.Load()
	require.NoError(t, err)
	return lex
}

// fakeRemote is a scripted TranslationService
type fakeRemote struct {
	mu    sync.Mutex
	calls int
	fn    func(ctx context.Context, req serviceinterfaces.TranslateRequest) (*serviceinterfaces.TranslateResponse, error)
}

func (f *fakeRemote) Translate(ctx context.Context, req serviceinterfaces.TranslateRequest) (*serviceinterfaces.TranslateResponse, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	return f.fn(ctx, req)
}

func (f *fakeRemote) ValidateLanguageCode(langCode string) error {
	return validateLanguageCode(langCode)
}

func (f *fakeRemote) GetSupportedLanguages() []string {
	return []string{"pt"}
}

func (f *fakeRemote) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func echoRemote(prefix string) *fakeRemote {
	return &fakeRemote{fn: func(_ context.Context, req serviceinterfaces.TranslateRequest) (*serviceinterfaces.TranslateResponse, error) {
		return &serviceinterfaces.TranslateResponse{
			TranslatedText: prefix + req.Text,
			SourceLanguage: req.SourceLanguage,
			TargetLanguage: req.TargetLanguage,
			Provider:       "fake",
		}, nil
	}}
}

func testTranslationConfig() *config.TranslationConfig {
	cfg := config.Default().Translation
	return &cfg
}

type translationTestConfig = config.TranslationConfig
