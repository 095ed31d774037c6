package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_LoadsFromYAML(t *testing.T) {
	tempFile := createTempConfigFile(t, `
server:
  port: "9090"
  session_secret: "test-secret"
  debug: true
  log_level: "debug"
  session_idle_timeout: "30m"
  cors_origins:
    - "http://test:3000"
    - "http://test:3001"

builder:
  strict_unknown_verbs: true
  seed: 42
  adverb_probability: 0
  framing_probability: 0.1

translation:
  enabled: true
  default_provider: google
  timeout: "2s"
  target_language: "en"
  providers:
    google:
      code: google
      base_url: "http://translate.test"
      api_endpoint: "/v2"
      api_key: "secret"
      max_text_length: 100

open_telemetry:
  endpoint: "test:4317"
  protocol: "http"
  service_name: "test-service"
  enable_tracing: false
  sampling_rate: 0.5
`)
	defer func() { _ = os.Remove(tempFile) }()

	t.Setenv("PHRASE_CONFIG_FILE", tempFile)

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "test-secret", cfg.Server.SessionSecret)
	assert.True(t, cfg.Server.Debug)
	assert.Equal(t, 30*time.Minute, cfg.Server.SessionIdleTimeout)
	assert.Equal(t, []string{"http://test:3000", "http://test:3001"}, cfg.Server.CORSOrigins)

	assert.True(t, cfg.Builder.StrictUnknownVerbs)
	assert.Equal(t, int64(42), cfg.Builder.Seed)
	assert.Equal(t, 0.0, cfg.Builder.AdverbProbability)
	assert.Equal(t, 0.1, cfg.Builder.FramingProbability)
	// untouched keys keep their defaults
	assert.Equal(t, DefaultObjectPronounProbability, cfg.Builder.ObjectPronounProbability)

	assert.True(t, cfg.Translation.Enabled)
	assert.Equal(t, 2*time.Second, cfg.Translation.Timeout)
	assert.Equal(t, "fr", cfg.Translation.SourceLanguage)
	assert.Equal(t, "en", cfg.Translation.TargetLanguage)
	assert.Equal(t, "secret", cfg.Translation.Providers["google"].APIKey)
	assert.Contains(t, cfg.Translation.Providers, "libretranslate")

	assert.Equal(t, "http", cfg.OpenTelemetry.Protocol)
	assert.Equal(t, 0.5, cfg.OpenTelemetry.SamplingRate)
}

func TestNewConfig_DefaultsWithoutFile(t *testing.T) {
	t.Setenv("PHRASE_CONFIG_FILE", "")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.False(t, cfg.Translation.Enabled)
	assert.Equal(t, DefaultTranslationTimeout, cfg.Translation.Timeout)
	assert.Equal(t, DefaultAdverbProbability, cfg.Builder.AdverbProbability)
}

func TestNewConfig_MissingExplicitFile(t *testing.T) {
	t.Setenv("PHRASE_CONFIG_FILE", "/nonexistent/phrase.yaml")

	_, err := NewConfig()
	assert.Error(t, err)
}

func TestNewConfig_EnvironmentOverrides(t *testing.T) {
	tempFile := createTempConfigFile(t, `
server:
  port: "9090"
`)
	defer func() { _ = os.Remove(tempFile) }()

	t.Setenv("PHRASE_CONFIG_FILE", tempFile)
	t.Setenv("SERVER_PORT", "7070")
	t.Setenv("SERVER_CORS_ORIGINS", "http://a,http://b")
	t.Setenv("BUILDER_STRICT_UNKNOWN_VERBS", "true")
	t.Setenv("BUILDER_ADVERB_PROBABILITY", "0.75")
	t.Setenv("TRANSLATION_TIMEOUT", "750ms")
	t.Setenv("TRANSLATION_PROVIDERS_GOOGLE_API_KEY", "from-env")
	t.Setenv("OPEN_TELEMETRY_ENABLE_METRICS", "true")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "7070", cfg.Server.Port)
	assert.Equal(t, []string{"http://a", "http://b"}, cfg.Server.CORSOrigins)
	assert.True(t, cfg.Builder.StrictUnknownVerbs)
	assert.Equal(t, 0.75, cfg.Builder.AdverbProbability)
	assert.Equal(t, 750*time.Millisecond, cfg.Translation.Timeout)
	assert.Equal(t, "from-env", cfg.Translation.Providers["google"].APIKey)
	assert.True(t, cfg.OpenTelemetry.EnableMetrics)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "defaults are valid", mutate: func(_ *Config) {}},
		{
			name:    "probability above one",
			mutate:  func(c *Config) { c.Builder.FramingProbability = 1.5 },
			wantErr: "builder.framing_probability",
		},
		{
			name:    "negative probability",
			mutate:  func(c *Config) { c.Builder.ObjectPronounProbability = -0.1 },
			wantErr: "builder.object_pronoun_probability",
		},
		{
			name:    "zero timeout",
			mutate:  func(c *Config) { c.Translation.Timeout = 0 },
			wantErr: "translation.timeout",
		},
		{
			name: "unknown provider",
			mutate: func(c *Config) {
				c.Translation.Enabled = true
				c.Translation.DefaultProvider = "deepl"
			},
			wantErr: "deepl",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

// createTempConfigFile creates a temporary config file for testing
func createTempConfigFile(t *testing.T, content string) string {
	tempFile, err := os.CreateTemp("", "config-*.yaml")
	require.NoError(t, err)
	defer func() {
		if err := tempFile.Close(); err != nil {
			t.Logf("Failed to close temp file: %v", err)
		}
	}()

	_, err = tempFile.WriteString(content)
	require.NoError(t, err)

	return tempFile.Name()
}
