// Package config handles application configuration loading from YAML and environment variables.
package config

import (
	"errors"
	"io/fs"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	contextutils "phraseapp/internal/utils"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	Server ServerConfig `json:"server" yaml:"server"`

	// Sentence builder configuration
	Builder BuilderConfig `json:"builder" yaml:"builder"`

	// Translation configuration
	Translation TranslationConfig `json:"translation" yaml:"translation"`

	// OpenTelemetry Configuration
	OpenTelemetry OpenTelemetryConfig `json:"open_telemetry" yaml:"open_telemetry"`

	// Internal fields
	IsTest bool `json:"is_test" yaml:"is_test"`
}

// ServerConfig represents server configuration
type ServerConfig struct {
	Port          string   `json:"port" yaml:"port"`
	SessionSecret string   `json:"session_secret" yaml:"session_secret"`
	Debug         bool     `json:"debug" yaml:"debug"`
	LogLevel      string   `json:"log_level" yaml:"log_level"`
	CORSOrigins   []string `json:"cors_origins" yaml:"cors_origins"`
	// SessionIdleTimeout is how long an idle builder session (random source
	// and translation cache) is kept before the sweeper discards it.
	SessionIdleTimeout time.Duration `json:"session_idle_timeout" yaml:"session_idle_timeout"`
	SessionSweepEvery  time.Duration `json:"session_sweep_every" yaml:"session_sweep_every"`
}

// BuilderConfig controls sentence decoration and unknown-verb handling
type BuilderConfig struct {
	// StrictUnknownVerbs renders "[verb - conjugaison non disponible]" instead
	// of the mechanical suffix conjugation for verbs missing from the lexicon.
	StrictUnknownVerbs bool `json:"strict_unknown_verbs" yaml:"strict_unknown_verbs"`
	// Seed for per-session random sources; 0 seeds from the clock.
	Seed int64 `json:"seed" yaml:"seed"`
	// LexiconFile replaces the embedded lexicon when set.
	LexiconFile              string  `json:"lexicon_file" yaml:"lexicon_file"`
	AdverbProbability        float64 `json:"adverb_probability" yaml:"adverb_probability"`
	FramingProbability       float64 `json:"framing_probability" yaml:"framing_probability"`
	ArticleProbability       float64 `json:"article_probability" yaml:"article_probability"`
	ObjectPronounProbability float64 `json:"object_pronoun_probability" yaml:"object_pronoun_probability"`
}

// TranslationProviderConfig describes one remote translation endpoint
type TranslationProviderConfig struct {
	Name          string `json:"name" yaml:"name"`
	Code          string `json:"code" yaml:"code"`
	BaseURL       string `json:"base_url" yaml:"base_url"`
	APIEndpoint   string `json:"api_endpoint" yaml:"api_endpoint"`
	APIKey        string `json:"api_key" yaml:"api_key"`
	MaxTextLength int    `json:"max_text_length" yaml:"max_text_length"`
}

// TranslationConfig represents translation configuration
type TranslationConfig struct {
	Enabled         bool                                 `json:"enabled" yaml:"enabled"`
	DefaultProvider string                               `json:"default_provider" yaml:"default_provider"`
	Providers       map[string]TranslationProviderConfig `json:"providers" yaml:"providers"`
	SourceLanguage  string                               `json:"source_language" yaml:"source_language"`
	TargetLanguage  string                               `json:"target_language" yaml:"target_language"`
	Timeout         time.Duration                        `json:"timeout" yaml:"timeout"`
	CacheEnabled    bool                                 `json:"cache_enabled" yaml:"cache_enabled"`
	CacheMaxEntries int                                  `json:"cache_max_entries" yaml:"cache_max_entries"`
	// BreakerThreshold is the number of consecutive remote failures after
	// which remote calls are skipped for BreakerCooldown.
	BreakerThreshold int           `json:"breaker_threshold" yaml:"breaker_threshold"`
	BreakerCooldown  time.Duration `json:"breaker_cooldown" yaml:"breaker_cooldown"`
}

// OpenTelemetryConfig holds all OpenTelemetry-related configuration
type OpenTelemetryConfig struct {
	Endpoint       string            `json:"endpoint" yaml:"endpoint"`               // Default: "localhost:4317"
	Protocol       string            `json:"protocol" yaml:"protocol"`               // "grpc" or "http", default: "grpc"
	Insecure       bool              `json:"insecure" yaml:"insecure"`               // Default: true (for localhost)
	Headers        map[string]string `json:"headers" yaml:"headers"`                 // For authenticated endpoints
	ServiceName    string            `json:"service_name" yaml:"service_name"`       // Default: "phrase-backend"
	ServiceVersion string            `json:"service_version" yaml:"service_version"` // From version package
	EnableTracing  bool              `json:"enable_tracing" yaml:"enable_tracing"`
	EnableMetrics  bool              `json:"enable_metrics" yaml:"enable_metrics"`
	EnableLogging  bool              `json:"enable_logging" yaml:"enable_logging"`
	UseAutoSDK     bool              `json:"use_auto_sdk" yaml:"use_auto_sdk"`
	SamplingRate   float64           `json:"sampling_rate" yaml:"sampling_rate"` // Default: 1.0 (100%)
}

// Default returns a configuration usable without any config file: local
// server, default decoration probabilities, remote translation disabled so
// that the local fallback dictionary answers.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:               "8080",
			SessionSecret:      "change-me-phrase-session-secret",
			LogLevel:           "info",
			CORSOrigins:        []string{"http://localhost:3000"},
			SessionIdleTimeout: DefaultSessionIdleTimeout,
			SessionSweepEvery:  DefaultSessionSweepInterval,
		},
		Builder: BuilderConfig{
			AdverbProbability:        DefaultAdverbProbability,
			FramingProbability:       DefaultFramingProbability,
			ArticleProbability:       DefaultArticleProbability,
			ObjectPronounProbability: DefaultObjectPronounProbability,
		},
		Translation: TranslationConfig{
			Enabled:         false,
			DefaultProvider: "libretranslate",
			Providers: map[string]TranslationProviderConfig{
				"libretranslate": {
					Name:          "LibreTranslate",
					Code:          "libretranslate",
					BaseURL:       "https://libretranslate.com",
					APIEndpoint:   "/translate",
					MaxTextLength: 5000,
				},
				"google": {
					Name:          "Google Translate",
					Code:          "google",
					BaseURL:       "https://translation.googleapis.com",
					APIEndpoint:   "/language/translate/v2",
					MaxTextLength: 5000,
				},
			},
			SourceLanguage:   "fr",
			TargetLanguage:   "pt",
			Timeout:          DefaultTranslationTimeout,
			CacheEnabled:     true,
			CacheMaxEntries:  1000,
			BreakerThreshold: 3,
			BreakerCooldown:  30 * time.Second,
		},
		OpenTelemetry: OpenTelemetryConfig{
			Endpoint:     "localhost:4317",
			Protocol:     "grpc",
			Insecure:     true,
			ServiceName:  "phrase-backend",
			SamplingRate: 1.0,
		},
	}
}

// Validate checks value ranges that the YAML decoder cannot express
func (c *Config) Validate() error {
	probabilities := map[string]float64{
		"builder.adverb_probability":         c.Builder.AdverbProbability,
		"builder.framing_probability":        c.Builder.FramingProbability,
		"builder.article_probability":        c.Builder.ArticleProbability,
		"builder.object_pronoun_probability": c.Builder.ObjectPronounProbability,
	}
	for name, p := range probabilities {
		if p < 0 || p > 1 {
			return contextutils.NewAppError(contextutils.ErrorCodeValidationFailed, contextutils.SeverityError,
				"Invalid configuration", name+" must be within [0, 1]")
		}
	}

	if c.Translation.Timeout <= 0 {
		return contextutils.NewAppError(contextutils.ErrorCodeValidationFailed, contextutils.SeverityError,
			"Invalid configuration", "translation.timeout must be positive")
	}

	if c.Translation.Enabled {
		if _, ok := c.Translation.Providers[c.Translation.DefaultProvider]; !ok {
			return contextutils.NewAppError(contextutils.ErrorCodeValidationFailed, contextutils.SeverityError,
				"Invalid configuration", "translation.default_provider "+c.Translation.DefaultProvider+" is not configured")
		}
	}

	return nil
}

// NewConfig loads configuration from YAML file first, then overrides with environment variables
func NewConfig() (result0 *Config, err error) {
	config, err := loadConfigWithOverrides()
	if err != nil {
		return nil, contextutils.WrapErrorf(contextutils.ErrInternalError, "failed to load config: %w", err)
	}

	config.overrideFromEnv()

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// overrideFromEnv overrides config values with environment variables using reflection
func (c *Config) overrideFromEnv() {
	overrideStructFromEnvWithPrefix(c, "")
}

var durationType = reflect.TypeOf(time.Duration(0))

// overrideStructFromEnvWithPrefix recursively overrides struct fields with environment variables
func overrideStructFromEnvWithPrefix(v interface{}, prefix string) {
	val := reflect.ValueOf(v)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	if val.Kind() != reflect.Struct {
		return
	}

	typ := val.Type()
	for i := 0; i < val.NumField(); i++ {
		field := val.Field(i)
		fieldType := typ.Field(i)

		if !field.CanSet() {
			continue
		}

		yamlTag := strings.Split(fieldType.Tag.Get("yaml"), ",")[0]
		if yamlTag == "" || yamlTag == "-" {
			continue
		}

		envKey := strings.ToUpper(strings.ReplaceAll(yamlTag, "-", "_"))
		if prefix != "" {
			envKey = prefix + "_" + envKey
		}

		// time.Duration is an int64 kind; accept "3s" style values first
		if field.Type() == durationType {
			if envVal := os.Getenv(envKey); envVal != "" {
				if d, err := time.ParseDuration(envVal); err == nil {
					field.SetInt(int64(d))
				}
			}
			continue
		}

		switch field.Kind() {
		case reflect.String:
			if envVal := os.Getenv(envKey); envVal != "" {
				field.SetString(envVal)
			}
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			if envVal := os.Getenv(envKey); envVal != "" {
				if intVal, err := strconv.ParseInt(envVal, 10, 64); err == nil {
					field.SetInt(intVal)
				}
			}
		case reflect.Float32, reflect.Float64:
			if envVal := os.Getenv(envKey); envVal != "" {
				if floatVal, err := strconv.ParseFloat(envVal, 64); err == nil {
					field.SetFloat(floatVal)
				}
			}
		case reflect.Bool:
			if envVal := os.Getenv(envKey); envVal != "" {
				if boolVal, err := strconv.ParseBool(envVal); err == nil {
					field.SetBool(boolVal)
				}
			}
		case reflect.Slice:
			if envVal := os.Getenv(envKey); envVal != "" {
				if field.Type().Elem().Kind() == reflect.String {
					slice := strings.Split(envVal, ",")
					field.Set(reflect.ValueOf(slice))
				}
			}
		case reflect.Struct:
			if field.CanAddr() {
				overrideStructFromEnvWithPrefix(field.Addr().Interface(), envKey)
			}
		case reflect.Map:
			overrideProviderMapFromEnv(field, envKey)
		}
	}
}

// overrideProviderMapFromEnv lets TRANSLATION_PROVIDERS_<CODE>_API_KEY style
// variables reach entries of the provider map.
func overrideProviderMapFromEnv(field reflect.Value, prefix string) {
	if field.IsNil() || field.Type().Key().Kind() != reflect.String || field.Type().Elem().Kind() != reflect.Struct {
		return
	}
	for _, key := range field.MapKeys() {
		entry := reflect.New(field.Type().Elem())
		entry.Elem().Set(field.MapIndex(key))
		overrideStructFromEnvWithPrefix(entry.Interface(), prefix+"_"+strings.ToUpper(key.String()))
		field.SetMapIndex(key, entry.Elem())
	}
}

// loadConfigWithOverrides loads the config file with potential local overrides
func loadConfigWithOverrides() (result0 *Config, err error) {
	if envPath := os.Getenv("PHRASE_CONFIG_FILE"); envPath != "" {
		config, err := loadConfigFromFile(envPath)
		if err != nil {
			return nil, contextutils.WrapErrorf(contextutils.ErrInternalError, "failed to load config from %s: %w", envPath, err)
		}
		return config, nil
	}

	config, err := loadConfigFromFile("config.yaml")
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return config, err
}

// loadConfigFromFile loads configuration from a specific file on top of the defaults
func loadConfigFromFile(path string) (result0 *Config, err error) {
	yamlFile, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	config := Default()
	if err := yaml.Unmarshal(yamlFile, config); err != nil {
		return nil, err
	}

	return config, nil
}
