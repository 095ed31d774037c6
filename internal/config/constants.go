package config

import "time"

// Timeout constants
const (
	// HTTP timeouts
	DefaultHTTPTimeout        = 60 * time.Second
	DefaultTranslationTimeout = 5 * time.Second
	ServerShutdownTimeout     = 30 * time.Second
	TelemetryShutdownTimeout  = 5 * time.Second

	// Session timeouts
	SessionMaxAge               = 7 * 24 * time.Hour // 7 days
	DefaultSessionIdleTimeout   = 2 * time.Hour
	DefaultSessionSweepInterval = 10 * time.Minute
)

// Decoration probabilities used by the original builder
const (
	DefaultAdverbProbability        = 0.3
	DefaultFramingProbability       = 0.4
	DefaultArticleProbability       = 0.5
	DefaultObjectPronounProbability = 0.2
)

// Session configuration constants
const (
	// Session settings
	SessionPath     = "/"
	SessionHTTPOnly = true
	SessionSecure   = false // Set to true in production with HTTPS

	// Session name
	SessionName = "phrase-session"

	// SessionIDKey is the cookie session key holding the builder session id
	SessionIDKey = "builder_session_id"
)

// Security configuration constants
const (
	// Content Security Policy
	DefaultCSP = "default-src 'self'; style-src 'self' 'unsafe-inline'; script-src 'self' 'unsafe-inline'; img-src 'self' data:;"
)
