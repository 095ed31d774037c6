package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/secure"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"phraseapp/internal/config"
	"phraseapp/internal/i18n"
	"phraseapp/internal/middleware"
	"phraseapp/internal/observability"
	"phraseapp/internal/services"
	contextutils "phraseapp/internal/utils"
	"phraseapp/internal/version"
)

// ServiceName identifies the API in traces, logs and /v1/version
const ServiceName = "phrase-backend"

// NewRouter creates the gin engine with all middleware and routes. A nil
// schemaLoader disables request body schema validation.
func NewRouter(
	cfg *config.Config,
	sentenceService services.SentenceServiceInterface,
	catalog *i18n.Catalog,
	schemaLoader *middleware.SchemaLoader,
	logger *observability.Logger,
) *gin.Engine {
	// Setup Gin mode
	gin.SetMode(gin.ReleaseMode)
	if cfg.Server.Debug {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	router.Use(middleware.ErrorRecoveryMiddleware(logger))

	// HTTP request logging using our observability logger
	router.Use(func(c *gin.Context) {
		start := time.Now()

		c.Next()

		statusCode := c.Writer.Status()
		fields := map[string]interface{}{
			"http.method":      c.Request.Method,
			"http.path":        c.Request.URL.Path,
			"http.status_code": statusCode,
			"http.latency_ms":  time.Since(start).Milliseconds(),
			"http.client_ip":   c.ClientIP(),
			"http.user_agent":  c.Request.UserAgent(),
		}
		if len(c.Errors) > 0 {
			fields["http.error"] = c.Errors.String()
		}

		switch {
		case statusCode >= 500:
			fields["http.error_type"] = "server_error"
			logger.Error(c.Request.Context(), "HTTP request failed", nil, fields)
		case statusCode >= 400:
			fields["http.error_type"] = "client_error"
			logger.Warn(c.Request.Context(), "HTTP request warning", fields)
		default:
			logger.Info(c.Request.Context(), "HTTP request", fields)
		}
	})

	// Health check endpoint (defined before any middleware)
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": ServiceName})
	})

	// OpenTelemetry tracing and context propagation with automatic error attributes
	router.Use(observability.GinMiddlewareWithErrorHandling(ServiceName)...)

	// Disable automatic redirection for trailing slashes, which is better for APIs
	router.RedirectTrailingSlash = false

	// Setup CORS middleware
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.Server.CORSOrigins
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Accept-Language", "X-Requested-With"}
	corsConfig.AllowMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	// Cookie session carrying the builder session id
	store := cookie.NewStore([]byte(cfg.Server.SessionSecret))
	sessionOpts := sessions.Options{
		Path:     config.SessionPath,
		MaxAge:   int(config.SessionMaxAge.Seconds()),
		HttpOnly: config.SessionHTTPOnly,
		Secure:   config.SessionSecure,
	}
	if cfg.Server.Debug {
		sessionOpts.SameSite = http.SameSiteDefaultMode
	} else {
		sessionOpts.SameSite = http.SameSiteLaxMode
		sessionOpts.Secure = true
	}
	store.Options(sessionOpts)
	router.Use(sessions.Sessions(config.SessionName, store))

	// Security middleware
	secureConfig := secure.DefaultConfig()
	secureConfig.SSLRedirect = false
	secureConfig.IsDevelopment = cfg.Server.Debug || cfg.IsTest
	secureConfig.ContentSecurityPolicy = config.DefaultCSP
	router.Use(secure.New(secureConfig))

	if schemaLoader != nil {
		router.Use(middleware.RequestValidationMiddleware(logger, schemaLoader))
	}

	sentenceHandler := NewSentenceHandler(sentenceService, cfg, logger)
	translationHandler := NewTranslationHandler(sentenceService, cfg, logger)
	uiHandler := NewUIHandler(catalog, logger)

	v1 := router.Group("/v1")
	{
		v1.GET("/version", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"backend": version.Get(ServiceName),
				"lexicon": sentenceService.LexiconStats(),
			})
		})

		v1.GET("/options", sentenceHandler.GetOptions)

		verbs := v1.Group("/verbs")
		{
			verbs.GET("", sentenceHandler.GetVerbs)
			verbs.GET("/:verb/conjugations", sentenceHandler.GetConjugations)
			verbs.GET("/:verb/example", sentenceHandler.ExampleSentence)
		}

		sentences := v1.Group("/sentences")
		{
			sentences.POST("", sentenceHandler.BuildSentence)
			sentences.POST("/random", sentenceHandler.RandomSentence)
		}

		challenges := v1.Group("/challenges")
		{
			challenges.POST("", sentenceHandler.NewChallenge)
			challenges.GET("/solution", sentenceHandler.GetChallengeSolution)
		}

		v1.POST("/translate", translationHandler.TranslateText)
		v1.DELETE("/session", sentenceHandler.EndSession)

		v1.GET("/ui/messages", uiHandler.GetMessages)
	}

	// Automatic route listing at root path
	routeListing := NewRouteListingHandler(ServiceName)
	router.GET("/", routeListing.GetRouteListingJSON)

	router.NoRoute(func(c *gin.Context) {
		path := c.Request.URL.Path
		if strings.HasPrefix(path, "/v1/") {
			HandleAppError(c, contextutils.NewAppError(contextutils.ErrorCodeRecordNotFound, contextutils.SeverityInfo,
				"Endpoint not found", path))
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})

	routeListing.CollectRoutes(router)

	return router
}
