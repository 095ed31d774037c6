// Package di provides dependency injection container for managing service lifecycle and dependencies.
package di

import (
	"context"
	"sync"

	"phraseapp/internal/config"
	"phraseapp/internal/i18n"
	"phraseapp/internal/lexicon"
	"phraseapp/internal/middleware"
	"phraseapp/internal/observability"
	"phraseapp/internal/sentence"
	"phraseapp/internal/services"
	contextutils "phraseapp/internal/utils"
)

// ServiceContainerInterface defines the interface for service containers
type ServiceContainerInterface interface {
	GetService(name string) (interface{}, error)
	GetSentenceService() (services.SentenceServiceInterface, error)
	GetSessionStore() (*services.SessionStore, error)
	GetLexicon() (*lexicon.Lexicon, error)
	GetCatalog() (*i18n.Catalog, error)
	GetSchemaLoader() (*middleware.SchemaLoader, error)
	GetConfig() *config.Config
	GetLogger() *observability.Logger
	Initialize(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

// ServiceContainer manages all service dependencies and lifecycle
type ServiceContainer struct {
	cfg           *config.Config
	logger        *observability.Logger
	services      map[string]interface{}
	mu            sync.RWMutex
	shutdownFuncs []func(context.Context) error
}

var _ ServiceContainerInterface = (*ServiceContainer)(nil)

// NewServiceContainer creates a new dependency injection container
func NewServiceContainer(cfg *config.Config, logger *observability.Logger) *ServiceContainer {
	return &ServiceContainer{
		cfg:      cfg,
		logger:   logger,
		services: make(map[string]interface{}),
	}
}

// Initialize sets up all services and their dependencies
func (sc *ServiceContainer) Initialize(ctx context.Context) error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if err := sc.initializeServices(ctx); err != nil {
		return contextutils.WrapErrorf(err, "failed to initialize services")
	}

	// Startup lifecycle services
	if err := sc.startupServices(ctx); err != nil {
		// Cleanup on failure
		_ = sc.cleanup(ctx)
		return contextutils.WrapErrorf(err, "failed to startup services")
	}

	return nil
}

// GetService retrieves a service by name with type assertion
func (sc *ServiceContainer) GetService(name string) (interface{}, error) {
	sc.mu.RLock()
	defer sc.mu.RUnlock()

	service, exists := sc.services[name]
	if !exists {
		return nil, contextutils.ErrorWithContextf("service %s not found", name)
	}
	return service, nil
}

// GetServiceAs performs type-safe service retrieval
func GetServiceAs[T any](sc *ServiceContainer, name string) (T, error) {
	var zero T
	service, err := sc.GetService(name)
	if err != nil {
		return zero, err
	}

	typed, ok := service.(T)
	if !ok {
		return zero, contextutils.ErrorWithContextf("service %s is not of expected type %T", name, zero)
	}
	return typed, nil
}

// GetSentenceService returns the sentence service
func (sc *ServiceContainer) GetSentenceService() (services.SentenceServiceInterface, error) {
	return GetServiceAs[services.SentenceServiceInterface](sc, "sentence")
}

// GetSessionStore returns the in-memory session store
func (sc *ServiceContainer) GetSessionStore() (*services.SessionStore, error) {
	return GetServiceAs[*services.SessionStore](sc, "sessions")
}

// GetLexicon returns the loaded lexicon
func (sc *ServiceContainer) GetLexicon() (*lexicon.Lexicon, error) {
	return GetServiceAs[*lexicon.Lexicon](sc, "lexicon")
}

// GetCatalog returns the UI message catalog
func (sc *ServiceContainer) GetCatalog() (*i18n.Catalog, error) {
	return GetServiceAs[*i18n.Catalog](sc, "catalog")
}

// GetSchemaLoader returns the request body schemas
func (sc *ServiceContainer) GetSchemaLoader() (*middleware.SchemaLoader, error) {
	return GetServiceAs[*middleware.SchemaLoader](sc, "schemas")
}

// GetConfig returns the configuration
func (sc *ServiceContainer) GetConfig() *config.Config {
	return sc.cfg
}

// GetLogger returns the logger
func (sc *ServiceContainer) GetLogger() *observability.Logger {
	return sc.logger
}

// Shutdown gracefully shuts down all services
func (sc *ServiceContainer) Shutdown(ctx context.Context) error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	return sc.cleanup(ctx)
}

// startupServices starts all services that implement the Lifecycle interface
func (sc *ServiceContainer) startupServices(ctx context.Context) error {
	for name, service := range sc.services {
		if lifecycleService, ok := service.(interface{ Startup(context.Context) error }); ok {
			sc.logger.Info(ctx, "Starting service", map[string]interface{}{"service": name})
			if err := lifecycleService.Startup(ctx); err != nil {
				return contextutils.WrapErrorf(err, "failed to startup service %s", name)
			}
			sc.logger.Info(ctx, "Service started successfully", map[string]interface{}{"service": name})
		}
	}
	return nil
}

// cleanup handles shutdown of all services
func (sc *ServiceContainer) cleanup(ctx context.Context) error {
	var errors []error

	for name := range sc.services {
		if lifecycleService, ok := sc.services[name].(interface{ Shutdown(context.Context) error }); ok {
			sc.logger.Info(ctx, "Shutting down service", map[string]interface{}{"service": name})
			if err := lifecycleService.Shutdown(ctx); err != nil {
				sc.logger.Error(ctx, "Failed to shutdown service", err, map[string]interface{}{"service": name})
				errors = append(errors, contextutils.WrapErrorf(err, "service %s shutdown failed", name))
			} else {
				sc.logger.Info(ctx, "Service shutdown successfully", map[string]interface{}{"service": name})
			}
		}
	}

	// Shutdown services in reverse order of initialization
	for i := len(sc.shutdownFuncs) - 1; i >= 0; i-- {
		if err := sc.shutdownFuncs[i](ctx); err != nil {
			errors = append(errors, err)
		}
	}
	sc.shutdownFuncs = nil

	if len(errors) > 0 {
		return contextutils.ErrorWithContextf("shutdown errors: %v", errors)
	}
	return nil
}

// initializeServices sets up all service dependencies
func (sc *ServiceContainer) initializeServices(ctx context.Context) error {
	lex, err := LoadLexicon(sc.cfg.Builder.LexiconFile)
	if err != nil {
		return err
	}
	sc.services["lexicon"] = lex
	stats := lex.Stats()
	sc.logger.Info(ctx, "Lexicon loaded", map[string]interface{}{
		"version":       stats.Version,
		"verbs":         stats.Verbs,
		"catalog_verbs": stats.CatalogVerbs,
		"file":          sc.cfg.Builder.LexiconFile,
	})

	builder, err := sentence.NewBuilder(lex, BuilderConfig(sc.cfg.Builder))
	if err != nil {
		return err
	}

	cacheSize := sc.cfg.Translation.CacheMaxEntries
	if !sc.cfg.Translation.CacheEnabled {
		cacheSize = -1
	}
	sessions := services.NewSessionStore(sc.cfg.Builder.Seed, cacheSize, sc.logger)
	sc.services["sessions"] = sessions
	sc.services["session_sweeper"] = newSessionSweeper(sessions, sc.cfg.Server.SessionSweepEvery, sc.cfg.Server.SessionIdleTimeout)

	remote := services.NewTranslationService(&sc.cfg.Translation, sc.logger)
	translator := services.NewBestEffortTranslator(&sc.cfg.Translation, remote, services.NewFallbackTranslator(lex), sc.logger)
	sc.services["translator"] = translator

	sc.services["sentence"] = services.NewSentenceService(lex, builder, sessions, translator, sc.cfg.Builder.StrictUnknownVerbs, sc.logger)

	catalog, err := i18n.NewCatalog(lex.Language())
	if err != nil {
		return err
	}
	sc.services["catalog"] = catalog

	schemas, err := middleware.DefaultSchemaLoader()
	if err != nil {
		return err
	}
	sc.services["schemas"] = schemas

	return nil
}

// LoadLexicon loads path, or the embedded lexicon when path is empty
func LoadLexicon(path string) (*lexicon.Lexicon, error) {
	if path == "" {
		return lexicon.Load()
	}
	return lexicon.LoadFile(path)
}

// BuilderConfig converts the builder section of the configuration
func BuilderConfig(cfg config.BuilderConfig) sentence.Config {
	return sentence.Config{
		Probabilities: sentence.Probabilities{
			Adverb:                 cfg.AdverbProbability,
			Framing:                cfg.FramingProbability,
			ArticleVsDemonstrative: cfg.ArticleProbability,
			ObjectPronoun:          cfg.ObjectPronounProbability,
		},
		StrictUnknownVerbs: cfg.StrictUnknownVerbs,
	}
}
