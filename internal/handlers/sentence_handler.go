package handlers

import (
	"net/http"

	"phraseapp/internal/config"
	"phraseapp/internal/models"
	"phraseapp/internal/observability"
	"phraseapp/internal/services"

	"github.com/gin-gonic/gin"
)

// SentenceHandler serves the sentence builder endpoints
type SentenceHandler struct {
	sentenceService services.SentenceServiceInterface
	cfg             *config.Config
	logger          *observability.Logger
}

// NewSentenceHandler creates a new SentenceHandler instance
func NewSentenceHandler(sentenceService services.SentenceServiceInterface, cfg *config.Config, logger *observability.Logger) *SentenceHandler {
	return &SentenceHandler{
		sentenceService: sentenceService,
		cfg:             cfg,
		logger:          logger,
	}
}

// GetOptions lists pronouns, verbs, tenses, structures and complements
func (h *SentenceHandler) GetOptions(c *gin.Context) {
	_, span := observability.TraceHandlerFunction(c.Request.Context(), "get_options")
	defer observability.FinishSpan(span, nil)

	c.JSON(http.StatusOK, h.sentenceService.Options())
}

// GetVerbs returns the display verb catalog
func (h *SentenceHandler) GetVerbs(c *gin.Context) {
	_, span := observability.TraceHandlerFunction(c.Request.Context(), "get_verbs")
	defer observability.FinishSpan(span, nil)

	catalog := h.sentenceService.Catalog()
	c.JSON(http.StatusOK, gin.H{
		"verbs": catalog,
		"total": len(catalog),
	})
}

// GetConjugations returns the conjugation table of one verb
func (h *SentenceHandler) GetConjugations(c *gin.Context) {
	verb := c.Param("verb")
	ctx, span := observability.TraceHandlerFunction(c.Request.Context(), "get_conjugations", observability.AttributeVerb(verb))
	var err error
	defer observability.FinishSpan(span, &err)

	table, err := h.sentenceService.Conjugations(ctx, verb)
	if err != nil {
		h.logger.Warn(ctx, "Conjugation lookup failed", map[string]interface{}{"verb": verb, "error": err.Error()})
		HandleAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, table)
}

// BuildSentence renders a sentence for the posted selection
func (h *SentenceHandler) BuildSentence(c *gin.Context) {
	ctx, span := observability.TraceHandlerFunction(c.Request.Context(), "build_sentence")
	var err error
	defer observability.FinishSpan(span, &err)

	var req models.SentenceRequest
	if !bindJSON(c, &req) {
		return
	}

	sess := builderSession(c, h.sentenceService, h.logger)
	built, err := h.sentenceService.Build(ctx, sess, req)
	if err != nil {
		h.logger.Warn(ctx, "Sentence request rejected", map[string]interface{}{
			"pronoun":   string(req.Pronoun),
			"verb":      req.Verb,
			"tense":     string(req.Tense),
			"structure": string(req.Structure),
			"error":     err.Error(),
		})
		HandleAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, built)
}

// RandomSentence picks every element at random and renders the sentence
func (h *SentenceHandler) RandomSentence(c *gin.Context) {
	ctx, span := observability.TraceHandlerFunction(c.Request.Context(), "random_sentence")
	var err error
	defer observability.FinishSpan(span, &err)

	sess := builderSession(c, h.sentenceService, h.logger)
	built, err := h.sentenceService.Random(ctx, sess)
	if err != nil {
		h.logger.Error(ctx, "Random sentence failed", err)
		HandleAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, built)
}

// ExampleSentence renders an example sentence for the verb in the path
func (h *SentenceHandler) ExampleSentence(c *gin.Context) {
	verb := c.Param("verb")
	ctx, span := observability.TraceHandlerFunction(c.Request.Context(), "example_sentence", observability.AttributeVerb(verb))
	var err error
	defer observability.FinishSpan(span, &err)

	sess := builderSession(c, h.sentenceService, h.logger)
	built, err := h.sentenceService.Example(ctx, sess, verb)
	if err != nil {
		h.logger.Warn(ctx, "Example sentence failed", map[string]interface{}{"verb": verb, "error": err.Error()})
		HandleAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, built)
}

// NewChallenge draws a random selection for the caller to solve
func (h *SentenceHandler) NewChallenge(c *gin.Context) {
	ctx, span := observability.TraceHandlerFunction(c.Request.Context(), "new_challenge")
	defer observability.FinishSpan(span, nil)

	sess := builderSession(c, h.sentenceService, h.logger)
	c.JSON(http.StatusCreated, h.sentenceService.NewChallenge(ctx, sess))
}

// GetChallengeSolution builds the sentence for the current challenge
func (h *SentenceHandler) GetChallengeSolution(c *gin.Context) {
	ctx, span := observability.TraceHandlerFunction(c.Request.Context(), "get_challenge_solution")
	var err error
	defer observability.FinishSpan(span, &err)

	sess := builderSession(c, h.sentenceService, h.logger)
	solution, err := h.sentenceService.Solve(ctx, sess)
	if err != nil {
		HandleAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, solution)
}

// EndSession discards the caller's random source, cache and last results
func (h *SentenceHandler) EndSession(c *gin.Context) {
	ctx, span := observability.TraceHandlerFunction(c.Request.Context(), "end_session")
	defer observability.FinishSpan(span, nil)

	ended := endBuilderSession(c, h.sentenceService, h.logger)
	h.logger.Info(ctx, "Builder session ended", map[string]interface{}{"ended": ended})
	c.JSON(http.StatusOK, gin.H{"ended": ended})
}
