package handlers

import (
	"net/http"

	"phraseapp/internal/config"
	"phraseapp/internal/models"
	"phraseapp/internal/observability"
	"phraseapp/internal/services"
	contextutils "phraseapp/internal/utils"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

// TranslationHandler handles translation related HTTP requests
type TranslationHandler struct {
	sentenceService services.SentenceServiceInterface
	cfg             *config.Config
	logger          *observability.Logger
}

// NewTranslationHandler creates a new TranslationHandler instance
func NewTranslationHandler(sentenceService services.SentenceServiceInterface, cfg *config.Config, logger *observability.Logger) *TranslationHandler {
	return &TranslationHandler{
		sentenceService: sentenceService,
		cfg:             cfg,
		logger:          logger,
	}
}

// TranslateText answers with a best-effort translation. Once the request is
// valid the answer is always 200: a failing remote provider is replaced by
// the local glossary and reported through the origin field.
func (h *TranslationHandler) TranslateText(c *gin.Context) {
	ctx, span := observability.TraceHandlerFunction(c.Request.Context(), "translate_text")
	var err error
	defer observability.FinishSpan(span, &err)

	var req models.TranslateRequest
	if !bindJSON(c, &req) {
		return
	}
	if err = contextutils.ValidateStruct(req); err != nil {
		h.logger.Warn(ctx, "Translation request validation failed", map[string]interface{}{"error": err.Error()})
		HandleAppError(c, err)
		return
	}
	if req.SourceLanguage != "" && !contextutils.IsValidLanguageCode(req.SourceLanguage) {
		HandleValidationError(c, "source_language", req.SourceLanguage, "not a language code")
		return
	}
	if req.TargetLanguage != "" && !contextutils.IsValidLanguageCode(req.TargetLanguage) {
		HandleValidationError(c, "target_language", req.TargetLanguage, "not a language code")
		return
	}

	span.SetAttributes(
		attribute.String("translation.source_language", req.SourceLanguage),
		attribute.String("translation.target_language", req.TargetLanguage),
		attribute.Int("translation.text_length", len(req.Text)),
	)

	sess := builderSession(c, h.sentenceService, h.logger)
	result := h.sentenceService.Translate(ctx, sess, req.Text, req.SourceLanguage, req.TargetLanguage)
	c.JSON(http.StatusOK, result)
}
