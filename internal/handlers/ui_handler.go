package handlers

import (
	"net/http"

	"phraseapp/internal/i18n"
	"phraseapp/internal/observability"

	"github.com/gin-gonic/gin"
)

// UIHandler serves the localized labels of the control surface
type UIHandler struct {
	catalog *i18n.Catalog
	logger  *observability.Logger
}

// NewUIHandler creates a new UIHandler instance
func NewUIHandler(catalog *i18n.Catalog, logger *observability.Logger) *UIHandler {
	return &UIHandler{catalog: catalog, logger: logger}
}

// GetMessages returns every label for ?lang=, or for the Accept-Language
// header when no lang is given. Unknown languages get the default labels.
func (h *UIHandler) GetMessages(c *gin.Context) {
	_, span := observability.TraceHandlerFunction(c.Request.Context(), "get_ui_messages")
	defer observability.FinishSpan(span, nil)

	requested := c.Query("lang")
	if requested == "" {
		requested = c.GetHeader("Accept-Language")
	}
	span.SetAttributes(observability.AttributeLanguage(requested))

	lang, messages := h.catalog.Messages(requested)
	c.JSON(http.StatusOK, gin.H{
		"lang":      lang,
		"languages": h.catalog.Languages(),
		"messages":  messages,
	})
}
