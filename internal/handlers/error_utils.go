package handlers

import (
	"fmt"

	"phraseapp/internal/middleware"
	contextutils "phraseapp/internal/utils"

	"github.com/gin-gonic/gin"
)

// HandleAppError records err on the gin context, so the tracing middleware
// can annotate the span, and writes it as a structured JSON error.
func HandleAppError(c *gin.Context, err error) {
	_ = c.Error(err)
	middleware.HandleAppError(c, err)
}

// HandleValidationError handles input validation errors consistently
func HandleValidationError(c *gin.Context, field string, value interface{}, reason string) {
	HandleAppError(c, contextutils.NewAppError(
		contextutils.ErrorCodeInvalidInput,
		contextutils.SeverityWarn,
		fmt.Sprintf("Invalid %s", field),
		fmt.Sprintf("Value '%v' is invalid: %s", value, reason),
	))
}

// bindJSON decodes the request body into dst and answers INVALID_INPUT
// when it cannot. It reports whether the handler should continue.
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		HandleAppError(c, contextutils.NewAppErrorWithCause(
			contextutils.ErrorCodeInvalidInput,
			contextutils.SeverityWarn,
			"Invalid request format",
			err.Error(),
			err,
		))
		return false
	}
	return true
}
