package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"

	"phraseapp/internal/observability"
	contextutils "phraseapp/internal/utils"

	"github.com/gin-gonic/gin"
)

// ErrorRecoveryMiddleware turns a panic in any later handler into a fatal
// INTERNAL_SERVER_ERROR response and logs the stack.
func ErrorRecoveryMiddleware(logger *observability.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			recovered := recover()
			if recovered == nil {
				return
			}
			stackTrace := string(debug.Stack())

			panicErr, ok := recovered.(error)
			if !ok {
				panicErr = fmt.Errorf("panic: %v", recovered)
			}

			if logger != nil {
				logger.Error(c.Request.Context(), "Panic recovered", panicErr, map[string]interface{}{
					"method":      c.Request.Method,
					"path":        c.Request.URL.Path,
					"stack_trace": stackTrace,
				})
			}

			appErr := contextutils.NewAppErrorWithCause(
				contextutils.ErrorCodeInternalError,
				contextutils.SeverityFatal,
				"Internal server error",
				"A panic occurred while processing the request",
				panicErr,
			)
			if gin.Mode() == gin.DebugMode {
				appErr.Details = fmt.Sprintf("%s\nStack trace: %s", appErr.Details, stackTrace)
			}

			_ = c.Error(appErr)
			HandleAppError(c, appErr)
			c.Abort()
		}()

		c.Next()
	}
}

// HandleAppError writes err as a structured JSON error. Errors that are not
// AppErrors become INTERNAL_SERVER_ERROR.
func HandleAppError(c *gin.Context, err error) {
	var appErr *contextutils.AppError
	if !errors.As(err, &appErr) {
		appErr = contextutils.NewAppErrorWithCause(
			contextutils.ErrorCodeInternalError,
			contextutils.SeverityError,
			"Internal server error",
			err.Error(),
			err,
		)
	}
	c.JSON(HTTPStatusForCode(appErr.Code), appErr.ToJSON())
}

// ServiceUnavailable sends a 503 Service Unavailable error with a standardized payload
func ServiceUnavailable(c *gin.Context, msg string) {
	HandleAppError(c, contextutils.NewAppError(
		contextutils.ErrorCodeServiceUnavailable,
		contextutils.SeverityError,
		msg,
		"",
	))
}

// HTTPStatusForCode maps AppError codes to HTTP status codes.
func HTTPStatusForCode(code contextutils.ErrorCode) int {
	switch code {
	case contextutils.ErrorCodeInvalidInput, contextutils.ErrorCodeMissingRequired,
		contextutils.ErrorCodeValidationFailed, contextutils.ErrorCodeUnknownVerb,
		contextutils.ErrorCodeUnknownPronoun, contextutils.ErrorCodeUnknownTense,
		contextutils.ErrorCodeUnknownStructure:
		return http.StatusBadRequest

	case contextutils.ErrorCodeRecordNotFound:
		return http.StatusNotFound

	case contextutils.ErrorCodeServiceUnavailable:
		return http.StatusServiceUnavailable

	case contextutils.ErrorCodeTimeout:
		return http.StatusRequestTimeout

	case contextutils.ErrorCodeTranslationFailed:
		return http.StatusBadGateway

	default:
		return http.StatusInternalServerError
	}
}
