package middleware

import (
	"bytes"
	"io"
	"net/http"

	"phraseapp/internal/observability"
	contextutils "phraseapp/internal/utils"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

// RequestValidationMiddleware validates JSON request bodies against the
// schema registered for the matched route. Routes without a schema pass
// through untouched. The body is restored for the handler.
func RequestValidationMiddleware(logger *observability.Logger, schemaLoader *SchemaLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		method := c.Request.Method
		if method != http.MethodPost && method != http.MethodPut && method != http.MethodPatch {
			c.Next()
			return
		}

		schemaName := schemaLoader.DetermineRequestSchemaFromPath(method, c.FullPath())
		if schemaName == "" {
			c.Next()
			return
		}

		ctx, span := observability.TraceHandlerFunction(c.Request.Context(), "request_validation",
			attribute.String("validation.schema", schemaName),
			attribute.String("http.route", c.FullPath()),
		)

		body, err := c.GetRawData()
		if err != nil {
			span.End()
			appErr := contextutils.NewAppErrorWithCause(contextutils.ErrorCodeInvalidInput, contextutils.SeverityWarn,
				"Failed to read request body", "", err)
			_ = c.Error(appErr)
			HandleAppError(c, appErr)
			c.Abort()
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))

		if err := schemaLoader.ValidateJSON(body, schemaName); err != nil {
			span.SetAttributes(attribute.Bool("validation.passed", false))
			span.End()
			logger.Warn(ctx, "Request validation failed", map[string]interface{}{
				"method":      method,
				"path":        c.Request.URL.Path,
				"schema_name": schemaName,
				"error":       err.Error(),
			})
			_ = c.Error(err)
			HandleAppError(c, err)
			c.Abort()
			return
		}

		span.SetAttributes(attribute.Bool("validation.passed", true))
		span.End()
		c.Next()
	}
}
