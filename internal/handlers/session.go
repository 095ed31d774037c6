package handlers

import (
	"phraseapp/internal/config"
	"phraseapp/internal/observability"
	"phraseapp/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// GetBuilderSessionIDFromSession retrieves the builder session id stored in
// the cookie session. Returns ("", false) when there is none.
func GetBuilderSessionIDFromSession(c *gin.Context) (string, bool) {
	id, ok := sessions.Default(c).Get(config.SessionIDKey).(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

// builderSession returns the caller's builder session. A new one is created
// and its id written to the cookie when the caller has none yet. It must be
// called before the response body is written.
func builderSession(c *gin.Context, svc services.SentenceServiceInterface, logger *observability.Logger) *services.Session {
	id, _ := GetBuilderSessionIDFromSession(c)
	sess := svc.Session(c.Request.Context(), id)
	if sess.ID == id {
		return sess
	}

	cookie := sessions.Default(c)
	cookie.Set(config.SessionIDKey, sess.ID)
	if err := cookie.Save(); err != nil {
		logger.Warn(c.Request.Context(), "Failed to save session cookie", map[string]interface{}{
			"error":      err.Error(),
			"session_id": sess.ID,
		})
	}
	return sess
}

// endBuilderSession discards the caller's builder session and clears the
// cookie. It reports whether a live session was discarded.
func endBuilderSession(c *gin.Context, svc services.SentenceServiceInterface, logger *observability.Logger) bool {
	id, ok := GetBuilderSessionIDFromSession(c)
	if !ok {
		return false
	}

	ended := svc.EndSession(c.Request.Context(), id)
	cookie := sessions.Default(c)
	cookie.Delete(config.SessionIDKey)
	if err := cookie.Save(); err != nil {
		logger.Warn(c.Request.Context(), "Failed to clear session cookie", map[string]interface{}{
			"error":      err.Error(),
			"session_id": id,
		})
	}
	return ended
}
