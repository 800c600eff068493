package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lingo-service/internal/logger"
	"lingo-service/internal/session"
)

const sessionKey = "session"

// LoadSession loads (or starts) the request's session and stores it on the
// Gin context. Handlers that change it must save it themselves.
func LoadSession(sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, err := sessions.Load(c.Request)
		if err != nil {
			logger.Error("session load failed", map[string]any{"error": err.Error()})
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "session error"})
			return
		}

		c.Set(sessionKey, sess)
		c.Next()
	}
}

// CurrentSession returns the session stored by LoadSession.
func CurrentSession(c *gin.Context) *session.Session {
	sess, _ := c.MustGet(sessionKey).(*session.Session)
	return sess
}
