package handler

import (
	"net/http"

	"lingo-service/internal/auth/credentials"
	"lingo-service/internal/logger"
	"lingo-service/internal/middleware"

	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	ctx := c.Request.Context()
	sess := middleware.CurrentSession(c)

	outcome, next, err := h.logins.LogIn(ctx, sess.State, req.Email, req.Password, h.now())
	if err != nil {
		fail(c, err)
		return
	}

	switch outcome.Result {
	case credentials.Throttled:
		// Nothing changed; the session is not written back
		c.String(http.StatusTooManyRequests, outcome.Message)

	case credentials.NotFound:
		// Saved on both paths so unknown emails and bad passwords
		// produce the same response headers
		sess.State = next
		if err := h.sessions.Save(ctx, c.Writer, sess); err != nil {
			sessionError(c, err)
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "invalid credentials"})

	case credentials.OK:
		sess.State = next
		if err := h.sessions.Renew(ctx, c.Writer, sess); err != nil {
			sessionError(c, err)
			return
		}

		logger.Info("login succeeded", map[string]any{
			"user_id": next.User.UserID,
			"ip":      c.ClientIP(),
		})

		c.JSON(http.StatusOK, gin.H{"status": "logged_in"})
	}
}

func sessionError(c *gin.Context, err error) {
	logger.Error("session save failed", map[string]any{"error": err.Error()})
	c.JSON(http.StatusInternalServerError, gin.H{"error": "session error"})
}
