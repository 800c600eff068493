package handler

import (
	"errors"
	"net/http"
	"time"

	"lingo-service/internal/auth/credentials"
	"lingo-service/internal/logger"
	"lingo-service/internal/middleware"
	"lingo-service/internal/session"
	"lingo-service/internal/users"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	sessions *session.Manager
	logins   *credentials.Service
	users    *users.Service
	auth     *middleware.AuthMiddleware
	now      func() time.Time
}

func NewHandler(
	sessions *session.Manager,
	logins *credentials.Service,
	userService *users.Service,
) *Handler {
	return &Handler{
		sessions: sessions,
		logins:   logins,
		users:    userService,
		auth:     middleware.NewAuthMiddleware(sessions),
		now:      time.Now,
	}
}

// RegisterRoutes mounts the JSON API on r (normally the /api group).
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	withSession := r.Group("", middleware.LoadSession(h.sessions))
	withSession.POST("/login", h.Login)
	withSession.GET("/session", h.SessionStatus)

	r.POST("/register", h.Register)
	r.POST("/logout", h.Logout)
	r.GET("/me", middleware.GinRequireAuth(h.auth), h.Me)

	r.GET("/users", h.ListUsers)
	r.POST("/users/:userId/email", h.UpdateEmail)
	r.POST("/users/:userId/userName", h.UpdateName)
	r.POST("/users/:userId/friends", h.AddFriend)
	r.DELETE("/users/:userId/friends", h.RemoveFriend)
}

// LogRoutes prints every route mounted on the engine.
func LogRoutes(r *gin.Engine) {
	for _, route := range r.Routes() {
		logger.Debug("route", map[string]any{
			"method": route.Method,
			"path":   route.Path,
		})
	}
}

func (h *Handler) Logout(c *gin.Context) {
	// Destroy is best-effort: the cookie is cleared either way
	if err := h.sessions.Destroy(c.Request.Context(), c.Writer, c.Request); err != nil {
		logger.Warn("session delete failed", map[string]any{
			"error": err.Error(),
			"ip":    c.ClientIP(),
		})
	}

	// Idempotent response
	c.Status(http.StatusNoContent)
}

func (h *Handler) SessionStatus(c *gin.Context) {
	sess := middleware.CurrentSession(c)

	if !sess.IsLoggedIn() {
		c.JSON(http.StatusOK, gin.H{"isLoggedIn": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"isLoggedIn": true,
		"user":       sess.User,
	})
}

// fail maps service errors onto HTTP responses.
func fail(c *gin.Context, err error) {
	var storageErr *users.StorageError

	switch {
	case errors.Is(err, users.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
	case errors.Is(err, credentials.ErrPasswordTooShort):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &storageErr):
		c.JSON(http.StatusInternalServerError, gin.H{"error": storageErr.Message})
	default:
		logger.Error("request failed", map[string]any{
			"path":  c.FullPath(),
			"error": err.Error(),
		})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
