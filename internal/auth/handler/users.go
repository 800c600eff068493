package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"lingo-service/internal/middleware"
	"lingo-service/internal/users"
)

type updateEmailRequest struct {
	NewEmail string `json:"newEmail" binding:"required,email"`
}

type updateNameRequest struct {
	NewName string `json:"newName" binding:"required"`
}

func (h *Handler) ListUsers(c *gin.Context) {
	list, err := h.users.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *Handler) Me(c *gin.Context) {
	identity, ok := middleware.IdentityFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	user, err := h.users.Get(c.Request.Context(), identity.UserID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *Handler) UpdateEmail(c *gin.Context) {
	var req updateEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	h.respondUser(c, func(ctx context.Context, id string) (*users.User, error) {
		return h.users.UpdateEmail(ctx, id, req.NewEmail)
	})
}

func (h *Handler) UpdateName(c *gin.Context) {
	var req updateNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	h.respondUser(c, func(ctx context.Context, id string) (*users.User, error) {
		return h.users.UpdateName(ctx, id, req.NewName)
	})
}

func (h *Handler) AddFriend(c *gin.Context) {
	h.respondUser(c, h.users.AddFriend)
}

func (h *Handler) RemoveFriend(c *gin.Context) {
	h.respondUser(c, h.users.RemoveFriend)
}

func (h *Handler) respondUser(c *gin.Context, op func(context.Context, string) (*users.User, error)) {
	user, err := op(c.Request.Context(), c.Param("userId"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
