package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lingo-service/internal/auth/credentials"
)

type registerRequest struct {
	UserName string `json:"userName" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if len(req.Password) < credentials.MinPasswordLength {
		c.JSON(http.StatusBadRequest, gin.H{"error": credentials.ErrPasswordTooShort.Error()})
		return
	}

	user, err := h.users.Register(
		c.Request.Context(),
		req.UserName,
		req.Email,
		req.Password,
	)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status": "registered",
		"userId": user.ID,
	})
}
