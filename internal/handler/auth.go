package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Login checks the submitted credentials. No token is issued; a 200 simply
// means the plaintext credential matched.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Username, password, and role are required"})
		return
	}

	if err := h.auth.Login(c.Request.Context(), req.Username, req.Password, req.Role); err != nil {
		fail(c, "message", err, "Server error. Please try again later.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Login successful"})
}
