package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wanjala/cdf-tracker/internal/http/middleware"
)

// login accepts form-encoded credentials, matching OAuth2 password-flow
// clients.
func (h *Handler) login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")
	if username == "" || password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}

	result, err := h.services.Auth.Login(c.Request.Context(), username, password)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) me(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":       principal.UserID,
		"username": principal.Username,
		"role":     string(principal.Role),
	})
}
