package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ExtractTokenValues echoes the decoded claims back so the frontend can
// inspect its own session.
func ExtractTokenValues(c *gin.Context) {
	claims := claimsFrom(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"values": gin.H{
			"id":       claims.UserID,
			"username": claims.Username,
			"email":    claims.Email,
			"role":     claims.Role,
		},
	})
}
