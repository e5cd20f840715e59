package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/khaynem/WasteWise-Backend/internal/database"
	"github.com/khaynem/WasteWise-Backend/internal/services"
)

// GetLeaderboard returns the top ten plus the requester's own placement when
// authenticated. Works for anonymous callers too.
func GetLeaderboard(c *gin.Context) {
	leaderboard, err := services.GetLeaderboard(database.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching leaderboard"})
		return
	}

	var userPlacement *services.LeaderboardEntry
	if userID := c.GetString("userId"); userID != "" {
		userPlacement, err = services.GetUserPlacement(database.DB, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching leaderboard"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"leaderboard":   leaderboard,
		"userPlacement": userPlacement,
	})
}
