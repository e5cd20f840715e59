package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/khaynem/WasteWise-Backend/internal/database"
	"github.com/khaynem/WasteWise-Backend/internal/models"
	"github.com/khaynem/WasteWise-Backend/internal/services"
	"github.com/khaynem/WasteWise-Backend/pkg/logger"
)

type AddWasteLogInput struct {
	WasteType string  `json:"wasteType" binding:"required"`
	Quantity  float64 `json:"quantity" binding:"required"`
	Unit      string  `json:"unit" binding:"required"`
	Date      string  `json:"date" binding:"required"`
}

func AddWasteLog(c *gin.Context) {
	userID := c.GetString("userId")

	var input AddWasteLogInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "All fields are required"})
		return
	}

	date, err := time.Parse(time.RFC3339, input.Date)
	if err != nil {
		if date, err = time.Parse("2006-01-02", input.Date); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format"})
			return
		}
	}

	wasteLog := models.WasteLog{
		Recorder:  userID,
		WasteType: input.WasteType,
		Quantity:  input.Quantity,
		Unit:      input.Unit,
		Date:      date,
	}

	points := services.ScoreWastePoints(input.WasteType, input.Quantity)

	var ranking *models.Ranking
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&wasteLog).Error; err != nil {
			return err
		}
		r, err := services.AwardPoints(tx, userID, float64(points))
		if err != nil {
			return err
		}
		ranking = r
		return nil
	})
	if err != nil {
		logger.Error().Err(err).Str("user_id", userID).Msg("Failed to add waste log")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error adding waste log"})
		return
	}

	services.InvalidateLeaderboard()

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Waste log added successfully!",
		"wasteLog": wasteLog,
		"ranking":  ranking,
	})
}

func GetWasteLogs(c *gin.Context) {
	userID := c.GetString("userId")

	var wasteLogs []models.WasteLog
	if err := database.DB.Where("recorder = ?", userID).Order("date desc").Find(&wasteLogs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching waste logs"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"wasteLogs": wasteLogs})
}

func DeleteWasteLog(c *gin.Context) {
	userID := c.GetString("userId")
	logID := c.Param("id")

	var wasteLog models.WasteLog
	err := database.DB.Where("id = ? AND recorder = ?", logID, userID).First(&wasteLog).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Waste log not found"})
		return
	}

	if err := database.DB.Delete(&wasteLog).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error deleting waste log"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Waste log deleted successfully!", "wasteLog": wasteLog})
}
