package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/khaynem/WasteWise-Backend/internal/database"
	"github.com/khaynem/WasteWise-Backend/internal/models"
	"github.com/khaynem/WasteWise-Backend/internal/services"
	"github.com/khaynem/WasteWise-Backend/pkg/logger"
	"github.com/khaynem/WasteWise-Backend/pkg/utils"
)

// claimsFrom returns the decoded token claims stashed by the auth middleware,
// or nil for anonymous requests.
func claimsFrom(c *gin.Context) *utils.Claims {
	if v, ok := c.Get("claims"); ok {
		if claims, ok := v.(*utils.Claims); ok {
			return claims
		}
	}
	return nil
}

// parseLocCoords accepts either GeoJSON {"type":"Point","coordinates":[lat,lng]}
// or the legacy {"lat":..,"lng":..} shape. Returns ok=false when absent or
// malformed, in which case the model defaults apply.
func parseLocCoords(raw string) (lat, lng float64, ok bool) {
	if raw == "" {
		return 0, 0, false
	}

	var geo struct {
		Type        string    `json:"type"`
		Coordinates []float64 `json:"coordinates"`
	}
	if err := json.Unmarshal([]byte(raw), &geo); err == nil &&
		geo.Type == "Point" && len(geo.Coordinates) == 2 {
		return geo.Coordinates[0], geo.Coordinates[1], true
	}

	var legacy struct {
		Lat *float64 `json:"lat"`
		Lng *float64 `json:"lng"`
	}
	if err := json.Unmarshal([]byte(raw), &legacy); err == nil &&
		legacy.Lat != nil && legacy.Lng != nil {
		return *legacy.Lat, *legacy.Lng, true
	}

	return 0, 0, false
}

// errUploadsDisabled marks a request that attached a file while no image
// host is configured, so handlers can answer 503 instead of blaming the
// client for a missing file.
var errUploadsDisabled = errors.New("image host not configured")

// uploadFormImage pushes the named multipart file to the image host.
// Returns "" when no file was attached.
func uploadFormImage(c *gin.Context, field, folder string) (string, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		return "", nil
	}
	if services.ImageHost == nil {
		return "", errUploadsDisabled
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()

	return services.ImageHost.UploadImage(c.Request.Context(), file, folder)
}

func CreateReport(c *gin.Context) {
	userID := c.GetString("userId")
	claims := claimsFrom(c)

	title := c.PostForm("title")
	description := c.PostForm("description")
	location := c.PostForm("location")

	rawCoords := c.PostForm("locCoords")
	if rawCoords == "" {
		rawCoords = c.PostForm("locCoord")
	}
	lat, lng, hasCoords := parseLocCoords(rawCoords)

	imageURL, err := uploadFormImage(c, "image", "reports")
	if errors.Is(err, errUploadsDisabled) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "Image uploads are temporarily unavailable"})
		return
	}
	if err != nil {
		logger.Error().Err(err).Msg("Report image upload failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error uploading image"})
		return
	}
	if imageURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "No image file provided."})
		return
	}

	reporterName := "Anonymous"
	if claims != nil {
		reporterName = claims.Username
	}

	report := models.Report{
		Title:        title,
		Description:  description,
		Reporter:     userID,
		ReporterName: reporterName,
		Location:     location,
		Date:         time.Now(),
		Images:       []string{imageURL},
		Status:       models.ReportPending,
	}
	if hasCoords {
		report.Lat = lat
		report.Lng = lng
	}

	points := services.ReportBasePoints + services.ReportImageBonus
	if hasCoords {
		points += services.ReportLocationBonus
	}

	// Report row and points move together or not at all.
	var ranking *models.Ranking
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&report).Error; err != nil {
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
		logger.Error().Err(err).Str("user_id", userID).Msg("Failed to create report")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error creating report"})
		return
	}

	services.InvalidateLeaderboard()

	c.JSON(http.StatusCreated, gin.H{
		"message": "Report created successfully!",
		"report":  report,
		"ranking": ranking,
	})
}

func GetMyReports(c *gin.Context) {
	userID := c.GetString("userId")

	var reports []models.Report
	if err := database.DB.Where("reporter = ?", userID).Order("date desc").Find(&reports).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching reports"})
		return
	}
	c.JSON(http.StatusOK, reports)
}

func EditReport(c *gin.Context) {
	userID := c.GetString("userId")
	reportID := c.Param("id")

	var report models.Report
	err := database.DB.Where("id = ? AND reporter = ?", reportID, userID).First(&report).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Report not found or you do not have permission to edit it"})
		return
	}

	if title := c.PostForm("title"); title != "" {
		report.Title = title
	}
	if description := c.PostForm("description"); description != "" {
		report.Description = description
	}
	if location := c.PostForm("location"); location != "" {
		report.Location = location
	}
	report.Date = time.Now()

	rawCoords := c.PostForm("locCoords")
	if rawCoords == "" {
		rawCoords = c.PostForm("locCoord")
	}
	if lat, lng, ok := parseLocCoords(rawCoords); ok {
		report.Lat = lat
		report.Lng = lng
	}

	imageURL, err := uploadFormImage(c, "image", "reports")
	if errors.Is(err, errUploadsDisabled) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "Image uploads are temporarily unavailable"})
		return
	}
	if err != nil {
		logger.Error().Err(err).Msg("Report image upload failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error uploading image"})
		return
	}
	oldImages := report.Images
	if imageURL != "" {
		report.Images = []string{imageURL}
	}

	if err := database.DB.Save(&report).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error updating report"})
		return
	}

	if imageURL != "" {
		for _, old := range oldImages {
			services.RemoveHostedImage(c.Request.Context(), old)
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Report updated successfully!", "report": report})
}
